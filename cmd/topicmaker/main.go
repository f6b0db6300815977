package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter"
	"github.com/niksmo/storefront/pkg/sigctx"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	partitions        = 3
	replicationFactor = 3
	cleanupPolicy     = "delete"
	minISR            = "1"
)

func main() {
	sigCtx, closeApp := sigctx.NotifyContext(context.Background())
	defer closeApp()

	cfg := config.Load()
	if !cfg.EventsEnabled() {
		printFail(errors.New("broker.seed_brokers is empty"))
		return
	}

	tlsFiles := cfg.Broker.TLS
	tlsCfg, err := adapter.MakeTLSConfig(
		tlsFiles.CAFile, tlsFiles.CertFile, tlsFiles.KeyFile,
	)
	if err != nil {
		printFail(err)
		return
	}

	cl := createClient(cfg.Broker.SeedBrokers, tlsCfg)
	defer cl.Close()

	printStart(cfg)
	defer printComplete(time.Now())

	err = makeTopics(sigCtx, cl, cfg.Broker.Topics.CartEvents)
	if err != nil {
		printFail(err)
		return
	}
}

func createClient(seedBrokers []string, tlsCfg *tls.Config) *kadm.Client {
	opts := []kgo.Opt{kgo.SeedBrokers(seedBrokers...)}
	if tlsCfg != nil {
		opts = append(opts, kgo.DialTLSConfig(tlsCfg))
	}

	cl, err := kadm.NewOptClient(opts...)
	if err != nil {
		panic(err) // develop mistake
	}
	return cl
}

func makeTopics(ctx context.Context, cl *kadm.Client, topics ...string) error {
	policy, isr := cleanupPolicy, minISR
	config := map[string]*string{
		"cleanup.policy":      &policy,
		"min.insync.replicas": &isr,
	}

	responses, err := cl.CreateTopics(
		ctx,
		partitions,
		replicationFactor,
		config,
		topics...,
	)
	if err != nil {
		return err
	}

	var errs []error
	for _, res := range responses.Sorted() {
		if res.Err != nil {
			if errors.Is(res.Err, kerr.TopicAlreadyExists) {
				fmt.Printf("topic: %q already exists\n", res.Topic)
			} else {
				errs = append(errs, res.Err)
			}
			continue
		}
		fmt.Printf("topic: %q successfully created\n", res.Topic)
	}

	return errors.Join(errs...)
}

func printStart(cfg config.Config) {
	fmt.Printf("initializing topics...\n\t- %q\n\n", cfg.Broker.Topics.CartEvents)
}

func printComplete(start time.Time) {
	fmt.Printf("\ncomplete in %s\n", time.Since(start))
}

func printFail(err error) {
	fmt.Printf("failed to create topics: \n%s\n", err)
}
