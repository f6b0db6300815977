package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter"
	"github.com/niksmo/storefront/internal/adapter/catalogapi"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/reactive"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type coreService struct {
	catalog   *service.Catalog
	cart      *service.CartStore
	publisher *service.CartEventPublisher
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	root       *reactive.Root
	tlsCfg     *tls.Config
	serde      schema.Serde
	producer   *kafka.CartEventsProducer
	service    coreService
	httpServer httphandler.HTTPServer
	wg         sync.WaitGroup
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg, root: reactive.NewRoot()}

	app.initLogger()
	app.initCoreService()
	if cfg.EventsEnabled() {
		app.initTLS()
		app.initSerde()
		app.initOutboundAdapters()
		app.initPublisher()
	} else {
		slog.Info("broker is not configured, cart events are disabled")
	}
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initCoreService() {
	const op = "App.initCoreService"

	fetcher := catalogapi.New(app.cfg.Catalog.URL)
	catalog, err := service.NewCatalog(app.root, fetcher)
	if err != nil {
		app.fallDown(op, err)
	}

	cart, err := service.NewCartStore(app.root)
	if err != nil {
		app.fallDown(op, err)
	}

	app.service.catalog = catalog
	app.service.cart = cart
}

func (app *App) initTLS() {
	const op = "App.initTLS"

	files := app.cfg.Broker.TLS
	tlsCfg, err := adapter.MakeTLSConfig(files.CAFile, files.CertFile, files.KeyFile)
	if err != nil {
		app.fallDown(op, err)
	}
	app.tlsCfg = tlsCfg
}

func (app *App) initSerde() {
	const op = "App.initSerde"

	srOpts := []sr.ClientOpt{sr.URLs(app.cfg.Broker.SchemaRegistryURLs...)}
	if app.tlsCfg != nil {
		srOpts = append(srOpts, sr.DialTLSConfig(app.tlsCfg))
	}

	srClient, err := sr.NewClient(srOpts...)
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	cartEventsSS := app.cfg.Broker.Topics.CartEvents + "-value"
	serde, err := schema.NewSerdeCartEventV1(
		app.ctx,
		schema.SubjectOpt(cartEventsSS),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.serde = serde
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	producer, err := kafka.NewCartEventsProducer(
		kafka.ProducerClientOpt(
			app.ctx,
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.Topics.CartEvents,
			app.tlsCfg,
		),
		kafka.ProducerEncoderOpt(app.serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.producer = &producer
}

func (app *App) initPublisher() {
	app.service.publisher = service.NewCartEventPublisher(
		app.service.cart,
		app.producer,
		service.PublisherAttemptsOpt(app.cfg.Broker.ProduceAttempts),
	)
}

func (app *App) initInboundAdapters() {
	h := httphandler.New(app.service.catalog, app.service.cart)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, h.Router())
}

func (app *App) Run(stopFn context.CancelFunc) {
	app.service.catalog.Start(app.ctx)

	if app.service.publisher != nil {
		app.wg.Add(1)
		go app.service.publisher.Run(app.ctx, &app.wg)
		app.wg.Wait()
	}

	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.service.publisher != nil {
		app.service.publisher.Close()
	}
	if app.producer != nil {
		app.producer.Close()
	}
	app.root.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
