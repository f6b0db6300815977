package catalogapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/shopspring/decimal"
)

const DefaultURL = "https://fakestoreapi.com/products"

var ErrUnexpectedStatus = errors.New("unexpected status")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var _ port.CatalogFetcher = (*Client)(nil)

type product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
}

type httpDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// A Client reads the product list from a fake store compatible API.
type Client struct {
	url string
	hc  httpDoer
}

type Opt func(*Client)

func HTTPClientOpt(hc httpDoer) Opt {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

func New(url string, opts ...Opt) Client {
	if url == "" {
		url = DefaultURL
	}
	c := Client{url: url, hc: http.DefaultClient}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// FetchProducts performs a single GET request, bound to ctx only.
func (c Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Client.FetchProducts"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%s: %w: %s", op, ErrUnexpectedStatus, res.Status)
	}

	var ps []product
	if err := json.NewDecoder(res.Body).Decode(&ps); err != nil {
		return nil, fmt.Errorf("%s: failed to decode body: %w", op, err)
	}

	return c.toDomain(ps), nil
}

func (Client) toDomain(ps []product) []domain.Product {
	domainPs := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		domainPs = append(domainPs, domain.Product{
			ID:          p.ID,
			Title:       p.Title,
			Price:       p.Price,
			Description: p.Description,
			Category:    p.Category,
			Image:       p.Image,
		})
	}
	return domainPs
}
