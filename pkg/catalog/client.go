// Package catalog is the client side of the product search API.
package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/matst80/slask-jewelry/pkg/cache"
	"github.com/matst80/slask-jewelry/pkg/common/jsoncompat"
	"github.com/matst80/slask-jewelry/pkg/logging"
	"github.com/matst80/slask-jewelry/pkg/metrics"
	"github.com/matst80/slask-jewelry/pkg/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("slask-jewelry-catalog")

const (
	defaultTimeout  = 10 * time.Second
	productCacheTTL = 5 * time.Minute
	maxErrorBody    = 64 << 10
)

type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache.Helper[types.Product]
	logger  *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithCache enables the read-through cache for detail lookups.
func WithCache(store *cache.Cache) Option {
	return func(c *Client) { c.cache = cache.NewHelper[types.Product](store) }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = logging.OrNop(l) }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is one page of a list search.
type Result struct {
	Products   []types.Product  `json:"products"`
	Pagination types.Pagination `json:"pagination"`
}

// Search fetches one page for req.Category with req's filters.
func (c *Client) Search(ctx context.Context, req types.SearchRequest) (*Result, error) {
	req.Sanitize(types.DefaultLimit)
	path := req.Category.ListPath()
	query := req.Values(req.Category.Registry()).Encode()

	var env listEnvelope
	if err := c.get(ctx, path, query, &env); err != nil {
		return nil, err
	}
	products := env.Products
	if products == nil {
		products = []types.Product{}
	}
	return &Result{
		Products:   products,
		Pagination: env.pagination(req.Page, req.Limit),
	}, nil
}

// Product fetches a single record. The API answers with either
// {"product": {...}} or the bare record.
func (c *Client) Product(ctx context.Context, category types.Category, id string) (*types.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("product id: %w", ErrNotFound)
	}
	key := fmt.Sprintf("product:%s:%s", category, id)
	p, err := c.cache.Handle(ctx, key, productCacheTTL, func() (types.Product, error) {
		return c.fetchProduct(ctx, category, id)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) fetchProduct(ctx context.Context, category types.Category, id string) (types.Product, error) {
	var wrapped struct {
		Product *types.Product `json:"product"`
	}
	body, err := c.getRaw(ctx, category.ItemPath(id), "")
	if err != nil {
		return types.Product{}, err
	}
	if err := jsoncompat.Unmarshal(body, &wrapped); err != nil {
		return types.Product{}, fmt.Errorf("decode product %s: %w", id, err)
	}
	if wrapped.Product != nil {
		return *wrapped.Product, nil
	}
	var bare types.Product
	if err := jsoncompat.Unmarshal(body, &bare); err != nil {
		return types.Product{}, fmt.Errorf("decode product %s: %w", id, err)
	}
	if bare.ID == "" {
		return types.Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return bare, nil
}

func (c *Client) get(ctx context.Context, path, query string, out any) error {
	body, err := c.getRaw(ctx, path, query)
	if err != nil {
		return err
	}
	if err := jsoncompat.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) getRaw(ctx context.Context, path, query string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "catalog GET "+path)
	defer span.End()

	url := c.baseURL + path
	if query != "" {
		url += "?" + query
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	rid := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", rid)
	span.SetAttributes(attribute.String("request.id", rid), attribute.String("http.url", url))

	start := time.Now()
	res, err := c.http.Do(req)
	metrics.APIRequestSeconds.WithLabelValues(endpointLabel(path)).Observe(time.Since(start).Seconds())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	defer res.Body.Close()

	c.logger.Debug("catalog response",
		zap.String("rid", rid),
		zap.String("url", url),
		zap.Int("status", res.StatusCode),
		zap.Duration("dur", time.Since(start)))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := newAPIError(res.StatusCode, io.LimitReader(res.Body, maxErrorBody))
		span.SetStatus(codes.Error, apiErr.Error())
		return nil, apiErr
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return body, nil
}

// endpointLabel keeps metric cardinality bounded by dropping record ids.
func endpointLabel(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) > 2 {
		parts = append(parts[:2], ":id")
	}
	return "/" + strings.Join(parts, "/")
}
