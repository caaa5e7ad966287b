package marvel

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"comicsdb/internal/config"
	"comicsdb/internal/importer"
	"comicsdb/internal/logging"
	"comicsdb/internal/services"
)

const (
	defaultPageSize = 100
	maxPageSize     = 100
	retryMaxElapsed = 2 * time.Minute
)

// Client fetches comic listings from the Marvel API.
type Client struct {
	publicKey  string
	privateKey string
	baseURL    string
	pageSize   int
	maxRetries int
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
	newBackOff func() backoff.BackOff
}

var _ importer.Source = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger sets the logger used for paging and retry messages.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "marvel")
		}
	}
}

// WithPageSize sets the number of comics requested per page.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 && n <= maxPageSize {
			c.pageSize = n
		}
	}
}

// WithMaxRetries caps how many times a failed page request is retried.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithClock overrides the timestamp source used to sign requests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithBackOff overrides the retry schedule. The factory is called once per
// page request since BackOff implementations are stateful.
func WithBackOff(factory func() backoff.BackOff) Option {
	return func(c *Client) {
		if factory != nil {
			c.newBackOff = factory
		}
	}
}

// New creates a Marvel client.
func New(publicKey, privateKey, baseURL string, opts ...Option) (*Client, error) {
	publicKey = strings.TrimSpace(publicKey)
	privateKey = strings.TrimSpace(privateKey)
	if publicKey == "" || privateKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "marvel", "new client", "public and private keys required", nil)
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, "marvel", "new client", "base url required", nil)
	}
	client := &Client{
		publicKey:  publicKey,
		privateKey: privateKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		pageSize:   defaultPageSize,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logging.NewNop(),
		now:        time.Now,
		newBackOff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.MaxElapsedTime = retryMaxElapsed
			return bo
		},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// NewFromConfig builds a client from the [marvel] configuration section.
func NewFromConfig(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "marvel", "new client", "config required", nil)
	}
	if err := cfg.ValidateMarvel(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "marvel", "new client", "invalid [marvel] section", err)
	}
	base := []Option{
		WithHTTPClient(&http.Client{Timeout: cfg.MarvelTimeout()}),
		WithPageSize(cfg.Marvel.PageSize),
		WithMaxRetries(cfg.Marvel.MaxRetries),
		WithLogger(logger),
	}
	return New(cfg.Marvel.PublicKey, cfg.Marvel.PrivateKey, cfg.Marvel.BaseURL, append(base, opts...)...)
}

// Name identifies the source in logs and summaries.
func (c *Client) Name() string { return "marvel" }

// Fetch returns every comic published in the query's period. Variants and
// non-comic formats are excluded by the request filters.
func (c *Client) Fetch(ctx context.Context, query importer.Query) ([]importer.Record, error) {
	if query.IsZero() {
		return nil, services.Wrap(services.ErrValidation, "marvel", "fetch", "a date descriptor or range is required", nil)
	}

	var records []importer.Record
	offset := 0
	for {
		page, err := c.fetchPage(ctx, query, offset)
		if err != nil {
			return nil, err
		}
		for _, comic := range page.Results {
			records = append(records, comic.record())
		}
		c.logger.Debug("fetched comics page",
			logging.Int("offset", page.Offset),
			logging.Int("count", page.Count),
			logging.Int("total", page.Total),
		)
		offset = page.Offset + page.Count
		if page.Count == 0 || offset >= page.Total {
			break
		}
	}
	c.logger.Info("fetched comics", logging.Int("records", len(records)), logging.String("period", describe(query)))
	return records, nil
}

// Ping requests a single listing without retrying. It verifies that the API
// is reachable and accepts the configured keys.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.requestPage(ctx, importer.Query{DateDescriptor: "thisWeek"}, 0, 1)
	return err
}

func describe(q importer.Query) string {
	if q.DateDescriptor != "" {
		return q.DateDescriptor
	}
	return q.Range()
}

// params returns the comic listing filters plus the signing parameters.
func (c *Client) params(query importer.Query, offset, limit int) url.Values {
	ts := strconv.FormatInt(c.now().UnixNano(), 10)
	sum := md5.Sum([]byte(ts + c.privateKey + c.publicKey))

	params := url.Values{}
	params.Set("ts", ts)
	params.Set("apikey", c.publicKey)
	params.Set("hash", hex.EncodeToString(sum[:]))
	params.Set("format", "comic")
	params.Set("formatType", "comic")
	params.Set("noVariants", "true")
	if query.DateDescriptor != "" {
		params.Set("dateDescriptor", query.DateDescriptor)
	} else {
		params.Set("dateRange", query.Range())
	}
	params.Set("orderBy", "title")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	return params
}

func (c *Client) fetchPage(ctx context.Context, query importer.Query, offset int) (*dataContainer, error) {
	var page *dataContainer
	bo := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), uint64(c.maxRetries)), ctx)
	err := backoff.RetryNotify(func() error {
		result, err := c.requestPage(ctx, query, offset, c.pageSize)
		if err != nil {
			if services.Retryable(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		page = result
		return nil
	}, bo, func(err error, wait time.Duration) {
		c.logger.Warn("marvel request failed, retrying",
			logging.Int("offset", offset),
			logging.Duration("wait", wait),
			logging.Error(err),
		)
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (c *Client) requestPage(ctx context.Context, query importer.Query, offset, limit int) (*dataContainer, error) {
	endpoint, err := url.Parse(c.baseURL + "/comics")
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "marvel", "parse url", c.baseURL, err)
	}
	endpoint.RawQuery = c.params(query, offset, limit).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, services.Wrap(services.ErrExternal, "marvel", "build request", "", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, services.Wrap(services.ErrTransient, "marvel", "execute request", fmt.Sprintf("latency=%v", latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, latency)
	}

	var payload dataWrapper
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, services.Wrap(services.ErrExternal, "marvel", "decode response", "", err)
	}
	return &payload.Data, nil
}

// statusError classifies a non-200 response. Rate limiting and server
// failures are transient; anything else (bad credentials, invalid filters)
// will not succeed on retry.
func statusError(resp *http.Response, latency time.Duration) error {
	var body apiError
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(raw, &body); err != nil || body.message() == "" {
		body = apiError{Message: strings.TrimSpace(string(raw))}
	}
	detail := fmt.Sprintf("status %d (latency=%v): %s", resp.StatusCode, latency, body.message())
	if resp.StatusCode == http.StatusUnauthorized {
		return services.Wrap(services.ErrConfiguration, "marvel", "list comics", detail, ErrUnauthorized)
	}
	marker := services.ErrExternal
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		marker = services.ErrTransient
	}
	return services.Wrap(marker, "marvel", "list comics", detail, nil)
}

// ErrUnauthorized reports rejected API keys.
var ErrUnauthorized = errors.New("marvel rejected the api keys")

type apiError struct {
	Code    any    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (e apiError) message() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Status
}
