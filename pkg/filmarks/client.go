package filmarks

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/yzays8/filmr/pkg/errors"
	"github.com/yzays8/filmr/pkg/logger"
	"github.com/yzays8/filmr/pkg/ratelimit"
)

// PageKind classifies the outcome of one fetch
type PageKind int

const (
	PageFound PageKind = iota
	PageNotFound
	PageTransportError
)

func (k PageKind) String() string {
	switch k {
	case PageFound:
		return "found"
	case PageNotFound:
		return "not_found"
	default:
		return "transport_error"
	}
}

// PageResult is the tagged outcome of fetching a URL. Doc is set only for
// PageFound, Err only for PageTransportError.
type PageResult struct {
	Kind   PageKind
	URL    string
	Status int
	Doc    *goquery.Document
	Err    error
}

// Client fetches Filmarks pages. Every request, listing or detail, starts
// through the same limiter.
type Client struct {
	http    *resty.Client
	limiter ratelimit.Limiter
	baseURL string
	logger  logger.Logger

	userAgent        string
	timeout          time.Duration
	cloudflareBypass bool
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at another origin (used by tests)
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithCloudflareBypass wraps the transport with browser-like TLS settings
func WithCloudflareBypass(enabled bool) Option {
	return func(c *Client) { c.cloudflareBypass = enabled }
}

func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a new Filmarks client. A nil limiter disables throttling.
func NewClient(limiter ratelimit.Limiter, opts ...Option) *Client {
	c := &Client{
		limiter:   limiter,
		baseURL:   BaseURL,
		userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
		timeout:   30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.limiter == nil {
		c.limiter = ratelimit.NewInterval(0)
	}
	c.logger = logger.OrGlobal(c.logger)

	httpClient := resty.New()
	if c.cloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}
	httpClient.SetTimeout(c.timeout)
	httpClient.SetHeaders(map[string]string{
		"User-Agent":      c.userAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "ja,en-US;q=0.9,en;q=0.8",
	})
	httpClient.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.LogRequest(c.logger, resp.Request.Method, resp.Request.URL, resp.StatusCode(), resp.Time())
		return nil
	})
	c.http = httpClient

	return c
}

// BaseURL returns the origin listing and detail URLs are built on
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Fetch issues exactly one GET for rawURL once the limiter grants a slot.
// A 404 yields PageNotFound; any other non-2xx status, network failure or
// unparsable body yields PageTransportError.
func (c *Client) Fetch(ctx context.Context, rawURL string) PageResult {
	resp, err := ratelimit.Throttle(ctx, c.limiter, func() (*resty.Response, error) {
		return c.http.R().SetContext(ctx).Get(rawURL)
	})
	if err != nil {
		c.logger.WarnWithFields("HTTP request failed", map[string]interface{}{
			"url":   rawURL,
			"error": err.Error(),
		})
		return PageResult{
			Kind: PageTransportError,
			URL:  rawURL,
			Err:  errors.NewTransportError(rawURL, 0, err),
		}
	}

	status := resp.StatusCode()
	switch {
	case status == http.StatusNotFound:
		return PageResult{Kind: PageNotFound, URL: rawURL, Status: status}
	case status < 200 || status >= 300:
		return PageResult{
			Kind:   PageTransportError,
			URL:    rawURL,
			Status: status,
			Err:    errors.NewTransportError(rawURL, status, fmt.Errorf("%s", resp.Status())),
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return PageResult{
			Kind:   PageTransportError,
			URL:    rawURL,
			Status: status,
			Err:    errors.NewTransportError(rawURL, 0, fmt.Errorf("malformed response body: %w", err)),
		}
	}
	doc.Url, _ = url.Parse(rawURL)

	return PageResult{Kind: PageFound, URL: rawURL, Status: status, Doc: doc}
}
