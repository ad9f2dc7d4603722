// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil wraps the HTTP client shared by the scrapers. Requests are
// paced by a rate limiter and every non-200 response becomes a *StatusError.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/pdiddy/ffbrank/pkg/types"
)

const (
	DefaultTimeout      = 60 * time.Second
	DefaultRequestDelay = 1 * time.Second
	DefaultUserAgent    = "ffbrank/0.1"
)

// StatusError reports a response other than 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to connect to %s: HTTP %s", e.URL, e.Status)
}

// Client fetches pages and JSON documents from FantasyPros.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
}

// NewClient builds a Client from cfg. Zero values fall back to the defaults
// except RequestDelay, where a negative value disables pacing.
func NewClient(cfg types.HTTPConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", userAgent)
	if cfg.APIKey != "" {
		client.SetHeader("x-api-key", cfg.APIKey)
	}

	return &Client{
		http:    client,
		limiter: newLimiter(cfg.RequestDelay),
	}
}

func newLimiter(delay time.Duration) *rate.Limiter {
	if delay < 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	if delay == 0 {
		delay = DefaultRequestDelay
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// Get issues a GET request for rawURL with params and returns the body.
// It waits for the rate limiter first; a cancelled context aborts the wait.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", rawURL, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, &StatusError{
			URL:        resp.Request.URL,
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
		}
	}
	return resp.Body(), nil
}

// GetDocument fetches rawURL and parses the body as HTML.
func (c *Client) GetDocument(ctx context.Context, rawURL string, params url.Values) (*goquery.Document, error) {
	body, err := c.Get(ctx, rawURL, params)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML from %s: %w", rawURL, err)
	}
	return doc, nil
}

// GetJSON fetches rawURL and decodes the JSON body into v.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, v any) error {
	body, err := c.Get(ctx, rawURL, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parsing JSON from %s: %w", rawURL, err)
	}
	return nil
}
