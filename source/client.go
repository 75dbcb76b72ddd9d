// Package source fetches remote time series documents over HTTP.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultURL is the BLS CPI "All Items" time.series data file.
const DefaultURL = "https://download.bls.gov/pub/time.series/cu/cu.data.1.AllItems"

// DefaultUserAgent identifies the client. download.bls.gov rejects requests
// without a User-Agent it recognizes, so callers usually override it with one
// carrying a contact address.
const DefaultUserAgent = "cpiplot/1.0"

// ErrBadStatus matches a *StatusError.
var ErrBadStatus = errors.New("unexpected HTTP status")

// StatusError reports a non-2xx response.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

func (e *StatusError) Is(target error) bool { return target == ErrBadStatus }

// Options configures a Client. The zero value performs a single attempt with
// no timeout.
type Options struct {
	UserAgent string
	Timeout   time.Duration // 0 disables the timeout
	Retries   int           // additional attempts after the first
	RetryWait time.Duration
}

// Client fetches documents with a resty client.
type Client struct {
	http *resty.Client
}

// NewClient creates a Client.
func NewClient(opts Options) *Client {
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	c := resty.New().
		SetHeader("User-Agent", ua).
		SetHeader("Accept", "text/plain, */*").
		SetRetryCount(opts.Retries)
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	if opts.Retries > 0 {
		wait := opts.RetryWait
		if wait <= 0 {
			wait = 2 * time.Second
		}
		c.SetRetryWaitTime(wait).
			SetRetryMaxWaitTime(4 * wait).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				return err != nil || r.StatusCode() >= 500
			})
	}

	return &Client{http: c}
}

// Fetch performs one GET and returns the response body.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, &StatusError{URL: url, Code: resp.StatusCode(), Status: resp.Status()}
	}
	return resp.Body(), nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.GetClient().CloseIdleConnections()
}
