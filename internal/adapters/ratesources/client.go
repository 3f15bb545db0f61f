// Package ratesources holds the HTTP clients for the external rate providers.
package ratesources

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
	"github.com/go-resty/resty/v2"
)

// ClientOptions configure the shared HTTP client of a source.
type ClientOptions struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
}

func newRestyClient(opts ClientOptions) *resty.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return resty.New().
		SetBaseURL(strings.TrimSuffix(opts.BaseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "valutatrade-hub")
}

// requestError converts a transport failure into an *apperrors.APIRequestError.
func requestError(source string, err error) error {
	reason := "request failed"
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		reason = "timeout"
	case errors.Is(err, context.Canceled):
		reason = "cancelled"
	}
	return &apperrors.APIRequestError{Source: source, Reason: reason, Err: err}
}

func statusError(source string, resp *resty.Response, detail string) error {
	reason := "HTTP " + resp.Status()
	if detail != "" {
		reason += ": " + detail
	}
	return &apperrors.APIRequestError{Source: source, Reason: reason}
}
