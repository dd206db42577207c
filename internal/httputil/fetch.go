// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil fetches input documents over HTTP.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// RetryBaseDelay is the first backoff delay. It doubles on each attempt.
// Tests override this to avoid real sleeps.
var RetryBaseDelay = time.Second

const (
	defaultMaxRetries = 4
	defaultTimeout    = 30 * time.Second

	// maxDocumentSize bounds the body read by Fetch.
	maxDocumentSize = 32 << 20
)

// IsURL reports whether input names an http or https document.
func IsURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// retryable reports whether a response status is worth another attempt.
func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// DoWithRetry executes req and retries on 429 and transient 5xx responses
// with exponential backoff starting at RetryBaseDelay. A Retry-After header
// given in seconds replaces the computed delay. When maxRetries is 0 the
// default is used. After the last attempt the final response is returned
// as-is so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, log *zap.Logger) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if log == nil {
		log = zap.NewNop()
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, errors.Wrapf(err, "requesting %s", req.URL)
		}
		if !retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		// Drain and close the body before retrying.
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		if s, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && s >= 0 {
			backoff = time.Duration(s) * time.Second
		}
		log.Warn("request throttled, retrying",
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode),
			zap.Duration("backoff", backoff),
			zap.Int("attempt", attempt+1),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// Fetch downloads the document at url. A nil client uses one with a 30s
// timeout. Any final status other than 200 is an error.
func Fetch(ctx context.Context, client *http.Client, url string, log *zap.Logger) ([]byte, error) {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "building request for %s", url)
	}
	req.Header.Set("Accept", "text/markdown, text/plain;q=0.9, */*;q=0.1")

	resp, err := DoWithRetry(ctx, client, req, 0, log)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("fetching %s: unexpected status %s", url, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", url)
	}
	if len(data) > maxDocumentSize {
		return nil, errors.Newf("fetching %s: document exceeds %d bytes", url, maxDocumentSize)
	}
	return data, nil
}
