// Package downloader fetches full-text documents by URL.
package downloader

import (
	"context"
	"fmt"
	"time"

	"github.com/farxc/envelopa-camara/internal/logger"
	"github.com/go-resty/resty/v2"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"

type DownloadResult struct {
	URL         string
	ContentType string
	Body        []byte
}

type Downloader struct {
	http      *resty.Client
	appLogger *logger.Logger
}

func New(timeout time.Duration, appLogger *logger.Logger) *Downloader {
	if appLogger == nil {
		appLogger = logger.Discard()
	}

	// the document server only answers browser-like agents, redirects included
	http := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", browserUserAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))

	return &Downloader{http: http, appLogger: appLogger}
}

// Fetch downloads url into memory. Any non-200 answer is an error.
func (d *Downloader) Fetch(ctx context.Context, url string) (*DownloadResult, error) {
	const component = "Downloader"
	d.appLogger.Debug(component, "Starting download: url=%s", url)

	res, err := d.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		d.appLogger.Error(component, "HTTP request failed: url=%s error=%v", url, err)
		return nil, fmt.Errorf("download %s: %w", url, err)
	}

	if res.StatusCode() != 200 {
		d.appLogger.Warn(component, "Non-OK HTTP response: url=%s status=%s statusCode=%d", url, res.Status(), res.StatusCode())
		return nil, fmt.Errorf("download %s: unexpected status %s", url, res.Status())
	}

	d.appLogger.Info(component, "Download completed: url=%s size=%d bytes", url, len(res.Body()))
	return &DownloadResult{
		URL:         url,
		ContentType: res.Header().Get("Content-Type"),
		Body:        res.Body(),
	}, nil
}
