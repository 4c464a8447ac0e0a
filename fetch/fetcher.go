// Package fetch issues the paginated category search requests and
// decodes their JSON envelopes.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/kyucel/fiyat-avcisi/config"
)

const searchPath = "/rest/search/screens/"

// Fetcher wraps the colly collector used against the search endpoint.
// Calls are serialized: one page request is in flight at a time.
type Fetcher struct {
	cfg       *config.Config
	collector *colly.Collector

	handlersOnce sync.Once

	mu     sync.Mutex
	status int
	body   []byte
	reqErr error
}

// New builds a fetcher configured from cfg.
func New(cfg *config.Config) (*Fetcher, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base url must include a host")
	}

	collector := colly.NewCollector(
		colly.AllowedDomains(parsed.Host),
		colly.UserAgent(cfg.UserAgent),
	)
	collector.AllowURLRevisit = true
	collector.IgnoreRobotsTxt = true
	collector.SetRequestTimeout(cfg.Timeout)
	collector.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	})

	return &Fetcher{
		cfg:       cfg,
		collector: collector,
	}, nil
}

// WithTransport swaps the underlying HTTP transport. Tests use this to
// plug in a mock transport.
func (f *Fetcher) WithTransport(rt http.RoundTripper) {
	f.collector.WithTransport(rt)
}

// FetchPage requests one page of one category and decodes the
// envelope. It waits the configured politeness delay first. Any
// transport, status, or decode failure comes back as a typed error;
// the caller decides whether that ends the category.
func (f *Fetcher) FetchPage(ctx context.Context, slug string, page int) (*Envelope, error) {
	if page < 1 {
		return nil, fmt.Errorf("page must be >= 1, got %d", page)
	}
	if err := f.politeWait(ctx); err != nil {
		return nil, err
	}

	f.configureHandlers()

	f.mu.Lock()
	defer f.mu.Unlock()

	f.status = 0
	f.body = nil
	f.reqErr = nil

	pageURL := fmt.Sprintf("%s%s%s?page=%d", strings.TrimSuffix(f.cfg.BaseURL, "/"), searchPath, slug, page)
	visitErr := f.collector.Visit(pageURL)
	f.collector.Wait()

	if f.reqErr == nil {
		f.reqErr = visitErr
	}
	if f.reqErr != nil || f.status >= 400 {
		return nil, Classify(f.reqErr, f.status)
	}

	var env Envelope
	if err := json.Unmarshal(f.body, &env); err != nil {
		return nil, ErrDecode{Err: err}
	}
	return &env, nil
}

func (f *Fetcher) configureHandlers() {
	f.handlersOnce.Do(func() {
		f.collector.OnRequest(func(r *colly.Request) {
			r.Headers.Set("X-PWA", "true")
			r.Headers.Set("Accept", "application/json")
		})

		f.collector.OnResponse(func(r *colly.Response) {
			f.status = r.StatusCode
			f.body = r.Body
		})

		f.collector.OnError(func(r *colly.Response, err error) {
			if r != nil {
				f.status = r.StatusCode
			}
			f.reqErr = err
		})
	})
}

func (f *Fetcher) politeWait(ctx context.Context) error {
	if f.cfg.RequestDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(f.cfg.RequestDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
