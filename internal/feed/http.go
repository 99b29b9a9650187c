package feed

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"taskboard/internal/logger"
	"taskboard/internal/task"
)

// CacheBustParam is the query parameter added to every fetch so that proxies
// and Google's publish cache never serve a stale copy.
const CacheBustParam = "t"

// HTTPSource reads a CSV document with a single GET.
type HTTPSource struct {
	url    string
	client *resty.Client
	now    func() time.Time
	log    logger.Logger
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		timeout := s.client.GetClient().Timeout
		s.client = resty.NewWithClient(hc).SetTimeout(timeout)
	}
}

// WithTimeout bounds the whole request.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) { s.client.SetTimeout(d) }
}

// withClock sets the clock used for the cache-busting parameter.
func withClock(now func() time.Time) HTTPOption {
	return func(s *HTTPSource) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) HTTPOption {
	return func(s *HTTPSource) { s.log = log }
}

// NewHTTPSource returns a Source that fetches url.
func NewHTTPSource(url string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		url:    url,
		client: resty.New(),
		now:    time.Now,
		log:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.client.SetHeader("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")
	return s
}

func (s *HTTPSource) String() string {
	return s.url
}

// Rows fetches and parses the document. Transport failures and non-2xx
// responses return a *task.FetchError; unreadable bodies a
// *task.SourceFormatError.
func (s *HTTPSource) Rows(ctx context.Context) ([]task.Row, error) {
	started := time.Now()
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam(CacheBustParam, strconv.FormatInt(s.now().UnixMilli(), 10)).
		Get(s.url)
	if err != nil {
		return nil, &task.FetchError{Source: s.url, Err: err}
	}
	if resp.IsError() {
		return nil, &task.FetchError{Source: s.url, Status: resp.StatusCode()}
	}
	s.log.Debug("fetched feed", "url", s.url, "status", resp.StatusCode(),
		"bytes", len(resp.Body()), "elapsed", time.Since(started))

	return task.ParseCSV(bytes.NewReader(resp.Body()))
}
