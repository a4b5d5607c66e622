package catalog

import (
	"context"
	"delivery-rate-service/internal/domain"
	"delivery-rate-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// HTTPCatalog implements StoreCatalog by fetching a JSON catalog document
// from a remote URL.
//
// The last good catalog is reused until the refresh interval elapses. Once it
// is stale, callers get the stale copy immediately while a single background
// refresh runs; a failed refresh is logged and the stale copy stays. Only the
// first load blocks, and it honours the caller's ctx. The catalog is safe for
// concurrent use.
type HTTPCatalog struct {
	session *http.Client
	url     string
	refresh time.Duration
	log     *zap.Logger

	maxAttempts  int
	backoff      time.Duration
	fetchTimeout time.Duration
	now          func() time.Time

	group singleflight.Group

	mu        sync.Mutex
	stores    []domain.StoreLocation
	fetchedAt time.Time
}

func NewHTTPCatalog(url string, refresh time.Duration, log *zap.Logger) (*HTTPCatalog, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("http catalog: url is empty")
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &HTTPCatalog{
		session:      &http.Client{Timeout: 10 * time.Second},
		url:          url,
		refresh:      refresh,
		log:          log,
		maxAttempts:  4,
		backoff:      200 * time.Millisecond,
		fetchTimeout: 45 * time.Second,
		now:          time.Now,
	}, nil
}

func (c *HTTPCatalog) ListStores(ctx context.Context) (_ []domain.StoreLocation, err error) {
	defer obs.Time(ctx, c.log, "catalog.http.ListStores")(&err)

	c.mu.Lock()
	stores, fetchedAt := c.stores, c.fetchedAt
	c.mu.Unlock()

	if stores != nil && c.now().Sub(fetchedAt) < c.refresh {
		return append([]domain.StoreLocation(nil), stores...), nil
	}

	ch := c.group.DoChan("catalog", func() (any, error) {
		return c.reload(ctx, stores != nil)
	})

	if stores != nil {
		return append([]domain.StoreLocation(nil), stores...), nil
	}

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("http catalog: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("http catalog: %w", res.Err)
		}
		fresh := res.Val.([]domain.StoreLocation)
		return append([]domain.StoreLocation(nil), fresh...), nil
	}
}

// reload fetches the catalog detached from the caller's cancellation, since
// other callers share the result, and swaps in the new snapshot on success.
func (c *HTTPCatalog) reload(ctx context.Context, haveStale bool) ([]domain.StoreLocation, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
	defer cancel()

	stores, err := c.fetch(ctx)
	if err != nil {
		if haveStale {
			c.mu.Lock()
			fetchedAt := c.fetchedAt
			c.mu.Unlock()
			c.log.Warn("store catalog refresh failed, serving stale catalog",
				zap.String("url", c.url),
				zap.Time("fetched_at", fetchedAt),
				zap.Error(err),
			)
		}
		return nil, err
	}

	c.mu.Lock()
	c.stores = stores
	c.fetchedAt = c.now()
	c.mu.Unlock()

	return stores, nil
}

func (c *HTTPCatalog) fetch(ctx context.Context) ([]domain.StoreLocation, error) {
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", c.url, err)
	}
	defer resp.Body.Close()

	var doc catalogDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	stores, err := doc.toStores()
	if err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	return stores, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (c *HTTPCatalog) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429 and 5xx)
// with exponential backoff while respecting context cancellation.
func (c *HTTPCatalog) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	backoff := c.backoff

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == c.maxAttempts {
			return nil, lastErr
		}

		c.log.Debug("retrying store catalog request",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
