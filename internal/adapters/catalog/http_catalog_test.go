package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `{"stores":[
	{"name":"Jayanagar","latitude":12.9292656,"longitude":77.5816819,"status":"Enabled"},
	{"name":"Whitefield","latitude":12.9698,"longitude":77.7500,"status":"Disabled"}
]}`

func newTestHTTPCatalog(t *testing.T, url string, refresh time.Duration) *HTTPCatalog {
	t.Helper()
	c, err := NewHTTPCatalog(url, refresh, nil)
	require.NoError(t, err)
	c.backoff = time.Millisecond
	return c
}

func TestHTTPCatalogRetriesTransientFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			http.Error(w, "warming up", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(catalogJSON))
	}))
	defer srv.Close()

	c := newTestHTTPCatalog(t, srv.URL, time.Minute)

	stores, err := c.ListStores(context.Background())
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "Jayanagar", stores[0].Name)
	assert.True(t, stores[0].Enabled)
	assert.False(t, stores[1].Enabled)
	assert.Equal(t, int32(3), hits.Load())
}

func TestHTTPCatalogDoesNotRetryClientErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestHTTPCatalog(t, srv.URL, time.Minute)

	_, err := c.ListStores(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Code 404")
	assert.Equal(t, int32(1), hits.Load())
}

func TestHTTPCatalogCachesAndServesStale(t *testing.T) {
	var hits atomic.Int32
	var failing atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if failing.Load() {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(catalogJSON))
	}))
	defer srv.Close()

	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	c := newTestHTTPCatalog(t, srv.URL, time.Minute)
	c.now = func() time.Time { return now }

	_, err := c.ListStores(context.Background())
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	_, err = c.ListStores(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load(), "second call within refresh should be cached")

	failing.Store(true)
	now = now.Add(time.Minute)
	stores, err := c.ListStores(context.Background())
	require.NoError(t, err)
	assert.Len(t, stores, 2)
	require.Eventually(t, func() bool { return hits.Load() == 2 }, time.Second, 5*time.Millisecond)

	stores, err = c.ListStores(context.Background())
	require.NoError(t, err)
	assert.Len(t, stores, 2, "failed refresh keeps the stale catalog")
}

func TestHTTPCatalogServesStaleWhileRefreshing(t *testing.T) {
	var hits atomic.Int32
	var blocking atomic.Bool
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if blocking.Load() {
			<-release
		}
		_, _ = w.Write([]byte(catalogJSON))
	}))
	defer srv.Close()
	defer close(release)

	var clock atomic.Int64
	clock.Store(time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC).UnixNano())
	c := newTestHTTPCatalog(t, srv.URL, time.Minute)
	c.now = func() time.Time { return time.Unix(0, clock.Load()) }

	_, err := c.ListStores(context.Background())
	require.NoError(t, err)

	blocking.Store(true)
	clock.Add(int64(2 * time.Minute))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			start := time.Now()
			stores, err := c.ListStores(ctx)
			assert.NoError(t, err)
			assert.Len(t, stores, 2)
			assert.Less(t, time.Since(start), 100*time.Millisecond)
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool { return hits.Load() == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(2), hits.Load(), "concurrent stale reads share one refresh")
}

func TestHTTPCatalogFirstLoadHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = w.Write([]byte(catalogJSON))
	}))
	defer srv.Close()
	defer close(release)

	c := newTestHTTPCatalog(t, srv.URL, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.ListStores(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestHTTPCatalogRejectsInvalidDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"stores":[{"name":"X","latitude":100,"longitude":0}]}`))
	}))
	defer srv.Close()

	c := newTestHTTPCatalog(t, srv.URL, time.Minute)

	_, err := c.ListStores(context.Background())
	require.Error(t, err)
}

func TestNewHTTPCatalogRequiresURL(t *testing.T) {
	_, err := NewHTTPCatalog("  ", time.Minute, nil)
	require.Error(t, err)
}
