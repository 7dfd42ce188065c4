package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/pttcrawl"
	ptthttp "github.com/fwojciec/pttcrawl/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>看板 Stock</body></html>"))
		}))
		defer server.Close()

		fetcher := ptthttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>看板 Stock</body></html>", html)
	})

	t.Run("sends age check cookie", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie("over18")
			if err != nil || c.Value != "1" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := ptthttp.NewFetcher()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "ok", html)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := ptthttp.NewFetcher(ptthttp.WithTimeout(10 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := ptthttp.NewFetcher()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("returns ENOTFOUND for non-200 status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		fetcher := ptthttp.NewFetcher()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, pttcrawl.ENOTFOUND, pttcrawl.ErrorCode(err))
		assert.Contains(t, err.Error(), "404")
	})
}

// Compile-time verification that Fetcher implements pttcrawl.Fetcher
var _ pttcrawl.Fetcher = (*ptthttp.Fetcher)(nil)
