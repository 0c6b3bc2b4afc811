package dogceo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/timmy/dogo/internal/domain"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/breeds/image/random", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"https://images.example/one.jpg","status":"success"}`))
	})
	mux.HandleFunc("/api/breeds/image/random/3", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":["https://images.example/a.jpg","https://images.example/b.jpg","https://images.example/c.jpg"],"status":"success"}`))
	})
	mux.HandleFunc("/img.jpg", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("jpeg-bytes"))
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAdapterFetchRandom(t *testing.T) {
	srv := newTestServer(t)
	a := NewAdapter(&Config{BaseURL: srv.URL + "/api/breeds/image/random/", Timeout: time.Second})

	ref, err := a.FetchRandom(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.ImageReference("https://images.example/one.jpg"), ref)
}

func TestAdapterFetchRandomMany(t *testing.T) {
	srv := newTestServer(t)
	a := NewAdapter(&Config{BaseURL: srv.URL + "/api/breeds/image/random"})

	refs, err := a.FetchRandomMany(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, []domain.ImageReference{
		"https://images.example/a.jpg",
		"https://images.example/b.jpg",
		"https://images.example/c.jpg",
	}, refs)
}

func TestAdapterFetchBytes(t *testing.T) {
	srv := newTestServer(t)
	a := NewAdapter(nil)

	loc, err := url.Parse(srv.URL + "/img.jpg")
	require.NoError(t, err)
	data, err := a.FetchBytes(context.Background(), loc)
	require.NoError(t, err)
	require.Equal(t, "jpeg-bytes", string(data))
}

func TestAdapterTransportErrors(t *testing.T) {
	srv := newTestServer(t)
	a := NewAdapter(&Config{BaseURL: srv.URL + "/broken"})

	_, err := a.FetchRandom(context.Background())
	require.ErrorIs(t, err, domain.ErrTransport)

	_, err = a.FetchRandomMany(context.Background(), 2)
	require.ErrorIs(t, err, domain.ErrTransport)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loc, _ := url.Parse(srv.URL + "/img.jpg")
	_, err = a.FetchBytes(ctx, loc)
	require.ErrorIs(t, err, domain.ErrTransport)
}

func TestAdapterRejectsNonHTTPLocation(t *testing.T) {
	a := NewAdapter(nil)
	loc, _ := url.Parse("file:///tmp/dog.jpg")
	_, err := a.FetchBytes(context.Background(), loc)
	require.ErrorIs(t, err, domain.ErrInvalidReference)
}
