package networker

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
	"uri-title/internal/domain/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// routeTo sends every connection to srv regardless of the requested host, so
// tests can use public-looking hostnames against a loopback server.
func routeTo(srv *httptest.Server) DialContextFunc {
	addr := srv.Listener.Addr().String()
	var d net.Dialer
	return func(ctx context.Context, network, _ string) (net.Conn, error) {
		return d.DialContext(ctx, network, addr)
	}
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestFetchReturnsBodyAndStatus(t *testing.T) {
	var gotUA, gotHost string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		gotHost = r.Host
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><title>Hi</title></html>"))
	}))
	defer srv.Close()

	cfg := config.Default()
	nw := NewNetworker(zap.NewNop().Sugar(), cfg, WithDialContext(routeTo(srv)))

	res, err := nw.Fetch(context.Background(), mustURL(t, "http://pages.test/a"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "<html><title>Hi</title></html>", string(res.Body))
	assert.Equal(t, "text/html; charset=utf-8", res.ContentType)
	assert.Equal(t, cfg.UserAgent, gotUA)
	assert.Equal(t, "pages.test", gotHost)
}

func TestFetchDoesNotFailOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<title>Not Found</title>"))
	}))
	defer srv.Close()

	nw := NewNetworker(zap.NewNop().Sugar(), config.Default(), WithDialContext(routeTo(srv)))

	res, err := nw.Fetch(context.Background(), mustURL(t, "http://pages.test/missing"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Contains(t, string(res.Body), "Not Found")
}

func TestFetchDecodesDeclaredCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte("<title>Caf\xe9</title>"))
	}))
	defer srv.Close()

	nw := NewNetworker(zap.NewNop().Sugar(), config.Default(), WithDialContext(routeTo(srv)))

	res, err := nw.Fetch(context.Background(), mustURL(t, "http://pages.test/"))
	require.NoError(t, err)

	assert.Equal(t, "<title>Café</title>", string(res.Body))
}

func TestFetchDecodesMetaCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<meta charset="windows-1252"><title>na\xefve</title>`))
	}))
	defer srv.Close()

	nw := NewNetworker(zap.NewNop().Sugar(), config.Default(), WithDialContext(routeTo(srv)))

	res, err := nw.Fetch(context.Background(), mustURL(t, "http://pages.test/"))
	require.NoError(t, err)

	assert.Contains(t, string(res.Body), "naïve")
}

func TestFetchTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.RequestTimeout = 150 * time.Millisecond
	nw := NewNetworker(zap.NewNop().Sugar(), cfg, WithDialContext(routeTo(srv)))

	start := time.Now()
	_, err := nw.Fetch(context.Background(), mustURL(t, "http://slow.test/"))
	require.Error(t, err)

	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestFetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	dial := routeTo(srv)
	srv.Close()

	nw := NewNetworker(zap.NewNop().Sugar(), config.Default(), WithDialContext(dial))

	_, err := nw.Fetch(context.Background(), mustURL(t, "http://gone.test/"))
	assert.Error(t, err)
}

func TestClientUsesConfiguredTimeout(t *testing.T) {
	nw := NewNetworker(zap.NewNop().Sugar(), config.Default())

	assert.Equal(t, 3*time.Second, nw.Client.Timeout)
}
