package preview

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func site() fstest.MapFS {
	return fstest.MapFS{
		"index.html":          {Data: []byte("<h1>home</h1>")},
		"assets/css/main.css": {Data: []byte("body{}")},
		"docs/index.html":     {Data: []byte("<h1>docs</h1>")},
	}
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler(t *testing.T) {
	h := Handler(site())

	tests := []struct {
		name        string
		target      string
		status      int
		body        string
		contentType string
	}{
		{"root serves index", "/", http.StatusOK, "<h1>home</h1>", "text/html"},
		{"index by name is not redirected", "/index.html", http.StatusOK, "<h1>home</h1>", "text/html"},
		{"asset", "/assets/css/main.css", http.StatusOK, "body{}", "text/css"},
		{"directory index", "/docs/", http.StatusOK, "<h1>docs</h1>", "text/html"},
		{"unknown path falls back", "/pricing/annual", http.StatusOK, "<h1>home</h1>", "text/html"},
		{"traversal stays inside root", "/../../etc/passwd", http.StatusOK, "<h1>home</h1>", "text/html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
			assert.Contains(t, rec.Header().Get("Content-Type"), tt.contentType)
		})
	}
}

func TestHandler_NoIndexIs404(t *testing.T) {
	h := Handler(fstest.MapFS{"a.css": {Data: []byte("x")}})
	assert.Equal(t, http.StatusNotFound, get(t, h, "/missing").Code)
	assert.Equal(t, http.StatusOK, get(t, h, "/a.css").Code)
}

func TestHandler_Head(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler(site()).ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestServe(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("served"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addrCh := make(chan net.Addr, 1)
	errCh := make(chan error, 1)
	srv := &Server{Dir: dir, Port: 0}
	go func() {
		errCh <- srv.Serve(ctx, func(a net.Addr) { addrCh <- a })
	}()

	var addr net.Addr
	select {
	case addr = <-addrCh:
	case err := <-errCh:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	port := addr.(*net.TCPAddr).Port
	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/", port))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "served", string(body))

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServe_MissingDir(t *testing.T) {
	srv := &Server{Dir: filepath.Join(t.TempDir(), "nope"), Port: 0}
	err := srv.Serve(context.Background(), nil)
	assert.Error(t, err)
}

func TestExternalIPv4(t *testing.T) {
	addrs := []net.Addr{
		&net.IPNet{IP: net.ParseIP("127.0.0.1"), Mask: net.CIDRMask(8, 32)},
		&net.IPNet{IP: net.ParseIP("fe80::1"), Mask: net.CIDRMask(64, 128)},
		&net.IPNet{IP: net.ParseIP("192.168.1.20"), Mask: net.CIDRMask(24, 32)},
		&net.IPNet{IP: net.ParseIP("10.0.0.5"), Mask: net.CIDRMask(8, 32)},
	}
	assert.Equal(t, "192.168.1.20", externalIPv4(addrs))
	assert.Empty(t, externalIPv4(addrs[:2]))
	assert.Empty(t, externalIPv4(nil))
}

func TestDiscoverURLs(t *testing.T) {
	urls := DiscoverURLs(4000)
	assert.Equal(t, "http://localhost:4000", urls.Local)
	assert.Regexp(t, `^http://[^/]+:4000$`, urls.Network)
}

func TestWriteQR(t *testing.T) {
	var buf bytes.Buffer
	WriteQR(&buf, "http://192.168.1.20:3000")
	assert.NotEmpty(t, buf.String())
}
