package updater

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/releases/latest"), r.URL.Path)
		assert.Equal(t, "boil-update-check", r.Header.Get("User-Agent"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLatestRelease(t *testing.T) {
	srv := releaseServer(t, http.StatusOK, `{"tag_name":"v1.4.0","html_url":"https://example.test/r"}`)
	n := New("1.0.0", afero.NewMemMapFs(), cacheDir, WithAPIBase(srv.URL))

	rel, err := n.LatestRelease(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.4.0", rel.Version)
	assert.Equal(t, "https://example.test/r", rel.HTMLURL)
}

func TestLatestRelease_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"not found", http.StatusNotFound, `{}`, "not found"},
		{"rate limited", http.StatusForbidden, `{}`, "rate limit"},
		{"server error", http.StatusBadGateway, ``, "status 502"},
		{"bad json", http.StatusOK, `{{`, "parsing release"},
		{"no tag", http.StatusOK, `{}`, "no tag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := releaseServer(t, tt.status, tt.body)
			n := New("1.0.0", afero.NewMemMapFs(), cacheDir, WithAPIBase(srv.URL))
			_, err := n.LatestRelease(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCheckAndPrintBanner_FromCache(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, SaveCache(fsys, cacheDir, &VersionCache{
		LatestVersion:   "1.3.0",
		CurrentVersion:  "1.0.0",
		CheckedAt:       time.Now(),
		UpdateAvailable: true,
	}))

	n := New("1.0.0", fsys, cacheDir, WithHTTPClient(&http.Client{Transport: failingTransport{t}}))
	var buf bytes.Buffer
	n.CheckAndPrintBanner(context.Background(), &buf).Wait()

	assert.Contains(t, buf.String(), "Update available")
	assert.Contains(t, buf.String(), "1.3.0")
}

func TestCheckAndPrintBanner_RefreshesStaleCache(t *testing.T) {
	srv := releaseServer(t, http.StatusOK, `{"tag_name":"v2.0.0"}`)
	fsys := afero.NewMemMapFs()
	n := New("1.0.0", fsys, cacheDir, WithAPIBase(srv.URL))

	var buf bytes.Buffer
	n.CheckAndPrintBanner(context.Background(), &buf).Wait()
	assert.Empty(t, buf.String(), "first run only fills the cache")

	cache, err := LoadCache(fsys, cacheDir)
	require.NoError(t, err)
	require.NotNil(t, cache)
	assert.Equal(t, "v2.0.0", cache.LatestVersion)
	assert.True(t, cache.UpdateAvailable)

	buf.Reset()
	n.CheckAndPrintBanner(context.Background(), &buf).Wait()
	assert.Contains(t, buf.String(), "v2.0.0")
}

func TestCheckAndPrintBanner_NetworkFailureIsSilent(t *testing.T) {
	srv := releaseServer(t, http.StatusInternalServerError, ``)
	fsys := afero.NewMemMapFs()
	n := New("1.0.0", fsys, cacheDir, WithAPIBase(srv.URL))

	var buf bytes.Buffer
	n.CheckAndPrintBanner(context.Background(), &buf).Wait()

	assert.Empty(t, buf.String())
	cache, err := LoadCache(fsys, cacheDir)
	require.NoError(t, err)
	assert.Nil(t, cache)
}

// failingTransport fails the test if a request is made.
type failingTransport struct{ t *testing.T }

func (f failingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	f.t.Errorf("unexpected request to %s", r.URL)
	return nil, http.ErrHandlerTimeout
}
