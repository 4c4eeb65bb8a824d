package updater

import (
	"net/http"
	"time"

	"github.com/spf13/afero"
)

// Release is the subset of a GitHub release the notifier reads.
type Release struct {
	Version   string    `json:"tag_name"`
	Published time.Time `json:"published_at"`
	HTMLURL   string    `json:"html_url"`
}

// Notifier tells the user about newer boil releases. Checks are cached in
// the data directory for a day and refreshed in the background.
type Notifier struct {
	currentVersion string
	httpClient     *http.Client
	apiBase        string
	fs             afero.Fs
	dir            string
	maxAge         time.Duration
	now            func() time.Time
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(n *Notifier) {
		n.httpClient = c
	}
}

// WithAPIBase points release lookups at another GitHub API endpoint.
func WithAPIBase(base string) Option {
	return func(n *Notifier) {
		n.apiBase = base
	}
}

// WithMaxAge overrides how long a cached check stays fresh.
func WithMaxAge(d time.Duration) Option {
	return func(n *Notifier) {
		n.maxAge = d
	}
}

// New creates a Notifier for currentVersion caching into dir on fsys.
func New(currentVersion string, fsys afero.Fs, dir string, opts ...Option) *Notifier {
	n := &Notifier{
		currentVersion: currentVersion,
		httpClient:     &http.Client{Timeout: 5 * time.Second},
		apiBase:        githubAPIBase,
		fs:             fsys,
		dir:            dir,
		maxAge:         DefaultCacheMaxAge,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// CurrentVersion returns the version this notifier was created with.
func (n *Notifier) CurrentVersion() string {
	return n.currentVersion
}
