package updater

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/boil-labs/boil/internal/branding"
	"github.com/boil-labs/boil/internal/output"
)

// CheckAndPrintBanner prints an update banner to w when the cache already
// knows of a newer release. It never blocks on the network: a stale cache is
// refreshed in a background goroutine for the next invocation. The returned
// WaitGroup lets callers (and tests) wait for that refresh.
func (n *Notifier) CheckAndPrintBanner(ctx context.Context, w io.Writer) *sync.WaitGroup {
	var wg sync.WaitGroup

	cache, err := LoadCache(n.fs, n.dir)
	if err != nil {
		output.Debug("ignoring unreadable update cache", "err", err)
		cache = nil
	}

	if cache != nil && cache.CurrentVersion == n.currentVersion && cache.UpdateAvailable {
		PrintUpdateBanner(w, cache.CurrentVersion, cache.LatestVersion)
	}

	if IsCacheStale(cache, n.currentVersion, n.maxAge, n.now()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n.refreshCache(ctx)
		}()
	}
	return &wg
}

// PrintUpdateBanner prints the update notification to w.
func PrintUpdateBanner(w io.Writer, current, latest string) {
	box := output.UpdateBox(
		fmt.Sprintf("Update available: %s → %s", output.StyleDim.Render(current), output.StyleSummary.Render(latest)),
		fmt.Sprintf("Download it from %s/releases/latest", branding.ProjectURL()),
	)
	fmt.Fprintf(w, "\n%s\n\n", box)
}

// refreshCache fetches the latest version and updates the cache file.
// Failures are only logged at debug level.
func (n *Notifier) refreshCache(ctx context.Context) {
	release, err := n.LatestRelease(ctx)
	if err != nil {
		output.Debug("update check failed", "err", err)
		return
	}

	available, err := IsUpdateAvailable(n.currentVersion, release.Version)
	if err != nil {
		output.Debug("update check skipped", "err", err)
		return
	}

	cache := &VersionCache{
		LatestVersion:   release.Version,
		CurrentVersion:  n.currentVersion,
		CheckedAt:       n.now(),
		UpdateAvailable: available,
	}
	if err := SaveCache(n.fs, n.dir, cache); err != nil {
		output.Debug("saving update cache failed", "err", err)
	}
}
