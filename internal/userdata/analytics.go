package userdata

import (
	"time"
)

// Stats are the local usage counters. Nothing ever leaves the machine.
type Stats struct {
	CommandUsage     map[string]int `yaml:"commandUsage"`
	FrameworkUsage   map[string]int `yaml:"frameworkUsage"`
	TotalGenerations int            `yaml:"totalGenerations"`
	LastUsed         int64          `yaml:"lastUsed"` // epoch millis, 0 when never used
}

// Analytics counts command and framework usage. Tracking is skipped while
// enabled reports false.
type Analytics struct {
	store   *Store
	enabled func() bool
	now     func() time.Time
}

// NewAnalytics wraps a store opened on AnalyticsNamespace. A nil enabled
// means always enabled.
func NewAnalytics(s *Store, enabled func() bool) *Analytics {
	if enabled == nil {
		enabled = func() bool { return true }
	}
	return &Analytics{store: s, enabled: enabled, now: time.Now}
}

// Enabled reports whether tracking is on.
func (a *Analytics) Enabled() bool { return a.enabled() }

// TrackCommand counts one invocation of command and stamps the last-used time.
func (a *Analytics) TrackCommand(command string) error {
	if !a.enabled() {
		return nil
	}
	return a.update(func(st *Stats) {
		st.CommandUsage[command]++
		st.LastUsed = a.now().UnixMilli()
	})
}

// TrackGeneration counts one generated artifact, attributed to framework
// when it is non-empty.
func (a *Analytics) TrackGeneration(framework string) error {
	if !a.enabled() {
		return nil
	}
	return a.update(func(st *Stats) {
		st.TotalGenerations++
		if framework != "" {
			st.FrameworkUsage[framework]++
		}
	})
}

// Stats returns the current counters. Maps are never nil.
func (a *Analytics) Stats() (Stats, error) {
	return statsOf(a.store.List())
}

// Clear resets every counter.
func (a *Analytics) Clear() error {
	return a.store.Clear()
}

func (a *Analytics) update(fn func(st *Stats)) error {
	return a.store.Update(func(doc map[string]any) error {
		st, err := statsOf(doc)
		if err != nil {
			return err
		}
		fn(&st)
		doc["commandUsage"] = st.CommandUsage
		doc["frameworkUsage"] = st.FrameworkUsage
		doc["totalGenerations"] = st.TotalGenerations
		doc["lastUsed"] = st.LastUsed
		return nil
	})
}

func statsOf(doc map[string]any) (Stats, error) {
	var st Stats
	if err := remarshal(doc, &st); err != nil {
		return Stats{}, err
	}
	if st.CommandUsage == nil {
		st.CommandUsage = map[string]int{}
	}
	if st.FrameworkUsage == nil {
		st.FrameworkUsage = map[string]int{}
	}
	return st, nil
}
