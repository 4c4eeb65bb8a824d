package userdata

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrPresetNotFound is returned when loading an unknown preset name.
var ErrPresetNotFound = errors.New("preset not found")

const presetsKey = "presets"

// Preset is a named bundle of generation choices.
type Preset struct {
	Framework string `yaml:"framework"`
	WithJS    bool   `yaml:"withJs"`
	WithGit   bool   `yaml:"withGit"`
	Theme     string `yaml:"theme,omitempty"`
	Icons     string `yaml:"icons,omitempty"`
}

// Presets stores Preset values keyed by name.
type Presets struct {
	store *Store
}

// NewPresets wraps a store opened on PresetsNamespace.
func NewPresets(s *Store) *Presets {
	return &Presets{store: s}
}

// All returns every preset by name.
func (p *Presets) All() (map[string]Preset, error) {
	all := map[string]Preset{}
	if _, err := p.store.Decode(presetsKey, &all); err != nil {
		return nil, err
	}
	return all, nil
}

// Save stores preset under name, replacing any preset of the same name.
func (p *Presets) Save(name string, preset Preset) error {
	return p.store.Update(func(doc map[string]any) error {
		all, err := presetsOf(doc)
		if err != nil {
			return err
		}
		all[name] = preset
		doc[presetsKey] = all
		return nil
	})
}

// Load returns the preset saved under name.
func (p *Presets) Load(name string) (Preset, error) {
	all, err := p.All()
	if err != nil {
		return Preset{}, err
	}
	preset, ok := all[name]
	if !ok {
		return Preset{}, fmt.Errorf("%q: %w", name, ErrPresetNotFound)
	}
	return preset, nil
}

// Delete removes the preset under name and reports whether it existed.
func (p *Presets) Delete(name string) (bool, error) {
	var removed bool
	err := p.store.Update(func(doc map[string]any) error {
		all, err := presetsOf(doc)
		if err != nil {
			return err
		}
		if _, removed = all[name]; removed {
			delete(all, name)
		}
		doc[presetsKey] = all
		return nil
	})
	return removed, err
}

// List returns the preset names in sorted order.
func (p *Presets) List() ([]string, error) {
	all, err := p.All()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether a preset named name is saved.
func (p *Presets) Exists(name string) bool {
	names, err := p.List()
	return err == nil && slices.Contains(names, name)
}

func presetsOf(doc map[string]any) (map[string]Preset, error) {
	all := map[string]Preset{}
	if v, ok := doc[presetsKey]; ok {
		if err := remarshal(v, &all); err != nil {
			return nil, err
		}
	}
	return all, nil
}
