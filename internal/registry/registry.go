// Package registry holds the selectable character profiles.
// The roster comes from config; the registry only adds ordered, bounds-checked
// lookup so a stale persisted index never reaches the game.
package registry

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/vovakirdan/skyhop/internal/config"
)

// ErrIndexOutOfRange is wrapped by Get for indices outside the roster.
var ErrIndexOutOfRange = errors.New("registry: character index out of range")

// CharacterInfo contains display metadata about a registered character.
type CharacterInfo struct {
	Index int
	Name  string
	Glyph rune
	Color string
}

// Registry is an ordered roster of character profiles.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	profiles []config.CharacterProfile
}

// New creates a registry over a copy of profiles.
func New(profiles []config.CharacterProfile) *Registry {
	r := &Registry{}
	r.Replace(profiles)
	return r
}

// Replace swaps the roster, e.g. after a config reload.
func (r *Registry) Replace(profiles []config.CharacterProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles = append([]config.CharacterProfile(nil), profiles...)
}

// Len returns the number of characters.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.profiles)
}

// Get returns the profile at index.
func (r *Registry) Get(index int) (config.CharacterProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.profiles) {
		return config.CharacterProfile{}, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(r.profiles))
	}
	return r.profiles[index], nil
}

// Exists checks if index names a character.
func (r *Registry) Exists(index int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return index >= 0 && index < len(r.profiles)
}

// Lookup finds a character by case-insensitive name.
func (r *Registry) Lookup(name string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i, p := range r.profiles {
		if strings.EqualFold(p.Name, name) {
			return i, true
		}
	}
	return -1, false
}

// Next returns the index after index, wrapping around.
func (r *Registry) Next(index int) int {
	n := r.Len()
	if n == 0 {
		return 0
	}
	return ((index+1)%n + n) % n
}

// List returns information about all characters in roster order.
func (r *Registry) List() []CharacterInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]CharacterInfo, 0, len(r.profiles))
	for i, p := range r.profiles {
		result = append(result, CharacterInfo{
			Index: i,
			Name:  p.Name,
			Glyph: p.GlyphRune(),
			Color: p.Color,
		})
	}
	return result
}
