package theme

import (
	"maps"
	"slices"
	"sync"
)

var registry = struct {
	mu       sync.RWMutex
	palettes map[string]Palette
	current  string
}{palettes: make(map[string]Palette)}

// Register adds a palette. The first one registered becomes the default.
func Register(name string, p Palette) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.palettes[name] = p
	if registry.current == "" {
		registry.current = name
	}
}

// Set switches to a registered palette and reports whether it exists.
func Set(name string) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, ok := registry.palettes[name]; !ok {
		return false
	}
	registry.current = name
	return true
}

// Current returns the active palette.
func Current() Palette {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.palettes[registry.current]
}

// CurrentName returns the name of the active palette.
func CurrentName() string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.current
}

// Available lists palette names in sorted order.
func Available() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return slices.Sorted(maps.Keys(registry.palettes))
}

// Cycle switches to the next palette in sorted order and returns its name.
func Cycle() string {
	names := Available()
	if len(names) == 0 {
		return ""
	}
	registry.mu.Lock()
	defer registry.mu.Unlock()
	idx := slices.Index(names, registry.current)
	registry.current = names[(idx+1)%len(names)]
	return registry.current
}
