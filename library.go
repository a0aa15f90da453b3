package vfx

import (
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrEffectNotFound is returned when a library has no effect of a given name.
var ErrEffectNotFound = errors.New("vfx: effect not found")

// Library is a named collection of effects. It is safe for concurrent use.
// Effects returned by Get share their slices with the library and must be
// treated as read-only.
type Library struct {
	mu      sync.RWMutex
	effects map[string]Effect
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{effects: make(map[string]Effect)}
}

// DefaultLibrary creates a library holding the built-in presets.
func DefaultLibrary() *Library {
	l := NewLibrary()
	for _, e := range Presets() {
		l.effects[e.Name] = e
	}
	return l
}

// Register validates e and stores it under e.Name, replacing any effect of
// the same name.
func (l *Library) Register(e Effect) error {
	if e.Name == "" {
		return fmt.Errorf("%w: effect has no name", ErrInvalidEffect)
	}
	if err := e.Validate(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.effects[e.Name]; ok {
		log.Printf("vfx: library: replacing effect %q", e.Name)
	}
	l.effects[e.Name] = e
	return nil
}

// Get returns the named effect.
func (l *Library) Get(name string) (Effect, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.effects[name]
	return e, ok
}

// Lookup is Get with an ErrEffectNotFound error.
func (l *Library) Lookup(name string) (Effect, error) {
	e, ok := l.Get(name)
	if !ok {
		return Effect{}, fmt.Errorf("%w: %q", ErrEffectNotFound, name)
	}
	return e, nil
}

// Names returns the effect names in sorted order.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Sorted(maps.Keys(l.effects))
}

// Len returns the number of effects.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.effects)
}

// Remove deletes the named effect and reports whether it existed.
func (l *Library) Remove(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.effects[name]
	delete(l.effects, name)
	return ok
}

type libraryDoc struct {
	Effects []Effect `yaml:"effects"`
}

// Encode writes every effect, sorted by name, as one YAML document.
func (l *Library) Encode(w io.Writer) error {
	l.mu.RLock()
	doc := libraryDoc{Effects: make([]Effect, 0, len(l.effects))}
	for _, name := range slices.Sorted(maps.Keys(l.effects)) {
		doc.Effects = append(doc.Effects, l.effects[name])
	}
	l.mu.RUnlock()

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("vfx: encode library: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("vfx: encode library: %w", err)
	}
	return nil
}

// Decode reads a document written by Encode and registers its effects. The
// library is unchanged unless every effect decodes and validates.
func (l *Library) Decode(r io.Reader) error {
	var doc libraryDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("vfx: decode library: %w", err)
	}
	for i := range doc.Effects {
		e := &doc.Effects[i]
		if e.Name == "" {
			return fmt.Errorf("%w: library effect %d has no name", ErrInvalidEffect, i)
		}
		if err := e.Validate(); err != nil {
			return err
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range doc.Effects {
		if _, ok := l.effects[e.Name]; ok {
			log.Printf("vfx: library: replacing effect %q", e.Name)
		}
		l.effects[e.Name] = e
	}
	return nil
}
