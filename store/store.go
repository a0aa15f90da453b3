// Package store persists a vfx.Library in the platform's per-user data
// directory through gdata. Each effect is one YAML property; an index
// property lists the stored names.
package store

import (
	"fmt"
	"hash/fnv"
	"log"
	"slices"
	"strings"

	"github.com/phanxgames/vfx"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	effectsObject = "effects"
	indexProp     = "index"
)

// Store reads and writes effects through a gdata.Manager.
type Store struct {
	m *gdata.Manager
}

// Open opens the data directory of appName.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", appName, err)
	}
	return New(m), nil
}

// New wraps an already opened manager.
func New(m *gdata.Manager) *Store {
	return &Store{m: m}
}

// propKey maps an effect name to a property key safe for any filesystem.
// The hash suffix keeps names that slug the same apart.
func propKey(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	return fmt.Sprintf("fx_%s_%08x", b.String(), h.Sum32())
}

// Names returns the stored effect names in sorted order.
func (s *Store) Names() ([]string, error) {
	if !s.m.ObjectPropExists(effectsObject, indexProp) {
		return nil, nil
	}
	data, err := s.m.LoadObjectProp(effectsObject, indexProp)
	if err != nil {
		return nil, fmt.Errorf("store: load index: %w", err)
	}
	var names []string
	if err := yaml.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("store: decode index: %w", err)
	}
	slices.Sort(names)
	return names, nil
}

func (s *Store) saveIndex(names []string) error {
	slices.Sort(names)
	names = slices.Compact(names)
	data, err := yaml.Marshal(names)
	if err != nil {
		return fmt.Errorf("store: encode index: %w", err)
	}
	if err := s.m.SaveObjectProp(effectsObject, indexProp, data); err != nil {
		return fmt.Errorf("store: save index: %w", err)
	}
	return nil
}

// SaveEffect writes e and adds it to the index.
func (s *Store) SaveEffect(e *vfx.Effect) error {
	if err := s.writeEffect(e); err != nil {
		return err
	}
	names, err := s.Names()
	if err != nil {
		return err
	}
	return s.saveIndex(append(names, e.Name))
}

func (s *Store) writeEffect(e *vfx.Effect) error {
	data, err := vfx.MarshalEffect(e)
	if err != nil {
		return err
	}
	if err := s.m.SaveObjectProp(effectsObject, propKey(e.Name), data); err != nil {
		return fmt.Errorf("store: save %q: %w", e.Name, err)
	}
	return nil
}

// LoadEffect reads and validates the named effect.
func (s *Store) LoadEffect(name string) (vfx.Effect, error) {
	key := propKey(name)
	if !s.m.ObjectPropExists(effectsObject, key) {
		return vfx.Effect{}, fmt.Errorf("store: %w: %q", vfx.ErrEffectNotFound, name)
	}
	data, err := s.m.LoadObjectProp(effectsObject, key)
	if err != nil {
		return vfx.Effect{}, fmt.Errorf("store: load %q: %w", name, err)
	}
	e, err := vfx.UnmarshalEffect(data)
	if err != nil {
		return vfx.Effect{}, fmt.Errorf("store: %q: %w", name, err)
	}
	return e, nil
}

// Save writes every effect of lib and merges their names into the index.
func (s *Store) Save(lib *vfx.Library) error {
	names, err := s.Names()
	if err != nil {
		return err
	}
	for _, name := range lib.Names() {
		e, ok := lib.Get(name)
		if !ok {
			continue
		}
		if err := s.writeEffect(&e); err != nil {
			return err
		}
		names = append(names, name)
	}
	return s.saveIndex(names)
}

// Load registers every stored effect into lib and returns how many were
// loaded. Effects that fail to decode are skipped and logged.
func (s *Store) Load(lib *vfx.Library) (int, error) {
	names, err := s.Names()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, name := range names {
		e, err := s.LoadEffect(name)
		if err != nil {
			log.Printf("store: skipping %q: %v", name, err)
			continue
		}
		if err := lib.Register(e); err != nil {
			log.Printf("store: skipping %q: %v", name, err)
			continue
		}
		n++
	}
	return n, nil
}
