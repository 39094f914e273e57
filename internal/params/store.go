package params

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Store holds every named parameter set known to the process. Algorithm
// instances read from it at configuration time and never write to it; edits
// come from callers (or the file watcher) and take effect on pooled
// algorithms only through Registry.ForceReconfigure.
type Store struct {
	mu   sync.RWMutex
	sets map[string]*Set
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{sets: make(map[string]*Set)}
}

// Load reads a YAML file mapping set labels to key/value parameters.
//
//	Default:
//	  Ma: 1.032
//	  Scale: 1.0
//	Tuned:
//	  Ma: 1.2
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("params: invalid YAML in %s: %w", path, err)
	}
	st := NewStore()
	for label, values := range raw {
		st.sets[label] = NewSet(values)
	}
	return st, nil
}

// Save writes the store back out as YAML, labels sorted.
func Save(path string, st *Store) error {
	st.mu.RLock()
	raw := make(map[string]map[string]any, len(st.sets))
	for label, set := range st.sets {
		raw[label] = set.clone()
	}
	st.mu.RUnlock()

	data, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Set returns the parameter set registered under label.
func (st *Store) Set(label string) (*Set, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	s, ok := st.sets[label]
	return s, ok
}

// Lookup returns the raw value of key within the labeled set.
func (st *Store) Lookup(label, key string) (any, bool) {
	s, ok := st.Set(label)
	if !ok {
		return nil, false
	}
	return s.Get(key)
}

// Exists reports whether the labeled set contains key.
func (st *Store) Exists(label, key string) bool {
	_, ok := st.Lookup(label, key)
	return ok
}

// Labels returns all set labels in sorted order.
func (st *Store) Labels() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()

	labels := make([]string, 0, len(st.sets))
	for label := range st.sets {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Put installs (or replaces) the parameter set under label.
func (st *Store) Put(label string, values map[string]any) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.sets[label] = NewSet(values)
}

// SetValue updates a single key within the labeled set, creating the set if
// absent. The previous Set is left untouched so views handed out earlier stay
// consistent; readers pick up the edit on their next Store lookup.
func (st *Store) SetValue(label, key string, value any) {
	st.mu.Lock()
	defer st.mu.Unlock()

	var values map[string]any
	if prev, ok := st.sets[label]; ok {
		values = prev.clone()
	} else {
		values = make(map[string]any, 1)
	}
	values[key] = value
	st.sets[label] = NewSet(values)
}

// Merge installs every label of other into the store, replacing whole labels
// and keeping the rest. Used to lay a params file over Defaults.
func (st *Store) Merge(other *Store) {
	other.mu.RLock()
	sets := make(map[string]*Set, len(other.sets))
	for label, set := range other.sets {
		sets[label] = set
	}
	other.mu.RUnlock()

	st.mu.Lock()
	for label, set := range sets {
		st.sets[label] = set
	}
	st.mu.Unlock()
}

// Replace swaps in the contents of other. Used by the file watcher so that
// references to the store itself stay valid across reloads.
func (st *Store) Replace(other *Store) {
	other.mu.RLock()
	sets := make(map[string]*Set, len(other.sets))
	for label, set := range other.sets {
		sets[label] = set
	}
	other.mu.RUnlock()

	st.mu.Lock()
	st.sets = sets
	st.mu.Unlock()
}
