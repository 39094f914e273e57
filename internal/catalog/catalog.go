// Package catalog is the process-wide table mapping qualified algorithm
// names to their constructors. Implementation packages register themselves in
// init(), so importing a package is what makes its algorithms resolvable;
// everything else (pooling, configuration) stays inside the alg package.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/nuphys/nusim/internal/alg"
)

var (
	// ErrDuplicateName indicates two registrations under the same name.
	ErrDuplicateName = errors.New("catalog: duplicate algorithm name")

	mu    sync.RWMutex
	table = make(map[string]alg.Constructor)
)

// Register adds a constructor under the given qualified name.
func Register(name string, ctor alg.Constructor) error {
	if name == "" {
		return errors.New("catalog: empty algorithm name")
	}
	if ctor == nil {
		return errors.New("catalog: nil constructor")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := table[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	table[name] = ctor
	return nil
}

// MustRegister is like Register but panics on error. Implementation packages
// call it from init().
func MustRegister(name string, ctor alg.Constructor) {
	if err := Register(name, ctor); err != nil {
		panic(err)
	}
}

// Resolve returns the constructor registered under name. Satisfies
// alg.ResolverFunc.
func Resolve(name string) (alg.Constructor, bool) {
	mu.RLock()
	defer mu.RUnlock()

	ctor, ok := table[name]
	return ctor, ok
}

// Names returns every registered algorithm name, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
