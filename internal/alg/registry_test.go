package alg

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuphys/nusim/internal/params"
)

// stubAlg is a minimal algorithm reading a single "scale" parameter.
type stubAlg struct {
	Base
	scale      float64
	configured int
}

func (s *stubAlg) Configure(set *params.Set) error {
	scale, err := set.Float("scale")
	if err != nil {
		return err
	}
	if scale < 0 {
		return fmt.Errorf("scale must be non-negative, got %v", scale)
	}
	s.scale = scale
	s.configured++
	return nil
}

// testResolver registers stubAlg under "phys::X" and counts constructions.
func testResolver(built *atomic.Int32) ResolverFunc {
	return func(name string) (Constructor, bool) {
		if name != "phys::X" && name != "phys::Y" {
			return nil, false
		}
		return func() Algorithm {
			if built != nil {
				built.Add(1)
			}
			return &stubAlg{}
		}, true
	}
}

func newTestRegistry(built *atomic.Int32) (*Registry, *params.Store) {
	store := params.NewStore()
	store.Put("Default", map[string]any{"scale": 2.0})
	return NewRegistry(NewFactory(testResolver(built), store)), store
}

func TestGetPooledReferenceStability(t *testing.T) {
	reg, _ := newTestRegistry(nil)
	defer reg.Close()

	id := NewID("phys::X", "Default")

	first, err := reg.GetPooled(id)
	require.NoError(t, err)
	second, err := reg.GetPooled(id)
	require.NoError(t, err)

	assert.Same(t, first, second, "equal IDs must return the identical instance")
	assert.Equal(t, 2.0, first.(*stubAlg).scale)
	assert.Equal(t, 1, first.(*stubAlg).configured, "pooled hit must not reconfigure")
}

func TestGetPooledDistinctLabels(t *testing.T) {
	reg, store := newTestRegistry(nil)
	defer reg.Close()

	store.Put("Alt", map[string]any{"scale": 5.0})

	a, err := reg.GetPooled(NewID("phys::X", "Default"))
	require.NoError(t, err)
	b, err := reg.GetPooled(NewID("phys::X", "Alt"))
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Equal(t, 5.0, b.(*stubAlg).scale)
	assert.Equal(t, 2, reg.Len())
}

func TestGetPooledUnknownName(t *testing.T) {
	reg, _ := newTestRegistry(nil)
	defer reg.Close()

	_, err := reg.GetPooled(NewID("phys::Nope", "Default"))
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	assert.Equal(t, 0, reg.Len(), "failed build must not stay pooled")
}

func TestGetPooledMissingLabel(t *testing.T) {
	reg, _ := newTestRegistry(nil)
	defer reg.Close()

	_, err := reg.GetPooled(NewID("phys::X", "NoSuchLabel"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestGetPooledBadConfigRevertsToAbsent(t *testing.T) {
	reg, store := newTestRegistry(nil)
	defer reg.Close()

	store.Put("Bad", map[string]any{"scale": -1.0})
	id := NewID("phys::X", "Bad")

	_, err := reg.GetPooled(id)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, id, cfgErr.ID)
	assert.Equal(t, 0, reg.Len())

	// fixing the store lets the next lookup succeed
	store.SetValue("Bad", "scale", 1.0)
	a, err := reg.GetPooled(id)
	require.NoError(t, err)
	assert.Equal(t, 1.0, a.(*stubAlg).scale)
}

func TestConcurrentGetPooledSingleFlight(t *testing.T) {
	var built atomic.Int32
	reg, _ := newTestRegistry(&built)
	defer reg.Close()

	id := NewID("phys::X", "Default")
	const callers = 32

	var wg sync.WaitGroup
	results := make([]Algorithm, callers)
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			<-start
			a, err := reg.GetPooled(id)
			if err != nil {
				t.Error(err)
				return
			}
			results[idx] = a
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), built.Load(), "exactly one construction")
	for i := 1; i < callers; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestAdoptNeverTouchesPool(t *testing.T) {
	var built atomic.Int32
	reg, _ := newTestRegistry(&built)
	defer reg.Close()

	id := NewID("phys::X", "Default")

	adopted, err := reg.Adopt(id)
	require.NoError(t, err)
	assert.Equal(t, 0, reg.Len())

	pooled, err := reg.GetPooled(id)
	require.NoError(t, err)
	assert.NotSame(t, adopted, pooled, "adoption must not seed the pool")
	assert.Equal(t, int32(2), built.Load())

	again, err := reg.Adopt(id)
	require.NoError(t, err)
	assert.NotSame(t, adopted, again, "every adoption is a fresh build")
}

func TestForceReconfigurePropagatesStoreEdits(t *testing.T) {
	reg, store := newTestRegistry(nil)
	defer reg.Close()

	id := NewID("phys::X", "Default")
	pooled, err := reg.GetPooled(id)
	require.NoError(t, err)
	assert.Equal(t, 2.0, pooled.(*stubAlg).scale)

	adopted, err := reg.Adopt(id)
	require.NoError(t, err)

	store.SetValue("Default", "scale", 3.0)

	// pooled instances do not auto-refresh
	same, _ := reg.GetPooled(id)
	assert.Same(t, pooled, same)
	assert.Equal(t, 2.0, same.(*stubAlg).scale)

	require.NoError(t, reg.ForceReconfigure())

	assert.Equal(t, 3.0, pooled.(*stubAlg).scale, "same reference, new parameters")
	assert.Equal(t, 2.0, adopted.(*stubAlg).scale, "adopted instances are unaffected")
}

func TestForceReconfigureIsolatesFailures(t *testing.T) {
	reg, store := newTestRegistry(nil)
	defer reg.Close()

	store.Put("Other", map[string]any{"scale": 4.0})

	a, err := reg.GetPooled(NewID("phys::X", "Default"))
	require.NoError(t, err)
	b, err := reg.GetPooled(NewID("phys::X", "Other"))
	require.NoError(t, err)

	// break one label, improve the other
	store.SetValue("Default", "scale", -9.0)
	store.SetValue("Other", "scale", 7.0)

	err = reg.ForceReconfigure()
	require.Error(t, err)

	var rerr *ReconfigError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, NewID("phys::X", "Default"), rerr.ID)

	assert.Equal(t, 2.0, a.(*stubAlg).scale, "failing entry keeps previous parameters")
	assert.Equal(t, 7.0, b.(*stubAlg).scale, "other entries still reconfigured")
	assert.Equal(t, 2, reg.Len(), "failing entry stays pooled")
}

func TestForceReconfigureMissingLabel(t *testing.T) {
	reg, store := newTestRegistry(nil)
	defer reg.Close()

	_, err := reg.GetPooled(NewID("phys::X", "Default"))
	require.NoError(t, err)

	empty := params.NewStore()
	store.Replace(empty)

	err = reg.ForceReconfigure()
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestDescribe(t *testing.T) {
	reg, _ := newTestRegistry(nil)
	defer reg.Close()

	assert.Empty(t, reg.Describe())

	_, err := reg.GetPooled(NewID("phys::X", "Default"))
	require.NoError(t, err)

	out := reg.Describe()
	assert.Contains(t, out, "phys::X/Default")
	assert.Contains(t, out, "stubAlg")
}

func TestCloseQuiesces(t *testing.T) {
	reg, _ := newTestRegistry(nil)

	_, err := reg.GetPooled(NewID("phys::X", "Default"))
	require.NoError(t, err)

	reg.Close()
	reg.Close() // idempotent

	_, err = reg.GetPooled(NewID("phys::X", "Default"))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, reg.ForceReconfigure(), ErrClosed)
	assert.Equal(t, 0, reg.Len())
}

// The full scenario from the registry's reason for existing: build pooled,
// edit the store, force reconfiguration, observe the new value through the
// old reference.
func TestStoreEditScenario(t *testing.T) {
	reg, store := newTestRegistry(nil)
	defer reg.Close()

	id, err := ParseID("phys::X/Default")
	require.NoError(t, err)

	a, err := reg.GetPooled(id)
	require.NoError(t, err)
	assert.Equal(t, 2.0, a.(*stubAlg).scale)

	store.SetValue("Default", "scale", 3.0)
	require.NoError(t, reg.ForceReconfigure())

	b, err := reg.GetPooled(id)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 3.0, b.(*stubAlg).scale)
}

func TestConcurrentMixedOperations(t *testing.T) {
	reg, store := newTestRegistry(nil)
	defer reg.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_, _ = reg.GetPooled(NewID("phys::X", "Default"))
		}()
		go func() {
			defer wg.Done()
			_, _ = reg.Adopt(NewID("phys::Y", "Default"))
		}()
		go func() {
			defer wg.Done()
			store.SetValue("Default", "scale", 2.0)
			_ = reg.ForceReconfigure()
		}()
	}
	wg.Wait()

	a, err := reg.GetPooled(NewID("phys::X", "Default"))
	require.NoError(t, err)
	assert.Equal(t, 2.0, a.(*stubAlg).scale)
}

func TestReconfigErrorUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := &ReconfigError{ID: NewID("phys::X", "Default"), Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "phys::X/Default")
}
