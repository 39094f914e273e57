package params

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetters(t *testing.T) {
	set := NewSet(map[string]any{
		"Ma":     1.032,
		"NSteps": 200,
		"Name":   "dipole",
		"Smear":  true,
		"Channels": map[string]any{
			"nu e e": 0.5,
		},
	})

	f, err := set.Float("Ma")
	require.NoError(t, err)
	assert.Equal(t, 1.032, f)

	// integers widen to float
	f, err = set.Float("NSteps")
	require.NoError(t, err)
	assert.Equal(t, 200.0, f)

	n, err := set.Int("NSteps")
	require.NoError(t, err)
	assert.Equal(t, 200, n)

	s, err := set.String("Name")
	require.NoError(t, err)
	assert.Equal(t, "dipole", s)

	b, err := set.Bool("Smear")
	require.NoError(t, err)
	assert.True(t, b)

	sub, err := set.Sub("Channels")
	require.NoError(t, err)
	frac, err := sub.Float("nu e e")
	require.NoError(t, err)
	assert.Equal(t, 0.5, frac)
}

func TestSetErrors(t *testing.T) {
	set := NewSet(map[string]any{"Name": "dipole"})

	_, err := set.Float("missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	_, err = set.Float("Name")
	assert.ErrorIs(t, err, ErrWrongType)

	_, err = set.Sub("Name")
	assert.ErrorIs(t, err, ErrWrongType)

	assert.Equal(t, 3.0, set.FloatOr("missing", 3.0))
	assert.Equal(t, "x", set.StringOr("missing", "x"))
}

func TestStoreLookupAndExists(t *testing.T) {
	st := NewStore()
	st.Put("Default", map[string]any{"scale": 2.0})

	v, ok := st.Lookup("Default", "scale")
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)

	assert.True(t, st.Exists("Default", "scale"))
	assert.False(t, st.Exists("Default", "missing"))
	assert.False(t, st.Exists("Other", "scale"))
}

func TestStoreSetValueDoesNotMutateHandedOutSets(t *testing.T) {
	st := NewStore()
	st.Put("Default", map[string]any{"scale": 2.0})

	before, ok := st.Set("Default")
	require.True(t, ok)

	st.SetValue("Default", "scale", 3.0)

	// the old view is frozen, a fresh lookup sees the edit
	old, err := before.Float("scale")
	require.NoError(t, err)
	assert.Equal(t, 2.0, old)

	after, ok := st.Set("Default")
	require.True(t, ok)
	cur, err := after.Float("scale")
	require.NoError(t, err)
	assert.Equal(t, 3.0, cur)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	doc := []byte("Default:\n  Ma: 1.032\n  NSteps: 200\nTuned:\n  Ma: 1.21\n")
	require.NoError(t, os.WriteFile(path, doc, 0644))

	st, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Default", "Tuned"}, st.Labels())

	set, ok := st.Set("Tuned")
	require.True(t, ok)
	ma, err := set.Float("Ma")
	require.NoError(t, err)
	assert.Equal(t, 1.21, ma)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\t not yaml"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestReplaceSwapsContents(t *testing.T) {
	st := NewStore()
	st.Put("Default", map[string]any{"scale": 2.0})

	fresh := NewStore()
	fresh.Put("Default", map[string]any{"scale": 3.0})
	fresh.Put("Extra", map[string]any{"x": 1})

	st.Replace(fresh)

	v, _ := st.Lookup("Default", "scale")
	assert.Equal(t, 3.0, v)
	assert.True(t, st.Exists("Extra", "x"))
}

func TestDefaultsCoverBuiltins(t *testing.T) {
	st := Defaults()

	for _, key := range []string{"Ma", "MRes", "Slope", "NSteps", "NCalls", "FluxNorm", "Channels"} {
		assert.True(t, st.Exists(DefaultLabel, key), "missing default %q", key)
	}
	assert.True(t, st.Exists("Tuned", "Ma"))
}
