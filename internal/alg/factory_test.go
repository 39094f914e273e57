package alg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuphys/nusim/internal/params"
)

func TestFactoryBuild(t *testing.T) {
	store := params.NewStore()
	store.Put("Default", map[string]any{"scale": 2.0})
	f := NewFactory(testResolver(nil), store)

	id := NewID("phys::X", "Default")
	a, err := f.Build(id)
	require.NoError(t, err)

	assert.Equal(t, id, a.ID())
	assert.Equal(t, 2.0, a.(*stubAlg).scale)
}

func TestFactoryBuildErrors(t *testing.T) {
	store := params.NewStore()
	store.Put("Default", map[string]any{"scale": 2.0})
	store.Put("Bad", map[string]any{"scale": "two"})
	f := NewFactory(testResolver(nil), store)

	_, err := f.Build(NewID("phys::Unknown", "Default"))
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)

	_, err = f.Build(NewID("phys::X", "Missing"))
	assert.ErrorIs(t, err, ErrConfigNotFound)

	_, err = f.Build(NewID("phys::X", "Bad"))
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, params.ErrWrongType)
}
