package pairs

import (
	"testing"

	"github.com/ArkLabsHQ/comrade/internal/value"
	"github.com/stretchr/testify/require"
)

func TestGetMiss(t *testing.T) {
	m := NewMap()
	_, ok := m.Get("nope")
	require.False(t, ok)
}

func TestPutReturnsDisplacedValue(t *testing.T) {
	m := NewMap()

	previous, had := m.Put("/k", value.FromString("first"))
	require.False(t, had)
	require.Equal(t, value.Value{}, previous)

	previous, had = m.Put("/k", value.FromString("second"))
	require.True(t, had)
	require.Equal(t, "first", previous.Text())

	got, ok := m.Get("/k")
	require.True(t, ok)
	require.Equal(t, "second", got.Text())
}

func TestCloneIsIndependent(t *testing.T) {
	m := NewMap()
	m.Put("/k", value.FromString("original"))

	cloned := m.Clone()
	cloned.Put("/k", value.FromString("mutated"))
	cloned.Put("/new", value.FromString("extra"))

	got, ok := m.Get("/k")
	require.True(t, ok)
	require.Equal(t, "original", got.Text(), "mutating the clone must not affect the original")

	_, ok = m.Get("/new")
	require.False(t, ok)

	require.Equal(t, 2, cloned.(*Map).Len())
	require.Equal(t, 1, m.Len())
}
