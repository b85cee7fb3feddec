package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarterback/quarterback/pkg/store"
)

type snapshot struct {
	Name  string
	Value float64
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := store.New(time.Minute, nil)
	require.NoError(t, err)
	defer s.Close()

	raw := []byte("BASKET_ID,QUANTITY\nB1,400\n")
	in := []snapshot{{Name: "B1", Value: 400}}
	require.NoError(t, s.Save("positions", raw, in))

	var out []snapshot
	hit, err := s.Load("positions", raw, &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, in, out)
}

func TestLoadMissesOnChangedBytes(t *testing.T) {
	t.Parallel()

	s, err := store.New(time.Minute, nil)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save("positions", []byte("v1"), []snapshot{{Name: "B1"}}))

	// An edited source file hashes differently, so the stale parse misses.
	var out []snapshot
	hit, err := s.Load("positions", []byte("v2"), &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Empty(t, out)
}

func TestLoadMissesAcrossKinds(t *testing.T) {
	t.Parallel()

	s, err := store.New(time.Minute, nil)
	require.NoError(t, err)
	defer s.Close()

	raw := []byte("same bytes")
	require.NoError(t, s.Save("positions", raw, []snapshot{{Name: "B1"}}))

	var out []snapshot
	hit, err := s.Load("benchmark", raw, &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestInvalidate(t *testing.T) {
	t.Parallel()

	s, err := store.New(time.Minute, nil)
	require.NoError(t, err)
	defer s.Close()

	raw := []byte("v1")
	require.NoError(t, s.Save("positions", raw, []snapshot{{Name: "B1"}}))
	require.NoError(t, s.Invalidate())

	var out []snapshot
	hit, err := s.Load("positions", raw, &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestKey(t *testing.T) {
	t.Parallel()

	raw := []byte("payload")
	assert.Equal(t, store.Key("positions", raw), store.Key("positions", raw))
	assert.NotEqual(t, store.Key("positions", raw), store.Key("benchmark", raw))
	assert.NotEqual(t, store.Key("positions", raw), store.Key("positions", []byte("other")))
}
