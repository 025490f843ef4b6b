package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureMetaIdempotent(t *testing.T) {
	s := New(Config{})
	m := s.EnsureMeta()
	m.Unlocked["a"] = true

	again := s.EnsureMeta()
	assert.Same(t, m, again)
	assert.True(t, again.Unlocked["a"])
}

func TestEnsureMetaRematerializesNilMaps(t *testing.T) {
	s := New(Config{})
	s.Meta = &RunMeta{} // the shape an old payload can leave behind
	m := s.EnsureMeta()
	require.NotNil(t, m.Unlocked)
	require.NotNil(t, m.Exhausted)
	require.NotNil(t, m.Cooldowns)
}

func TestUnlockIdempotent(t *testing.T) {
	s := New(Config{})
	s.Unlock("a", "b")
	s.Unlock("b", "c")
	assert.Len(t, s.Meta.Unlocked, 3)
}

func TestTickCooldowns(t *testing.T) {
	s := New(Config{})
	m := s.EnsureMeta()
	m.Cooldowns["slow"] = 3
	m.Cooldowns["fast"] = 1

	s.TickCooldowns()
	assert.Equal(t, 2, m.Cooldowns["slow"])
	_, still := m.Cooldowns["fast"]
	assert.False(t, still, "expired cooldowns must be removed")

	s.TickCooldowns()
	s.TickCooldowns()
	assert.Empty(t, m.Cooldowns)
}

func TestRunMetaJSONRoundTrip(t *testing.T) {
	s := New(Config{})
	s.Unlock("b", "a")
	s.EnsureMeta().Exhausted["spent"] = true
	s.EnsureMeta().Cooldowns["cooling"] = 2

	b, err := json.Marshal(s.Meta)
	require.NoError(t, err)

	// The plain form is the documented storage schema: sorted arrays for
	// the sets, an object for cooldowns.
	var plain map[string]any
	require.NoError(t, json.Unmarshal(b, &plain))
	assert.Equal(t, []any{"a", "b"}, plain["unlocked"])
	assert.Equal(t, []any{"spent"}, plain["exhausted"])

	var back RunMeta
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Unlocked["a"])
	assert.True(t, back.Unlocked["b"])
	assert.True(t, back.Exhausted["spent"])
	assert.Equal(t, 2, back.Cooldowns["cooling"])
}

func TestStateJSONCarriesLedger(t *testing.T) {
	s := New(Config{})
	s.Unlock("index_investing")
	s.EnsureMeta().Cooldowns["refinance"] = 3

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var back State
	require.NoError(t, json.Unmarshal(b, &back))
	m := back.EnsureMeta()
	assert.True(t, m.Unlocked["index_investing"])
	assert.Equal(t, 3, m.Cooldowns["refinance"])
}
