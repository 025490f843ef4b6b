package state

import (
	"encoding/json"
	"sort"
)

// RunMeta is the per-run unlock ledger: which cards are available this run,
// which one-shots are spent, and which are cooling down. It is exclusively
// owned by one State.
//
// Sets serialize as sorted id arrays and cooldowns as an id->years object;
// that plain form is the storage schema, and UnmarshalJSON rebuilds the
// set/map semantics on the way back in.
type RunMeta struct {
	Unlocked  map[string]bool
	Exhausted map[string]bool
	Cooldowns map[string]int
}

type runMetaPlain struct {
	Unlocked  []string       `json:"unlocked"`
	Exhausted []string       `json:"exhausted"`
	Cooldowns map[string]int `json:"cooldowns"`
}

func newRunMeta() *RunMeta {
	return &RunMeta{
		Unlocked:  map[string]bool{},
		Exhausted: map[string]bool{},
		Cooldowns: map[string]int{},
	}
}

// EnsureMeta idempotently attaches the ledger, re-materializing any nil
// maps (the shape a storage round-trip of an older payload can leave).
func (s *State) EnsureMeta() *RunMeta {
	if s.Meta == nil {
		s.Meta = newRunMeta()
	}
	if s.Meta.Unlocked == nil {
		s.Meta.Unlocked = map[string]bool{}
	}
	if s.Meta.Exhausted == nil {
		s.Meta.Exhausted = map[string]bool{}
	}
	if s.Meta.Cooldowns == nil {
		s.Meta.Cooldowns = map[string]int{}
	}
	return s.Meta
}

// Unlock adds card ids to the unlocked set. Idempotent.
func (s *State) Unlock(ids ...string) {
	m := s.EnsureMeta()
	for _, id := range ids {
		m.Unlocked[id] = true
	}
}

// TickCooldowns decrements every cooldown by one year, dropping entries
// that reach zero. Runs once at the start of each year, before cards are
// drawn or played.
func (s *State) TickCooldowns() {
	m := s.EnsureMeta()
	for id, left := range m.Cooldowns {
		left--
		if left <= 0 {
			delete(m.Cooldowns, id)
		} else {
			m.Cooldowns[id] = left
		}
	}
}

func (m *RunMeta) MarshalJSON() ([]byte, error) {
	p := runMetaPlain{
		Unlocked:  sortedKeys(m.Unlocked),
		Exhausted: sortedKeys(m.Exhausted),
		Cooldowns: m.Cooldowns,
	}
	if p.Cooldowns == nil {
		p.Cooldowns = map[string]int{}
	}
	return json.Marshal(p)
}

func (m *RunMeta) UnmarshalJSON(b []byte) error {
	var p runMetaPlain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	m.Unlocked = map[string]bool{}
	for _, id := range p.Unlocked {
		m.Unlocked[id] = true
	}
	m.Exhausted = map[string]bool{}
	for _, id := range p.Exhausted {
		m.Exhausted[id] = true
	}
	m.Cooldowns = p.Cooldowns
	if m.Cooldowns == nil {
		m.Cooldowns = map[string]int{}
	}
	return nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
