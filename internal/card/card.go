// Package card defines the static action catalog and the state-biased hand
// drawing and play rules.
package card

import (
	"moneydeck/internal/rng"
	"moneydeck/internal/state"
)

// Type groups cards for hand composition and situational weighting.
type Type string

const (
	TypeMoney     Type = "money"
	TypeCareer    Type = "career"
	TypeLifestyle Type = "lifestyle"
	TypeOwnership Type = "ownership"
	TypeDefense   Type = "defense"
	TypeWildcard  Type = "wildcard"
)

// Rarity controls which hand slot a card can fill.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// Result is what an effect reports back. An effect may decline (OK false
// with a Reason) even after eligibility passed, when an earlier card this
// same year changed the state underneath it.
type Result struct {
	OK     bool
	Text   string
	Reason string
}

func ok(text string) Result      { return Result{OK: true, Text: text} }
func declined(why string) Result { return Result{OK: false, Reason: why} }

// Card is an immutable catalog entry. The catalog is process-wide static
// data; runs only ever touch their own ledger, never the entries.
type Card struct {
	ID            string
	Name          string
	Type          Type
	Rarity        Rarity
	Tags          []string
	Desc          string
	CooldownYears int
	Exhaust       bool

	Eligible func(*state.State) bool
	Effect   func(*state.State, *rng.RNG) Result
}

// HasTag reports tag membership.
func (c *Card) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Outcome pairs a play attempt with its card for logging and snapshots.
type Outcome struct {
	Card   *Card
	OK     bool
	Text   string
	Reason string
}
