package engine

import (
	"moneydeck/internal/card"
	"moneydeck/internal/rng"
	"moneydeck/internal/state"
)

// Endings a run can reach before its year horizon.
const (
	EndingBankrupt = "bankrupt"
	EndingCollapse = "collapse"
	EndingHorizon  = "horizon"
)

// BankruptcyNetWorth is the net-worth floor that ends a run early.
const BankruptcyNetWorth = -50000

// Policy picks up to two card ids from the offered hand.
type Policy func(*state.State, []*card.Card) []string

// FirstTwo is the default policy: take the hand as dealt.
func FirstTwo(s *state.State, hand []*card.Card) []string {
	ids := []string{}
	for _, c := range hand {
		if len(ids) == MaxCardsPerYear {
			break
		}
		ids = append(ids, c.ID)
	}
	return ids
}

// Params configures an autonomous run.
type Params struct {
	Seed    any
	Years   int
	Initial state.Config
	Policy  Policy
	Draw    card.DrawOptions
}

// Outcome is the result of a completed or early-terminated run.
type Outcome struct {
	Seed    any              `json:"seed"`
	Ending  string           `json:"ending"`
	Final   state.Snapshot   `json:"final"`
	History []state.Snapshot `json:"history"`
}

// Run drives a full autonomous run: one rng stream, one state, the full
// catalog unlocked, then draw/choose/step per year until the horizon or an
// ending condition. Ending conditions are checked between year steps, never
// mid-step.
func Run(p Params) Outcome {
	if p.Years <= 0 {
		p.Years = 30
	}
	if p.Policy == nil {
		p.Policy = FirstTwo
	}

	r := rng.New(p.Seed)
	s := state.New(p.Initial)
	s.Unlock(card.AllIDs()...)

	ending := EndingHorizon
	for i := 0; i < p.Years; i++ {
		hand := card.DrawHand(s, r, p.Draw)
		chosen := p.Policy(s, hand)
		StepYear(s, r, chosen, p.Draw)

		if end, done := checkEnding(s); done {
			ending = end
			break
		}
	}

	out := Outcome{Seed: p.Seed, Ending: ending, History: s.History}
	if n := len(s.History); n > 0 {
		out.Final = s.History[n-1]
	}
	return out
}

func checkEnding(s *state.State) (string, bool) {
	if s.NetWorth() < BankruptcyNetWorth {
		return EndingBankrupt, true
	}
	if s.Stress >= 100 || s.Burnout >= 100 {
		return EndingCollapse, true
	}
	return "", false
}
