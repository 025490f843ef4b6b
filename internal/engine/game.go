package engine

import (
	"moneydeck/internal/card"
	"moneydeck/internal/rng"
	"moneydeck/internal/state"
)

// Game is the interactive variant of the run driver: the caller sees each
// year's hand, picks cards, and advances one year at a time. Not safe for
// concurrent use; a game owns its state and rng stream exclusively.
type Game struct {
	seed    any
	years   int
	initial state.Config
	draw    card.DrawOptions

	rng    *rng.RNG
	state  *state.State
	hand   []*card.Card
	ending string
}

// GameParams configures an interactive game.
type GameParams struct {
	Seed    any
	Years   int
	Initial state.Config
	Draw    card.DrawOptions
}

// YearResult is what one interactive year reports back.
type YearResult struct {
	Snapshot state.Snapshot `json:"snapshot"`
	Ending   string         `json:"ending,omitempty"`
	Over     bool           `json:"over"`
}

// NewGame builds a game with the full catalog unlocked and the first hand
// already drawn.
func NewGame(p GameParams) *Game {
	if p.Years <= 0 {
		p.Years = 30
	}
	g := &Game{seed: p.Seed, years: p.Years, initial: p.Initial, draw: p.Draw}
	g.reset(p.Seed)
	return g
}

// ResumeGame rebuilds a game from a saved session: the persisted state,
// the seed, the rng position recorded at save time, and the hand that was
// on offer. The hand is restored by id rather than redrawn so no extra rng
// draws are consumed.
func ResumeGame(p GameParams, s *state.State, rngCalls int64, handIDs []string, ending string) *Game {
	if p.Years <= 0 {
		p.Years = 30
	}
	g := &Game{seed: p.Seed, years: p.Years, initial: p.Initial, draw: p.Draw}
	g.rng = rng.Restore(p.Seed, rngCalls)
	g.state = s
	g.state.EnsureMeta()
	g.ending = ending
	if ending == "" {
		for _, id := range handIDs {
			if c, found := card.ByID(id); found {
				g.hand = append(g.hand, c)
			}
		}
	}
	return g
}

// RngCalls exposes the rng position for session persistence.
func (g *Game) RngCalls() int64 {
	return g.rng.Calls()
}

func (g *Game) reset(seed any) {
	g.seed = seed
	g.rng = rng.New(seed)
	g.state = state.New(g.initial)
	g.state.Unlock(card.AllIDs()...)
	g.ending = ""
	g.hand = card.DrawHand(g.state, g.rng, g.draw)
}

// Hand returns the cards currently on offer.
func (g *Game) Hand() []*card.Card {
	return g.hand
}

// State exposes the live state for rendering. Callers must treat it as
// read-only.
func (g *Game) State() *state.State {
	return g.state
}

// Seed returns the seed this game was built from.
func (g *Game) Seed() any {
	return g.seed
}

// Years returns the configured run horizon.
func (g *Game) Years() int {
	return g.years
}

// Over reports whether the run has ended, and how.
func (g *Game) Over() (string, bool) {
	return g.ending, g.ending != ""
}

// PlayYear applies the chosen cards (up to two, in order), steps one year,
// and redraws the hand unless the run ended. Playing a finished game is a
// no-op year: the last snapshot is returned again.
func (g *Game) PlayYear(chosen []string) YearResult {
	if g.ending != "" {
		res := YearResult{Ending: g.ending, Over: true}
		if n := len(g.state.History); n > 0 {
			res.Snapshot = g.state.History[n-1]
		}
		return res
	}

	snap := StepYear(g.state, g.rng, chosen, g.draw)

	if end, done := checkEnding(g.state); done {
		g.ending = end
	} else if len(g.state.History) >= g.years {
		g.ending = EndingHorizon
	}

	if g.ending == "" {
		g.hand = card.DrawHand(g.state, g.rng, g.draw)
	} else {
		g.hand = nil
	}
	return YearResult{Snapshot: snap, Ending: g.ending, Over: g.ending != ""}
}

// Restart throws the run away and begins again from a new seed.
func (g *Game) Restart(seed any) {
	g.reset(seed)
}

// History returns the snapshots recorded so far.
func (g *Game) History() []state.Snapshot {
	return g.state.History
}
