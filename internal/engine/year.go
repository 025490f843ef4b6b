// Package engine composes cards, events and the passive economy into
// atomic year transitions, and drives whole runs.
package engine

import (
	"math"

	"moneydeck/internal/card"
	"moneydeck/internal/event"
	"moneydeck/internal/rng"
	"moneydeck/internal/state"
)

// MaxCardsPerYear is how many chosen cards a year will honor; extras are
// ignored.
const MaxCardsPerYear = 2

// StepYear runs the fixed yearly pipeline and returns the immutable
// snapshot it appended to history. The pipeline never fails: ineligible or
// declined cards become ok:false outcomes and the year completes anyway.
//
// Stage order is load-bearing twice over: effects observe the state earlier
// stages left behind, and the rng draws each stage consumes are part of the
// seed-reproducibility contract.
func StepYear(s *state.State, r *rng.RNG, chosen []string, opts card.DrawOptions) state.Snapshot {
	s.ClearLog()
	s.TickCooldowns()

	if len(chosen) > MaxCardsPerYear {
		chosen = chosen[:MaxCardsPerYear]
	}
	outcomes := make([]state.CardOutcome, 0, len(chosen))
	for _, id := range chosen {
		out := card.Apply(s, r, id)
		rec := state.CardOutcome{ID: id, OK: out.OK, Text: out.Text}
		if !out.OK {
			rec.Text = out.Reason
		}
		outcomes = append(outcomes, rec)
	}

	var evOut *state.EventOutcome
	if ev := event.PickForYear(s, r); ev != nil {
		evOut = &state.EventOutcome{ID: ev.ID, Name: ev.Name, Text: ev.Text}
	}

	resolveLayoff(s)
	ApplyYearlyCashflow(s)
	applyAutoInvest(s)
	applyDebtInterest(s)
	rate := applyMarketReturn(s, r)
	driftStressBurnout(s)

	snap := s.TakeSnapshot(rate, outcomes, evOut)
	s.History = append(s.History, snap)
	s.Year++
	return snap
}

// resolveLayoff consumes a pending layoff flag: a permanent 45% income cut.
// The cut multiplies current income, so repeated layoffs compound.
func resolveLayoff(s *state.State) {
	if !s.HasFlag(state.FlagLaidOff) {
		return
	}
	s.Income *= 0.55
	s.SetFlag(state.FlagLaidOff, 0)
	s.Logf("Laid off. Income drops to %.0f/yr until something better comes along.", s.Income)
}

// ApplyYearlyCashflow applies income minus expenses. A negative balance is
// zeroed, buffered by the emergency fund (7% per buff level, up to 21%),
// and rolled into debt at a 1.05x penalty; the squeeze costs 10 stress.
func ApplyYearlyCashflow(s *state.State) {
	s.Cash += s.Income - s.Expenses
	if s.Cash >= 0 {
		return
	}
	shortfall := -s.Cash
	s.Cash = 0
	buffered := shortfall * (1 - 0.07*s.Flag(state.FlagEmergencyFund))
	s.Debt += buffered * 1.05
	s.Stress += 10
	s.ClampGauges()
	s.Logf("Came up %.0f short this year; the gap went onto the debt pile.", shortfall)
}

func applyAutoInvest(s *state.State) {
	level := s.Flag(state.FlagAutoInvest)
	if level <= 0 {
		return
	}
	target := s.Income * (0.02 + 0.01*(level-1))
	target = math.Min(2500, math.Max(200, target))
	amt := math.Min(target, s.Cash)
	if amt <= 0 {
		return
	}
	s.Cash -= amt
	s.Invested += amt
	s.Discipline += 0.01
	s.Stress -= 1
	s.ClampGauges()
	s.Logf("Auto-invest quietly moved %.0f into the portfolio.", amt)
}

func applyDebtInterest(s *state.State) {
	if s.Debt <= 0 {
		return
	}
	apr := 0.10 + 0.06*s.Stress/100
	if s.Cash < 2000 {
		apr += 0.03
	}
	switch s.Flag(state.FlagRefiLevel) {
	case 1:
		apr -= 0.03
	case 2:
		apr -= 0.05
	}
	apr = math.Min(0.30, math.Max(0.02, apr))
	s.Debt += s.Debt * apr
}

// applyMarketReturn realizes one year of market movement. Noise is the sum
// of four uniforms shifted and halved, a bounded bell-ish value in [-1,1);
// the four draws happen every year, invested or not, to keep the stream
// aligned.
func applyMarketReturn(s *state.State, r *rng.RNG) float64 {
	noise := (r.Float() + r.Float() + r.Float() + r.Float() - 2) / 2
	rate := 0.07 + noise*0.18
	rate -= s.Stress / 100 * 0.03
	rate -= s.Flag(state.FlagRegretDrag) * 0.012
	rate = math.Min(0.45, math.Max(-0.45, rate))
	if s.Invested > 0 {
		s.Invested += s.Invested * rate
	}
	return rate
}

func driftStressBurnout(s *state.State) {
	burnoutDelta := 1.0
	if s.Stress > 60 {
		burnoutDelta = 4
	}
	burnoutDelta += 2 * float64(s.SideHustleLevel)
	burnoutDelta += 2 * float64(s.RentalUnits)
	if s.Stress < 30 {
		burnoutDelta -= 2
	}
	s.Burnout += burnoutDelta

	fragility := 0.0
	if s.Cash < 3000 {
		fragility += 6
	}
	if s.Debt > 25000 {
		fragility += 6
	}
	if s.Flag(state.FlagMedicalDebt) > 0 {
		fragility += 4
	}
	if s.Discipline > 0.65 {
		fragility -= 2
	}
	s.Stress += fragility
	s.ClampGauges()

	if s.Burnout > 80 {
		s.Expenses *= 1.04
		s.Discipline -= 0.03
		s.ClampGauges()
		s.Logf("Burnout is eating the margins: spending creeps, discipline slips.")
	}
}
