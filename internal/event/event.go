// Package event holds the catalog of random yearly events and the weighted
// selection that fires at most one of them per year.
package event

import (
	"fmt"
	"math"

	"moneydeck/internal/rng"
	"moneydeck/internal/state"
)

// Event is an immutable catalog entry. Weight may return 0 to exclude an
// event for the current state; Effect mutates the state and returns the
// narration line.
type Event struct {
	ID     string
	Name   string
	Weight func(*state.State) float64
	Effect func(*state.State, *rng.RNG) string
}

// Outcome is what the year records about the event that fired.
type Outcome struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Text string `json:"text"`
}

// Catalog is process-wide static data, shared by reference across runs.
var Catalog = []*Event{
	{
		ID:   "market_crash",
		Name: "Market Crash",
		Weight: func(s *state.State) float64 {
			return 0.6 + s.Risk*2.0
		},
		Effect: func(s *state.State, r *rng.RNG) string {
			drop := r.Between(0.18, 0.42)
			lost := s.Invested * drop
			s.Invested -= lost
			s.Stress += 12
			s.ClampGauges()
			return fmt.Sprintf("Markets cratered %.0f%%; the portfolio shed %.0f.", drop*100, lost)
		},
	},
	{
		ID:   "medical_bill",
		Name: "Medical Bill",
		Weight: func(s *state.State) float64 {
			w := 1.2 * (1 - 0.18*s.Flag(state.FlagEmergencyFund))
			if s.Cash < 4000 {
				w *= 1.6
			}
			return w
		},
		Effect: func(s *state.State, r *rng.RNG) string {
			insurance := s.Flag(state.FlagInsuranceLevel)
			buff := s.Flag(state.FlagEmergencyFund)

			bill := r.Between(1500, 8000) * (1 + s.Stress/150)
			bill *= 1 - 0.30*insurance
			bill *= 1 - 0.12*buff

			paid := math.Min(s.Cash, bill)
			s.Cash -= paid
			shortfall := bill - paid
			if shortfall > 0 {
				penalty := 1.25 - 0.08*insurance
				s.AddFlag(state.FlagMedicalDebt, shortfall*penalty, 0)
			}
			s.Stress += 10
			s.ClampGauges()
			if shortfall > 0 {
				return fmt.Sprintf("A %.0f medical bill; %.0f went unpaid and became medical debt.", bill, shortfall)
			}
			return fmt.Sprintf("A %.0f medical bill, covered in cash.", bill)
		},
	},
	{
		ID:   "layoff",
		Name: "Layoff",
		Weight: func(s *state.State) float64 {
			return (0.5 + s.Stress/140) * (1 - 0.12*s.Flag(state.FlagCareerMomentum))
		},
		Effect: func(s *state.State, r *rng.RNG) string {
			s.SetFlag(state.FlagLaidOff, 1)
			s.Stress += 16
			s.ClampGauges()
			return "The whole team got the meeting invite with HR on it."
		},
	},
	{
		ID:   "boring_year",
		Name: "A Boring Year",
		Weight: func(s *state.State) float64 {
			w := 0.8 + s.Discipline*0.8
			if s.Cash > 10000 {
				w += 0.5
			}
			return w
		},
		Effect: func(s *state.State, r *rng.RNG) string {
			s.Stress -= 8
			s.Burnout -= 6
			s.ClampGauges()
			return "Nothing broke. Nothing mooned. A genuinely boring year."
		},
	},
	{
		ID:   "lucky_break",
		Name: "Lucky Break",
		Weight: func(s *state.State) float64 {
			return 0.4 + s.Discipline*1.1
		},
		Effect: func(s *state.State, r *rng.RNG) string {
			gain := r.Between(1000, 5000) * (0.6 + s.Discipline)
			s.Cash += gain
			s.Stress -= 4
			s.ClampGauges()
			return fmt.Sprintf("A windfall of %.0f landed, mostly because past-you set things up right.", gain)
		},
	},
	{
		ID:   "rental_repair",
		Name: "Rental Repair",
		Weight: func(s *state.State) float64 {
			if s.RentalUnits <= 0 {
				return 0
			}
			return 0.7 + 0.4*float64(s.RentalUnits) + 0.2*s.Flag(state.FlagPropertyExposure)
		},
		Effect: func(s *state.State, r *rng.RNG) string {
			units := float64(s.RentalUnits)
			cost := r.Between(800, 3000) * units * (1 + 0.15*s.Flag(state.FlagPropertyExposure))
			cost *= 1 - 0.07*s.Flag(state.FlagEmergencyFund)

			paid := math.Min(s.Cash, cost)
			s.Cash -= paid
			shortfall := cost - paid
			if shortfall > 0 {
				s.Debt += shortfall * 1.10
			}
			s.Stress += 6
			s.ClampGauges()
			return fmt.Sprintf("Rental repairs ran %.0f across %d unit(s).", cost, s.RentalUnits)
		},
	},
}

// PickForYear draws and applies at most one event, logging the narration.
// Returns nil when every weight is zero; the year then simply has no event.
func PickForYear(s *state.State, r *rng.RNG) *Outcome {
	weights := make([]float64, len(Catalog))
	for i, ev := range Catalog {
		w := ev.Weight(s)
		if w < 0 {
			w = 0
		}
		weights[i] = w
	}
	i := r.WeightedIndex(weights)
	if i < 0 {
		return nil
	}
	ev := Catalog[i]
	text := ev.Effect(s, r)
	s.Logf("%s", text)
	return &Outcome{ID: ev.ID, Name: ev.Name, Text: text}
}
