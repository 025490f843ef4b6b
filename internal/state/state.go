// Package state holds the mutable financial and psychological state of a
// single run, the per-run unlock ledger, and the immutable yearly snapshots.
package state

import (
	"fmt"
	"math"
)

// Flag names accumulated by card and event effects.
const (
	FlagEmergencyFund    = "emergencyFundBuff" // 0..3
	FlagAutoInvest       = "autoInvest"        // 0..5
	FlagRefiLevel        = "refiLevel"         // 0..2
	FlagInsuranceLevel   = "insuranceLevel"    // 0..2
	FlagRegretDrag       = "regretDrag"        // 0..3
	FlagCareerMomentum   = "careerMomentum"    // 0..5
	FlagPropertyExposure = "propertyExposure"  // 0..5
	FlagBusinessLevel    = "businessLevel"     // 0..5
	FlagLaidOff          = "laidOff"           // 0 or 1
	FlagMedicalDebt      = "medicalDebt"       // monetary
)

// RentalUnitValue is the equity each rental unit contributes to net worth.
const RentalUnitValue = 15000

// Config overrides the initial state. Zero values fall back to the
// documented defaults, so a partial struct is fine.
type Config struct {
	Year            int
	Cash            *float64
	Invested        *float64
	Debt            *float64
	Income          *float64
	Expenses        *float64
	Stress          *float64
	Burnout         *float64
	Risk            *float64
	Discipline      *float64
	RentalUnits     int
	SideHustleLevel int
}

// State is the single mutable aggregate for a run. Card effects, event
// effects and the yearly passive updates all mutate it in place; the year
// orchestrator is the only writer of History.
type State struct {
	Year            int     `json:"year"`
	Cash            float64 `json:"cash"`
	Invested        float64 `json:"invested"`
	Debt            float64 `json:"debt"`
	Income          float64 `json:"income"`
	Expenses        float64 `json:"expenses"`
	Stress          float64 `json:"stress"`
	Burnout         float64 `json:"burnout"`
	Risk            float64 `json:"risk"`
	Discipline      float64 `json:"discipline"`
	RentalUnits     int     `json:"rentalUnits"`
	SideHustleLevel int     `json:"sideHustleLevel"`

	Flags map[string]float64 `json:"flags"`
	Meta  *RunMeta           `json:"meta,omitempty"`

	History []Snapshot `json:"history"`
	Log     []string   `json:"log"`
}

// New builds the initial state for a run, applying defaults and clamping.
func New(cfg Config) *State {
	s := &State{
		Year:       1,
		Cash:       4000,
		Invested:   0,
		Debt:       0,
		Income:     42000,
		Expenses:   36000,
		Stress:     30,
		Burnout:    20,
		Risk:       0.30,
		Discipline: 0.50,
		Flags:      map[string]float64{},
		History:    []Snapshot{},
		Log:        []string{},
	}
	if cfg.Year > 0 {
		s.Year = cfg.Year
	}
	setIf(&s.Cash, cfg.Cash)
	setIf(&s.Invested, cfg.Invested)
	setIf(&s.Debt, cfg.Debt)
	setIf(&s.Income, cfg.Income)
	setIf(&s.Expenses, cfg.Expenses)
	setIf(&s.Stress, cfg.Stress)
	setIf(&s.Burnout, cfg.Burnout)
	setIf(&s.Risk, cfg.Risk)
	setIf(&s.Discipline, cfg.Discipline)
	if cfg.RentalUnits > 0 {
		s.RentalUnits = cfg.RentalUnits
	}
	if cfg.SideHustleLevel > 0 {
		s.SideHustleLevel = cfg.SideHustleLevel
	}
	s.ClampGauges()
	return s
}

func setIf(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// F is a convenience for pointer-typed Config fields.
func F(v float64) *float64 { return &v }

// NetWorth is pure: cash + invested + rental equity - debt - medical debt.
func (s *State) NetWorth() float64 {
	return s.Cash + s.Invested + float64(s.RentalUnits)*RentalUnitValue - s.Debt - s.Flag(FlagMedicalDebt)
}

// Flag returns a flag value, tolerating missing keys and a nil map.
func (s *State) Flag(name string) float64 {
	if s.Flags == nil {
		return 0
	}
	return s.Flags[name]
}

// SetFlag assigns a flag, allocating the map if needed.
func (s *State) SetFlag(name string, v float64) {
	if s.Flags == nil {
		s.Flags = map[string]float64{}
	}
	s.Flags[name] = v
}

// AddFlag adds delta to a flag, clamping the result into [0,max].
// max <= 0 means unbounded above.
func (s *State) AddFlag(name string, delta, max float64) {
	v := s.Flag(name) + delta
	if v < 0 {
		v = 0
	}
	if max > 0 && v > max {
		v = max
	}
	s.SetFlag(name, v)
}

// HasFlag reports a non-zero flag.
func (s *State) HasFlag(name string) bool {
	return s.Flag(name) != 0
}

// ClampGauges re-applies the documented ranges: stress and burnout in
// [0,100], risk and discipline in [0,1]. Called after every mutation point.
func (s *State) ClampGauges() {
	s.Stress = clamp(s.Stress, 0, 100)
	s.Burnout = clamp(s.Burnout, 0, 100)
	s.Risk = clamp(s.Risk, 0, 1)
	s.Discipline = clamp(s.Discipline, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// Logf appends a formatted line to the per-year transient log.
func (s *State) Logf(format string, args ...any) {
	s.Log = append(s.Log, fmt.Sprintf(format, args...))
}

// ClearLog resets the transient log at the start of a year.
func (s *State) ClearLog() {
	s.Log = s.Log[:0]
}
