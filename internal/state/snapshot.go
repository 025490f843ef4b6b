package state

import "math"

// CardOutcome records one card play inside a year.
type CardOutcome struct {
	ID   string `json:"id"`
	OK   bool   `json:"ok"`
	Text string `json:"text"`
}

// EventOutcome records the random event that fired, if any.
type EventOutcome struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Text string `json:"text"`
}

// Snapshot is the immutable record of one simulated year, appended to
// History by the orchestrator and never mutated afterwards.
type Snapshot struct {
	Year            int                `json:"year"`
	Cash            float64            `json:"cash"`
	Invested        float64            `json:"invested"`
	Debt            float64            `json:"debt"`
	Income          float64            `json:"income"`
	Expenses        float64            `json:"expenses"`
	Stress          float64            `json:"stress"`
	Burnout         float64            `json:"burnout"`
	Risk            float64            `json:"risk"`
	Discipline      float64            `json:"discipline"`
	RentalUnits     int                `json:"rentalUnits"`
	SideHustleLevel int                `json:"sideHustleLevel"`
	NetWorth        float64            `json:"netWorth"`
	MarketReturn    float64            `json:"marketReturn"`
	Cards           []CardOutcome      `json:"cards"`
	Event           *EventOutcome      `json:"event"`
	Flags           map[string]float64 `json:"flags"`
	Log             []string           `json:"log"`
}

// TakeSnapshot copies the current state into a rounded immutable record.
// marketReturn is the rate realized this year; cards and event are the
// year's resolved outcomes.
func (s *State) TakeSnapshot(marketReturn float64, cards []CardOutcome, event *EventOutcome) Snapshot {
	flags := make(map[string]float64, len(s.Flags))
	for k, v := range s.Flags {
		flags[k] = v
	}
	log := make([]string, len(s.Log))
	copy(log, s.Log)

	return Snapshot{
		Year:            s.Year,
		Cash:            math.Round(s.Cash),
		Invested:        math.Round(s.Invested),
		Debt:            math.Round(s.Debt),
		Income:          math.Round(s.Income),
		Expenses:        math.Round(s.Expenses),
		Stress:          math.Round(s.Stress),
		Burnout:         math.Round(s.Burnout),
		Risk:            round2(s.Risk),
		Discipline:      round2(s.Discipline),
		RentalUnits:     s.RentalUnits,
		SideHustleLevel: s.SideHustleLevel,
		NetWorth:        math.Round(s.NetWorth()),
		MarketReturn:    round4(marketReturn),
		Cards:           cards,
		Event:           event,
		Flags:           flags,
		Log:             log,
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
