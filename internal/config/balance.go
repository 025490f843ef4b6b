package config

// Balance holds gameplay balance configuration for the simulator: hand
// composition, run horizon, and the starting-position knobs the engine
// exposes. The card and event deltas themselves live in the catalogs.
type Balance struct {
	// Hand composition
	RareChance float64 `yaml:"rare_chance" json:"rare_chance"`
	WildChance float64 `yaml:"wild_chance" json:"wild_chance"`
	MaxHand    int     `yaml:"max_hand" json:"max_hand"`

	// Run shape
	Years int `yaml:"years" json:"years"`

	// Starting position
	StartCash     float64 `yaml:"start_cash" json:"start_cash"`
	StartDebt     float64 `yaml:"start_debt" json:"start_debt"`
	StartIncome   float64 `yaml:"start_income" json:"start_income"`
	StartExpenses float64 `yaml:"start_expenses" json:"start_expenses"`
	StartStress   float64 `yaml:"start_stress" json:"start_stress"`
	StartBurnout  float64 `yaml:"start_burnout" json:"start_burnout"`
}

// Default returns the default balance configuration.
func Default() Balance {
	return Balance{
		RareChance:    0.28,
		WildChance:    0.30,
		MaxHand:       8,
		Years:         30,
		StartCash:     4000,
		StartDebt:     0,
		StartIncome:   42000,
		StartExpenses: 36000,
		StartStress:   30,
		StartBurnout:  20,
	}
}

// Casual returns an easier starting position for casual difficulty.
func Casual() Balance {
	cfg := Default()
	cfg.StartCash = 8000
	cfg.StartStress = 20
	cfg.StartBurnout = 10
	cfg.RareChance = 0.35
	return cfg
}

// Hard returns a tighter start for experienced players.
func Hard() Balance {
	cfg := Default()
	cfg.StartCash = 1500
	cfg.StartDebt = 18000
	cfg.StartStress = 45
	cfg.StartBurnout = 30
	cfg.RareChance = 0.22
	return cfg
}
