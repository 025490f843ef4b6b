package card

import (
	"fmt"
	"math"

	"moneydeck/internal/rng"
	"moneydeck/internal/state"
)

// DoNothingID is the coast card; the bias table boosts it when the player
// is burning out.
const DoNothingID = "coast"

// PanicSellID gets a small extra bias once the portfolio is big enough to
// panic about.
const PanicSellID = "panic_sell"

// Catalog is the full action table, process-wide static data shared by
// reference across runs. The monetary and gauge deltas here are the game's
// balance data; tests pin them.
var Catalog = []*Card{
	{
		ID:     "index_investing",
		Name:   "Index Investing",
		Type:   TypeMoney,
		Rarity: RarityCommon,
		Tags:   []string{"investing", "stability"},
		Desc:   "Move up to 6,000 of cash into a broad index fund.",
		Effect: func(s *state.State, r *rng.RNG) Result {
			amt := math.Min(s.Cash, 6000)
			if amt <= 0 {
				return declined("no cash left to invest")
			}
			s.Cash -= amt
			s.Invested += amt
			s.Discipline += 0.02
			s.Stress -= 2
			s.ClampGauges()
			return ok(fmt.Sprintf("Invested %.0f into index funds.", amt))
		},
	},
	{
		ID:     "pay_down_debt",
		Name:   "Pay Down Debt",
		Type:   TypeMoney,
		Rarity: RarityCommon,
		Tags:   []string{"debt", "stability"},
		Desc:   "Throw up to 5,000 of cash at the highest-interest debt.",
		Eligible: func(s *state.State) bool {
			return s.Debt > 0
		},
		Effect: func(s *state.State, r *rng.RNG) Result {
			amt := math.Min(math.Min(s.Cash, 5000), s.Debt)
			if amt <= 0 {
				return declined("no cash left for payments")
			}
			s.Cash -= amt
			s.Debt -= amt
			s.Stress -= 3
			s.Discipline += 0.01
			s.ClampGauges()
			return ok(fmt.Sprintf("Paid %.0f off the debt pile.", amt))
		},
	},
	{
		ID:     "cut_expenses",
		Name:   "Trim The Budget",
		Type:   TypeLifestyle,
		Rarity: RarityCommon,
		Tags:   []string{"expenses", "discipline"},
		Desc:   "Cancel subscriptions, renegotiate bills, cook at home.",
		Effect: func(s *state.State, r *rng.RNG) Result {
			cut := r.Between(1200, 3000)
			floor := 12000.0
			if s.Expenses-cut < floor {
				cut = math.Max(0, s.Expenses-floor)
			}
			if cut <= 0 {
				return declined("the budget has no fat left")
			}
			s.Expenses -= cut
			s.Discipline += 0.03
			s.Stress += 2
			s.ClampGauges()
			return ok(fmt.Sprintf("Trimmed %.0f/yr off expenses.", cut))
		},
	},
	{
		ID:     "side_hustle",
		Name:   "Pick Up A Side Hustle",
		Type:   TypeCareer,
		Rarity: RarityCommon,
		Tags:   []string{"hustle", "income"},
		Desc:   "Evenings and weekends for extra income.",
		Effect: func(s *state.State, r *rng.RNG) Result {
			gain := r.Between(2000, 6000)
			s.SideHustleLevel++
			s.Income += gain
			s.Burnout += 8
			s.Stress += 4
			s.Risk += 0.02
			s.ClampGauges()
			return ok(fmt.Sprintf("Side hustle adds %.0f/yr, but the hours add up.", gain))
		},
	},
	{
		ID:            "ask_for_raise",
		Name:          "Ask For A Raise",
		Type:          TypeCareer,
		Rarity:        RarityCommon,
		Tags:          []string{"income", "career"},
		Desc:          "Make the case. Discipline and momentum help.",
		CooldownYears: 2,
		Effect: func(s *state.State, r *rng.RNG) Result {
			chance := 0.35 + s.Discipline*0.40 + s.Flag(state.FlagCareerMomentum)*0.05
			if r.Chance(chance) {
				gain := r.Between(1500, 6000)
				s.Income += gain
				s.AddFlag(state.FlagCareerMomentum, 1, 5)
				s.Stress -= 2
				s.ClampGauges()
				return ok(fmt.Sprintf("Raise granted: +%.0f/yr.", gain))
			}
			s.Stress += 5
			s.ClampGauges()
			return ok("Raise denied. Awkward week at the office.")
		},
	},
	{
		ID:     DoNothingID,
		Name:   "Coast For A Year",
		Type:   TypeLifestyle,
		Rarity: RarityCommon,
		Tags:   []string{"recovery"},
		Desc:   "Change nothing. Sometimes that is the move.",
		Effect: func(s *state.State, r *rng.RNG) Result {
			s.Stress -= 8
			s.Burnout -= 6
			s.Discipline -= 0.01
			s.ClampGauges()
			return ok("A quiet year. Nothing changed, and that helped.")
		},
	},
	{
		ID:     "emergency_fund",
		Name:   "Build Emergency Fund",
		Type:   TypeDefense,
		Rarity: RarityCommon,
		Tags:   []string{"stability", "expenses"},
		Desc:   "Park 2,500 somewhere boring to blunt the next shock.",
		Eligible: func(s *state.State) bool {
			return s.Flag(state.FlagEmergencyFund) < 3
		},
		Effect: func(s *state.State, r *rng.RNG) Result {
			if s.Cash < 2500 {
				return declined("not enough cash to set aside")
			}
			s.Cash -= 2500
			s.AddFlag(state.FlagEmergencyFund, 1, 3)
			s.Stress -= 5
			s.Discipline += 0.02
			s.ClampGauges()
			return ok("Emergency fund topped up. Shocks hit softer now.")
		},
	},
	{
		ID:     "auto_invest_plan",
		Name:   "Automate Investing",
		Type:   TypeMoney,
		Rarity: RarityUncommon,
		Tags:   []string{"investing", "discipline"},
		Desc:   "A standing order the future you cannot forget to make.",
		Eligible: func(s *state.State) bool {
			return s.Flag(state.FlagAutoInvest) < 5
		},
		Effect: func(s *state.State, r *rng.RNG) Result {
			s.AddFlag(state.FlagAutoInvest, 1, 5)
			s.Discipline += 0.04
			s.Stress -= 1
			s.ClampGauges()
			return ok(fmt.Sprintf("Auto-invest level %.0f: money moves before you see it.", s.Flag(state.FlagAutoInvest)))
		},
	},
	{
		ID:            "refinance",
		Name:          "Refinance Debt",
		Type:          TypeDefense,
		Rarity:        RarityUncommon,
		Tags:          []string{"debt"},
		Desc:          "Pay closing costs now for a lower rate every year after.",
		CooldownYears: 3,
		Eligible: func(s *state.State) bool {
			return s.Debt > 10000 && s.Flag(state.FlagRefiLevel) < 2
		},
		Effect: func(s *state.State, r *rng.RNG) Result {
			if s.Cash < 1500 {
				return declined("cannot cover closing costs")
			}
			s.Cash -= 1500
			s.AddFlag(state.FlagRefiLevel, 1, 2)
			s.Stress -= 4
			s.ClampGauges()
			return ok("Refinanced. The interest meter spins slower.")
		},
	},
	{
		ID:     "insurance_plan",
		Name:   "Upgrade Insurance",
		Type:   TypeDefense,
		Rarity: RarityUncommon,
		Tags:   []string{"stability"},
		Desc:   "Premiums now, smaller medical bills later.",
		Eligible: func(s *state.State) bool {
			return s.Flag(state.FlagInsuranceLevel) < 2
		},
		Effect: func(s *state.State, r *rng.RNG) Result {
			if s.Cash < 1200 {
				return declined("cannot cover the premium")
			}
			s.Cash -= 1200
			s.AddFlag(state.FlagInsuranceLevel, 1, 2)
			s.Stress -= 3
			s.ClampGauges()
			return ok("Better coverage. Hospital math hurts less now.")
		},
	},
	{
		ID:            "therapy",
		Name:          "Therapy",
		Type:          TypeLifestyle,
		Rarity:        RarityUncommon,
		Tags:          []string{"recovery"},
		Desc:          "1,500 well spent.",
		CooldownYears: 2,
		Effect: func(s *state.State, r *rng.RNG) Result {
			if s.Cash < 1500 {
				return declined("cannot afford the sessions")
			}
			s.Cash -= 1500
			s.Stress -= 18
			s.Burnout -= 12
			s.ClampGauges()
			return ok("A year of therapy. The numbers feel less like a verdict.")
		},
	},
	{
		ID:     "career_course",
		Name:   "Professional Course",
		Type:   TypeCareer,
		Rarity: RarityUncommon,
		Tags:   []string{"career", "income", "burnout"},
		Desc:   "Nights studying, then a better title.",
		Effect: func(s *state.State, r *rng.RNG) Result {
			if s.Cash < 2500 {
				return declined("cannot cover tuition")
			}
			gain := r.Between(3000, 8000)
			s.Cash -= 2500
			s.Income += gain
			s.AddFlag(state.FlagCareerMomentum, 1, 5)
			s.Burnout += 5
			s.ClampGauges()
			return ok(fmt.Sprintf("Certified. Income up %.0f/yr.", gain))
		},
	},
	{
		ID:     PanicSellID,
		Name:   "Panic Sell Everything",
		Type:   TypeWildcard,
		Rarity: RarityUncommon,
		Tags:   []string{"panic"},
		Desc:   "Liquidate the whole portfolio at a spread, sleep tonight.",
		Eligible: func(s *state.State) bool {
			return s.Invested > 0
		},
		Effect: func(s *state.State, r *rng.RNG) Result {
			proceeds := s.Invested * 0.94
			s.Cash += proceeds
			s.Invested = 0
			s.AddFlag(state.FlagRegretDrag, 1, 3)
			s.Stress -= 10
			s.Risk -= 0.05
			s.ClampGauges()
			return ok(fmt.Sprintf("Sold it all for %.0f. Relief now, regret later.", proceeds))
		},
	},
	{
		ID:     "buy_rental",
		Name:   "Buy Rental Property",
		Type:   TypeOwnership,
		Rarity: RarityRare,
		Tags:   []string{"ownership", "leverage", "property"},
		Desc:   "12,000 down, a mortgage, and a tenant.",
		Eligible: func(s *state.State) bool {
			return s.Cash >= 12000
		},
		Effect: func(s *state.State, r *rng.RNG) Result {
			if s.Cash < 12000 {
				return declined("down payment no longer covered")
			}
			mortgage := r.Between(60000, 80000)
			rent := r.Between(800, 3600)
			s.Cash -= 12000
			s.Debt += mortgage
			s.RentalUnits++
			s.Income += rent
			s.Stress += 10
			s.Risk += 0.06
			s.AddFlag(state.FlagPropertyExposure, 1, 5)
			s.ClampGauges()
			return ok(fmt.Sprintf("Closed on a rental: %.0f mortgage, %.0f/yr rent.", mortgage, rent))
		},
	},
	{
		ID:     "start_business",
		Name:   "Start A Business",
		Type:   TypeOwnership,
		Rarity: RarityRare,
		Tags:   []string{"hustle", "leverage"},
		Desc:   "8,000 of savings and most of your evenings.",
		Eligible: func(s *state.State) bool {
			return s.Flag(state.FlagBusinessLevel) < 5
		},
		Effect: func(s *state.State, r *rng.RNG) Result {
			if s.Cash < 8000 {
				return declined("not enough seed money")
			}
			gain := r.Between(2000, 12000)
			s.Cash -= 8000
			s.AddFlag(state.FlagBusinessLevel, 1, 5)
			s.Income += gain
			s.Risk += 0.08
			s.Burnout += 10
			s.ClampGauges()
			return ok(fmt.Sprintf("Business running: +%.0f/yr, plus a second job's worth of worry.", gain))
		},
	},
	{
		ID:     "crypto_moonshot",
		Name:   "Crypto Moonshot",
		Type:   TypeWildcard,
		Rarity: RarityRare,
		Tags:   []string{"leverage", "gamble"},
		Desc:   "Stake up to 5,000 on a coin you heard about at a party.",
		Effect: func(s *state.State, r *rng.RNG) Result {
			stake := math.Min(s.Cash, 5000)
			if stake < 500 {
				return declined("stake would be too small to matter")
			}
			mult := r.Between(0.1, 3.0)
			payout := stake * mult
			s.Cash += payout - stake
			s.Risk += 0.10
			s.Stress += 8
			if mult < 1 {
				s.AddFlag(state.FlagRegretDrag, 1, 3)
			}
			s.ClampGauges()
			if mult >= 1 {
				return ok(fmt.Sprintf("Staked %.0f, cashed out %.0f.", stake, payout))
			}
			return ok(fmt.Sprintf("Staked %.0f, limped out with %.0f.", stake, payout))
		},
	},
	{
		ID:      "sabbatical",
		Name:    "Take A Sabbatical",
		Type:    TypeLifestyle,
		Rarity:  RarityRare,
		Tags:    []string{"recovery"},
		Desc:    "A quarter of a year's income buys a year of air.",
		Exhaust: true,
		Effect: func(s *state.State, r *rng.RNG) Result {
			cost := s.Income * 0.25
			if s.Cash < cost {
				return declined("cannot afford the time off")
			}
			s.Cash -= cost
			s.Stress -= 30
			s.Burnout -= 35
			s.AddFlag(state.FlagCareerMomentum, -1, 5)
			s.Discipline += 0.02
			s.ClampGauges()
			return ok(fmt.Sprintf("Spent %.0f on a real break. It worked.", cost))
		},
	},
	{
		ID:      "startup_exit",
		Name:    "Sell The Business",
		Type:    TypeWildcard,
		Rarity:  RarityLegendary,
		Tags:    []string{"leverage", "hustle"},
		Desc:    "Someone wants to buy what you built.",
		Exhaust: true,
		Eligible: func(s *state.State) bool {
			return s.Flag(state.FlagBusinessLevel) >= 2
		},
		Effect: func(s *state.State, r *rng.RNG) Result {
			level := s.Flag(state.FlagBusinessLevel)
			payout := r.Between(20000, 50000) * level
			s.Cash += payout
			s.Income = math.Max(0, s.Income-level*2000)
			s.SetFlag(state.FlagBusinessLevel, 0)
			s.Stress -= 12
			s.Burnout -= 10
			s.ClampGauges()
			return ok(fmt.Sprintf("Sold the business for %.0f.", payout))
		},
	},
}

var byID = func() map[string]*Card {
	m := make(map[string]*Card, len(Catalog))
	for _, c := range Catalog {
		m[c.ID] = c
	}
	return m
}()

// ByID looks a card up in the catalog.
func ByID(id string) (*Card, bool) {
	c, ok := byID[id]
	return c, ok
}

// AllIDs returns every catalog id, in catalog order.
func AllIDs() []string {
	ids := make([]string, len(Catalog))
	for i, c := range Catalog {
		ids[i] = c.ID
	}
	return ids
}
