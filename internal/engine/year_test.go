package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneydeck/internal/card"
	"moneydeck/internal/rng"
	"moneydeck/internal/state"
)

func TestApplyYearlyCashflowShortfall(t *testing.T) {
	s := state.New(state.Config{
		Cash:     state.F(0),
		Debt:     state.F(0),
		Income:   state.F(0),
		Expenses: state.F(1000),
		Stress:   state.F(40),
	})

	ApplyYearlyCashflow(s)

	assert.Equal(t, 0.0, s.Cash)
	assert.InDelta(t, 1050.0, s.Debt, 1e-9, "shortfall rolls into debt at 1.05x with no buff")
	assert.Equal(t, 50.0, s.Stress, "the squeeze costs exactly 10 stress")
}

func TestApplyYearlyCashflowBuffered(t *testing.T) {
	s := state.New(state.Config{
		Cash:     state.F(0),
		Income:   state.F(0),
		Expenses: state.F(1000),
	})
	s.SetFlag(state.FlagEmergencyFund, 3)

	ApplyYearlyCashflow(s)

	// max buff shaves 21% off the shortfall before the 1.05x penalty
	assert.InDelta(t, 1000*0.79*1.05, s.Debt, 1e-9)
}

func TestApplyYearlyCashflowSurplus(t *testing.T) {
	s := state.New(state.Config{Cash: state.F(100), Income: state.F(5000), Expenses: state.F(3000)})
	ApplyYearlyCashflow(s)
	assert.Equal(t, 2100.0, s.Cash)
	assert.Equal(t, 0.0, s.Debt)
}

func TestResolveLayoffCompounds(t *testing.T) {
	s := state.New(state.Config{Income: state.F(10000)})

	s.SetFlag(state.FlagLaidOff, 1)
	resolveLayoff(s)
	assert.InDelta(t, 5500.0, s.Income, 1e-9)
	assert.False(t, s.HasFlag(state.FlagLaidOff))

	// a second layoff multiplies the already-cut income
	s.SetFlag(state.FlagLaidOff, 1)
	resolveLayoff(s)
	assert.InDelta(t, 3025.0, s.Income, 1e-9)
}

func TestDebtInterest(t *testing.T) {
	t.Run("base rate", func(t *testing.T) {
		s := state.New(state.Config{Cash: state.F(10000), Debt: state.F(1000), Stress: state.F(0)})
		applyDebtInterest(s)
		assert.InDelta(t, 1100.0, s.Debt, 1e-9)
	})

	t.Run("stress and low cash push the rate up", func(t *testing.T) {
		s := state.New(state.Config{Cash: state.F(0), Debt: state.F(1000), Stress: state.F(100)})
		applyDebtInterest(s)
		// 10% + 6% + 3% = 19%
		assert.InDelta(t, 1190.0, s.Debt, 1e-9)
	})

	t.Run("refi discount", func(t *testing.T) {
		s := state.New(state.Config{Cash: state.F(10000), Debt: state.F(1000), Stress: state.F(0)})
		s.SetFlag(state.FlagRefiLevel, 2)
		applyDebtInterest(s)
		assert.InDelta(t, 1050.0, s.Debt, 1e-9)
	})
}

func TestMarketReturnBounds(t *testing.T) {
	r := rng.New("market")
	for i := 0; i < 2000; i++ {
		s := state.New(state.Config{Invested: state.F(1000)})
		rate := applyMarketReturn(s, r)
		require.GreaterOrEqual(t, rate, -0.45)
		require.LessOrEqual(t, rate, 0.45)
	}
}

func TestMarketReturnAlwaysConsumesFourDraws(t *testing.T) {
	r := rng.New("market-calls")
	s := state.New(state.Config{Invested: state.F(0)})
	applyMarketReturn(s, r)
	assert.Equal(t, int64(4), r.Calls(), "noise draws happen even with nothing invested")
}

func TestStepYearFirstYearSnapshot(t *testing.T) {
	// Seed RUN-001, default start, first two cards: after one year the
	// snapshot says year 1 and history holds one entry.
	r := rng.New("RUN-001")
	s := state.New(state.Config{})
	s.Unlock(card.AllIDs()...)

	hand := card.DrawHand(s, r, card.DrawOptions{})
	snap := StepYear(s, r, FirstTwo(s, hand), card.DrawOptions{})

	assert.Equal(t, 1, snap.Year)
	require.Len(t, s.History, 1)
	assert.Equal(t, 2, s.Year)
	assert.Len(t, snap.Cards, 2)
}

func TestStepYearIgnoresExtraCards(t *testing.T) {
	r := rng.New("extra")
	s := state.New(state.Config{})
	s.Unlock(card.AllIDs()...)

	snap := StepYear(s, r, []string{"coast", "index_investing", "side_hustle", "therapy"}, card.DrawOptions{})
	assert.Len(t, snap.Cards, 2, "cards beyond the second are ignored")
}

func TestStepYearNeverFails(t *testing.T) {
	r := rng.New("never-fails")
	s := state.New(state.Config{})
	// nothing unlocked: both plays fail, the year still completes
	snap := StepYear(s, r, []string{"coast", "sabbatical"}, card.DrawOptions{})
	require.Len(t, snap.Cards, 2)
	assert.False(t, snap.Cards[0].OK)
	assert.False(t, snap.Cards[1].OK)
	assert.Equal(t, 2, s.Year)
}

func TestGaugesStayClampedOverLongRuns(t *testing.T) {
	for seedN := 0; seedN < 20; seedN++ {
		r := rng.New(fmt.Sprintf("clamp-%d", seedN))
		s := state.New(state.Config{})
		s.Unlock(card.AllIDs()...)

		for year := 0; year < 1000; year++ {
			hand := card.DrawHand(s, r, card.DrawOptions{})
			StepYear(s, r, FirstTwo(s, hand), card.DrawOptions{})

			require.GreaterOrEqual(t, s.Stress, 0.0)
			require.LessOrEqual(t, s.Stress, 100.0)
			require.GreaterOrEqual(t, s.Burnout, 0.0)
			require.LessOrEqual(t, s.Burnout, 100.0)
			require.GreaterOrEqual(t, s.Risk, 0.0)
			require.LessOrEqual(t, s.Risk, 1.0)
			require.GreaterOrEqual(t, s.Discipline, 0.0)
			require.LessOrEqual(t, s.Discipline, 1.0)
		}
	}
}
