package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneydeck/internal/rng"
	"moneydeck/internal/state"
)

func newUnlockedState(cfg state.Config) *state.State {
	s := state.New(cfg)
	s.Unlock(AllIDs()...)
	return s
}

func TestCatalogShape(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Catalog {
		require.NotEmpty(t, c.ID)
		require.False(t, seen[c.ID], "duplicate card id %s", c.ID)
		seen[c.ID] = true
		require.NotNil(t, c.Effect, "%s has no effect", c.ID)
		require.NotEmpty(t, c.Name)
	}

	_, found := ByID(DoNothingID)
	assert.True(t, found)
	_, found = ByID(PanicSellID)
	assert.True(t, found)
	assert.Len(t, Catalog, 18)
}

func TestIndexInvestingMovesCappedCash(t *testing.T) {
	r := rng.New("t")

	t.Run("caps at 6000", func(t *testing.T) {
		s := newUnlockedState(state.Config{Cash: state.F(10000)})
		out := Apply(s, r, "index_investing")
		require.True(t, out.OK)
		assert.Equal(t, 4000.0, s.Cash)
		assert.Equal(t, 6000.0, s.Invested)
		assert.InDelta(t, 0.52, s.Discipline, 1e-9)
	})

	t.Run("caps at available cash", func(t *testing.T) {
		s := newUnlockedState(state.Config{Cash: state.F(1500)})
		out := Apply(s, r, "index_investing")
		require.True(t, out.OK)
		assert.Equal(t, 0.0, s.Cash)
		assert.Equal(t, 1500.0, s.Invested)
	})

	t.Run("declines with no cash", func(t *testing.T) {
		s := newUnlockedState(state.Config{Cash: state.F(0)})
		out := Apply(s, r, "index_investing")
		assert.False(t, out.OK)
		assert.Equal(t, 0.0, s.Invested)
	})
}

func TestPayDownDebt(t *testing.T) {
	r := rng.New("t")

	s := newUnlockedState(state.Config{Cash: state.F(10000), Debt: state.F(3000)})
	out := Apply(s, r, "pay_down_debt")
	require.True(t, out.OK)
	assert.Equal(t, 7000.0, s.Cash, "payment capped by debt")
	assert.Equal(t, 0.0, s.Debt)

	s = newUnlockedState(state.Config{Cash: state.F(10000), Debt: state.F(40000)})
	out = Apply(s, r, "pay_down_debt")
	require.True(t, out.OK)
	assert.Equal(t, 5000.0, s.Cash, "payment capped at 5000")
	assert.Equal(t, 35000.0, s.Debt)

	s = newUnlockedState(state.Config{Debt: state.F(0)})
	out = Apply(s, r, "pay_down_debt")
	assert.False(t, out.OK, "no debt means not eligible")
}

func TestBuyRental(t *testing.T) {
	r := rng.New("rental")
	s := newUnlockedState(state.Config{Cash: state.F(20000)})

	out := Apply(s, r, "buy_rental")
	require.True(t, out.OK)
	assert.Equal(t, 8000.0, s.Cash)
	assert.Equal(t, 1, s.RentalUnits)
	assert.GreaterOrEqual(t, s.Debt, 60000.0)
	assert.Less(t, s.Debt, 80000.0)
	assert.GreaterOrEqual(t, s.Income, 42000.0+800)
	assert.Less(t, s.Income, 42000.0+3600)
	assert.Equal(t, 1.0, s.Flag(state.FlagPropertyExposure))

	poor := newUnlockedState(state.Config{Cash: state.F(500)})
	out = Apply(poor, r, "buy_rental")
	assert.False(t, out.OK)
	assert.Equal(t, 0, poor.RentalUnits)
}

func TestPanicSellLiquidatesAtSpread(t *testing.T) {
	r := rng.New("t")
	s := newUnlockedState(state.Config{Cash: state.F(0), Invested: state.F(10000)})

	out := Apply(s, r, PanicSellID)
	require.True(t, out.OK)
	assert.Equal(t, 9400.0, s.Cash)
	assert.Equal(t, 0.0, s.Invested)
	assert.Equal(t, 1.0, s.Flag(state.FlagRegretDrag))
}

func TestSabbaticalExhausts(t *testing.T) {
	r := rng.New("t")
	s := newUnlockedState(state.Config{Cash: state.F(50000)})

	out := Apply(s, r, "sabbatical")
	require.True(t, out.OK)
	assert.Equal(t, 50000.0-42000*0.25, s.Cash)
	assert.True(t, s.Meta.Exhausted["sabbatical"])

	out = Apply(s, r, "sabbatical")
	assert.False(t, out.OK, "exhausted cards can succeed at most once per run")
}

func TestEffectDeclineDoesNotMarkCooldown(t *testing.T) {
	r := rng.New("t")
	s := newUnlockedState(state.Config{Cash: state.F(100), Debt: state.F(50000)})

	// refinance is eligible (debt over 10000) but cannot cover closing
	// costs, so the effect declines and no cooldown is set.
	out := Apply(s, r, "refinance")
	assert.False(t, out.OK)
	_, cooling := s.Meta.Cooldowns["refinance"]
	assert.False(t, cooling)
}
