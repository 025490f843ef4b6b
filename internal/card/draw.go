package card

import (
	"moneydeck/internal/rng"
	"moneydeck/internal/state"
)

// DrawOptions tunes hand composition. Zero values mean the defaults.
type DrawOptions struct {
	RareChance float64 // chance of a bonus rare slot, default 0.28
	WildChance float64 // chance of a bonus wildcard slot, default 0.30
	MaxHand    int     // hard cap on hand size, default 8
}

func (o DrawOptions) withDefaults() DrawOptions {
	if o.RareChance == 0 {
		o.RareChance = 0.28
	}
	if o.WildChance == 0 {
		o.WildChance = 0.30
	}
	if o.MaxHand == 0 {
		o.MaxHand = 8
	}
	return o
}

// Playable reports whether a card can be chosen right now: unlocked this
// run, not exhausted, no active cooldown, and eligibility (if any) passes.
func Playable(s *state.State, c *Card) bool {
	m := s.EnsureMeta()
	if !m.Unlocked[c.ID] {
		return false
	}
	if m.Exhausted[c.ID] {
		return false
	}
	if m.Cooldowns[c.ID] > 0 {
		return false
	}
	if c.Eligible != nil && !c.Eligible(s) {
		return false
	}
	return true
}

// BiasWeight starts every card at 1.0 and compounds situational
// multipliers. Multiplication commutes, so the check order here is only
// cosmetic.
func BiasWeight(s *state.State, c *Card) float64 {
	w := 1.0
	if s.Stress > 70 && (c.Type == TypeDefense || c.HasTag("recovery")) {
		w *= 1.65
	}
	if s.Debt > 20000 {
		if c.HasTag("debt") {
			w *= 1.8
		}
		if c.HasTag("leverage") {
			w *= 0.75
		}
	}
	if s.Cash < 3000 {
		if c.HasTag("expenses") || c.HasTag("stability") || c.Type == TypeDefense {
			w *= 1.6
		}
		if c.HasTag("ownership") {
			w *= 0.4
		}
	}
	if s.Burnout > 75 {
		if c.HasTag("burnout") || c.HasTag("hustle") {
			w *= 0.55
		}
		if c.HasTag("recovery") || c.ID == DoNothingID {
			w *= 1.5
		}
	}
	if s.Invested > 15000 && c.ID == PanicSellID {
		w *= 1.15
	}
	return w
}

// PickWeighted draws one card from candidates by bias weight, or nil when
// nothing is drawable. A nil result consumes no rng draw.
func PickWeighted(s *state.State, r *rng.RNG, candidates []*Card) *Card {
	weights := make([]float64, len(candidates))
	for i, c := range candidates {
		weights[i] = BiasWeight(s, c)
	}
	i := r.WeightedIndex(weights)
	if i < 0 {
		return nil
	}
	return candidates[i]
}

// DrawHand builds the year's offer: four commons and two uncommons drawn
// without replacement, a rare slot and a wildcard slot that each fire on an
// independent chance, then a top-up from commons to at least six cards when
// pools allow. The draw order is fixed; changing it changes which rng calls
// each slot consumes and breaks seed reproducibility.
func DrawHand(s *state.State, r *rng.RNG, opts DrawOptions) []*Card {
	opts = opts.withDefaults()

	drawn := map[string]bool{}
	hand := []*Card{}

	take := func(c *Card) {
		if c == nil || drawn[c.ID] || len(hand) >= opts.MaxHand {
			return
		}
		drawn[c.ID] = true
		hand = append(hand, c)
	}
	pool := func(keep func(*Card) bool) []*Card {
		out := []*Card{}
		for _, c := range Catalog {
			if drawn[c.ID] || !Playable(s, c) {
				continue
			}
			if keep(c) {
				out = append(out, c)
			}
		}
		return out
	}
	commons := func(c *Card) bool { return c.Rarity == RarityCommon }

	for i := 0; i < 4; i++ {
		take(PickWeighted(s, r, pool(commons)))
	}
	for i := 0; i < 2; i++ {
		take(PickWeighted(s, r, pool(func(c *Card) bool { return c.Rarity == RarityUncommon })))
	}
	if r.Chance(opts.RareChance) {
		take(PickWeighted(s, r, pool(func(c *Card) bool { return c.Rarity == RarityRare })))
	}
	if r.Chance(opts.WildChance) {
		take(PickWeighted(s, r, pool(func(c *Card) bool { return c.Type == TypeWildcard })))
	}

	target := opts.MaxHand
	if target > 6 {
		target = 6
	}
	for len(hand) < target {
		c := PickWeighted(s, r, pool(commons))
		if c == nil {
			break
		}
		take(c)
	}

	return hand
}

// Apply plays one card by id. An unplayable card produces an ok:false
// outcome and no state change. Exhaust and cooldown are marked only when
// the effect itself succeeds; a declined effect leaves the card available.
func Apply(s *state.State, r *rng.RNG, id string) Outcome {
	c, found := ByID(id)
	if !found {
		return Outcome{OK: false, Reason: "unknown card: " + id}
	}
	if !Playable(s, c) {
		s.Logf("%s is not playable right now.", c.Name)
		return Outcome{Card: c, OK: false, Reason: "not playable"}
	}

	res := c.Effect(s, r)
	if !res.OK {
		s.Logf("%s fell through: %s.", c.Name, res.Reason)
		return Outcome{Card: c, OK: false, Reason: res.Reason}
	}

	m := s.EnsureMeta()
	if c.Exhaust {
		m.Exhausted[c.ID] = true
	}
	if c.CooldownYears > 0 {
		m.Cooldowns[c.ID] = c.CooldownYears
	}
	s.Logf("%s", res.Text)
	return Outcome{Card: c, OK: true, Text: res.Text}
}
