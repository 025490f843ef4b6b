// Command sim runs batches of autonomous simulations for balance tuning:
// same policy, many seeds, aggregate outcomes.
package main

import (
	"flag"
	"fmt"
	"log"
	"sort"

	"moneydeck/internal/config"
	"moneydeck/internal/engine"
	"moneydeck/internal/state"
)

func main() {
	var (
		seeds = flag.Int("seeds", 100, "number of seeds to simulate")
		years = flag.Int("years", 0, "years per run (0 = balance default)")
		seed  = flag.String("seed", "", "run a single named seed and dump its history")
	)
	flag.Parse()

	balance := config.BalanceFromEnv()
	runYears := balance.Years
	if *years > 0 {
		runYears = *years
	}
	initial := initialFromBalance(balance)

	if *seed != "" {
		out := engine.Run(engine.Params{Seed: *seed, Years: runYears, Initial: initial})
		for _, snap := range out.History {
			fmt.Printf("year %2d  net %10.0f  cash %9.0f  invested %9.0f  debt %9.0f  stress %3.0f  burnout %3.0f\n",
				snap.Year, snap.NetWorth, snap.Cash, snap.Invested, snap.Debt, snap.Stress, snap.Burnout)
		}
		fmt.Printf("ending: %s after %d year(s)\n", out.Ending, len(out.History))
		return
	}

	if *seeds <= 0 {
		log.Fatal("seeds must be positive")
	}

	endings := map[string]int{}
	worths := make([]float64, 0, *seeds)
	for i := 0; i < *seeds; i++ {
		out := engine.Run(engine.Params{
			Seed:    fmt.Sprintf("batch-%04d", i),
			Years:   runYears,
			Initial: initial,
		})
		endings[out.Ending]++
		worths = append(worths, out.Final.NetWorth)
	}

	sort.Float64s(worths)
	total := 0.0
	for _, w := range worths {
		total += w
	}

	fmt.Printf("%d runs over %d years\n", *seeds, runYears)
	fmt.Printf("  mean net worth:   %12.0f\n", total/float64(len(worths)))
	fmt.Printf("  median net worth: %12.0f\n", worths[len(worths)/2])
	fmt.Printf("  worst / best:     %12.0f / %.0f\n", worths[0], worths[len(worths)-1])
	for _, end := range []string{engine.EndingHorizon, engine.EndingBankrupt, engine.EndingCollapse} {
		fmt.Printf("  %-9s %d\n", end+":", endings[end])
	}
}

func initialFromBalance(b config.Balance) state.Config {
	return state.Config{
		Cash:     state.F(b.StartCash),
		Debt:     state.F(b.StartDebt),
		Income:   state.F(b.StartIncome),
		Expenses: state.F(b.StartExpenses),
		Stress:   state.F(b.StartStress),
		Burnout:  state.F(b.StartBurnout),
	}
}
