package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"capital-engine/internal/chart"
	"capital-engine/internal/export"
	"capital-engine/internal/logger"
	"capital-engine/internal/simulation"
)

func main() {
	p := simulation.ScenarioParameters{}
	flag.IntVar(&p.Age, "age", 30, "Current age in years")
	flag.Float64Var(&p.InitialCapital, "capital", 10000, "Initial capital")
	flag.Float64Var(&p.MonthlyExpenses, "expenses", 2000, "Baseline monthly expenses")
	flag.Float64Var(&p.MonthlyInvestment, "invest", 2500, "Monthly contribution before retirement")
	flag.Float64Var(&p.AnnualInflation, "inflation", 0.02, "Annual inflation rate")
	flag.Float64Var(&p.VariableExpenseFraction, "variability", 0.1, "Half-width of the monthly expense band as a fraction")
	flag.Float64Var(&p.UnexpectedEventProbability, "event-prob", 0.05, "Annual probability of an unexpected expense")
	flag.Float64Var(&p.AnnualSalaryGrowth, "salary-growth", 0.03, "Annual contribution growth")
	flag.IntVar(&p.RetirementAge, "retire", 65, "Retirement age")
	flag.Float64Var(&p.InvestmentTaxRate, "tax", 0.26, "Tax rate on positive monthly gains")
	flag.IntVar(&p.HorizonYears, "years", simulation.DefaultHorizonYears, "Projection horizon in years")
	flag.IntVar(&p.NumTrajectories, "n", simulation.DefaultTrajectories, "Number of trajectories")
	profile := flag.String("profile", "medium", "Risk profile: low, medium or high")
	housing := flag.String("housing", "OWNED", "Housing: RENT, MORTGAGE or OWNED")
	seed := flag.Uint64("seed", 0, "Random seed, 0 picks one")
	workers := flag.Int("workers", 1, "Parallel workers")
	csvPath := flag.String("csv", "", "Write all trajectories to this CSV file")
	pngPath := flag.String("png", "", "Write a chart of all trajectories to this PNG file")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Level: level, Pretty: true, Out: os.Stderr})

	rp, ok := simulation.ProfileByName(*profile)
	if !ok {
		log.Fatal().Str("profile", *profile).Msg("Unknown risk profile")
	}
	p = p.WithRiskProfile(rp)

	h, ok := simulation.ParseHousing(*housing)
	if !ok {
		log.Fatal().Str("housing", *housing).Msg("Unknown housing")
	}
	p.Housing = h

	if *seed == 0 {
		*seed = rand.Uint64()
	}

	eng, err := simulation.New(p, simulation.PCGStreams{Seed: *seed},
		simulation.WithWorkers(*workers),
		simulation.WithLogger(log),
	)
	if err != nil {
		for _, v := range simulation.Violations(err) {
			log.Error().Str("field", v.Field).Interface("value", v.Value).Msg(v.Reason)
		}
		log.Fatal().Err(err).Msg("Cannot run simulation")
	}

	ens := eng.Simulate()
	log.Info().Uint64("seed", *seed).Int("trajectories", len(ens)).Msg("Simulation finished")

	printSummary(simulation.Summarize(ens))

	if *csvPath != "" {
		writeFile(log, *csvPath, func(f *os.File) error { return export.WriteCSV(f, ens) })
	}
	if *pngPath != "" {
		writeFile(log, *pngPath, func(f *os.File) error { return chart.Render(f, ens, chart.DefaultOptions()) })
	}
}

func writeFile(log zerolog.Logger, path string, write func(*os.File) error) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Cannot create file")
	}
	if err := write(f); err != nil {
		f.Close()
		log.Fatal().Err(err).Str("path", path).Msg("Write failed")
	}
	if err := f.Close(); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Write failed")
	}
	log.Info().Str("path", path).Msg("Written")
}

func printSummary(s simulation.Summary) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)

	fmt.Fprint(w, "YEAR\tMEAN\t")
	for _, b := range s.Bands {
		fmt.Fprintf(w, "P%g\t", b.Percentile)
	}
	fmt.Fprintln(w)

	for m := 11; m < s.Months; m += 12 {
		fmt.Fprintf(w, "%d\t%.0f\t", (m+1)/12, s.MeanPath[m])
		for _, b := range s.Bands {
			fmt.Fprintf(w, "%.0f\t", b.Values[m])
		}
		fmt.Fprintln(w)
	}
	w.Flush()

	fmt.Println()
	fmt.Printf("Final capital   mean %.0f  sd %.0f  min %.0f  max %.0f\n", s.FinalMean, s.FinalStdDev, s.FinalMin, s.FinalMax)
	if s.DepletionMonth >= 0 {
		fmt.Printf("Depleted        %.0f%% of paths, median first month %d\n", s.DepletionProbability*100, s.DepletionMonth+1)
	} else {
		fmt.Println("Depleted        no path hit zero")
	}
}
