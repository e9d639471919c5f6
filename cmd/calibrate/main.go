// Package main fits damping and drift with Nelder-Mead so a pointer-free
// field reaches a requested equilibrium speed and horizontal half-life.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/drift/config"
)

// evalRecord is one row of calibrate_log.csv.
type evalRecord struct {
	Eval     int     `csv:"eval"`
	Fitness  float64 `csv:"fitness"`
	Damping  float64 `csv:"damping"`
	Drift    float64 `csv:"drift"`
	VY       float64 `csv:"vy"`
	HalfLife float64 `csv:"half_life"`
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config file (empty = use defaults)")
	targetVY := flag.Float64("target-vy", -0.1, "Equilibrium mean vertical velocity")
	targetHalfLife := flag.Float64("target-half-life", 34.3, "Ticks for horizontal velocity spread to halve")
	ticks := flag.Int("ticks", 600, "Ticks per measurement")
	seed := flag.Int64("seed", 42, "RNG seed for every measurement")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for the evaluation log and best config (empty = stdout only)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	params := NewParamVector()
	evaluator := NewFitnessEvaluator(params, baseCfg, Target{VY: *targetVY, HalfLife: *targetHalfLife}, *ticks, *seed)

	var records []evalRecord
	var bestFitness = 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)
			m := evaluator.Last()

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = append(bestParams[:0], raw...)
			}
			records = append(records, evalRecord{
				Eval:     len(records) + 1,
				Fitness:  fitness,
				Damping:  raw[0],
				Drift:    raw[1],
				VY:       m.VY,
				HalfLife: m.HalfLife,
			})
			fmt.Printf("Eval %d/%d: damping=%.5f drift=%.5f vy=%.4f half_life=%.1f fitness=%.6f\n",
				len(records), *maxEvals, raw[0], raw[1], m.VY, m.HalfLife, fitness)
			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-10,
			Iterations: 30,
		},
	}

	fmt.Printf("Calibrating %d parameters towards vy=%.4f half_life=%.1f (%d ticks per run)\n",
		params.Dim(), *targetVY, *targetHalfLife, *ticks)

	initX := params.Normalize(params.FromConfig(baseCfg))
	result, err := optimize.Minimize(problem, initX, settings, &optimize.NelderMead{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "optimization ended: %v\n", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Denormalize(result.X)
	}
	if bestParams == nil {
		os.Exit(1)
	}

	fmt.Printf("\nCalibration complete after %d evaluations in %s\n", len(records), time.Since(startTime).Round(time.Millisecond))
	fmt.Printf("Best fitness: %.6g\n\n", bestFitness)
	fmt.Printf("physics:\n  damping: %.6f\n  drift: %.6f\n", bestParams[0], bestParams[1])

	if *outputDir == "" {
		return
	}
	if err := writeOutput(*outputDir, *configPath, params, bestParams, records); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nResults saved to: %s\n", *outputDir)
}

// writeOutput saves the evaluation log and the best config.
func writeOutput(dir, configPath string, params *ParamVector, best []float64, records []evalRecord) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "calibrate_log.csv"))
	if err != nil {
		return fmt.Errorf("creating log: %w", err)
	}
	defer f.Close()
	if err := gocsv.Marshal(records, f); err != nil {
		return fmt.Errorf("writing log: %w", err)
	}

	bestCfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	params.ApplyToConfig(bestCfg, best)
	return bestCfg.WriteYAML(filepath.Join(dir, "best_config.yaml"))
}
