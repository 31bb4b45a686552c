package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"hetcal/adapters/hetero"
	"hetcal/adapters/kernel"
	"hetcal/app"
	"hetcal/internal"
	"hetcal/internal/config"
	"hetcal/ports"
	"hetcal/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		internal.DefaultLogger.Debug("no .env file loaded: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:   "hetcal",
		Short: "Monte Carlo calibration of heteroscedasticity tests on kernel regression residuals",
	}

	rootCmd.AddCommand(
		newCalibrateCmd(),
		newPowerCurveCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCalibrateCmd() *cobra.Command {
	var nSamples, nTrials, workers int
	var alpha, bandwidth float64

	cmd := &cobra.Command{
		Use:   "calibrate [tests...]",
		Short: "Measure empirical size and power for heteroscedasticity tests",
		Long: `Run Monte Carlo calibration for one or more heteroscedasticity tests.

Each test is run against a homoscedastic null (nonlinear sine mean, constant
noise) to measure its false positive rate, and against a moderate trumpet
alternative to measure its detection rate. With no arguments all four tests
are calibrated.

Example: hetcal calibrate breusch_pagan dette_munk_wagner --trials 500`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyRunFlags(cmd, &cfg.Run, nSamples, nTrials, workers, alpha, bandwidth)

			tests, err := resolveTests(args)
			if err != nil {
				return err
			}

			svc := app.NewCalibrationService(newEngine(cfg), internal.DefaultLogger)
			results, err := svc.ClassifyAll(cmd.Context(), tests, app.CalibrationRequest{
				NSamples:  cfg.Run.NSamples,
				NTrials:   cfg.Run.NTrials,
				Alpha:     cfg.Run.Alpha,
				Bandwidth: cfg.Run.Bandwidth,
			})
			if err != nil {
				return err
			}

			renderer := ui.NewRenderer()
			fmt.Print(renderer.RenderSummary(results))
			fmt.Print(renderer.RenderAnalysis(results))
			return nil
		},
	}

	bindRunFlags(cmd, &nSamples, &nTrials, &workers, &alpha, &bandwidth)
	return cmd
}

func newPowerCurveCmd() *cobra.Command {
	var nSamples, nTrials, workers, sweepTrials int
	var alpha, bandwidth float64

	cmd := &cobra.Command{
		Use:   "power-curve [test]",
		Short: "Sweep effect strengths and report the detection-rate curve",
		Long: `Sweep the trumpet effect strength for one test and report the detection
rate at each strength. Strength 0 routes through the null scenario, so the
curve's first point is the test's empirical size.

Example: hetcal power-curve dette_munk_wagner --sweep-trials 200`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyRunFlags(cmd, &cfg.Run, nSamples, nTrials, workers, alpha, bandwidth)
			if cmd.Flags().Changed("sweep-trials") {
				cfg.Sweep.NTrials = sweepTrials
			}

			test := ports.TestDetteMunkWagner
			if len(args) == 1 {
				test = ports.TestID(args[0])
			}

			svc := app.NewPowerCurveService(newEngine(cfg), internal.DefaultLogger)
			curve, err := svc.Sweep(cmd.Context(), app.SweepRequest{
				TestID:    test,
				Strengths: cfg.Sweep.Strengths,
				NSamples:  cfg.Run.NSamples,
				NTrials:   cfg.Sweep.NTrials,
				Alpha:     cfg.Run.Alpha,
				Bandwidth: cfg.Run.Bandwidth,
			})
			if err != nil {
				return err
			}

			fmt.Print(ui.NewRenderer().RenderPowerCurve(test, curve))
			return nil
		},
	}

	bindRunFlags(cmd, &nSamples, &nTrials, &workers, &alpha, &bandwidth)
	cmd.Flags().IntVar(&sweepTrials, "sweep-trials", 200, "Trials per strength")
	return cmd
}

func newEngine(cfg *config.Config) *app.TrialEngine {
	return app.NewTrialEngine(kernel.New(), hetero.NewEngine(), cfg.Run.Workers, internal.DefaultLogger)
}

func resolveTests(args []string) ([]ports.TestID, error) {
	if len(args) == 0 {
		return ports.AllTests(), nil
	}
	tests := make([]ports.TestID, 0, len(args))
	for _, a := range args {
		t := ports.TestID(a)
		if !t.Valid() {
			return nil, fmt.Errorf("unknown test %q (valid: %v)", a, ports.AllTests())
		}
		tests = append(tests, t)
	}
	return tests, nil
}

func bindRunFlags(cmd *cobra.Command, nSamples, nTrials, workers *int, alpha, bandwidth *float64) {
	cmd.Flags().IntVar(nSamples, "samples", 200, "Sample size per trial")
	cmd.Flags().IntVar(nTrials, "trials", 500, "Monte Carlo trials per arm")
	cmd.Flags().IntVar(workers, "workers", 0, "Parallel trial workers (0 = one per CPU)")
	cmd.Flags().Float64Var(alpha, "alpha", 0.05, "Nominal significance level")
	cmd.Flags().Float64Var(bandwidth, "bandwidth", 0.1, "Kernel bandwidth")
}

func applyRunFlags(cmd *cobra.Command, run *config.RunConfig, nSamples, nTrials, workers int, alpha, bandwidth float64) {
	if cmd.Flags().Changed("samples") {
		run.NSamples = nSamples
	}
	if cmd.Flags().Changed("trials") {
		run.NTrials = nTrials
	}
	if cmd.Flags().Changed("workers") {
		run.Workers = workers
	}
	if cmd.Flags().Changed("alpha") {
		run.Alpha = alpha
	}
	if cmd.Flags().Changed("bandwidth") {
		run.Bandwidth = bandwidth
	}
}
