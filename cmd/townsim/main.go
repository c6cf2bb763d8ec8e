package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	logger := log.New(os.Stdout, "[townsim] ", log.LstdFlags|log.Lmicroseconds)

	rootCmd := &cobra.Command{
		Use:          "townsim",
		Short:        "Day-stepped town economy simulation",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(runCmd(logger))
	rootCmd.AddCommand(validateCmd(logger))
	rootCmd.AddCommand(replayCmd(logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Printf("error: %v", err)
		stop()
		os.Exit(1)
	}
}

func runCmd(logger *log.Logger) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation and write day and audit logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := runSim(cmd.Context(), logger, opts)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.TuningPath, "tuning", "./configs/tuning.yaml", "economy tuning file (empty for defaults)")
	f.StringVar(&opts.ScenarioPath, "scenario", "./configs/scenario.yaml", "starting population file")
	f.IntVar(&opts.Days, "days", 0, "days to simulate (0 uses the tuning file)")
	f.Int64Var(&opts.Seed, "seed", 0, "override the tuning seed")
	f.StringVar(&opts.OutDir, "out", "./data/runs", "directory for run output")
	f.StringVar(&opts.IndexPath, "index", "", "sqlite index path (empty disables)")
	f.BoolVar(&opts.Check, "check", false, "verify world invariants after every day")
	f.IntVar(&opts.ReportEvery, "report-every", 30, "log metrics every N days (0 disables)")
	return cmd
}

func validateCmd(logger *log.Logger) *cobra.Command {
	var tuningPath, scenarioPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check tuning and scenario files without running",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runValidate(logger, tuningPath, scenarioPath)
		},
	}

	cmd.Flags().StringVar(&tuningPath, "tuning", "./configs/tuning.yaml", "economy tuning file")
	cmd.Flags().StringVar(&scenarioPath, "scenario", "./configs/scenario.yaml", "starting population file")
	return cmd
}

func replayCmd(logger *log.Logger) *cobra.Command {
	var (
		dir    string
		verify bool
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Summarize a run directory and optionally re-simulate it to verify digests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReplay(cmd.Context(), logger, dir, verify)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "run directory written by `townsim run`")
	cmd.Flags().BoolVar(&verify, "verify", true, "re-simulate and compare day digests")
	_ = cmd.MarkFlagRequired("dir")
	return cmd
}
