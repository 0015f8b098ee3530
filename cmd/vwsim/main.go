package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	metricsinmem "vacuumworld/internal/adapter/metrics/inmemory"
	"vacuumworld/internal/adapter/repo/memory"
	"vacuumworld/internal/adapter/schema"
	"vacuumworld/internal/adapter/snapshotfile"
	"vacuumworld/internal/app/simulation"
	"vacuumworld/internal/domain/environment"
	"vacuumworld/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logLevel string
	cycles   int
	outPath  string
	minDim   int
	maxDim   int

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "vwsim",
	Short:         "Offline vacuum world runner",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(logLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run <snapshot>",
	Short: "Run cycles on a snapshot file and print the outcome counters",
	Long: `Loads a snapshot (.json or .json.zst), runs the requested number of
cycles and prints the outcome counters as JSON. With --out the final
snapshot is written back, compressed when the path ends in .json.zst.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := environment.Config{MinDim: minDim, MaxDim: maxDim}
		summary, err := runSnapshot(cmd.Context(), args[0], outPath, cycles, cfg, logger)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), summary)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <snapshot>...",
	Short: "Check snapshot files against the snapshot schema",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateFiles(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "debug, info, warn or error")
	runCmd.Flags().IntVarP(&cycles, "cycles", "n", 10, "number of cycles to run")
	runCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the final snapshot to this path")
	runCmd.Flags().IntVar(&minDim, "min-dim", environment.DefaultMinDim, "min_environment_dim")
	runCmd.Flags().IntVar(&maxDim, "max-dim", environment.DefaultMaxDim, "max_environment_dim")
	rootCmd.AddCommand(runCmd, validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "vwsim:", err)
		os.Exit(1)
	}
}

type runSummary struct {
	Tick    uint64                `json:"tick"`
	Cycles  int                   `json:"cycles"`
	Metrics metricsinmem.Snapshot `json:"metrics"`
}

func runSnapshot(ctx context.Context, in, out string, n int, cfg environment.Config, logger *zap.Logger) (runSummary, error) {
	if n < 0 {
		return runSummary{}, fmt.Errorf("cycles must not be negative, got %d", n)
	}
	payload, err := snapshotfile.ReadPayload(in)
	if err != nil {
		return runSummary{}, err
	}
	store := memory.NewStore()
	kpi := metricsinmem.NewRecorder()
	sim := &simulation.Simulation{
		Config:    cfg,
		TxManager: memory.NewTxManager(store),
		CycleLog:  memory.NewCycleLogRepo(store),
		Metrics:   kpi,
		Validator: schema.MustSnapshotValidator(),
		Logger:    logger,
	}
	if _, err := sim.Load(ctx, payload); err != nil {
		return runSummary{}, fmt.Errorf("%s: %w", in, err)
	}
	for i := 0; i < n; i++ {
		if _, err := sim.Cycle(ctx); err != nil {
			return runSummary{}, err
		}
	}
	final, err := sim.Snapshot(ctx)
	if err != nil {
		return runSummary{}, err
	}
	if out != "" {
		raw, err := json.Marshal(final.Snapshot)
		if err != nil {
			return runSummary{}, err
		}
		if err := snapshotfile.WritePayload(out, final.Tick, raw); err != nil {
			return runSummary{}, err
		}
		logger.Info("snapshot written", zap.String("path", out), zap.Uint64("tick", final.Tick))
	}
	return runSummary{Tick: final.Tick, Cycles: n, Metrics: kpi.Snapshot()}, nil
}

func validateFiles(w io.Writer, paths []string) error {
	v := schema.MustSnapshotValidator()
	var errs []error
	for _, path := range paths {
		payload, err := snapshotfile.ReadPayload(path)
		if err == nil {
			err = v.Validate(payload)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		fmt.Fprintf(w, "%s: ok\n", path)
	}
	return errors.Join(errs...)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
