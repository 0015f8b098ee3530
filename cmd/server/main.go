package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "vacuumworld/internal/adapter/http"
	metricsinmem "vacuumworld/internal/adapter/metrics/inmemory"
	"vacuumworld/internal/adapter/observer/ws"
	"vacuumworld/internal/adapter/schema"
	"vacuumworld/internal/app/simulation"
	"vacuumworld/internal/config"
	"vacuumworld/internal/domain/mind"
	"vacuumworld/internal/logging"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var (
	configPath string
	logLevel   string
	autostart  bool
	migrate    bool
)

var rootCmd = &cobra.Command{
	Use:          "vacuumworld",
	Short:        "Turn-based vacuum world simulator with an HTTP control surface",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		logger, err := logging.New(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, logger)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file (VW_* env vars override it)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	rootCmd.Flags().BoolVar(&autostart, "autostart", false, "start the cycle runner immediately")
	rootCmd.Flags().BoolVar(&migrate, "migrate", false, "apply bundled postgres migrations on startup")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	st, err := buildStores(ctx, cfg, migrate, logger)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	hub := ws.NewHub(logger.Named("observer"))
	kpi := metricsinmem.NewRecorder()
	minds := mind.DefaultRegistry()
	sim := &simulation.Simulation{
		Config:    cfg.Environment(),
		Minds:     minds,
		TxManager: st.TxManager,
		Snapshots: st.Snapshots,
		CycleLog:  st.CycleLog,
		Metrics:   kpi,
		Publisher: hub,
		Validator: schema.MustSnapshotValidator(),
		Logger:    logger.Named("simulation"),
		Now:       time.Now,
	}
	if _, err := sim.Reseed(ctx, cfg.Seed()); err != nil {
		return fmt.Errorf("seed world: %w", err)
	}
	runner := simulation.NewRunner(sim, cfg.CycleDelay(), logger.Named("runner"))
	if autostart {
		if err := runner.Start(); err != nil {
			return err
		}
	}

	h := httpadapter.Handler{Sim: sim, Runner: runner, KPI: kpi, CORSOrigin: cfg.CORSOrigin}
	api := server.Default(server.WithHostPorts(cfg.HTTPAddr))
	h.RegisterRoutes(api)

	mux := http.NewServeMux()
	mux.Handle("/observe", hub.Handler())
	observer := &http.Server{Addr: cfg.ObserverAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("api listening", zap.String("addr", cfg.HTTPAddr))
		if err := api.Run(); err != nil && gctx.Err() == nil {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("observer listening", zap.String("addr", cfg.ObserverAddr))
		if err := observer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("observer server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		runner.Stop()
		hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Join(api.Shutdown(shutdownCtx), observer.Shutdown(shutdownCtx))
	})
	return g.Wait()
}
