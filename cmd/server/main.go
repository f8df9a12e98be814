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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/codyseavey/sneaker-tracker/internal/api"
	"github.com/codyseavey/sneaker-tracker/internal/catalog"
	"github.com/codyseavey/sneaker-tracker/internal/config"
	"github.com/codyseavey/sneaker-tracker/internal/logging"
	"github.com/codyseavey/sneaker-tracker/internal/services"
	"github.com/codyseavey/sneaker-tracker/internal/storage"
)

const shutdownTimeout = 30 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	verbose    bool

	cfg config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "sneaker-tracker",
		Short:        "Track sneaker prices, a watchlist and your own inventory",
		SilenceUsage: true,
		RunE:         a.runServe,
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.setup()
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if a.log != nil {
			_ = a.log.Sync()
		}
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", os.Getenv("SNEAKER_CONFIG"), "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(a.serveCmd())
	rootCmd.AddCommand(a.listCmd())
	rootCmd.AddCommand(a.inventoryCmd())
	rootCmd.AddCommand(a.showCmd())
	rootCmd.AddCommand(a.watchCmd())
	rootCmd.AddCommand(a.addCmd())
	rootCmd.AddCommand(a.brandsCmd())
	return rootCmd
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Logging.Level, a.verbose)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

// openTracker opens the configured store and loads the tracker from it.
// The returned close func releases the store.
func (a *app) openTracker(ctx context.Context) (*services.Tracker, func(), error) {
	store, err := storage.Open(ctx, a.cfg.Storage, a.log)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			a.log.Warn("Failed to close storage", zap.Error(err))
		}
	}

	repo := storage.NewRepository(store, catalog.IsBaseID)
	tracker, err := services.NewTracker(ctx, catalog.BaseShoes(), repo, services.TrackerOptions{
		DetailCacheSize: a.cfg.View.DetailCacheSize,
		Logger:          a.log,
	})
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return tracker, closeStore, nil
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE:  a.runServe,
	}
}

func (a *app) runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	tracker, closeStore, err := a.openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if !a.verbose && a.cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.SetupRouter(tracker, a.cfg.Server, a.log)

	srv := &http.Server{
		Addr:              ":" + a.cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info("Starting server", zap.String("port", a.cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		a.log.Info("Shutting down server...")

		// Give outstanding requests a deadline to complete
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.log.Warn("Server forced to shutdown", zap.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.log.Info("Server exited")
	return nil
}
