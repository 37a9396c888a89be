package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matst80/slask-jewelry/pkg/cache"
	"github.com/matst80/slask-jewelry/pkg/catalog"
	"github.com/matst80/slask-jewelry/pkg/config"
	"github.com/matst80/slask-jewelry/pkg/logging"
	"github.com/matst80/slask-jewelry/pkg/tracking"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	apiURL     string
	verbose    bool

	app *application
)

// application is everything the commands share, built once per run.
type application struct {
	cfg     config.Config
	logger  *zap.Logger
	store   *cache.Cache
	client  *catalog.Client
	tracker tracking.Tracker
	closers []func() error
}

func newApplication(cfg config.Config) (*application, error) {
	logger, err := logging.New(cfg.Logging.Mode, cfg.Logging.Verbose || verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	a := &application{cfg: cfg, logger: logger, tracker: tracking.Nop{}}

	if cfg.Redis.Addr != "" {
		a.store = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	} else {
		a.store = cache.NewMemory()
	}
	a.closers = append(a.closers, a.store.Close)

	a.client = catalog.NewClient(cfg.API.BaseURL,
		catalog.WithTimeout(cfg.HTTPTimeout()),
		catalog.WithCache(a.store),
		catalog.WithLogger(logger))

	if cfg.Tracking.RabbitURL != "" {
		rt, err := tracking.NewRabbitTracking(cfg.Tracking.RabbitURL, cfg.Tracking.Country, logger)
		if err != nil {
			logger.Warn("tracking disabled", zap.Error(err))
		} else {
			a.tracker = rt
			a.closers = append(a.closers, rt.Close)
		}
	}
	return a, nil
}

func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Debug("close failed", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

var rootCmd = &cobra.Command{
	Use:   "jewelry",
	Short: "Browse the jewelry storefront catalog from the terminal",
	Long: `jewelry drives the storefront browsing core against a product API.

Filters, sort and paging are expressed the same way the storefront URL does,
and every command prints the resulting query string so it can be reused.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if apiURL != "" {
			cfg.API.BaseURL = apiURL
		}
		app, err = newApplication(cfg)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			app.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Config file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Product API base URL (or set JEWELRY_API_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(diamondsCmd)
	rootCmd.AddCommand(jewelryCmd)
	rootCmd.AddCommand(productCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(eventsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
