package main

import (
	"bytes"
	_ "embed"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/matst80/slask-jewelry/pkg/common"
	"github.com/matst80/slask-jewelry/pkg/config"
	"github.com/matst80/slask-jewelry/pkg/logging"
	"github.com/matst80/slask-jewelry/pkg/stubapi"
	"github.com/matst80/slask-jewelry/pkg/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//go:embed products.json
var sampleProducts []byte

var (
	configPath  string
	fixturePath string
	latency     time.Duration
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "stubapi",
	Short: "Serve the product search API from a JSON fixture",
	Long: `Serves GET /product/diamonds, /product/jewelry, /product/<category> and
/product/<category>/<id> from memory, plus /metrics and /healthz.

Without --fixture a small built-in catalog is used.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "Config file")
	rootCmd.Flags().StringVarP(&fixturePath, "fixture", "f", "", "Product fixture (JSON array or {products: [...]})")
	rootCmd.Flags().DurationVar(&latency, "latency", 0, "Artificial delay added to every response")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

func loadProducts() ([]types.Product, error) {
	if fixturePath == "" {
		return types.DecodeProducts(bytes.NewReader(sampleProducts))
	}
	f, err := os.Open(fixturePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return types.DecodeProducts(f)
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging.Mode, cfg.Logging.Verbose || verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	products, err := loadProducts()
	if err != nil {
		return fmt.Errorf("load fixture: %w", err)
	}
	logger.Info("loaded products", zap.Int("count", len(products)))

	if cfg.Logging.Mode == "prod" || cfg.Logging.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	stub := stubapi.New(products, logger)
	if latency > 0 {
		stub.SetDelay(func(*http.Request) time.Duration { return latency })
	}
	router := stub.Router()
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	timeouts := common.LoadTimeoutConfig(common.DefaultTimeouts())
	server := common.NewServerWithTimeouts(&http.Server{
		Addr:    cfg.ListenAddress,
		Handler: router,
	}, timeouts)
	return common.RunServerWithShutdown(cmd.Context(), server, logger, "stub api", timeouts)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
