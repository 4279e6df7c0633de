package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"portfolio-value-service/internal/application/dto"
	"portfolio-value-service/internal/application/services"
	"portfolio-value-service/internal/domain/entities"
	"portfolio-value-service/internal/domain/interfaces"
	"portfolio-value-service/internal/infrastructure/config"
	"portfolio-value-service/internal/infrastructure/exchange"
	"portfolio-value-service/internal/infrastructure/exchange/buda"
	"portfolio-value-service/internal/infrastructure/logging"
	"portfolio-value-service/internal/infrastructure/metrics"
	"portfolio-value-service/internal/infrastructure/web/handlers"
	"portfolio-value-service/internal/infrastructure/web/server"
	"runtime"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	_ "portfolio-value-service/internal/docs"
)

const uptimeInterval = 15 * time.Second

func newApp() *cli.App {
	return &cli.App{
		Name:    "portfolio-value-service",
		Usage:   "Value cryptocurrency portfolios with live Buda.com prices",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
				EnvVars: []string{"PORTFOLIO_VALUE_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "mock",
				Usage: "use the static mock price source instead of Buda.com",
			},
		},
		Action: runServe,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP API (default)",
				Action: runServe,
			},
			{
				Name:  "value",
				Usage: "value one request and print the JSON the API would return",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "request JSON file, or - for stdin",
						Required: true,
					},
				},
				Action: runValue,
			},
		},
	}
}

// loadConfig carga y valida la configuración respetando --config y --mock
func loadConfig(c *cli.Context) (*config.Config, error) {
	loader := config.NewLoader()
	if path := c.String("config"); path != "" {
		loader = loader.WithConfigFile(path)
	}

	cfg, err := loader.LoadForEnvironment(config.GetEnvironment())
	if err != nil {
		return nil, err
	}

	if c.Bool("mock") {
		cfg.Development.MockMode = true
	}

	if err := config.NewValidator().Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// initLogging configura los loggers globales
func initLogging(cfg *config.Config, output io.Writer) error {
	level := logging.LogLevelFromString(cfg.Logging.Level)
	if cfg.Development.DebugMode {
		level = logging.LevelDebug
	}

	loggerConfig := logging.NewConfig(logging.DefaultServiceName, version, config.GetEnvironment()).
		WithLevel(level).
		WithFormat(logging.LogFormatFromString(cfg.Logging.Format)).
		WithOutput(output)

	return logging.InitializeGlobalLoggers(loggerConfig)
}

// newExchange elige la fuente de precios según la configuración
func newExchange(cfg *config.Config) interfaces.Exchange {
	if cfg.Development.MockMode {
		return exchange.NewMockExchange()
	}
	return buda.NewClientWithConfig(cfg.PriceSource)
}

// newRouter arma el stack HTTP completo sobre la fuente de precios dada
func newRouter(cfg *config.Config, priceSource interfaces.Exchange) http.Handler {
	valuationService := services.NewValuationService(priceSource)

	return handlers.NewRouter(handlers.RouterConfig{
		Portfolio:      handlers.NewPortfolioHandler(valuationService, cfg.Server.MaxBodyBytes),
		Health:         handlers.NewHealthHandler(priceSource, cfg.Development.MockMode),
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
		DocsEnabled:    cfg.Docs.Enabled,
	})
}

func runServe(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := initLogging(cfg, os.Stdout); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	priceSource := newExchange(cfg)
	router := newRouter(cfg, priceSource)

	metrics.SetApplicationInfo(version, priceSource.Name(), runtime.Version())
	go trackUptime(ctx, time.Now())

	logging.Info(ctx, "Portfolio value service configured", logging.Fields{
		"price_source":     priceSource.Name(),
		"price_source_url": cfg.PriceSource.BaseURL,
		"max_attempts":     cfg.PriceSource.MaxAttempts,
		"metrics_enabled":  cfg.Metrics.Enabled,
		"docs_enabled":     cfg.Docs.Enabled,
		"mock_mode":        cfg.Development.MockMode,
	})

	srv := server.NewServer(router, cfg.Server)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logging.ErrorWithError(ctx, "HTTP server failed", err, nil)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logging.Info(context.Background(), "Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logging.ErrorWithError(shutdownCtx, "Server forced to shutdown", err, nil)
		return err
	}

	logging.Info(shutdownCtx, "Server shutdown completed", nil)
	return nil
}

func runValue(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	// stdout queda reservado para el resultado
	if err := initLogging(cfg, c.App.ErrWriter); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	input, closeInput, err := openInput(c.String("file"), c.App.Reader)
	if err != nil {
		return err
	}
	defer closeInput()

	ctx := logging.WithRequestID(c.Context, logging.GenerateRequestID())
	mapper := dto.NewValuationMapper()

	valuation, err := valueRequest(ctx, cfg, input)
	if err != nil {
		if werr := writeJSON(c.App.Writer, mapper.ToErrorResponse(dto.ErrorLabelValuation, err)); werr != nil {
			return werr
		}
		return cli.Exit("", 1)
	}

	return writeJSON(c.App.Writer, mapper.ToPortfolioValueResponse(valuation))
}

// valueRequest decodifica y valoriza un request con la misma lógica del endpoint
func valueRequest(ctx context.Context, cfg *config.Config, input io.Reader) (*entities.Valuation, error) {
	req, err := dto.DecodePortfolioRequest(input)
	if err != nil {
		return nil, err
	}
	return services.NewValuationService(newExchange(cfg)).GetPortfolioValue(ctx, req)
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "-" {
		return stdin, func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open request file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// trackUptime actualiza el gauge de uptime hasta que ctx termina
func trackUptime(ctx context.Context, startedAt time.Time) {
	ticker := time.NewTicker(uptimeInterval)
	defer ticker.Stop()

	for {
		metrics.UpdateUptime(time.Since(startedAt).Seconds())

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
