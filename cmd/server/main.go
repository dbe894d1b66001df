// @title                      Tradeflow API
// @version                    1.0
// @description                USMCA tariff rate resolution and duty savings comparison.
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	_ "tradeflow/docs"
	"tradeflow/internal/auth/jwtverify"
	"tradeflow/internal/config"
	"tradeflow/internal/handler"
	"tradeflow/internal/logger"
	"tradeflow/internal/marketdata"
	"tradeflow/internal/metrics"
	"tradeflow/internal/port"
	"tradeflow/internal/repository/postgres"
	"tradeflow/internal/router"
	"tradeflow/internal/service"
	s3storage "tradeflow/internal/storage/s3"
)

const (
	shutdownTimeout = 15 * time.Second
	purgeInterval   = 10 * time.Minute
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, flush, err := logger.Install(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer flush()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize repositories
	tariffRepo := postgres.NewTariffRateRepo(db)
	tradeDataRepo := postgres.NewTradeDataRepo(db)

	// Market data provider is optional; without it operational factors are skipped.
	var market port.MarketDataSource
	if cfg.MarketData.Enabled() {
		market = marketdata.NewClient(&cfg.MarketData)
	}

	// Report archive is optional; without it export streams CSV only.
	var archive port.ReportArchive
	if cfg.S3.Enabled() {
		archive, err = s3storage.NewReportArchive(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize report archive: %w", err)
		}
	}

	// Initialize services
	rateSvc := service.NewRateService(tariffRepo)
	classifier := service.NewDataClassifier(service.ClassifierConfigFrom(cfg), rateSvc, tradeDataRepo, market)
	defer classifier.Close()

	var factors service.FactorSource
	if market != nil {
		factors = classifier
	}
	savingsSvc := service.NewSavingsService(classifier, cfg.Rates.Concurrency)
	comparisonSvc := service.NewComparisonService(savingsSvc, factors, service.ComparisonConfig{
		MaterialityThreshold: decimal.NewFromFloat(cfg.Rates.MaterialityThreshold),
		ShippingMode:         cfg.Rates.DefaultShippingMode,
	})
	reportSvc := service.NewReportService(archive, service.ReportConfig{
		Prefix:        cfg.S3.ReportPrefix,
		PresignExpiry: time.Duration(cfg.S3.PresignExpiry) * time.Second,
	})

	reg := metrics.NewRegistry(metrics.NewCacheCollector(classifier.Stats))

	// Setup router
	r := router.Setup(l, cfg.CORS.AllowedOrigins, jwtverify.NewVerifier(&cfg.Auth), router.Handlers{
		Tariff:  handler.NewTariffHandler(comparisonSvc, classifier, reportSvc),
		Admin:   handler.NewAdminHandler(classifier),
		Health:  handler.NewHealthHandler(db),
		Metrics: metrics.Handler(reg),
	})

	go purgeExpired(ctx, classifier)

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		l.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("environment", cfg.Server.Environment),
			zap.Bool("market_data", market != nil),
			zap.Bool("report_archive", archive != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	l.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// purgeExpired evicts cache entries past their stale retention until ctx is done.
func purgeExpired(ctx context.Context, classifier *service.DataClassifier) {
	t := time.NewTicker(purgeInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := classifier.Purge(); n > 0 {
				zap.L().Debug("purged cache entries past stale retention", zap.Int("entries", n))
			}
		}
	}
}
