package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/efreitasn/matchbook/internal/config"
	"github.com/efreitasn/matchbook/internal/engine"
	"github.com/efreitasn/matchbook/internal/handler"
	"github.com/efreitasn/matchbook/internal/service"
	"github.com/efreitasn/matchbook/internal/store"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running stats server")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to STATS_ADDR/healthz, exit 0/1.
	if *healthcheck {
		os.Exit(runHealthcheck(os.Getenv("STATS_ADDR")))
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger, closeLog := newLogger(cfg)
	defer closeLog()
	slog.SetDefault(logger)

	// Stores and engine.
	orderStore := store.NewOrderStore()
	fillStore := store.NewFillStore(cfg.FillHistory)
	matcher := engine.NewMatcher()

	orderSvc := service.NewOrderService(matcher, orderStore, fillStore, logger)
	marketSvc := service.NewMarketService(orderSvc, cfg.VWAPFills)
	feed := service.NewFeed(orderSvc, cfg.FeedBuffer)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	feedDone := make(chan struct{})
	go func() {
		feed.Run(ctx)
		close(feedDone)
	}()

	if err := runDemo(ctx, feed, cfg.DemoOrders, cfg.DemoFeeds, logger); err != nil {
		logger.Error("demo failed", slog.String("error", err.Error()))
	}
	logSummary(orderSvc, marketSvc, cfg, logger)

	if cfg.StatsAddr != "" {
		if err := serve(ctx, orderSvc, marketSvc, cfg, logger); err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			cancel()
			<-feedDone
			closeLog()
			os.Exit(1)
		}
	}

	cancel()
	<-feedDone
	logger.Info("matchbook stopped")
}

// newLogger builds the JSON logger at the configured level. When LOG_FILE
// is set, output is also written to a size-rotated file.
func newLogger(cfg *config.Config) (*slog.Logger, func()) {
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var out io.Writer = os.Stdout
	closeFn := func() {}
	if cfg.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAgeDays,
		}
		out = io.MultiWriter(os.Stdout, rotator)
		closeFn = func() { _ = rotator.Close() }
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: logLevel,
	}))
	return logger, closeFn
}

// logSummary reports the engine counters and top of book after the demo.
func logSummary(orderSvc *service.OrderService, marketSvc *service.MarketService, cfg *config.Config, logger *slog.Logger) {
	stats := orderSvc.Stats()
	attrs := []any{
		slog.Uint64("orders_processed", stats.OrdersProcessed),
		slog.Uint64("total_fills", stats.TotalFills),
		slog.Uint64("total_volume", stats.TotalVolume),
		slog.Int("bid_levels", stats.BidLevels),
		slog.Int("ask_levels", stats.AskLevels),
		slog.Int("resting_orders", stats.RestingOrders),
	}
	if bb, ok := orderSvc.BestBid(); ok {
		attrs = append(attrs, slog.String("best_bid", cfg.TickSize.FormatTicks(bb)))
	}
	if ba, ok := orderSvc.BestAsk(); ok {
		attrs = append(attrs, slog.String("best_ask", cfg.TickSize.FormatTicks(ba)))
	}
	if price := marketSvc.Price(); price.VWAP != nil {
		attrs = append(attrs, slog.String("vwap", cfg.TickSize.FormatTicks(*price.VWAP)))
	}
	logger.Info("matcher stats", attrs...)
}

// serve runs the introspection server until ctx is cancelled, then shuts
// it down gracefully.
func serve(
	ctx context.Context,
	orderSvc *service.OrderService,
	marketSvc *service.MarketService,
	cfg *config.Config,
	logger *slog.Logger,
) error {
	router := handler.NewRouter(orderSvc, marketSvc, cfg.TickSize, logger)

	srv := &http.Server{
		Addr:         cfg.StatsAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("addr", cfg.StatsAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// runHealthcheck probes /healthz on addr and returns the process exit code.
func runHealthcheck(addr string) int {
	if addr == "" {
		return 1
	}
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", addr))
	if err != nil {
		return 1
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 1
	}
	return 0
}
