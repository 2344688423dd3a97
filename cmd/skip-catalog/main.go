package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/ozzus/skip-hire/grpcapp"
	httphandlers "github.com/ozzus/skip-hire/internal/api/http/handlers"
	"github.com/ozzus/skip-hire/internal/application/service"
	"github.com/ozzus/skip-hire/internal/config"
	"github.com/ozzus/skip-hire/internal/domain/ports"
	cacheredis "github.com/ozzus/skip-hire/internal/infrastructures/db/redis"
	skiptracing "github.com/ozzus/skip-hire/internal/infrastructures/db/tracing"
	"github.com/ozzus/skip-hire/internal/infrastructures/fallback"
	"github.com/ozzus/skip-hire/internal/infrastructures/memory"
	wwwclient "github.com/ozzus/skip-hire/internal/infrastructures/wewantwaste/http/client"
	"github.com/ozzus/skip-hire/internal/metrics"
	grpcapi "github.com/ozzus/skip-hire/internal/transport/grpc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Log.Level)
	defer func() {
		_ = log.Sync()
	}()

	tp, err := skiptracing.InitTracer("skip-catalog", cfg.Env, cfg.Jaeger)
	if err != nil {
		log.Fatal("failed to init tracer", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	log.Info("skip-catalog starting",
		zap.String("env", cfg.Env),
		zap.String("http_addr", cfg.HTTP.Address()),
		zap.String("grpc_addr", cfg.GRPC.Address()),
		zap.Stringer("location", cfg.Upstream.Location()),
	)

	var skipCache ports.SkipCache
	if !cfg.Redis.Disabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Warn("failed to close redis client", zap.Error(err))
			}
		}()
		skipCache = cacheredis.NewSkipCacheRepository(redisClient)
	}

	upstream := wwwclient.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Location(), cfg.Upstream.Timeout)
	source := fallback.NewSource(log, upstream)
	catalogService := service.NewCatalogService(log, source, skipCache, cfg.Upstream.Location(), cfg.CatalogCacheTTL)

	sessionStore := memory.NewSessionStore(cfg.Booking.SessionTTL, cfg.Booking.MaxSessions)
	bookingService := service.NewBookingService(log, catalogService, sessionStore, cfg.Booking.DeliveryWindowDays)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", httphandlers.NewRouter(log, catalogService, bookingService, cfg.HTTP.RequestTimeout))

	server := &http.Server{
		Addr:              cfg.HTTP.Address(),
		Handler:           loggingMiddleware(log, metrics.Middleware(mux)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	app := grpcapp.New(log, cfg.GRPC.Host, cfg.GRPC.Port, func(s *grpc.Server) {
		grpcapi.Register(s, log, catalogService)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := catalogService.Load(ctx); err != nil {
			log.Error("skip catalog load failed", zap.Error(err))
			return
		}
		app.SetServing(true)
	}()

	go sweepSessions(ctx, log, sessionStore, cfg.Booking.SweepInterval)

	errCh := make(chan error, 2)
	go func() {
		errCh <- app.Run()
	}()
	go func() {
		log.Info("http server started", zap.String("addr", cfg.HTTP.Address()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error("server stopped", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", zap.Error(err))
	}
	app.Stop()
}

func sweepSessions(ctx context.Context, log *zap.Logger, store *memory.SessionStore, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := store.Sweep(); removed > 0 {
				log.Info("expired sessions removed", zap.Int("removed", removed))
			}
		}
	}
}

func loggingMiddleware(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func setupLogger(level string) *zap.Logger {
	zapLevel := parseLogLevel(level)
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}

	return log
}

func parseLogLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
