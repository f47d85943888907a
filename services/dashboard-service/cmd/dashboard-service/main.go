package main

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/mnogodumalon/terminboard/libs/config"
	"github.com/mnogodumalon/terminboard/libs/httpx"
	"github.com/mnogodumalon/terminboard/libs/kafkax"
	otelx "github.com/mnogodumalon/terminboard/libs/otel"
	"github.com/mnogodumalon/terminboard/libs/runtime"
	"github.com/mnogodumalon/terminboard/services/dashboard-service/internal/events"
	"github.com/mnogodumalon/terminboard/services/dashboard-service/internal/handlers"
	"github.com/mnogodumalon/terminboard/services/dashboard-service/internal/livingapps"
)

func main() {
	service := config.String("SERVICE_NAME", "dashboard-service")
	port, err := config.Port("PORT", "8080")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	store := livingapps.NewClient(livingapps.Config{
		BaseURL:           config.String("LIVING_APPS_BASE_URL", livingapps.DefaultBaseURL),
		CustomersAppID:    config.String("LIVING_APPS_CUSTOMERS_APP_ID", livingapps.DefaultCustomersAppID),
		ServicesAppID:     config.String("LIVING_APPS_SERVICES_APP_ID", livingapps.DefaultServicesAppID),
		AppointmentsAppID: config.String("LIVING_APPS_APPOINTMENTS_APP_ID", livingapps.DefaultAppointmentsAppID),
		AuthToken:         config.String("LIVING_APPS_AUTH_TOKEN", ""),
		Timeout:           config.Seconds("LIVING_APPS_TIMEOUT_SECONDS", 10*time.Second),
	})

	kafkaBrokers := config.String("KAFKA_BROKERS", "")
	publisher := events.NewPublisher(kafkaBrokers, logger)
	if publisher != nil {
		defer func() { _ = publisher.Close() }()
		logger.Info("appointment event publisher enabled", "brokers", kafkaBrokers)
	}

	readyChecks := []runtime.ReadyCheck{
		{Name: "record-store", Check: store.ReadyCheck()},
	}
	if kafkaBrokers != "" {
		readyChecks = append(readyChecks, runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(kafkaBrokers)})
	}
	mux := runtime.NewBaseMuxWithReady(readyChecks...)

	h := handlers.New(store, publisher, logger, config.Int("UPCOMING_HORIZON_DAYS", 7))
	h.Register(mux)

	limitPerMinute := config.Int("RATE_LIMIT_PER_MINUTE", 60)
	var rateLimitMW httpx.Middleware
	if addr := config.String("REDIS_ADDR", ""); addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.String("REDIS_PASSWORD", ""),
			DB:       config.Int("REDIS_DB", 0),
		})
		defer func() { _ = rdb.Close() }()

		rl := httpx.NewRedisRateLimiter(rdb, limitPerMinute, time.Minute, config.String("RATE_LIMIT_PREFIX", "rl"))
		rateLimitMW = rl.Middleware(logger, config.Bool("RATE_LIMIT_FAIL_OPEN", true))
		logger.Info("rate limiting enabled (redis)", "per_minute", limitPerMinute, "redis_addr", addr)
	} else {
		rl := httpx.NewRateLimiter(limitPerMinute, time.Minute)
		rateLimitMW = rl.Middleware()
		logger.Info("rate limiting enabled (in-memory)", "per_minute", limitPerMinute)
	}

	handler := httpx.Chain(mux,
		httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins:   config.List("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type", "X-Request-Id"},
			AllowCredentials: config.Bool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           config.Seconds("CORS_MAX_AGE_SECONDS", 600*time.Second),
		}),
		httpx.WithRequestID,
		httpx.WithRecover(logger),
		httpx.WithAccessLog(logger),
		httpx.WithBodyLimit(int64(config.Int("REQUEST_BODY_LIMIT_BYTES", 1<<20))),
		httpx.WithTimeout(config.Seconds("REQUEST_TIMEOUT_SECONDS", 30*time.Second)),
		rateLimitMW,
	)
	handler = otelhttp.NewHandler(handler, "dashboard")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}
