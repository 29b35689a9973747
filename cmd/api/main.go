package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"example.com/roster/internal/api"
	"example.com/roster/internal/config"
	"example.com/roster/internal/domain"
	"example.com/roster/internal/logging"
	"example.com/roster/internal/outbox"
	"example.com/roster/internal/registry"
	httptransport "example.com/roster/internal/transport/http"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := []domain.Option{domain.WithLogger(logger.Named("roster"))}

	var dispatcher *outbox.Dispatcher
	if cfg.EventsEnabled() {
		producer := outbox.NewKafkaProducer(cfg.KafkaBrokers)
		defer producer.Close()

		var schemas outbox.SchemaRegistrar = outbox.StaticSchemaIDs{}
		if cfg.SchemaRegistryURL != "" {
			schemas = outbox.NewSchemaRegistryClient(cfg.SchemaRegistryURL)
		}

		dispatcher = outbox.NewDispatcher(producer, schemas, outbox.DispatcherConfig{
			Topic:         cfg.RosterTopic,
			BufferSize:    cfg.EventBufferSize,
			BatchSize:     cfg.EventBatchSize,
			FlushInterval: cfg.EventFlushPeriod,
		}, logger.Named("outbox"))
		go dispatcher.Start(ctx)

		opts = append(opts, domain.WithPublisher(dispatcher))
		logger.Info("roster events enabled", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.RosterTopic))
	} else {
		logger.Info("roster events disabled; KAFKA_BROKERS not set")
	}

	service := domain.NewService(registry.New(), opts...)
	service.SyncRosterGauges(ctx)

	handler := api.NewHandler(service)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))
	mux.Handle("/metrics", promhttp.Handler())

	limiter := httptransport.NewRateLimiter(cfg.RateLimitPerSec, cfg.RateLimitBurst)
	server := httptransport.NewServer(
		httptransport.DefaultServerConfig(cfg.HTTPAddress),
		httptransport.Chain(mux,
			httptransport.RequestLogger(logger.Named("http")),
			httptransport.CORS(cfg.CORSAllowedOrigin),
			limiter.Wrap,
		),
	)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("roster-service listening", zap.String("address", cfg.HTTPAddress))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-shutdownCh

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}

	// Stop the dispatcher only after in-flight requests have published.
	cancel()
	if dispatcher != nil {
		dispatcher.Wait()
	}
}
