package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/trogers1052/portfolio-service/internal/alerts"
	"github.com/trogers1052/portfolio-service/internal/api"
	"github.com/trogers1052/portfolio-service/internal/cache"
	"github.com/trogers1052/portfolio-service/internal/config"
	"github.com/trogers1052/portfolio-service/internal/database"
	"github.com/trogers1052/portfolio-service/internal/kafka"
	"github.com/trogers1052/portfolio-service/internal/logger"
	"github.com/trogers1052/portfolio-service/internal/pricing"
	"github.com/trogers1052/portfolio-service/internal/scheduler"
	"github.com/trogers1052/portfolio-service/internal/valuation"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})
	logger.SetGlobalLogger(log)
	log.Info().Msg("Starting portfolio service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(cfg.Database.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Prices are read from Redis when it is up, PostgreSQL otherwise
	var (
		priceCache   pricing.PriceCache
		cachePrimary cache.Primary
	)
	if cfg.Redis.Enabled {
		pc, err := cache.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, serving prices from database")
		} else {
			defer pc.Close()
			priceCache = pc
			cachePrimary = pc
		}
	}
	prices := cache.NewLayeredPriceSource(cachePrimary, db, log)

	var (
		pricePublisher pricing.PricePublisher
		alertPublisher alerts.Publisher
		txPublisher    kafka.TransactionPublisher
	)
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, kafka.Topics{
			Prices:       cfg.Kafka.PriceTopic,
			Alerts:       cfg.Kafka.AlertTopic,
			Transactions: cfg.Kafka.TransactionTopic,
		}, log)
		defer producer.Close()
		pricePublisher = producer
		alertPublisher = producer
		txPublisher = producer
	}

	opts := valuation.Options{}
	if cfg.Valuation.AllowShort {
		opts.Oversell = valuation.OversellAllowShort
	}
	if cfg.Valuation.OmitClosed {
		opts.Closed = valuation.OmitClosed
	}

	if cfg.Pricing.Seed {
		if _, err := pricing.NewSeeder(db, priceCache, log).Seed(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to seed stock catalog")
		}
	}

	updater := pricing.NewUpdater(db, priceCache, pricePublisher, pricing.NewSimulator(nil), log)
	checker := alerts.NewChecker(db, prices, alertPublisher, log)
	priceJob := scheduler.NewPriceUpdateJob(ctx, updater, checker, 25*time.Second, log)

	sched := scheduler.New(log)
	if err := sched.AddJob(cfg.Pricing.UpdateCron, priceJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register price job")
	}
	if err := sched.RunNow(priceJob); err != nil {
		log.Error().Err(err).Msg("Initial price update failed")
	}
	sched.Start()
	defer sched.Stop()

	consumerDone := make(chan struct{})
	if cfg.Kafka.Enabled && cfg.Kafka.ConsumeTrades {
		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TradeTopic, cfg.Kafka.ConsumerGroup, db, txPublisher, opts, log)
		go func() {
			defer close(consumerDone)
			if err := consumer.Start(ctx); err != nil {
				log.Error().Err(err).Msg("Trade consumer stopped")
			}
		}()
	} else {
		close(consumerDone)
	}

	engine := valuation.NewEngine(db, prices, opts)
	handler := api.NewHandler(db, engine, prices, txPublisher, opts, log)
	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.SetupRoutes(handler, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	select {
	case <-consumerDone:
	case <-shutdownCtx.Done():
		log.Warn().Msg("Trade consumer did not stop in time")
	}

	log.Info().Msg("Server stopped")
}
