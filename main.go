package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"student-loan-calc/config"
	httpLayer "student-loan-calc/http"
	"student-loan-calc/repository"
	"student-loan-calc/service"
)

func main() {
	bootLogger := logrus.New()
	cfg := config.Load(bootLogger)
	logger := cfg.Logger()

	plans, err := service.LoadPlanRegistry(cfg.PlansFile)
	if err != nil {
		logger.WithError(err).Fatal("failed to load loan plans")
	}
	logger.WithField("plans", len(plans.List())).Info("loan plans loaded")

	cache := newCache(cfg, logger)
	calculations := repository.NewCalculationRepositoryMemory(cfg.MaxCalculations)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := service.NewMetrics(registry)

	explainer := service.NewExplanationService(cfg.OpenAIKey, cfg.OpenAIURL, logger)
	repaymentService := service.NewRepaymentService(plans, calculations, cache, explainer, metrics, logger)
	overpaymentService := service.NewOverpaymentService(plans, metrics, logger)
	salaryGrowthService := service.NewSalaryGrowthService(plans, metrics, logger)
	totalCostService := service.NewTotalCostService(plans, metrics, logger)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.RouterDeps{
		Calculators: httpLayer.NewCalculatorHandler(
			repaymentService,
			overpaymentService,
			salaryGrowthService,
			totalCostService,
			logger,
		),
		Plans:          httpLayer.NewPlanHandler(plans, logger),
		RateLimiter:    rateLimiter,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Logger:         logger,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second, // explanations may wait on the LLM
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.WithError(err).Error("error starting server")
		return
	case <-quit:
		logger.Info("shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("error during server shutdown")
	}
	closeCache(cache, logger)

	logger.Info("server exited")
}

// newCache uses Redis when configured and reachable, otherwise memory.
func newCache(cfg config.Config, logger *logrus.Logger) repository.CacheRepository {
	if cfg.RedisAddr == "" {
		return repository.NewMemoryCache(cfg.CacheTTL, cfg.CacheEntries)
	}

	redisCache := repository.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		logger.WithError(err).WithField("addr", cfg.RedisAddr).Warn("redis unavailable, using in-memory cache")
		_ = redisCache.Close()
		return repository.NewMemoryCache(cfg.CacheTTL, cfg.CacheEntries)
	}
	logger.WithField("addr", cfg.RedisAddr).Info("using redis cache")
	return redisCache
}

// closeCache releases the cache backend if it holds a connection.
func closeCache(cache repository.CacheRepository, logger logrus.FieldLogger) {
	closer, ok := cache.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		logger.WithError(err).Warn("error closing cache")
	}
}
