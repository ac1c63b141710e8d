package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/textvec/internal/config"
	"github.com/kailas-cloud/textvec/internal/db"
	dbRedis "github.com/kailas-cloud/textvec/internal/db/redis"
	logpkg "github.com/kailas-cloud/textvec/internal/logger"
	"github.com/kailas-cloud/textvec/internal/metrics"
	golemnlp "github.com/kailas-cloud/textvec/internal/nlp/golem"
	prosenlp "github.com/kailas-cloud/textvec/internal/nlp/prose"
	"github.com/kailas-cloud/textvec/internal/nlp/snowball"
	"github.com/kailas-cloud/textvec/internal/repository/resultcache"
	chiTransport "github.com/kailas-cloud/textvec/internal/transport/chi"
	annotateuc "github.com/kailas-cloud/textvec/internal/usecase/annotate"
	healthuc "github.com/kailas-cloud/textvec/internal/usecase/health"
	vectorizeuc "github.com/kailas-cloud/textvec/internal/usecase/vectorize"
	"github.com/kailas-cloud/textvec/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting textvec API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("tie_break", cfg.Vectorize.TieBreak),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	// Register metrics explicitly (no init())
	metrics.Register()

	vectorizeSvc := vectorizeuc.New(vectorizeuc.Limits{
		DefaultMaxFeatures: cfg.Vectorize.DefaultMaxFeatures,
		DefaultComponents:  cfg.Vectorize.DefaultComponents,
		MaxDocuments:       cfg.Vectorize.MaxDocuments,
		MaxFeatures:        cfg.Vectorize.MaxFeaturesLimit,
	}, cfg.TieBreak())

	// Result cache is optional. Pass a nil interface, not a typed nil pointer,
	// when it is disabled so health checks skip it.
	var cachePinger healthuc.CachePinger
	if cfg.Cache.Enabled {
		store := mustOpenStore(cfg.Cache, logger)
		defer store.Close()

		cache := resultcache.New(store, time.Duration(cfg.Cache.TTLSec)*time.Second, metrics.ResultCacheTotal)
		vectorizeSvc.WithCache(cache)
		cachePinger = store
	}

	// NLP adapters
	annotator := prosenlp.New()
	lemmatizer, err := golemnlp.New()
	if err != nil {
		logger.Fatal("Failed to load lemma dictionary", zap.Error(err))
	}
	annotateSvc := annotateuc.New(annotator, annotator, snowball.Stemmer{}, lemmatizer)

	healthSvc := healthuc.New(annotator, cachePinger)

	server := chiTransport.NewServer(vectorizeSvc, annotateSvc, healthSvc, logger).
		WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes)
	router := chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// mustOpenStore connects to the cache backend and waits until it answers.
func mustOpenStore(cfg config.CacheConfig, logger *zap.Logger) db.Store {
	switch cfg.Driver {
	case "valkey", "redis":
		// same wire protocol
	default:
		logger.Fatal("Unknown cache driver", zap.String("driver", cfg.Driver))
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Password: cfg.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create cache store", zap.Error(err))
	}

	timeout := time.Duration(cfg.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(context.Background(), timeout); err != nil {
		logger.Fatal("Cache store not ready", zap.Error(err))
	}
	logger.Info("Connected to cache store",
		zap.String("driver", cfg.Driver),
		zap.Strings("addrs", cfg.Addrs),
	)
	return store
}
