package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ladle-cloud/ladle/internal/config"
	dbRedis "github.com/ladle-cloud/ladle/internal/db/redis"
	"github.com/ladle-cloud/ladle/internal/domain"
	logpkg "github.com/ladle-cloud/ladle/internal/logger"
	"github.com/ladle-cloud/ladle/internal/metrics"
	"github.com/ladle-cloud/ladle/internal/repository/catalog"
	"github.com/ladle-cloud/ladle/internal/repository/embcache"
	"github.com/ladle-cloud/ladle/internal/repository/indexes"
	searchrepo "github.com/ladle-cloud/ladle/internal/repository/search"
	"github.com/ladle-cloud/ladle/internal/repository/slugs"
	chiTransport "github.com/ladle-cloud/ladle/internal/transport/chi"
	openaiProv "github.com/ladle-cloud/ladle/internal/transport/openai"
	adminuc "github.com/ladle-cloud/ladle/internal/usecase/admin"
	healthuc "github.com/ladle-cloud/ladle/internal/usecase/health"
	ingredientuc "github.com/ladle-cloud/ladle/internal/usecase/ingredient"
	recipeuc "github.com/ladle-cloud/ladle/internal/usecase/recipe"
	searchuc "github.com/ladle-cloud/ladle/internal/usecase/search"
	suggestionuc "github.com/ladle-cloud/ladle/internal/usecase/suggestion"
	"github.com/ladle-cloud/ladle/internal/version"
)

func main() {
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

	logger.Info("Starting ladle API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	metrics.RegisterAIMetrics()

	if err := indexes.EnsureAll(ctx, store, cfg.Storage.KeyPrefix, indexes.HNSWConfig{
		Dim:         cfg.Embedding.Dimensions,
		M:           cfg.Catalog.HNSWM,
		EFConstruct: cfg.Catalog.HNSWEFConstruct,
	}, logger); err != nil {
		logger.Fatal("Failed to ensure search indexes", zap.Error(err))
	}

	// AI providers — nil when disabled, services skip the side effects.
	var (
		embedder   domain.Embedder
		embChecker healthuc.UpstreamChecker
		images     recipeuc.ImageGenerator
		imgChecker healthuc.UpstreamChecker
	)
	if cfg.Embedding.Enabled {
		base := openaiProv.NewEmbedder(&openaiProv.EmbedderConfig{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Logger:     logger,
		})
		embedder = embcache.New(
			base, store, cfg.Storage.KeyPrefix,
			time.Duration(cfg.Embedding.CacheTTLSec)*time.Second,
			metrics.EmbeddingCacheTotal, logger,
		)
		embChecker = base
		logger.Info("Embedding enabled",
			zap.String("model", cfg.Embedding.Model),
			zap.Int("dimensions", cfg.Embedding.Dimensions),
		)
	}
	if cfg.Images.Enabled {
		gen := openaiProv.NewImageGenerator(&openaiProv.ImageConfig{
			APIKey:  cfg.Images.APIKey,
			BaseURL: cfg.Images.BaseURL,
			Model:   cfg.Images.Model,
			Size:    cfg.Images.Size,
			Logger:  logger,
		})
		images = gen
		imgChecker = gen
		logger.Info("Image generation enabled", zap.String("model", cfg.Images.Model))
	}

	// Repositories
	ingredientRepo := catalog.NewIngredients(store, cfg.Storage.KeyPrefix)
	recipeRepo := catalog.NewRecipes(store, cfg.Storage.KeyPrefix)
	suggestionRepo := catalog.NewSuggestions(store, cfg.Storage.KeyPrefix)
	slugRepo := slugs.New(store, cfg.Storage.KeyPrefix)
	vectorRepo := searchrepo.New(store, cfg.Storage.KeyPrefix)

	// Use case services
	ingredientSvc := ingredientuc.New(ingredientRepo, slugRepo, ingredientuc.Config{
		DefaultPageSize:   cfg.Catalog.DefaultPageSize,
		MaxPageSize:       cfg.Catalog.MaxPageSize,
		ResurrectArchived: cfg.Catalog.ResurrectArchived,
	}, logger)
	recipeSvc := recipeuc.New(recipeRepo, slugRepo, embedder, images, recipeuc.Config{
		DefaultPageSize: cfg.Catalog.DefaultPageSize,
		MaxPageSize:     cfg.Catalog.MaxPageSize,
	}, logger)
	suggestionSvc := suggestionuc.New(suggestionRepo, suggestionuc.Config{
		DefaultPageSize: cfg.Catalog.DefaultPageSize,
		MaxPageSize:     cfg.Catalog.MaxPageSize,
	}, logger)

	searchSvc := searchuc.New(recipeRepo, vectorRepo, embedder, searchuc.Config{}, logger)

	adminSvc := adminuc.New(adminuc.Config{
		WipeAllGroup: cfg.Catalog.WipeAllGroup,
		BatchSize:    cfg.Catalog.WipeBatchSize,
	}, logger,
		adminuc.Collection{Name: indexes.Ingredients, Archiver: ingredientSvc},
		adminuc.Collection{Name: indexes.Recipes, Archiver: recipeSvc},
		adminuc.Collection{Name: indexes.Suggestions, Archiver: suggestionSvc},
	)

	healthSvc := healthuc.New(store, embChecker, imgChecker)

	server := chiTransport.NewServer(
		ingredientSvc, recipeSvc, suggestionSvc,
		searchSvc, adminSvc, healthSvc,
		cfg.Auth.APIKeys, logger,
	)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Routes(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
