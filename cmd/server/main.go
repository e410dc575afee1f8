package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/havenapp/wellspring/internal/chat"
	"github.com/havenapp/wellspring/internal/classifier"
	"github.com/havenapp/wellspring/internal/handler"
	"github.com/havenapp/wellspring/internal/llm"
	"github.com/havenapp/wellspring/internal/notify"
	"github.com/havenapp/wellspring/internal/resources"
	"github.com/havenapp/wellspring/internal/sentiment"
	"github.com/havenapp/wellspring/internal/storage"
	"github.com/havenapp/wellspring/pkg/config"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize storage
	store, err := newStorage(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer store.Close()

	// Initialize the generation client shared by classifier, resources and chat
	client := llm.NewOpenAIClient(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		time.Duration(cfg.OpenAI.TimeoutSeconds)*time.Second,
		logger,
	)

	// Optional escalation notifier
	var notifier sentiment.Notifier
	if cfg.Telegram.Token != "" {
		tn, err := notify.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID, logger)
		if err != nil {
			logger.Warn("Escalation notifier disabled", zap.Error(err))
		} else {
			notifier = tn
			logger.Info("Escalation notifier enabled")
		}
	}

	// Wire the engine services
	clf := classifier.NewGPTClassifier(client, cfg.OpenAI.MaxTokens, cfg.OpenAI.Temperature, logger)
	sentiments := sentiment.NewService(store, clf, notifier, logger)
	cache := resources.NewCache(store, client, logger)
	chatStore := chat.NewStore(store, logger)
	agent := chat.NewAgent(chatStore, sentiments, client, logger)

	// HTTP surface
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler.New(sentiments, cache, chatStore, agent, logger).RegisterRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
}

func newStorage(cfg *config.Config, logger *zap.Logger) (storage.Storage, error) {
	switch cfg.Storage.Type {
	case "memory":
		logger.Info("Using in-memory storage")
		return storage.NewMemoryStorage(), nil
	case "postgres":
		logger.Info("Using PostgreSQL storage")
		return storage.NewPostgresStorage(storage.DatabaseConfig{
			Host:     cfg.Storage.Database.Host,
			Port:     cfg.Storage.Database.Port,
			User:     cfg.Storage.Database.User,
			Password: cfg.Storage.Database.Password,
			DBName:   cfg.Storage.Database.DBName,
			SSLMode:  cfg.Storage.Database.SSLMode,
		})
	default:
		logger.Info("Using Redis storage", zap.String("addr", cfg.Storage.Redis.Addr))
		return storage.NewRedisStorage(storage.RedisConfig{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
	}
}
