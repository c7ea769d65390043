package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"hospital-chat/internal/chat"
	"hospital-chat/internal/config"
	"hospital-chat/internal/db"
	apihttp "hospital-chat/internal/http"
	"hospital-chat/internal/notify"
	"hospital-chat/internal/profile"
	"hospital-chat/internal/query"
	"hospital-chat/internal/repository"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var profileRepo repository.ProfileRepository
	switch {
	case cfg.DatabaseURL != "":
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		profileRepo = repository.NewPgProfileRepository(pool)
	case cfg.RedisAddr != "":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := redisClient.Ping(ctxPing).Err()
		cancel()
		if err != nil {
			logger.Warn("redis ping failed, profile will not survive restarts", zap.Error(err))
			profileRepo = repository.NewMemoryProfileRepository()
		} else {
			profileRepo = repository.NewRedisProfileRepository(redisClient)
		}
	default:
		logger.Warn("no durable storage configured, profile will not survive restarts")
		profileRepo = repository.NewMemoryProfileRepository()
	}

	profileStore := profile.NewStore(logger, profileRepo)
	profileStore.Load(ctx)

	queryClient := query.NewHTTPClient(
		cfg.QueryBaseURL,
		time.Duration(cfg.QueryTimeoutSeconds)*time.Second,
		logger,
	)

	manager := chat.NewManager(queryClient, profileStore, notify.NewLogNotifier(logger), logger)

	profileHandler := apihttp.NewProfileHandler(logger, profileStore)
	chatHandler := apihttp.NewChatHandler(logger, manager)
	router := apihttp.NewRouter(logger, profileHandler, chatHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
