package main

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/SiddeshHulagur/Expense-Tracker/adapters/events"
	"github.com/SiddeshHulagur/Expense-Tracker/adapters/hasher"
	"github.com/SiddeshHulagur/Expense-Tracker/adapters/sequence"
	"github.com/SiddeshHulagur/Expense-Tracker/adapters/store"
	"github.com/SiddeshHulagur/Expense-Tracker/adapters/tokenizer"
	"github.com/SiddeshHulagur/Expense-Tracker/internal/config"
	"github.com/SiddeshHulagur/Expense-Tracker/ports"
	"github.com/SiddeshHulagur/Expense-Tracker/service"
	transport "github.com/SiddeshHulagur/Expense-Tracker/transport/http"
)

func main() {
	_ = godotenv.Load(".env")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx := context.Background()

	jwtTokenizer, err := tokenizer.NewJWTTokenizer(cfg.JWTSecret, logger)
	if err != nil {
		logger.Fatal("Failed to resolve signing key", zap.Error(err))
	}

	var (
		userStore    ports.UserStore
		expenseStore ports.ExpenseStore
		allocator    ports.SequenceAllocator
		redisClient  *redis.Client
	)

	switch cfg.Backend {
	case config.BackendPostgres:
		pgStore, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer pgStore.Close()
		userStore = pgStore
		expenseStore = pgStore
		allocator = sequence.NewPostgresAllocator(pgStore.Pool())

	case config.BackendRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("Failed to parse Redis URL", zap.Error(err))
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		rdStore := store.NewRedisStore(redisClient)
		userStore = rdStore
		expenseStore = rdStore
		allocator = sequence.NewRedisAllocator(redisClient)

	default:
		memStore := store.NewMemoryStore()
		userStore = memStore
		expenseStore = memStore
		allocator = sequence.NewMemoryAllocator()
		logger.Warn("Using the in-memory backend, data will not survive a restart")
	}

	var publisher ports.EventPublisher
	if cfg.EventsEnabled {
		if redisClient == nil {
			opts, err := redis.ParseURL(cfg.RedisURL)
			if err != nil {
				logger.Fatal("Failed to parse Redis URL", zap.Error(err))
			}
			redisClient = redis.NewClient(opts)
		}

		wmPublisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: redisClient},
			watermill.NewStdLogger(false, false),
		)
		if err != nil {
			logger.Fatal("Failed to create event publisher", zap.Error(err))
		}
		publisher = events.NewWatermillPublisher(wmPublisher)
	}

	bcryptHasher := hasher.NewBcrypt()
	authService := service.NewAuthService(userStore, allocator, bcryptHasher, jwtTokenizer, publisher, logger)
	expenseService := service.NewExpenseService(expenseStore, allocator, publisher, logger)

	router := transport.SetupRouter(authService, expenseService)

	logger.Info("Starting server",
		zap.String("addr", cfg.ListenAddr),
		zap.String("backend", cfg.Backend))

	if err := router.Run(cfg.ListenAddr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
