package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uzazi-salama-backend/config"
	"uzazi-salama-backend/handlers"
	"uzazi-salama-backend/logger"
	"uzazi-salama-backend/repository"
	"uzazi-salama-backend/service"
	"uzazi-salama-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Try current directory first, then project root (relative to cmd/server/)
	envErr := godotenv.Load()
	if envErr != nil {
		envErr = godotenv.Load("../../.env")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if envErr != nil {
		log.Warn("No .env file found, using environment variables")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	var (
		users    service.UserRepository
		dataRepo repository.UserDataStore
		ping     func(ctx context.Context) error
	)
	switch cfg.DataBackend {
	case config.DataBackendMemory:
		memUsers := repository.NewMemoryUserRepository()
		users = memUsers
		dataRepo = repository.NewMemoryUserDataRepository(memUsers)
		log.Warn("Using in-memory data backend; data is lost on restart")
	default:
		db, err := initPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalw("Failed to initialize Postgres", "error", err)
		}
		defer db.Close()
		users = repository.NewUserRepository(db)
		dataRepo = repository.NewUserDataRepository(db)
		ping = db.Ping
		log.Info("Postgres connection established")
	}

	if cfg.RedisAddr != "" {
		rdb, err := repository.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalw("Failed to connect to Redis", "addr", cfg.RedisAddr, "error", err)
		}
		defer rdb.Close()
		dataRepo = repository.NewCachedUserDataRepository(dataRepo, rdb, cfg.CacheTTL, log)
		log.Infow("Section cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	}

	exportStorage, err := storage.NewStorage(cfg.Storage())
	if err != nil {
		log.Fatalw("Failed to initialize storage", "type", cfg.StorageType, "error", err)
	}
	log.Infow("Storage initialized", "type", cfg.StorageType)

	authService := service.NewAuthService(
		service.WithUserRepository(users),
		service.WithTokenIssuer(service.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)),
	)
	dataService := service.NewUserDataService(
		service.WithUserDataRepository(dataRepo),
	)
	exportService := service.NewExportService(dataService, exportStorage)

	router := handlers.NewRouter(handlers.RouterConfig{
		AuthService:     authService,
		UserDataService: dataService,
		ExportService:   exportService,
		Logger:          log,
		CORSOrigins:     cfg.AllowedOrigins(),
		Ping:            ping,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("Server starting", "port", cfg.Port, "env", cfg.AppEnv, "dataBackend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("Failed to start server", "error", err)
		}
	}()

	waitForShutdown(srv, log)
}

func waitForShutdown(srv *http.Server, log *zap.SugaredLogger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("Server forced to shut down", "error", err)
	}
}

func initPostgres(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
