package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"go-course-store/internal/cache"
	"go-course-store/internal/config"
	"go-course-store/internal/database"
	"go-course-store/internal/handler"
	"go-course-store/internal/middleware"
	"go-course-store/internal/model"
	"go-course-store/internal/repository"
	"go-course-store/internal/router"
	"go-course-store/internal/service"
)

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	catalogService, err := service.NewCatalogService(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	purchaseRepo := repository.NewPurchaseRepository(pool)
	slog.Info("database ready")

	if err := seedSampleUser(context.Background(), userRepo); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed sample user: %w", err)
	}

	var redisClient *goredis.Client
	cleanupFuncs := []func(){func() { db.Close() }}
	if cfg.RedisAddr != "" {
		redisClient = goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		slog.Info("redis connected", "addr", cfg.RedisAddr)
		cleanupFuncs = append(cleanupFuncs, func() { _ = redisClient.Close() })
	}
	catalogCache := cache.NewCatalogCache(redisClient, cfg.CatalogCacheTTL)

	tokenService, err := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	authService := service.NewAuthService(userRepo, purchaseRepo, tokenService)
	purchaseService := service.NewPurchaseService(catalogService, purchaseRepo)
	downloadService := service.NewDownloadService(catalogService, purchaseRepo, userRepo)

	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		User:     handler.NewUserHandler(authService),
		Catalog:  handler.NewCatalogHandler(catalogService, catalogCache),
		Purchase: handler.NewPurchaseHandler(purchaseService),
		Download: handler.NewDownloadHandler(downloadService, cfg.VideosRoot),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server:       server,
		db:           db,
		cleanupFuncs: cleanupFuncs,
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		for _, cleanup := range a.cleanupFuncs {
			cleanup()
		}
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	slog.Info("server stopped")
	return nil
}

// seedSampleUser creates the demo account the sample frontend logs in
// with. Only runs against an empty users table.
func seedSampleUser(ctx context.Context, users *repository.UserRepository) error {
	count, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), 12)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	err = users.Create(ctx, model.User{
		Username:      "testuser",
		PasswordHash:  string(hash),
		Balance:       99.9,
		DownloadCount: 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if errors.Is(err, model.ErrUserAlreadyExists) {
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("seeded sample user", "username", "testuser")
	return nil
}
