package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	pgrepo "github.com/hojin-dev/go-htmx-boilerplate/internal/adapters/db/postgres"
	redisrepo "github.com/hojin-dev/go-htmx-boilerplate/internal/adapters/db/redis"
	authsvc "github.com/hojin-dev/go-htmx-boilerplate/internal/app/auth/service"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/app/auth/token"
	itemsvc "github.com/hojin-dev/go-htmx-boilerplate/internal/app/item"
	usersvc "github.com/hojin-dev/go-htmx-boilerplate/internal/app/user"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/infra/config"
	lg "github.com/hojin-dev/go-htmx-boilerplate/internal/infra/log"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/infra/migrate"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/infra/server"
	transport "github.com/hojin-dev/go-htmx-boilerplate/internal/transport/http"
	"github.com/hojin-dev/go-htmx-boilerplate/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := lg.Must(cfg.LogLevel, cfg.IsProduction())
	defer logger.Sync()

	db, err := gorm.Open(gormpostgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	redisCli := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisCli.Close()

	validate := validator.New()

	userRepo := pgrepo.NewUserRepo(db)
	itemRepo := pgrepo.NewItemRepo(db)
	tokenRepo := redisrepo.NewTokenRepo(redisCli)
	codec := token.NewCodec(cfg)

	auth := authsvc.New(userRepo, tokenRepo, codec, validate)
	users := usersvc.New(userRepo, validate)
	items := itemsvc.New(itemRepo, validate)

	renderer, err := web.NewRenderer(cfg.AppName)
	if err != nil {
		logger.Fatal("parse templates", zap.Error(err))
	}

	handler := transport.NewHandler(auth, users, items, cfg, logger, renderer)
	router := transport.NewRouter(handler)

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		return server.Run(ctx, cfg, router, logger)
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	g.Go(func() error {
		select {
		case <-quit:
			logger.Info("shutdown signal received")
			cancel()
		case <-ctx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server terminated", zap.Error(err))
	}
}
