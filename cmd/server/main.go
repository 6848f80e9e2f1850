package main // Entry point for the booking API server

import (
    "context"
    "time"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/room-booking/internal/config"
    "github.com/iliyamo/room-booking/internal/database"
    "github.com/iliyamo/room-booking/internal/handler"
    "github.com/iliyamo/room-booking/internal/logger"
    "github.com/iliyamo/room-booking/internal/queue"
    "github.com/iliyamo/room-booking/internal/repository"
    "github.com/iliyamo/room-booking/internal/router"
    "github.com/iliyamo/room-booking/migrations"
)

func main() {
    cfg := config.Load()

    log := logger.New(cfg.Env)
    defer func() { _ = log.Sync() }()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatal("database connection failed", zap.Error(err))
    }
    defer db.Close()

    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    if err := migrations.Apply(ctx, db); err != nil {
        cancel()
        log.Fatal("migrations failed", zap.Error(err))
    }
    if v, err := migrations.Version(ctx, db); err != nil {
        log.Warn("schema version lookup failed", zap.Error(err))
    } else {
        log.Info("database schema ready", zap.Int64("version", v))
    }
    cancel()

    // Redis is optional: a nil client disables caching and rate limiting.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Warn("redis unavailable, cache and rate limiting disabled")
    }

    userRepo := repository.NewUserRepo(db)
    tokenRepo := repository.NewTokenRepo(db)
    roomRepo := repository.NewRoomRepo(db)
    personRepo := repository.NewPersonRepo(db)
    bookingRepo := repository.NewBookingRepo(db)

    publisher := queue.NewPublisher(cfg.AMQPURL, log)
    go queue.StartBookingConsumer(cfg.AMQPURL, log)

    e := echo.New()
    e.HideBanner = true

    authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
    roomHandler := handler.NewRoomHandler(roomRepo)
    personHandler := handler.NewPersonHandler(personRepo)
    bookingHandler := handler.NewBookingHandler(bookingRepo, publisher, log)
    logHandler := handler.NewLogHandler(log)

    router.RegisterRoutes(e, logHandler)
    router.RegisterAuth(e, authHandler, cfg.JWTSecret)
    router.RegisterAPI(e, roomHandler, personHandler, bookingHandler, cfg.JWTSecret, rdb)

    addr := ":" + cfg.Port
    log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))

    if err := e.Start(addr); err != nil {
        log.Fatal("server stopped", zap.Error(err))
    }
}
