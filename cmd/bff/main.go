package main // Entry point for the backend-for-frontend forwarder

import (
    "net/url"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/room-booking/internal/config"
    "github.com/iliyamo/room-booking/internal/handler"
    "github.com/iliyamo/room-booking/internal/logger"
    "github.com/iliyamo/room-booking/internal/middleware"
    "github.com/iliyamo/room-booking/internal/proxy"
    "github.com/iliyamo/room-booking/internal/router"
)

func main() {
    cfg := config.LoadBFF()

    log := logger.New(cfg.Env)
    defer func() { _ = log.Sync() }()

    upstream, err := url.Parse(cfg.UpstreamURL)
    if err != nil {
        log.Fatal("invalid UPSTREAM_API_URL", zap.Error(err))
    }

    e := echo.New()
    e.HideBanner = true

    // The BFF handles only two things itself: the health check and the
    // client log sink. Everything else under /remote is forwarded to
    // the upstream API once the session token checks out.
    router.RegisterRoutes(e, handler.NewLogHandler(log))

    fwd := proxy.NewForwarder(upstream, log)
    remote := e.Group(proxy.RemotePrefix)
    remote.Use(middleware.JWTAuth(cfg.JWTSecret))
    remote.Any("/*", fwd.Handle)

    addr := ":" + cfg.Port
    log.Info("bff listening", zap.String("addr", addr), zap.String("upstream", cfg.UpstreamURL))

    if err := e.Start(addr); err != nil {
        log.Fatal("bff stopped", zap.Error(err))
    }
}
