package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // Echo web framework used for routing
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/room-booking/internal/config"
    "github.com/iliyamo/room-booking/internal/handler"
    "github.com/iliyamo/room-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.
//
// The health check is used by load balancers and monitoring to verify
// that the service is up. The log endpoint deliberately sits outside
// the authenticated group: the browser forwards errors that can occur
// before a session exists, and a rejected log submission must never
// produce another log submission.
func RegisterRoutes(e *echo.Echo, logs *handler.LogHandler) {
    e.GET("/healthz", handler.Health)
    e.POST("/log", logs.Post)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware. Unauthenticated operations live under
// /v1/auth, while the protected /v1/me endpoint demonstrates a valid
// session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    // Refresh rotates the refresh token; refresh-access issues a new
    // access token while reusing the existing refresh token.
    g.POST("/refresh", a.Refresh)
    g.POST("/refresh-access", a.RefreshAccess)
    // Logout accepts either a bearer token (revoke all sessions) or a
    // refresh token in the body (revoke one session), so it does not
    // go through the JWT middleware.
    g.POST("/logout", a.Logout)

    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.Use(middleware.RequireRole("USER"))
    auth.GET("/me", a.Me)
}

// RegisterAPI registers the room, person and booking endpoints under
// /v1. All of them require a valid access token; list endpoints are
// additionally response cached, and the whole group is rate limited
// when Redis is available (rdb may be nil, in which case both
// middlewares pass through).
func RegisterAPI(e *echo.Echo, rooms *handler.RoomHandler, persons *handler.PersonHandler, bookings *handler.BookingHandler, jwtSecret string, rdb *redis.Client) {
    g := e.Group("/v1")
    g.Use(middleware.JWTAuth(jwtSecret))
    g.Use(middleware.RequireRole("USER"))
    g.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

    cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

    g.GET("/rooms", rooms.List, cache)
    g.POST("/rooms", rooms.Create)
    g.GET("/rooms/:id", rooms.Get)
    g.PUT("/rooms/:id", rooms.Update)
    g.DELETE("/rooms/:id", rooms.Delete)

    g.GET("/persons", persons.List, cache)
    g.POST("/persons", persons.Create)
    g.GET("/persons/:id", persons.Get)
    g.PUT("/persons/:id", persons.Update)
    g.DELETE("/persons/:id", persons.Delete)

    g.GET("/bookings", bookings.List, cache)
    g.POST("/bookings", bookings.Create)
    g.GET("/bookings/:id", bookings.Get)
    g.PUT("/bookings/:id", bookings.Update)
    g.DELETE("/bookings/:id", bookings.Delete)
}
