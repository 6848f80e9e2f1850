package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// Health answers liveness probes for both the API server and the BFF.
// It deliberately touches no dependency: a database or broker outage
// must not make the process look dead to the load balancer.
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}
