package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"
)

// Client log levels, numerically compatible with the
// Microsoft.Extensions.Logging.LogLevel enum the SPA sends.
const (
    clientLevelTrace       = 0
    clientLevelDebug       = 1
    clientLevelInformation = 2
    clientLevelWarning     = 3
    clientLevelError       = 4
    clientLevelCritical    = 5
)

// LogHandler accepts log entries forwarded by the browser and replays
// them through the server logger so client-side failures end up in the
// same place as server-side ones. The handler itself never calls the
// log-forwarding client, which is what prevents submission failures
// from cascading into more submissions.
type LogHandler struct {
    Log *zap.Logger
}

// NewLogHandler constructs a LogHandler writing to the given logger.
func NewLogHandler(log *zap.Logger) *LogHandler {
    if log == nil {
        log = zap.NewNop()
    }
    return &LogHandler{Log: log}
}

type logReq struct {
    LogLevel int    `json:"logLevel"`
    Message  string `json:"message"`
}

// Post handles POST /log. Unknown levels are recorded rather than
// rejected; a malformed body is the only 400.
func (h *LogHandler) Post(c echo.Context) error {
    var req logReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    entry := h.Log.With(zap.String("origin", "client"))
    switch req.LogLevel {
    case clientLevelCritical, clientLevelError:
        entry.Error(req.Message)
    case clientLevelWarning:
        entry.Warn(req.Message)
    case clientLevelInformation:
        entry.Info(req.Message)
    case clientLevelDebug, clientLevelTrace:
        entry.Debug(req.Message)
    default:
        entry.Info(req.Message, zap.Int("unknown_level", req.LogLevel))
    }
    return c.NoContent(http.StatusNoContent)
}
