// Package logger builds the application-wide zap logger.
package logger

import (
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

// New returns a zap logger configured for the given environment.
// Production gets JSON output; anything else gets the colored console
// encoder for readability during development.
func New(env string) *zap.Logger {
    var cfg zap.Config

    if env == "prod" || env == "production" {
        cfg = zap.NewProductionConfig()
    } else {
        cfg = zap.NewDevelopmentConfig()
        cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
    }

    cfg.OutputPaths = []string{"stdout"}

    log, err := cfg.Build()
    if err != nil {
        panic("failed to create logger: " + err.Error())
    }
    return log
}
