package configs

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns the JSON production logger or a coloured development one.
func NewLogger(production bool) *zap.Logger {
	if production {
		return zap.Must(zap.NewProduction())
	}
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zap.Must(config.Build())
}
