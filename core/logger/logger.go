package logger

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the reconciler's zap logger.
func New(cfg *Config) (*zap.Logger, error) {
	config, err := newConfig(cfg)
	if err != nil {
		return nil, err
	}
	return config.Build()
}

// newConfig maps cfg onto a zap preset: development for debug, production otherwise.
func newConfig(cfg *Config) (zap.Config, error) {
	config := zap.NewProductionConfig()
	if cfg.Level == "debug" {
		config = zap.NewDevelopmentConfig()
	} else if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return zap.Config{}, err
		}
		config.Level = zap.NewAtomicLevelAt(level)
	}

	switch cfg.Format {
	case "console":
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.DisableStacktrace = true
	default:
		config.Encoding = "json"
	}

	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.MessageKey = "message"

	if cfg.Service != "" {
		config.InitialFields = map[string]any{"service": cfg.Service}
	}

	return config, nil
}

// WithRayID tags l with the ray id the rayid middleware stored on c.
// Requests without one get l back unchanged.
func WithRayID(l *zap.Logger, c *fiber.Ctx) *zap.Logger {
	if rid, ok := c.Locals("ray_id").(string); ok && rid != "" {
		return l.With(zap.String("ray_id", rid))
	}
	return l
}
