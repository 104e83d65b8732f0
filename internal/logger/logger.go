package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var level = zap.NewAtomicLevel()

// Init replaces the global zap logger. Use zap.L() to get it.
func Init(environment, lvl string) error {
	if err := SetLevel(lvl); err != nil {
		return err
	}

	var conf zap.Config
	switch environment {
	case "production":
		conf = zap.NewProductionConfig()
	default:
		conf = zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	conf.Level = level

	l, err := conf.Build()
	if err != nil {
		return fmt.Errorf("conf.Build -> %w", err)
	}

	zap.ReplaceGlobals(l)

	return nil
}

// SetLevel changes the level of the logger built by Init without rebuilding it.
func SetLevel(lvl string) error {
	parsed, err := zapcore.ParseLevel(lvl)
	if err != nil {
		return fmt.Errorf("zapcore.ParseLevel -> %w", err)
	}

	level.SetLevel(parsed)

	return nil
}
