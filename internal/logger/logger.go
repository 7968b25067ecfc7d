package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It is a no-op logger until Init is called so
// packages can log from tests without any setup.
var Log = zap.NewNop()

var level = zap.NewAtomicLevelAt(zap.InfoLevel)

// Init builds the development console logger used by the player.
func Init() {
	config := zap.NewDevelopmentConfig()
	config.Level = level
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.DisableStacktrace = true

	built, err := config.Build()
	if err != nil {
		return
	}
	Log = built
}

// SetLevel changes the level of the logger built by Init. Unknown names keep the current level.
func SetLevel(name string) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		Log.Warn("Unknown log level", zap.String("level", name))
		return
	}
	level.SetLevel(lvl)
}

// Use swaps the global logger, mostly for tests that want to observe output.
func Use(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	Log = l
}

func Sync() {
	_ = Log.Sync()
}
