package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var l = zap.NewNop()

// Init 按配置构建全局 logger；mode=release 时输出 JSON
func Init(level, mode string) error {
	var cfg zap.Config
	if mode == "release" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	built, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	l = built
	return nil
}

// L 返回全局 logger（未 Init 时为 no-op）
func L() *zap.Logger { return l }

func Debug(msg string, fields ...zap.Field) { l.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { l.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { l.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { l.Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { l.Fatal(msg, fields...) }

func Sync() { _ = l.Sync() }
