package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  *zap.SugaredLogger
	once sync.Once
	mu   sync.RWMutex
)

// Init builds the process logger. Production uses the JSON encoder, every
// other environment the console encoder. LOG_LEVEL overrides the level.
func Init(env string) {
	once.Do(func() {
		set(build(env, os.Getenv("LOG_LEVEL")))
	})
}

func build(env, level string) *zap.SugaredLogger {
	var cfg zap.Config
	if strings.EqualFold(env, "production") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if level != "" {
		if lvl, err := zapcore.ParseLevel(level); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewNop()
	}
	return l.Sugar()
}

func set(l *zap.SugaredLogger) {
	mu.Lock()
	log = l
	mu.Unlock()
}

func get() *zap.SugaredLogger {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l == nil {
		return zap.NewNop().Sugar()
	}
	return l
}

// SetLogger replaces the process logger, mainly for tests.
func SetLogger(l *zap.Logger) {
	set(l.WithOptions(zap.AddCallerSkip(1)).Sugar())
}

func Debug(msg string, kv ...any) { get().Debugw(msg, kv...) }
func Info(msg string, kv ...any)  { get().Infow(msg, kv...) }
func Warn(msg string, kv ...any)  { get().Warnw(msg, kv...) }
func Error(msg string, kv ...any) { get().Errorw(msg, kv...) }
func Fatal(msg string, kv ...any) { get().Fatalw(msg, kv...) }

// Sync flushes buffered entries.
func Sync() {
	_ = get().Sync()
}
