package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Leveled process-wide logger used by the signup desk services.
// - backed by a zap SugaredLogger writing JSON to stdout
// - provides Debug/Info/Warn/Error/Fatal variants, structured *w variants and Init(level)

var (
	mu    sync.RWMutex
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	sugar = newSugar(zapcore.AddSync(os.Stdout))
)

func newSugar(ws zapcore.WriteSyncer) *zap.SugaredLogger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), ws, level)
	return zap.New(core).Sugar()
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Call early during startup. Default level is Info.
func Init(l string) {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		level.SetLevel(zapcore.DebugLevel)
	case "warn", "warning":
		level.SetLevel(zapcore.WarnLevel)
	case "error":
		level.SetLevel(zapcore.ErrorLevel)
	case "fatal":
		level.SetLevel(zapcore.FatalLevel)
	default:
		level.SetLevel(zapcore.InfoLevel)
	}
}

// use swaps the backing core; tests hand in an observer core.
func use(core zapcore.Core) func() {
	mu.Lock()
	prev := sugar
	sugar = zap.New(core).Sugar()
	mu.Unlock()
	return func() {
		mu.Lock()
		sugar = prev
		mu.Unlock()
	}
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func Debugf(format string, v ...interface{}) { current().Debugf(format, v...) }
func Infof(format string, v ...interface{})  { current().Infof(format, v...) }
func Warnf(format string, v ...interface{})  { current().Warnf(format, v...) }
func Errorf(format string, v ...interface{}) { current().Errorf(format, v...) }

// Fatalf logs and exits the process with status 1.
func Fatalf(format string, v ...interface{}) { current().Fatalf(format, v...) }

// Infow and Errorw log a message with alternating key/value pairs.
func Infow(msg string, keysAndValues ...interface{})  { current().Infow(msg, keysAndValues...) }
func Warnw(msg string, keysAndValues ...interface{})  { current().Warnw(msg, keysAndValues...) }
func Errorw(msg string, keysAndValues ...interface{}) { current().Errorw(msg, keysAndValues...) }

func Info(v string) { Infof("%s", v) }
func Warn(v string) { Warnf("%s", v) }

// Sync flushes buffered entries; call before exit.
func Sync() { _ = current().Sync() }

// LevelString returns the current level as text.
func LevelString() string {
	return level.Level().String()
}
