package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.RWMutex
	base  = zap.NewNop()
	sugar = base.Sugar()
)

// SetupLogger writes leveled logs to stdout and to a daily file under logDir
func SetupLogger(logDir, level string) error {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	logFileName := filepath.Join(logDir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl.SetLevel(zapcore.InfoLevel)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	consoleCfg := encCfg
	consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stdout), lvl),
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(logFile), lvl),
	)

	Set(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)))
	return nil
}

// Set replaces the process logger
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = l
	sugar = l.Sugar()
}

// L returns the structured logger for callers that want typed fields
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.WithOptions(zap.AddCallerSkip(-1))
}

// Sync flushes buffered entries
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = base.Sync()
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// Debug logs at debug level
func Debug(format string, v ...interface{}) {
	current().Debugf(format, v...)
}

// Info logs at info level
func Info(format string, v ...interface{}) {
	current().Infof(format, v...)
}

// Warning logs at warn level
func Warning(format string, v ...interface{}) {
	current().Warnf(format, v...)
}

// Error logs at error level
func Error(format string, v ...interface{}) {
	current().Errorf(format, v...)
}
