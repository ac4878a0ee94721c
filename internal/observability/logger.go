// internal/observability/logger.go
package observability

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/qaforge/domact/internal/config"
)

var (
	// globalLogger stores the global logger instance safely across goroutines.
	globalLogger atomic.Pointer[zap.Logger]
	// once ensures that initialization happens exactly once.
	once sync.Once
)

// Initialize sets up the global Zap logger based on configuration and a
// specified output writer. This is the core, flexible initializer.
func Initialize(cfg config.LoggerConfig, consoleWriter zapcore.WriteSyncer) {
	once.Do(func() {
		level := zap.NewAtomicLevel()
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			level.SetLevel(zap.InfoLevel)
		}

		consoleEncoder := getEncoder(cfg)
		consoleCore := zapcore.NewCore(consoleEncoder, consoleWriter, level)
		cores := []zapcore.Core{consoleCore}

		if cfg.LogFile != "" {
			// File output is always JSON for structured logging.
			fileEncoder := getEncoder(config.LoggerConfig{Format: "json"})
			// lumberjack handles file rotation and thread-safe writes.
			fileWriter := zapcore.AddSync(&lumberjack.Logger{
				Filename:   cfg.LogFile,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAge,
				Compress:   cfg.Compress,
			})
			fileCore := zapcore.NewCore(fileEncoder, fileWriter, level)
			cores = append(cores, fileCore)
		}

		core := zapcore.NewTee(cores...)
		options := []zap.Option{zap.AddStacktrace(zap.ErrorLevel)}
		if cfg.AddSource {
			options = append(options, zap.AddCaller())
		}

		logger := zap.New(core, options...).Named(cfg.ServiceName)
		globalLogger.Store(logger)

		zap.ReplaceGlobals(logger)
		zap.RedirectStdLog(logger)
	})
}

// InitializeLogger is a convenience wrapper around Initialize for production
// use. It defaults console output to a locked Stdout.
func InitializeLogger(cfg config.LoggerConfig) {
	Initialize(cfg, zapcore.Lock(os.Stdout))
}

// ResetForTest resets the sync.Once and clears the global logger.
// This function should ONLY be used in tests to ensure isolation.
func ResetForTest() {
	globalLogger.Store(nil)
	once = sync.Once{}
}

// getEncoder selects the log encoder: "json" for structured output, console
// otherwise.
func getEncoder(cfg config.LoggerConfig) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	if cfg.Format == "console" {
		encoderConfig.EncodeName = func(loggerName string, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(loggerName + ".")
		}
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
	return zapcore.NewJSONEncoder(encoderConfig)
}

// GetLogger returns the initialized global logger instance.
func GetLogger() *zap.Logger {
	logger := globalLogger.Load()
	if logger == nil {
		// Fallback mechanism if InitializeLogger hasn't been called.
		l, err := zap.NewDevelopment()
		if err != nil {
			return zap.NewNop()
		}
		l.Warn("Global logger requested before initialization; using fallback.")
		return l.Named("fallback")
	}
	return logger
}

// Sync flushes any buffered log entries. Applications should call this
// before exiting.
func Sync() {
	logger := globalLogger.Load()
	if logger != nil {
		if err := logger.Sync(); err != nil {
			// Syncing stdout fails on some platforms during shutdown; stay quiet
			// for those known cases.
			errMsg := err.Error()
			if !strings.Contains(errMsg, "sync /dev/stdout") &&
				!strings.Contains(errMsg, "invalid argument") &&
				!strings.Contains(errMsg, "operation not supported") {
				fmt.Fprintln(os.Stderr, "Error: failed to sync logger:", err)
			}
		}
	}
}
