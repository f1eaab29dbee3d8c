// Package tglog is the centralized zap wrapper used by every other package in
// this module. It owns one process-wide *zap.Logger behind an atomic level so
// callers can flip verbosity at runtime without reconstructing every logger
// they hold a reference to, and it can redirect its sink to a rotating file
// (via lumberjack) without restarting the process.
package tglog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// mu guards every package-level variable below from concurrent mutation.
	mu sync.Mutex
	// log holds the current *zap.Logger instance used throughout the module.
	log *zap.Logger
	// level drives the dynamic log level without rebuilding the core.
	level = zap.NewAtomicLevelAt(zap.InfoLevel)
	// encoderCfg controls message formatting; rebuilt by Init.
	encoderCfg = defaultEncoderConfig()
	// sink is the current zapcore.WriteSyncer; defaults to stdout.
	sink = zapcore.Lock(zapcore.AddSync(os.Stdout))
)

func defaultEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05"),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// rebuildLocked rebuilds the global logger from the current sink/level.
// Callers must already hold mu. The previous logger is synced first so
// buffered entries aren't lost across a sink swap.
func rebuildLocked() {
	encoder := zapcore.NewConsoleEncoder(encoderCfg)
	core := zapcore.NewCore(encoder, sink, level)
	if log != nil {
		_ = log.Sync()
	}
	log = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

// Init sets the global level. Accepted values: debug, info (default), warn,
// error; comparison is case-insensitive.
func Init(lvl string) {
	mu.Lock()
	defer mu.Unlock()

	switch strings.ToLower(lvl) {
	case "debug":
		level.SetLevel(zap.DebugLevel)
	case "warn":
		level.SetLevel(zap.WarnLevel)
	case "error":
		level.SetLevel(zap.ErrorLevel)
	default:
		level.SetLevel(zap.InfoLevel)
	}
	rebuildLocked()
}

// RotatingFileConfig configures the lumberjack-backed rotation sink used by
// UseRotatingFile.
type RotatingFileConfig struct {
	Filename   string // destination log file path
	MaxSizeMB  int    // rotate after this many megabytes (default 100)
	MaxBackups int    // old files to retain (0 = keep all)
	MaxAgeDays int    // days to retain old files (0 = no limit)
	Compress   bool   // gzip rotated files
}

// UseRotatingFile redirects log output to a rotating file sink, in addition
// to stdout. Pass an empty Filename to disable rotation and fall back to
// stdout alone.
func UseRotatingFile(cfg RotatingFileConfig) {
	mu.Lock()
	defer mu.Unlock()

	if cfg.Filename == "" {
		sink = zapcore.Lock(zapcore.AddSync(os.Stdout))
		rebuildLocked()
		return
	}

	lj := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    orDefault(cfg.MaxSizeMB, 100),
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	sink = zapcore.NewMultiWriteSyncer(
		zapcore.AddSync(os.Stdout),
		zapcore.AddSync(lj),
	)
	rebuildLocked()
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// SetOutput swaps the sink for an arbitrary io.Writer, mainly useful in
// tests that want to capture log output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	if w == nil {
		sink = zapcore.Lock(zapcore.AddSync(os.Stdout))
	} else {
		sink = zapcore.Lock(zapcore.AddSync(w))
	}
	rebuildLocked()
}

// Logger returns the current *zap.Logger, lazily building the default one on
// first use.
func Logger() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()

	if log == nil {
		rebuildLocked()
	}
	return log
}

// IsDebugEnabled reports whether the debug level is currently active.
func IsDebugEnabled() bool { return Logger().Core().Enabled(zap.DebugLevel) }

func Debug(msg string, fields ...zap.Field) { Logger().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { Logger().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { Logger().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { Logger().Error(msg, fields...) }

// Debugf formats via fmt.Sprintf. Prefer the structured-field variants on hot
// paths — formatting always allocates.
func Debugf(msg string, a ...any) { Logger().Debug(fmt.Sprintf(msg, a...)) }
func Infof(msg string, a ...any)  { Logger().Info(fmt.Sprintf(msg, a...)) }
func Warnf(msg string, a ...any)  { Logger().Warn(fmt.Sprintf(msg, a...)) }
func Errorf(msg string, a ...any) { Logger().Error(fmt.Sprintf(msg, a...)) }
