// Package logging sets up the application logger.
package logging

import (
	"github.com/gobuffalo/nulls"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"os"
)

// Config configures the outputs of the logger created with NewLogger.
type Config struct {
	// StdoutLogLevel is the minimum level logged to stdout.
	StdoutLogLevel zapcore.Level `yaml:"stdout_log_level"`
	// HighPriorityOutput is the optional file to log warnings and errors to.
	HighPriorityOutput nulls.String `yaml:"high_priority_output"`
	// DebugOutput is the optional file to log everything to.
	DebugOutput nulls.String `yaml:"debug_output"`
	// MaxSize is the size in megabytes after which log files are rotated.
	MaxSize int `yaml:"max_size"`
	// KeepDays is the number of days to keep rotated log files.
	KeepDays int `yaml:"keep_days"`
	// SystemDebugStatsInterval is the interval in minutes to log system stats.
	SystemDebugStatsInterval nulls.Int `yaml:"system_debug_stats_interval"`
	// PublishLevel is the minimum level of entries that are published.
	PublishLevel zapcore.Level `yaml:"publish_level"`
}

var encConfig = zapcore.EncoderConfig{
	TimeKey:        "ts",
	LevelKey:       "level",
	NameKey:        "logger",
	CallerKey:      "caller",
	FunctionKey:    zapcore.OmitKey,
	MessageKey:     "msg",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.CapitalLevelEncoder,
	EncodeTime:     zapcore.ISO8601TimeEncoder,
	EncodeDuration: zapcore.StringDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

// NewLogger creates the application logger writing to stdout, stderr and the
// configured files. The additional cores are added to the tee as well.
func NewLogger(config Config, additional ...zapcore.Core) *zap.Logger {
	cores := make([]zapcore.Core, 0)
	// Setup stdout logger with colorful level output.
	stdOutEncConfig := encConfig
	stdOutEncConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cores = append(cores, zapcore.NewCore(
		zapcore.NewConsoleEncoder(stdOutEncConfig),
		zapcore.Lock(os.Stdout),
		zap.LevelEnablerFunc(func(level zapcore.Level) bool {
			return level >= config.StdoutLogLevel && level < zap.ErrorLevel
		})))
	// Setup error logger.
	cores = append(cores, zapcore.NewCore(
		zapcore.NewConsoleEncoder(encConfig),
		zapcore.Lock(os.Stderr),
		zap.LevelEnablerFunc(func(level zapcore.Level) bool {
			return level >= zap.ErrorLevel
		})))
	// Setup high priority logger.
	if config.HighPriorityOutput.Valid {
		cores = append(cores, fileCore(config, config.HighPriorityOutput.String, zap.WarnLevel))
	}
	// Setup debug logger.
	if config.DebugOutput.Valid {
		cores = append(cores, fileCore(config, config.DebugOutput.String, zap.DebugLevel))
	}
	cores = append(cores, additional...)
	// Combine.
	return zap.New(zapcore.NewTee(cores...))
}

// fileCore creates a core that logs to the file with the given name which is
// rotated by lumberjack.
func fileCore(config Config, filename string, minLevel zapcore.Level) zapcore.Core {
	return zapcore.NewCore(
		zapcore.NewConsoleEncoder(encConfig),
		zapcore.AddSync(&lumberjack.Logger{
			Filename: filename,
			MaxSize:  config.MaxSize,
			MaxAge:   config.KeepDays,
		}),
		zap.LevelEnablerFunc(func(level zapcore.Level) bool {
			return level >= minLevel
		}))
}
