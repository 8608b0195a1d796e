// Package logger 封装全局 logrus 实例
// 启动时先以默认配置初始化，读取配置文件后再按 log 配置重新初始化
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger 全局日志实例
var Logger *logrus.Logger

// Config 日志配置，对应配置文件中的 log 段
type Config struct {
	Level    string `mapstructure:"level" json:"level"`         // debug、info、warn、error
	Format   string `mapstructure:"format" json:"format"`       // text 或 json
	Output   string `mapstructure:"output" json:"output"`       // console、file、both
	FilePath string `mapstructure:"file_path" json:"file_path"` // output 含 file 时的日志文件
}

// DefaultConfig 默认输出到控制台的文本日志
func DefaultConfig() *Config {
	return &Config{
		Level:    "info",
		Format:   "text",
		Output:   "console",
		FilePath: "logs/studyhub.log",
	}
}

const timeLayout = "2006-01-02 15:04:05"

// Init 按配置创建全局日志实例，并把 gin 的默认输出接入
// cfg 为 nil 时使用 DefaultConfig；只有打开日志文件失败时返回错误
func Init(cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	l := logrus.New()
	var warnings []string

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
		warnings = append(warnings, fmt.Sprintf("unknown log level %q, using info", cfg.Level))
	}
	l.SetLevel(level)

	switch cfg.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: timeLayout})
	case "text", "":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: timeLayout})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: timeLayout})
		warnings = append(warnings, fmt.Sprintf("unknown log format %q, using text", cfg.Format))
	}

	out, err := openOutput(cfg)
	if err != nil {
		return err
	}
	if out == nil {
		out = os.Stdout
		warnings = append(warnings, fmt.Sprintf("unknown log output %q, using console", cfg.Output))
	}
	l.SetOutput(out)

	Logger = l
	gin.DefaultWriter = &ginWriter{entry: l.WithField("source", "gin"), level: logrus.DebugLevel}
	gin.DefaultErrorWriter = &ginWriter{entry: l.WithField("source", "gin"), level: logrus.ErrorLevel}

	for _, w := range warnings {
		l.Warn(w)
	}
	l.WithFields(logrus.Fields{"level": level.String(), "output": cfg.Output}).Info("Logger initialized")
	return nil
}

// openOutput 返回日志写入目标，未知的输出方式返回 nil
func openOutput(cfg *Config) (io.Writer, error) {
	switch cfg.Output {
	case "console", "":
		return os.Stdout, nil
	case "file", "both":
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		if cfg.Output == "both" {
			return io.MultiWriter(os.Stdout, f), nil
		}
		return f, nil
	default:
		return nil, nil
	}
}

// ginWriter 把 gin 自身的输出（路由注册、panic 恢复等）转成日志条目
type ginWriter struct {
	entry *logrus.Entry
	level logrus.Level
}

func (w *ginWriter) Write(p []byte) (int, error) {
	if msg := string(bytes.TrimSpace(p)); msg != "" {
		w.entry.Log(w.level, msg)
	}
	return len(p), nil
}

// GetLogger 返回全局日志实例，尚未初始化时按默认配置初始化
func GetLogger() *logrus.Logger {
	if Logger == nil {
		if err := Init(nil); err != nil {
			return logrus.StandardLogger()
		}
	}
	return Logger
}

func Info(args ...interface{}) { GetLogger().Info(args...) }

func Warn(args ...interface{}) { GetLogger().Warn(args...) }

func Warnf(format string, args ...interface{}) { GetLogger().Warnf(format, args...) }

func Error(args ...interface{}) { GetLogger().Error(args...) }

func Errorf(format string, args ...interface{}) { GetLogger().Errorf(format, args...) }

// Fatalf 记录日志后退出进程，仅用于启动阶段
func Fatalf(format string, args ...interface{}) { GetLogger().Fatalf(format, args...) }

func WithField(key string, value interface{}) *logrus.Entry {
	return GetLogger().WithField(key, value)
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return GetLogger().WithFields(fields)
}

func WithError(err error) *logrus.Entry {
	return GetLogger().WithError(err)
}
