package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/labstack/echo"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	appLogger     *logrus.Logger
	appLoggerOnce sync.Once
	logFile       io.WriteCloser
	logMutex      sync.Mutex
)

// LogConfig controls file rotation and formatting of the process logger.
type LogConfig struct {
	BaseDir    string `json:"base_dir"`
	MaxSize    int    `json:"max_size"`
	MaxBackups int    `json:"max_backups"`
	MaxAge     int    `json:"max_age"`
	Compress   bool   `json:"compress"`
	Level      string `json:"level"`
	Format     string `json:"format"` // json, text
}

// DefaultLogConfig returns the production defaults.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		BaseDir:    "./logs",
		MaxSize:    100,
		MaxBackups: 30,
		MaxAge:     90,
		Compress:   true,
		Level:      "info",
		Format:     "json",
	}
}

// GetLogger returns the singleton process logger, initialized lazily from
// the environment on first use.
func GetLogger() *logrus.Logger {
	appLoggerOnce.Do(func() {
		config := DefaultLogConfig()
		if format := os.Getenv("LOG_FORMAT"); format != "" {
			config.Format = format
		}
		if level := os.Getenv("LOG_LEVEL"); level != "" {
			config.Level = level
		}
		if dir := os.Getenv("LOG_DIR"); dir != "" {
			config.BaseDir = dir
		}
		appLogger = initLoggerWithConfig(config)
	})
	return appLogger
}

func initLoggerWithConfig(config LogConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	switch config.Format {
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	default:
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}

	if config.BaseDir != "" {
		setupDailyLogFile(logger, config)
		go dailyLogRotation(logger, config)
	} else {
		logger.SetOutput(os.Stdout)
	}

	return logger
}

// setupDailyLogFile points the logger at logs/<yyyy/mm/dd>/app.log through
// a size-capped lumberjack writer, mirrored to stdout.
func setupDailyLogFile(logger *logrus.Logger, config LogConfig) {
	logMutex.Lock()
	defer logMutex.Unlock()

	now := time.Now()
	logDir := filepath.Join(config.BaseDir, now.Format("2006/01/02"))
	if err := os.MkdirAll(logDir, 0755); err != nil {
		logger.WithError(err).Error("Failed to create log directory")
		logger.SetOutput(os.Stdout)
		return
	}

	if logFile != nil {
		logFile.Close()
	}

	lumber := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "app.log"),
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
	}
	logFile = lumber
	logger.SetOutput(io.MultiWriter(lumber, os.Stdout))
}

func dailyLogRotation(logger *logrus.Logger, config LogConfig) {
	for {
		now := time.Now()
		tomorrow := now.AddDate(0, 0, 1)
		midnight := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, now.Location())
		time.Sleep(time.Until(midnight))
		setupDailyLogFile(logger, config)
	}
}

// LoggingMiddleware logs every request and response through the process
// logger, tagging both with a request id.
func LoggingMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()
		res := c.Response()
		log := GetLogger()

		requestID := fmt.Sprintf("%d", time.Now().UnixNano())
		c.Set("request_id", requestID)

		err := next(c)
		duration := time.Since(start)

		logFields := logrus.Fields{
			"request_id":  requestID,
			"method":      req.Method,
			"path":        req.URL.Path,
			"status":      res.Status,
			"duration_ms": duration.Milliseconds(),
		}

		switch {
		case res.Status >= 500:
			log.WithFields(logFields).Error("Request completed")
		case res.Status >= 400:
			log.WithFields(logFields).Warn("Request completed")
		default:
			log.WithFields(logFields).Info("Request completed")
		}

		if err != nil {
			log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Request error occurred")
		}

		return err
	}
}

// RequestLogger returns a logger entry scoped to the current request.
func RequestLogger(c echo.Context) *logrus.Entry {
	log := GetLogger()
	requestID, ok := c.Get("request_id").(string)
	if !ok {
		requestID = "unknown"
	}
	return log.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     c.Request().Method,
		"path":       c.Request().URL.Path,
	})
}

// InitGlobalLogger aligns the global logrus instance with the singleton.
func InitGlobalLogger() {
	l := GetLogger()
	logrus.SetFormatter(l.Formatter)
	logrus.SetOutput(l.Out)
	logrus.SetLevel(l.Level)
}
