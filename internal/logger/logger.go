package logger

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus with automatic redaction of sensitive fields so that
// request logs never leak emails, tokens or password material.
type Logger struct {
	log   *logrus.Logger
	isDev bool
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Initialize sets up the default logger instance.
func Initialize(level string, isDev bool) {
	once.Do(func() {
		defaultLogger = New(level, isDev)
	})
}

// New builds a redacting logger at the given logrus level ("debug", "info", ...).
func New(level string, isDev bool) *Logger {
	log := logrus.New()

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	log.SetLevel(logLevel)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stdout)

	return &Logger{log: log, isDev: isDev}
}

// GetLogger returns the default logger instance.
func GetLogger() *Logger {
	if defaultLogger == nil {
		Initialize("info", false)
	}
	return defaultLogger
}

// redactEmail redacts email addresses for privacy.
func redactEmail(email string) string {
	if email == "" {
		return ""
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "****"
	}

	local := parts[0]
	domain := parts[1]

	if len(local) <= 2 {
		return "****@" + domain
	}

	return local[0:1] + "****" + local[len(local)-1:] + "@" + domain
}

// truncateID truncates opaque identifiers like tokens or public IDs.
func truncateID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:4] + "****"
}

// redactValue redacts sensitive values based on the key name.
func redactValue(key string, value interface{}) interface{} {
	keyLower := strings.ToLower(key)
	valueStr, isString := value.(string)

	if strings.Contains(keyLower, "password") {
		return "[REDACTED]"
	}

	if !isString {
		return value
	}

	if strings.Contains(keyLower, "email") || strings.Contains(valueStr, "@") {
		return redactEmail(valueStr)
	}

	if strings.Contains(keyLower, "token") || strings.Contains(keyLower, "public_id") {
		return truncateID(valueStr)
	}

	return value
}

func (l *Logger) entry(fields logrus.Fields) *logrus.Entry {
	if l.isDev && l.log.IsLevelEnabled(logrus.DebugLevel) {
		return l.log.WithFields(fields)
	}
	redacted := make(logrus.Fields, len(fields))
	for k, v := range fields {
		redacted[k] = redactValue(k, v)
	}
	return l.log.WithFields(redacted)
}

func (l *Logger) Debug(msg string, fields logrus.Fields) { l.entry(fields).Debug(msg) }
func (l *Logger) Info(msg string, fields logrus.Fields)  { l.entry(fields).Info(msg) }
func (l *Logger) Warn(msg string, fields logrus.Fields)  { l.entry(fields).Warn(msg) }
func (l *Logger) Error(msg string, fields logrus.Fields) { l.entry(fields).Error(msg) }

// Package-level convenience functions using the default logger.

func Debug(msg string, fields logrus.Fields) { GetLogger().Debug(msg, fields) }
func Info(msg string, fields logrus.Fields)  { GetLogger().Info(msg, fields) }
func Warn(msg string, fields logrus.Fields)  { GetLogger().Warn(msg, fields) }
func Error(msg string, fields logrus.Fields) { GetLogger().Error(msg, fields) }
