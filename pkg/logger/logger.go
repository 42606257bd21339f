// ==============================================================================
// LOGGER PACKAGE - pkg/logger/logger.go
// ==============================================================================
// Structured JSON logging for the KYB services. The minimum emitted level is
// taken from LOG_LEVEL (debug|info|warn|error), defaulting to info.
// ==============================================================================
package logger

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

type Logger interface {
	Info(message string, fields map[string]interface{})
	Error(message string, fields map[string]interface{})
	Warn(message string, fields map[string]interface{})
	Debug(message string, fields map[string]interface{})
	Fatal(message string, fields map[string]interface{})
}

var levelRank = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
	"fatal": 4,
}

type jsonLogger struct {
	serviceName string
	minLevel    int
	logger      *log.Logger
}

func New(serviceName string) Logger {
	return NewWithWriter(serviceName, os.Stdout)
}

// NewWithWriter is split out so tests can capture output.
func NewWithWriter(serviceName string, w io.Writer) Logger {
	min, ok := levelRank[strings.ToLower(os.Getenv("LOG_LEVEL"))]
	if !ok {
		min = levelRank["info"]
	}
	return &jsonLogger{
		serviceName: serviceName,
		minLevel:    min,
		logger:      log.New(w, "", 0),
	}
}

func (l *jsonLogger) log(level, message string, fields map[string]interface{}) {
	if levelRank[level] < l.minLevel {
		return
	}

	entry := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"level":     level,
		"service":   l.serviceName,
		"message":   message,
	}

	for k, v := range fields {
		entry[k] = v
	}

	jsonData, _ := json.Marshal(entry)
	l.logger.Println(string(jsonData))
}

func (l *jsonLogger) Info(message string, fields map[string]interface{}) {
	l.log("info", message, fields)
}

func (l *jsonLogger) Error(message string, fields map[string]interface{}) {
	l.log("error", message, fields)
}

func (l *jsonLogger) Warn(message string, fields map[string]interface{}) {
	l.log("warn", message, fields)
}

func (l *jsonLogger) Debug(message string, fields map[string]interface{}) {
	l.log("debug", message, fields)
}

func (l *jsonLogger) Fatal(message string, fields map[string]interface{}) {
	l.log("fatal", message, fields)
	os.Exit(1)
}

func NewNop() Logger {
	return &nopLogger{}
}

type nopLogger struct{}

func (l *nopLogger) Info(message string, fields map[string]interface{})  {}
func (l *nopLogger) Error(message string, fields map[string]interface{}) {}
func (l *nopLogger) Warn(message string, fields map[string]interface{})  {}
func (l *nopLogger) Debug(message string, fields map[string]interface{}) {}
func (l *nopLogger) Fatal(message string, fields map[string]interface{}) {}
