// ABOUTME: Process-wide structured logging setup
// ABOUTME: Logs to stderr only; stdout carries the MCP stdio transport
package logging

import (
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/motemen/go-loghttp"
)

// Setup configures the default logger. The level comes from LOG_LEVEL
// (debug, info, warn, error); anything unparseable falls back to info.
func Setup() {
	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(true)

	level := log.InfoLevel
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if parsed, err := log.ParseLevel(v); err == nil {
			level = parsed
		}
	}
	log.SetLevel(level)
}

// HTTPTransport wraps base with request/response debug logging.
// Wire-level traffic only shows up at debug level.
func HTTPTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &loghttp.Transport{
		Transport: base,
		LogRequest: func(req *http.Request) {
			log.Debug("HTTP request", "method", req.Method, "url", req.URL.String())
		},
		LogResponse: func(resp *http.Response) {
			log.Debug("HTTP response",
				"method", resp.Request.Method,
				"url", resp.Request.URL.String(),
				"status", resp.StatusCode,
			)
		},
	}
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...any) { log.Debug(msg, keyvals...) }

// Info logs an info message.
func Info(msg string, keyvals ...any) { log.Info(msg, keyvals...) }

// Warn logs a warning message.
func Warn(msg string, keyvals ...any) { log.Warn(msg, keyvals...) }

// Error logs an error message.
func Error(msg string, keyvals ...any) { log.Error(msg, keyvals...) }
