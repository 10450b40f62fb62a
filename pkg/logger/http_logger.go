package logger

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// HTTPLogger appends one line per request to an access log file.
// Disabled (no-op) when HTTP_LOG_FILE is unset.
type HTTPLogger struct {
	mu   sync.Mutex
	file *os.File
}

// NewHTTPLogger opens the access log file named by HTTP_LOG_FILE.
func NewHTTPLogger() *HTTPLogger {
	path := os.Getenv("HTTP_LOG_FILE")
	if path == "" {
		return &HTTPLogger{}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		// Access logging is best-effort; fall back to no-op.
		return &HTTPLogger{}
	}
	return &HTTPLogger{file: f}
}

// LogRequest writes a single access log line.
func (l *HTTPLogger) LogRequest(ip, method, uri string, status int, latency time.Duration, userAgent, requestID string) {
	if l.file == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.file, "%s %s %s %s %d %s %q %s\n",
		time.Now().UTC().Format(time.RFC3339),
		ip, method, uri, status, latency, userAgent, requestID)
}

// Close closes the underlying file.
func (l *HTTPLogger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
