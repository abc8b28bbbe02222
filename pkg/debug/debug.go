// Package debug provides conditional debug logging for glossnet.
//
// Logging is enabled by setting GLOSSNET_DEBUG:
//
//	GLOSSNET_DEBUG=1 glossnet --data glossary.csv
//
// The TUI owns the terminal while it runs, so output normally goes to a
// file named by GLOSSNET_DEBUG_FILE. Without it, messages go to stderr.
// When disabled (default), every function is a no-op.
package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

const prefix = "[GLOSSNET] "

var (
	mu      sync.Mutex
	enabled bool
	logger  *log.Logger
	logFile *os.File
)

func init() {
	if os.Getenv("GLOSSNET_DEBUG") == "" {
		return
	}
	var out io.Writer = os.Stderr
	if path := os.Getenv("GLOSSNET_DEBUG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			logFile = f
			out = f
		}
	}
	enabled = true
	logger = log.New(out, prefix, log.Ltime|log.Lmicroseconds)
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// SetEnabled turns logging on or off at runtime.
func SetEnabled(e bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, prefix, log.Ltime|log.Lmicroseconds)
	}
}

// SetOutput redirects log output. Tests use it to capture messages.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, prefix, log.Ltime|log.Lmicroseconds)
}

// Close releases the log file opened for GLOSSNET_DEBUG_FILE, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	enabled = false
	return err
}

func printf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled || logger == nil {
		return
	}
	logger.Printf(format, args...)
}

// Log writes a printf-style debug message.
func Log(format string, args ...any) {
	printf(format, args...)
}

// LogTiming writes how long an operation took.
func LogTiming(name string, d time.Duration) {
	printf("%s took %v", name, d)
}

// LogIf writes a message only if cond is true.
func LogIf(cond bool, format string, args ...any) {
	if !cond {
		return
	}
	printf(format, args...)
}

// LogEnterExit logs entry and exit with timing:
//
//	defer debug.LogEnterExit("loadDataset")()
func LogEnterExit(name string) func() {
	if !Enabled() {
		return func() {}
	}
	printf("-> %s", name)
	start := time.Now()
	return func() {
		printf("<- %s (%v)", name, time.Since(start))
	}
}

// Section logs a header to group related messages.
func Section(name string) {
	printf("=== %s ===", name)
}

// Dump logs a value with its type.
func Dump(name string, v any) {
	if !Enabled() {
		return
	}
	printf("%s: %T = %s", name, v, fmt.Sprintf("%+v", v))
}
