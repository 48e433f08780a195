// Package utils holds small process-wide helpers shared across downd's
// packages, mirroring the teacher's flat internal/utils layout.
package utils

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Verbosity levels, matching the `-v` count from the CLI.
const (
	LevelError = iota
	LevelInfo
	LevelDebug
	LevelTrace
)

var (
	debugFile *os.File
	debugOnce sync.Once
	level     atomic.Int32
)

// SetVerbosity configures which levels also echo to stderr.
func SetVerbosity(v int) {
	level.Store(int32(v))
}

func echoes(min int) bool {
	return int(level.Load()) >= min
}

func write(prefix string, format string, args ...any) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("[%s] %s %s\n", timestamp, prefix, fmt.Sprintf(format, args...))
	debugOnce.Do(func() {
		debugFile, _ = os.Create("debug.log")
	})
	if debugFile != nil {
		fmt.Fprint(debugFile, line)
		debugFile.Sync()
	}
}

// Debug writes a message to debug.log, echoing to stderr at -vv or louder.
func Debug(format string, args ...any) {
	write("DEBUG", format, args...)
	if echoes(LevelDebug) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// Info writes a message to debug.log, echoing to stderr at -v or louder.
func Info(format string, args ...any) {
	write("INFO", format, args...)
	if echoes(LevelInfo) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// Trace writes a message to debug.log, echoing to stderr only at -vvv.
func Trace(format string, args ...any) {
	write("TRACE", format, args...)
	if echoes(LevelTrace) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// Error always echoes to stderr in addition to debug.log.
func Error(format string, args ...any) {
	write("ERROR", format, args...)
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
