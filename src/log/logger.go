// MIT License
//
// Copyright (c) 2024 sphinx-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// go/src/logger.go
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel defines the severity level of the log message.
type LogLevel int

// Log level constants starting from 0 with iota.
const (
	DEBUG LogLevel = iota // Detailed debug information.
	INFO                  // General informational messages.
	WARN                  // Warnings about potential issues.
	ERROR                 // Error messages.
)

// levelNames associates LogLevel constants with string labels.
var levelNames = [...]string{"debug", "info", "warn", "error"}

// zapLevels maps LogLevel onto zap's levels.
var zapLevels = [...]zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}

// String returns the lower-case level name.
func (l LogLevel) String() string {
	if l < DEBUG || l > ERROR {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel maps a configuration string onto a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if s == name {
			return LogLevel(i), nil
		}
	}
	if s == "warning" {
		return WARN, nil
	}
	return INFO, fmt.Errorf("unknown log level %q", s)
}

// LogBuffer is a thread-safe bytes.Buffer to store logs in memory.
type LogBuffer struct {
	mu  sync.Mutex   // protects buf
	buf bytes.Buffer // underlying buffer
}

// Write implements io.Writer interface for LogBuffer.
func (l *LogBuffer) Write(p []byte) (n int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Write(p)
}

// Sync implements zapcore.WriteSyncer.
func (l *LogBuffer) Sync() error { return nil }

// String returns the current contents of the buffer as a string.
func (l *LogBuffer) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.String()
}

// Reset discards the buffered log lines.
func (l *LogBuffer) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf.Reset()
}

// Global logger state.
var (
	mu     sync.RWMutex
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	buffer = &LogBuffer{}
	base   *zap.Logger
	sugar  *zap.SugaredLogger
)

func init() {
	SetOutput(os.Stdout)
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

// SetOutput rebuilds the global logger so that console output goes to w.
// Every line is also kept in the in-memory buffer returned by GetLogs.
func SetOutput(w io.Writer) {
	enc := zapcore.NewConsoleEncoder(encoderConfig())
	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.AddSync(w), level),
		zapcore.NewCore(enc.Clone(), buffer, level),
	)
	l := zap.New(core)

	mu.Lock()
	base, sugar = l, l.Sugar()
	mu.Unlock()
}

// Logger returns the structured logger behind the package functions.
func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func sugared() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// SetLevel sets the global logging level.
// Messages below this level will be ignored.
func SetLevel(lvl LogLevel) {
	if lvl < DEBUG || lvl > ERROR {
		lvl = INFO
	}
	level.SetLevel(zapLevels[lvl])
}

// GetLevel returns the current global logging level.
func GetLevel() LogLevel {
	for i, l := range zapLevels {
		if level.Level() == l {
			return LogLevel(i)
		}
	}
	return INFO
}

// GetLogs returns everything logged since start-up or the last ResetLogs.
func GetLogs() string { return buffer.String() }

// ResetLogs clears the in-memory log buffer.
func ResetLogs() { buffer.Reset() }

// Infof logs a formatted message at INFO level.
func Infof(format string, args ...any) { sugared().Infof(format, args...) }

// Errorf logs a formatted message at ERROR level.
func Errorf(format string, args ...any) { sugared().Errorf(format, args...) }

// Fatalf logs a formatted message at ERROR level and then terminates the program.
func Fatalf(format string, args ...any) {
	s := sugared()
	s.Errorf(format, args...)
	_ = s.Sync()
	os.Exit(1)
}

// Debugf logs a formatted message at DEBUG level.
func Debugf(format string, args ...any) { sugared().Debugf(format, args...) }

// Warnf logs a formatted message at WARN level.
func Warnf(format string, args ...any) { sugared().Warnf(format, args...) }
