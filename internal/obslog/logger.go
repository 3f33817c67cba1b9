// Package obslog provides the structured, leveled logging used across
// cothread, adapted from the teacher project's kernel/utils logger.
package obslog

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a log message.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
	Fatal
)

var levelNames = map[Level]string{
	Debug: "DEBUG",
	Info:  "INFO",
	Warn:  "WARN",
	Error: "ERROR",
	Fatal: "FATAL",
}

var levelColors = map[Level]string{
	Debug: "\033[36m",
	Info:  "\033[32m",
	Warn:  "\033[33m",
	Error: "\033[31m",
	Fatal: "\033[35m",
}

const colorReset = "\033[0m"

// Logger is a leveled, field-based logger with an optional component tag.
type Logger struct {
	mu         sync.Mutex
	level      Level
	component  string
	output     io.Writer
	colorize   bool
	showCaller bool
	timeFormat string
	halt       func(code int)
}

// Config configures a Logger instance.
type Config struct {
	Level      Level
	Component  string
	Output     io.Writer
	Colorize   bool
	ShowCaller bool
	TimeFormat string
	// Halt is invoked by Fatal after the message is written. Defaults to os.Exit.
	Halt func(code int)
}

// New creates a Logger from Config, filling in sensible defaults.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = "15:04:05.000"
	}
	if cfg.Halt == nil {
		cfg.Halt = os.Exit
	}
	return &Logger{
		level:      cfg.Level,
		component:  cfg.Component,
		output:     cfg.Output,
		colorize:   cfg.Colorize,
		showCaller: cfg.ShowCaller,
		timeFormat: cfg.TimeFormat,
		halt:       cfg.Halt,
	}
}

// Default returns a Logger with INFO level, colorized stdout output.
func Default(component string) *Logger {
	return New(Config{
		Level:     Info,
		Component: component,
		Output:    os.Stdout,
		Colorize:  true,
	})
}

// With returns a copy of the logger tagged with a different component.
func (l *Logger) With(component string) *Logger {
	return &Logger{
		level:      l.level,
		component:  component,
		output:     l.output,
		colorize:   l.colorize,
		showCaller: l.showCaller,
		timeFormat: l.timeFormat,
		halt:       l.halt,
	}
}

func (l *Logger) Debug(msg string, fields ...Field) { l.log(Debug, msg, fields...) }
func (l *Logger) Info(msg string, fields ...Field)  { l.log(Info, msg, fields...) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.log(Warn, msg, fields...) }
func (l *Logger) Error(msg string, fields ...Field) { l.log(Error, msg, fields...) }

// Fatal logs at FATAL and halts the process (os.Exit by default).
func (l *Logger) Fatal(msg string, fields ...Field) {
	l.log(Fatal, msg, fields...)
	l.halt(1)
}

// Raw writes a pre-formatted line verbatim, bypassing level filtering and
// field rendering. The scheduler's spec-mandated "Thread NAME: event" lines
// use this so their exact text is never altered by the structured format.
func (l *Logger) Raw(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.Write([]byte(line))
	redirectToPlatformSink(Info, line)
}

func (l *Logger) log(level Level, msg string, fields ...Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	var b strings.Builder
	if l.colorize {
		b.WriteString(levelColors[level])
	}
	b.WriteString("[")
	b.WriteString(time.Now().Format(l.timeFormat))
	b.WriteString("] [")
	b.WriteString(fmt.Sprintf("%-5s", levelNames[level]))
	b.WriteString("] ")
	if l.component != "" {
		b.WriteString("[")
		b.WriteString(l.component)
		b.WriteString("] ")
	}
	b.WriteString(msg)

	for i, f := range fields {
		if i == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(" ")
		}
		b.WriteString(f.Key)
		b.WriteString("=")
		b.WriteString(f.format())
	}

	if l.showCaller {
		if _, file, line, ok := runtime.Caller(2); ok {
			parts := strings.Split(file, "/")
			b.WriteString(fmt.Sprintf(" (%s:%d)", parts[len(parts)-1], line))
		}
	}

	if l.colorize {
		b.WriteString(colorReset)
	}
	b.WriteString("\n")

	line := b.String()
	l.output.Write([]byte(line))
	redirectToPlatformSink(level, line)
}

// Field is a key/value pair attached to a structured log line.
type Field struct {
	Key   string
	Value interface{}
}

func (f Field) format() string {
	switch v := f.Value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case error:
		return fmt.Sprintf("%q", v.Error())
	case time.Duration:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func String(k, v string) Field            { return Field{k, v} }
func Int(k string, v int) Field           { return Field{k, v} }
func Int64(k string, v int64) Field       { return Field{k, v} }
func Uint64(k string, v uint64) Field     { return Field{k, v} }
func Bool(k string, v bool) Field         { return Field{k, v} }
func Err(err error) Field                 { return Field{"error", err} }
func Duration(k string, v time.Duration) Field { return Field{k, v} }
func Any(k string, v interface{}) Field   { return Field{k, v} }
