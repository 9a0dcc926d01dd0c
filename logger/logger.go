package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Category  string `json:"category"`
	Message   string `json:"message"`
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
}

type Options struct {
	// Dir enables JSON line output to <Dir>/app.log when set.
	Dir      string
	Level    string
	NoColor  bool
	Terminal io.Writer
}

type Logger struct {
	mu           sync.Mutex
	out          io.Writer
	logFile      *os.File
	colorEnabled bool
	minLevel     LogLevel
}

func New(opts Options) (*Logger, error) {
	out := opts.Terminal
	if out == nil {
		out = os.Stdout
	}
	l := &Logger{
		out:          out,
		colorEnabled: !opts.NoColor,
		minLevel:     ParseLevel(opts.Level),
	}

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(filepath.Join(opts.Dir, "app.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.logFile = f
	}
	return l, nil
}

// NewWriter returns an uncolored terminal-only logger writing to w.
func NewWriter(w io.Writer) *Logger {
	return &Logger{out: w, minLevel: DEBUG}
}

// Discard drops everything. Used by tests and by components built without a logger.
func Discard() *Logger {
	return NewWriter(io.Discard)
}

func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

func (l *Logger) log(level LogLevel, category, message string) {
	if l == nil || level < l.minLevel {
		return
	}
	_, file, line, ok := runtime.Caller(2)
	if ok {
		file = filepath.Base(file)
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		Level:     levelToString(level),
		Category:  strings.ToUpper(category),
		Message:   message,
		File:      file,
		Line:      line,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.out, l.formatTerminalOutput(entry))
	if l.logFile != nil {
		enc := json.NewEncoder(l.logFile)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(entry); err != nil {
			fmt.Fprintf(l.out, "log file write failed: %v\n", err)
		}
	}
}

func (l *Logger) formatTerminalOutput(entry LogEntry) string {
	timestamp := entry.Timestamp[11:19]
	if !l.colorEnabled {
		return fmt.Sprintf("%s %-5s [%-10s] %s (%s:%d)\n", timestamp, entry.Level, entry.Category, entry.Message, entry.File, entry.Line)
	}

	var levelColor *color.Color
	switch entry.Level {
	case "DEBUG":
		levelColor = color.New(color.FgCyan)
	case "WARN":
		levelColor = color.New(color.FgYellow)
	case "ERROR":
		levelColor = color.New(color.FgRed)
	default:
		levelColor = color.New(color.FgGreen)
	}
	categoryColor := color.New(color.Bold)

	timeStr := color.New(color.FgBlue).Sprint(timestamp)
	levelStr := levelColor.Sprintf("%-5s", entry.Level)
	categoryStr := categoryColor.Sprintf("[%-10s]", entry.Category)
	fileInfo := color.New(color.FgMagenta).Sprintf(" (%s:%d)", entry.File, entry.Line)
	return fmt.Sprintf("%s %s %s %s%s\n", timeStr, levelStr, categoryStr, entry.Message, fileInfo)
}

func levelToString(level LogLevel) string {
	switch level {
	case DEBUG:
		return "DEBUG"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (l *Logger) Debug(category, message string) { l.log(DEBUG, category, message) }
func (l *Logger) Info(category, message string)  { l.log(INFO, category, message) }
func (l *Logger) Warn(category, message string)  { l.log(WARN, category, message) }
func (l *Logger) Error(category, message string) { l.log(ERROR, category, message) }

func (l *Logger) Infof(category, format string, args ...any) {
	l.log(INFO, category, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(category, format string, args ...any) {
	l.log(WARN, category, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(category, format string, args ...any) {
	l.log(ERROR, category, fmt.Sprintf(format, args...))
}

// LogTransition records a status change of one entity.
func (l *Logger) LogTransition(entity string, id uint, from, to string) {
	l.log(INFO, "LIFECYCLE", fmt.Sprintf("[%s] #%d %s -> %s", entity, id, from, to))
}

func (l *Logger) LogJob(job, message string) {
	l.log(INFO, "SWEEP", fmt.Sprintf("[%s] %s", job, message))
}

func (l *Logger) Close() {
	if l != nil && l.logFile != nil {
		l.logFile.Close()
	}
}
