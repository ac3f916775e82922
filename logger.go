package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Logger writes to a daily file under ~/.gomoku/logs so diagnostics never
// corrupt the terminal UI. Logging failures are swallowed: a game without a
// log beats a log without a game.
type Logger struct {
	logger *log.Logger
	file   *os.File
}

func NewLogger() *Logger {
	dir, err := gomokuHomeDir()
	if err != nil {
		return &Logger{logger: log.New(io.Discard, "", 0)}
	}
	logDir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return &Logger{logger: log.New(io.Discard, "", 0)}
	}
	name := fmt.Sprintf("gomoku_%s.log", time.Now().Format("20060102"))
	file, err := os.OpenFile(filepath.Join(logDir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return &Logger{logger: log.New(io.Discard, "", 0)}
	}
	return &Logger{
		logger: log.New(file, "", log.LstdFlags|log.Lmicroseconds),
		file:   file,
	}
}

func (l *Logger) Infof(format string, args ...any) {
	l.logger.Printf("INFO  "+format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.logger.Printf("WARN  "+format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.logger.Printf("ERROR "+format, args...)
}

func (l *Logger) Close() {
	if l.file != nil {
		l.file.Close()
	}
}

func gomokuHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".gomoku"), nil
}
