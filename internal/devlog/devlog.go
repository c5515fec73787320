// internal/devlog/devlog.go

// Package devlog writes the device's diagnostic lines onto its outbound
// stream. The format is part of the wire contract: one prefixed line per
// message, consumed by the host's diagnostic buffer.
package devlog

import (
	"fmt"
	"io"
)

type Logger struct {
	w io.Writer
}

func New(w io.Writer) *Logger {
	return &Logger{w: w}
}

func (l *Logger) Infof(format string, args ...any) { l.emit("I:", format, args) }

func (l *Logger) Warnf(format string, args ...any) { l.emit("W:", format, args) }

func (l *Logger) Errorf(format string, args ...any) { l.emit("E:", format, args) }

func (l *Logger) emit(prefix, format string, args []any) {
	fmt.Fprintf(l.w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}
