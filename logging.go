package main

import (
	"fmt"
	"io"
	"log"
)

// Logger writes diagnostics to stderr, never to the console output.
type Logger struct {
	*log.Logger
	debug bool
}

func NewLogger(w io.Writer, session string, debug bool) *Logger {
	return &Logger{
		Logger: log.New(w, fmt.Sprintf("sqlrepl[%s] ", session), log.LstdFlags),
		debug:  debug,
	}
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.debug {
		l.Printf("debug: "+format, args...)
	}
}
