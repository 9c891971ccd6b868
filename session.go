package main

import (
	"errors"
	"fmt"
	"io"
)

// Session reads lines from its source until end of input, feeding each one
// to the framer. Lines are handled strictly one at a time.
type Session struct {
	Name   string
	source LineSource
	framer *Framer
	logger *Logger
}

func NewSession(name string, cfg Config, parser StatementParser, source LineSource, out io.Writer, logger *Logger) (*Session, error) {
	dispatcher, err := NewDispatcher(parser, JSONRenderer{Indent: cfg.IndentString()}, out, logger, cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Session{
		Name:   name,
		source: source,
		framer: NewFramer(dispatcher, source, out, logger, cfg),
		logger: logger,
	}, nil
}

// Run returns nil when the source reports end of input. Any other read
// error ends the session without the farewell.
func (s *Session) Run() error {
	defer func() {
		if err := s.source.Close(); err != nil {
			s.logger.Printf("close line source: %v", err)
		}
	}()

	s.logger.Debugf("session %s started", s.Name)
	s.framer.Prompt()
	for {
		line, err := s.source.ReadLine()
		if errors.Is(err, io.EOF) {
			s.framer.OnSessionEnd()
			s.logger.Debugf("session %s ended", s.Name)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}
		s.framer.OnLine(line)
	}
}

func (s *Session) State() State {
	return s.framer.State()
}
