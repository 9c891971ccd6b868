package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	lru "github.com/hashicorp/golang-lru/v2"
)

type StatementParser interface {
	ParseStatement(text string) (Statement, error)
}

// ParserFunc adapts a plain function to StatementParser.
type ParserFunc func(text string) (Statement, error)

func (f ParserFunc) ParseStatement(text string) (Statement, error) {
	return f(text)
}

// ParseOutcome is the result of parsing one statement: either Statement or
// Err is set.
type ParseOutcome struct {
	Statement *Statement
	Err       error
}

// Dispatcher parses completed statements and writes the outcome to out.
// Errors are written to out as well; nothing a statement does ends the
// session.
type Dispatcher struct {
	parser   StatementParser
	renderer Renderer
	out      io.Writer
	logger   *Logger
	cache    *lru.Cache[string, ParseOutcome]
}

func NewDispatcher(parser StatementParser, renderer Renderer, out io.Writer, logger *Logger, cacheSize int) (*Dispatcher, error) {
	d := &Dispatcher{
		parser:   parser,
		renderer: renderer,
		out:      out,
		logger:   logger,
	}
	if cacheSize > 0 {
		cache, err := lru.New[string, ParseOutcome](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create parse cache: %w", err)
		}
		d.cache = cache
	}
	return d, nil
}

func (d *Dispatcher) Dispatch(text string) {
	d.logger.Debugf("dispatching %q", text)
	outcome := d.Parse(text)
	if outcome.Err != nil {
		d.writeError(outcome.Err)
		return
	}
	if err := d.render(*outcome.Statement); err != nil {
		d.writeError(err)
	}
}

// Parse returns the outcome for text, from the cache when possible.
// Unexpected faults are never cached.
func (d *Dispatcher) Parse(text string) ParseOutcome {
	if d.cache != nil {
		if outcome, ok := d.cache.Get(text); ok {
			d.logger.Debugf("parse cache hit for %q", text)
			return outcome
		}
	}

	outcome := d.parse(text)

	var fault *UnexpectedFault
	if d.cache != nil && !errors.As(outcome.Err, &fault) {
		d.cache.Add(text, outcome)
	}
	return outcome
}

func (d *Dispatcher) parse(text string) (outcome ParseOutcome) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Printf("parser panicked on %q: %v", text, r)
			outcome = ParseOutcome{Err: &UnexpectedFault{Value: r}}
		}
	}()

	statement, err := d.parser.ParseStatement(text)
	if err != nil {
		return ParseOutcome{Err: err}
	}
	return ParseOutcome{Statement: &statement}
}

// render buffers the rendered statement so a failing renderer leaves no
// partial output behind.
func (d *Dispatcher) render(statement Statement) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Printf("renderer panicked on %s statement: %v", statement.Kind, r)
			err = &UnexpectedFault{Value: r}
		}
	}()

	var buf bytes.Buffer
	if err := d.renderer.Render(&buf, statement); err != nil {
		return err
	}
	_, err = d.out.Write(buf.Bytes())
	return err
}

func (d *Dispatcher) writeError(err error) {
	if _, werr := fmt.Fprintln(d.out, err.Error()); werr != nil {
		d.logger.Printf("write error output: %v", werr)
	}
}
