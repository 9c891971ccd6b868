package main

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

const Terminator = ";"

type State uint

const (
	Collecting State = iota
	Ended
)

func (s State) String() string {
	switch s {
	case Collecting:
		return "collecting"
	case Ended:
		return "ended"
	default:
		return fmt.Sprintf("State(%d)", uint(s))
	}
}

type Prompter interface {
	Prompt(prompt string)
}

type StatementDispatcher interface {
	Dispatch(text string)
}

// Framer turns a stream of input lines into complete statements. A line
// whose last non-whitespace character is the terminator completes the
// statement; every other line is buffered verbatim.
type Framer struct {
	pending    PendingBuffer
	state      State
	dispatcher StatementDispatcher
	prompter   Prompter
	out        io.Writer
	logger     *Logger
	prompt     string
	farewell   string
}

func NewFramer(dispatcher StatementDispatcher, prompter Prompter, out io.Writer, logger *Logger, cfg Config) *Framer {
	return &Framer{
		pending:    NewPendingBuffer(),
		state:      Collecting,
		dispatcher: dispatcher,
		prompter:   prompter,
		out:        out,
		logger:     logger,
		prompt:     cfg.PrimaryPrompt,
		farewell:   cfg.Farewell,
	}
}

// Prompt emits the primary prompt.
func (f *Framer) Prompt() {
	f.prompter.Prompt(f.prompt)
}

func (f *Framer) OnLine(line string) {
	if f.state == Ended {
		return
	}

	remainder, ok := splitTerminator(line)
	if !ok {
		f.pending.Append(line)
		return
	}

	f.pending.Append(remainder)
	text := f.pending.Flush()
	f.dispatcher.Dispatch(text)
	f.Prompt()
}

// OnSessionEnd drops any unterminated statement and says goodbye.
func (f *Framer) OnSessionEnd() {
	if f.state == Ended {
		return
	}
	if n := f.pending.Length(); n > 0 {
		f.logger.Debugf("discarding %d unterminated line(s) at end of input", n)
		f.pending.Clear()
	}
	f.state = Ended
	fmt.Fprintln(f.out, f.farewell)
}

func (f *Framer) Pending() []string {
	return f.pending.Lines()
}

func (f *Framer) State() State {
	return f.state
}

// splitTerminator reports whether line is a terminator line and returns the
// content before the terminator.
func splitTerminator(line string) (string, bool) {
	trimmed := strings.TrimRightFunc(line, unicode.IsSpace)
	if !strings.HasSuffix(trimmed, Terminator) {
		return "", false
	}
	return strings.TrimSuffix(trimmed, Terminator), true
}
