package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// LineSource delivers input lines one at a time. ReadLine returns io.EOF
// once input is exhausted and never delivers a line after that.
type LineSource interface {
	Prompter
	ReadLine() (string, error)
	Close() error
}

// ReaderSource reads lines from any reader and writes prompts straight to
// out as soon as they are emitted. Lines have no length limit.
type ReaderSource struct {
	reader *bufio.Reader
	out    io.Writer
	done   bool
}

func NewReaderSource(in io.Reader, out io.Writer) *ReaderSource {
	return &ReaderSource{reader: bufio.NewReader(in), out: out}
}

func (s *ReaderSource) Prompt(prompt string) {
	fmt.Fprint(s.out, prompt)
}

// ReadLine strips the line ending. A final line without a newline is still
// delivered before io.EOF.
func (s *ReaderSource) ReadLine() (string, error) {
	if s.done {
		return "", io.EOF
	}
	line, err := s.reader.ReadString('\n')
	if err != nil {
		s.done = true
		if errors.Is(err, io.EOF) && line != "" {
			return trimLineEnding(line), nil
		}
		return "", err
	}
	return trimLineEnding(line), nil
}

func (s *ReaderSource) Close() error {
	return nil
}

func trimLineEnding(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// lineEditor is the part of *liner.State a TerminalSource drives.
type lineEditor interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
	Close() error
}

// TerminalSource reads lines with line editing and history. The prompt set
// by Prompt is shown for the next read only; later reads show the
// continuation prompt until Prompt is called again.
type TerminalSource struct {
	state        lineEditor
	next         string
	continuation string
	historyFile  string
	logger       *Logger
}

func NewTerminalSource(cfg Config, logger *Logger) *TerminalSource {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return newTerminalSource(state, cfg, logger)
}

func newTerminalSource(editor lineEditor, cfg Config, logger *Logger) *TerminalSource {
	s := &TerminalSource{
		state:        editor,
		next:         cfg.ContinuationPrompt,
		continuation: cfg.ContinuationPrompt,
		historyFile:  cfg.HistoryFile,
		logger:       logger,
	}
	s.readHistory()
	return s
}

func (s *TerminalSource) Prompt(prompt string) {
	s.next = prompt
}

// ReadLine reports an interrupt (Ctrl-C) as end of input.
func (s *TerminalSource) ReadLine() (string, error) {
	prompt := s.next
	s.next = s.continuation

	line, err := s.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		s.state.AppendHistory(line)
	}
	return line, nil
}

func (s *TerminalSource) Close() error {
	s.writeHistory()
	return s.state.Close()
}

func (s *TerminalSource) readHistory() {
	if s.historyFile == "" {
		return
	}
	f, err := os.Open(s.historyFile)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		s.logger.Printf("open history: %v", err)
		return
	}
	defer f.Close()
	if _, err := s.state.ReadHistory(f); err != nil {
		s.logger.Printf("read history: %v", err)
	}
}

func (s *TerminalSource) writeHistory() {
	if s.historyFile == "" {
		return
	}
	f, err := os.Create(s.historyFile)
	if err != nil {
		s.logger.Printf("create history: %v", err)
		return
	}
	defer f.Close()
	if _, err := s.state.WriteHistory(f); err != nil {
		s.logger.Printf("write history: %v", err)
	}
}
