package main

import "strings"

// PendingBuffer holds the raw lines of a statement that has not been
// terminated yet.
type PendingBuffer struct {
	lines []string
}

func NewPendingBuffer() PendingBuffer {
	return PendingBuffer{}
}

func (pb *PendingBuffer) Append(line string) {
	pb.lines = append(pb.lines, line)
}

// Join returns the buffered lines separated by newlines.
func (pb *PendingBuffer) Join() string {
	return strings.Join(pb.lines, "\n")
}

func (pb *PendingBuffer) Clear() {
	pb.lines = nil
}

func (pb *PendingBuffer) Length() int {
	return len(pb.lines)
}

func (pb *PendingBuffer) Lines() []string {
	lines := make([]string, len(pb.lines))
	copy(lines, pb.lines)
	return lines
}

// Flush returns the joined statement text and empties the buffer.
func (pb *PendingBuffer) Flush() string {
	text := pb.Join()
	pb.Clear()
	return text
}
