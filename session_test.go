package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSession(t *testing.T, input string, parser StatementParser) string {
	t.Helper()
	out := &bytes.Buffer{}
	source := NewReaderSource(strings.NewReader(input), out)
	session, err := NewSession("test", DefaultConfig(), parser, source, out, newTestLogger())
	require.NoError(t, err)
	require.NoError(t, session.Run())
	assert.Equal(t, Ended, session.State())
	return out.String()
}

func TestSession_SelectOne(t *testing.T) {
	output := runSession(t, "select 1;\n", SQLParser{})

	expected := `sql> {
    "type": "select",
    "select": {
        "items": [
            {
                "expression": {
                    "type": "literal",
                    "value": 1
                }
            }
        ]
    }
}
sql> Bye!
`
	assert.Equal(t, expected, output)
}

func TestSession_MultiLineStatement(t *testing.T) {
	var received []string
	parser := ParserFunc(func(text string) (Statement, error) {
		received = append(received, text)
		return SQLParser{}.ParseStatement(text)
	})

	output := runSession(t, "select *\nfrom t;\n", parser)

	assert.Equal(t, []string{"select *\nfrom t"}, received)
	assert.Equal(t, 2, strings.Count(output, "sql> "))
	assert.Contains(t, output, `"name": "t"`)
}

type sessionTest struct {
	input    string
	expected string
}

var sessionTests = []sessionTest{
	{"", "sql> Bye!\n"},
	{"select 1\n", "sql> Bye!\n"},
	{"select * from;\n", "sql> line 1, column 14: expected identifier after 'from', found end of input\nsql> Bye!\n"},
	{";\n", "sql> line 1, column 1: empty statement\nsql> Bye!\n"},
	{"select * from;\nselect * from;\n", "sql> line 1, column 14: expected identifier after 'from', found end of input\nsql> line 1, column 14: expected identifier after 'from', found end of input\nsql> Bye!\n"},
	{"drop table a;\r\nselect\n", "sql> {\n    \"type\": \"drop table\",\n    \"dropTable\": {\n        \"name\": \"a\"\n    }\n}\nsql> Bye!\n"},
}

func TestSession_Run(t *testing.T) {
	for _, test := range sessionTests {
		t.Logf("running test %q", test.input)
		assert.Equal(t, test.expected, runSession(t, test.input, SQLParser{}))
	}
}

func TestSession_SurvivesPanickingParser(t *testing.T) {
	parser := ParserFunc(func(text string) (Statement, error) {
		if text == "bad" {
			panic("unreachable state")
		}
		return dropTable(text)
	})

	output := runSession(t, "bad;\nok;\n", parser)

	assert.True(t, strings.HasPrefix(output, "sql> unexpected parser failure: unreachable state\nsql> {"))
	assert.True(t, strings.HasSuffix(output, "sql> Bye!\n"))
}

func TestSession_LongLine(t *testing.T) {
	long := "select '" + strings.Repeat("a", 2<<20) + "';\n"

	output := runSession(t, long+"select 1;\n", SQLParser{})

	assert.Equal(t, 3, strings.Count(output, "sql> "))
	assert.Contains(t, output, strings.Repeat("a", 2<<20))
	assert.True(t, strings.HasSuffix(output, "\"value\": 1\n                }\n            }\n        ]\n    }\n}\nsql> Bye!\n"))
}

func TestSession_SurvivesDeepNesting(t *testing.T) {
	deep := "select " + strings.Repeat("(", 10000) + "1" + strings.Repeat(")", 10000) + ";\n"

	output := runSession(t, deep+"select 1;\n", SQLParser{})

	assert.True(t, strings.HasPrefix(output, "sql> line 1, column 1008: expression nested too deeply\nsql> {"))
	assert.True(t, strings.HasSuffix(output, "sql> Bye!\n"))
}

type failingSource struct {
	lines  []string
	err    error
	closed bool
}

func (s *failingSource) Prompt(string) {}

func (s *failingSource) ReadLine() (string, error) {
	if len(s.lines) == 0 {
		return "", s.err
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *failingSource) Close() error {
	s.closed = true
	return nil
}

func TestSession_ReadErrorEndsWithoutFarewell(t *testing.T) {
	readErr := errors.New("device not ready")
	source := &failingSource{lines: []string{"select 1"}, err: readErr}
	out := &bytes.Buffer{}
	session, err := NewSession("test", DefaultConfig(), SQLParser{}, source, out, newTestLogger())
	require.NoError(t, err)

	err = session.Run()

	assert.ErrorIs(t, err, readErr)
	assert.True(t, source.closed)
	assert.Empty(t, out.String())
	assert.Equal(t, Collecting, session.State())
}

func TestReaderSource_EOFIsSticky(t *testing.T) {
	source := NewReaderSource(strings.NewReader("a\nb"), io.Discard)

	line, err := source.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "a", line)
	line, err = source.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "b", line)

	for i := 0; i < 2; i++ {
		_, err = source.ReadLine()
		assert.ErrorIs(t, err, io.EOF)
	}
}

func TestReaderSource_PromptWritesImmediately(t *testing.T) {
	out := &bytes.Buffer{}
	source := NewReaderSource(strings.NewReader(""), out)

	source.Prompt("sql> ")

	assert.Equal(t, "sql> ", out.String())
}

func TestReaderSource_LineEndings(t *testing.T) {
	source := NewReaderSource(strings.NewReader("a\r\n\nb;"), io.Discard)

	var lines []string
	for {
		line, err := source.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		lines = append(lines, line)
	}

	assert.Equal(t, []string{"a", "", "b;"}, lines)
}
