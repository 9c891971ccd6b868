package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scanTest struct {
	input    string
	expected []TokenType
}

var scanTests = []scanTest{
	{"", []TokenType{EOF}},
	{" \t\n", []TokenType{EOF}},
	{"select", []TokenType{KEYWORD, EOF}},
	{"users", []TokenType{IDENTIFIER, EOF}},
	{"123", []TokenType{NUMBER, EOF}},
	{"1.5", []TokenType{NUMBER, EOF}},
	{"'abc'", []TokenType{STRING, EOF}},
	{"\"Order\"", []TokenType{IDENTIFIER, EOF}},
	{"a, b", []TokenType{IDENTIFIER, COMMA, IDENTIFIER, EOF}},
	{"t.a", []TokenType{IDENTIFIER, DOT, IDENTIFIER, EOF}},
	{"count(*)", []TokenType{IDENTIFIER, LEFT_PAREN, WILDCARD, RIGHT_PAREN, EOF}},
	{"a>=1", []TokenType{IDENTIFIER, OPERATOR, NUMBER, EOF}},
	{"a <> b != c", []TokenType{IDENTIFIER, OPERATOR, IDENTIFIER, OPERATOR, IDENTIFIER, EOF}},
	{"select 1;", []TokenType{KEYWORD, NUMBER, SEMICOLON, EOF}},
	{"#", []TokenType{UNKNOWN, EOF}},
}

func TestLexer_Scan(t *testing.T) {
	for _, test := range scanTests {
		t.Logf("running test '%s'", test.input)
		lexer := NewLexer()
		tokens, err := lexer.Scan(test.input)
		require.NoError(t, err)
		types := []TokenType{}
		for _, token := range tokens {
			types = append(types, token.Type)
		}
		assert.Equal(t, test.expected, types)
	}
}

func TestLexer_NormalisesKeywords(t *testing.T) {
	lexer := NewLexer()
	tokens, err := lexer.Scan("SELECT Name FROM Users")
	require.NoError(t, err)

	assert.Equal(t, Token{Type: KEYWORD, Value: "select", Pos: Position{Line: 1, Column: 1}}, tokens[0])
	assert.Equal(t, Token{Type: IDENTIFIER, Value: "Name", Pos: Position{Line: 1, Column: 8}}, tokens[1])
	assert.Equal(t, Token{Type: KEYWORD, Value: "from", Pos: Position{Line: 1, Column: 13}}, tokens[2])
	assert.Equal(t, Token{Type: IDENTIFIER, Value: "Users", Pos: Position{Line: 1, Column: 18}}, tokens[3])
}

func TestLexer_TracksLines(t *testing.T) {
	lexer := NewLexer()
	tokens, err := lexer.Scan("select *\n  from t")
	require.NoError(t, err)

	assert.Equal(t, Position{Line: 2, Column: 3}, tokens[2].Pos)
	assert.Equal(t, Position{Line: 2, Column: 8}, tokens[3].Pos)
	assert.Equal(t, Position{Line: 2, Column: 9}, tokens[4].Pos)
}

func TestLexer_QuotedValues(t *testing.T) {
	lexer := NewLexer()
	tokens, err := lexer.Scan("'it''s' \"a b\"")
	require.NoError(t, err)

	assert.Equal(t, "it's", tokens[0].Value)
	assert.Equal(t, STRING, tokens[0].Type)
	assert.Equal(t, "a b", tokens[1].Value)
	assert.Equal(t, IDENTIFIER, tokens[1].Type)
}

func TestLexer_UnterminatedString(t *testing.T) {
	lexer := NewLexer()
	_, err := lexer.Scan("select 'abc")

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, Position{Line: 1, Column: 8}, parseErr.Pos)
	assert.EqualError(t, err, "line 1, column 8: unterminated string literal")
}
