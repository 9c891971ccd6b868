package main

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type Lexer struct {
	input          string
	cursor         int
	currTokenStart int
	line           int
	lineStart      int
	startPos       Position
}

type TokenType uint

const (
	EOF TokenType = iota
	WHITESPACE
	STRING
	NUMBER
	KEYWORD
	IDENTIFIER
	OPERATOR
	WILDCARD
	COMMA
	DOT
	LEFT_PAREN
	RIGHT_PAREN
	SEMICOLON
	UNKNOWN
)

var tokenTypeNames = [...]string{
	EOF:         "end of input",
	WHITESPACE:  "whitespace",
	STRING:      "string",
	NUMBER:      "number",
	KEYWORD:     "keyword",
	IDENTIFIER:  "identifier",
	OPERATOR:    "operator",
	WILDCARD:    "'*'",
	COMMA:       "','",
	DOT:         "'.'",
	LEFT_PAREN:  "'('",
	RIGHT_PAREN: "')'",
	SEMICOLON:   "';'",
	UNKNOWN:     "unknown character",
}

func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "unknown token"
}

// Position is a 1-based line and column inside a statement.
type Position struct {
	Line   int
	Column int
}

type Token struct {
	Type  TokenType
	Value string
	Pos   Position
}

func NewLexer() Lexer {
	return Lexer{}
}

// Scan splits input into tokens, dropping whitespace. The returned slice
// always ends with an EOF token.
func (l *Lexer) Scan(input string) ([]Token, error) {
	var tokens []Token
	l.input = input
	l.cursor = 0
	l.line = 1
	l.lineStart = 0
	for {
		token, err := l.scanNext()
		if err != nil {
			return nil, err
		}
		if token.Type == WHITESPACE {
			continue
		}
		tokens = append(tokens, token)
		if token.Type == EOF {
			break
		}
	}
	return tokens, nil
}

func (l *Lexer) scanNext() (Token, error) {
	l.currTokenStart = l.cursor
	l.startPos = Position{Line: l.line, Column: l.cursor - l.lineStart + 1}
	switch {
	// EOF
	case l.cursor >= len(l.input):
		return l.createToken(EOF), nil
	// WHITESPACE
	case l.matchCharFunc(unicode.IsSpace):
		for l.matchCharFunc(unicode.IsSpace) {
			continue
		}
		return l.createToken(WHITESPACE), nil
	// NUMBER
	case l.matchCharFunc(isDigit):
		for l.matchCharFunc(isDigit) {
			continue
		}
		if l.peekChar() == '.' && isDigit(l.peekCharAt(1)) {
			l.matchChar('.')
			for l.matchCharFunc(isDigit) {
				continue
			}
		}
		return l.createToken(NUMBER), nil
	// IDENTIFIER OR KEYWORD
	case l.matchCharFunc(isLetterOrUnderscore):
		for l.matchCharFunc(isAlphanumericOrUnderscore) {
			continue
		}
		if stringIsKeyword(strings.ToLower(l.currString())) {
			return Token{Type: KEYWORD, Value: strings.ToLower(l.currString()), Pos: l.startPos}, nil
		}
		return l.createToken(IDENTIFIER), nil
	// QUOTED IDENTIFIER
	case l.matchChar('"'):
		value, ok := l.scanQuoted('"')
		if !ok {
			return Token{}, NewParseError(l.startPos, "unterminated quoted identifier")
		}
		return Token{Type: IDENTIFIER, Value: value, Pos: l.startPos}, nil
	// STRING
	case l.matchChar('\''):
		value, ok := l.scanQuoted('\'')
		if !ok {
			return Token{}, NewParseError(l.startPos, "unterminated string literal")
		}
		return Token{Type: STRING, Value: value, Pos: l.startPos}, nil
	// COMMA
	case l.matchChar(','):
		return l.createToken(COMMA), nil
	// DOT
	case l.matchChar('.'):
		return l.createToken(DOT), nil
	// PARENTHESES
	case l.matchChar('('):
		return l.createToken(LEFT_PAREN), nil
	case l.matchChar(')'):
		return l.createToken(RIGHT_PAREN), nil
	// SEMICOLON
	case l.matchChar(';'):
		return l.createToken(SEMICOLON), nil
	// WILDCARD
	case l.matchChar('*'):
		return l.createToken(WILDCARD), nil
	// OPERATOR
	case stringIsOperator(l.input[l.currTokenStart : l.currTokenStart+1]):
		l.cursor++
		for l.cursor < len(l.input) && stringIsOperator(l.input[l.currTokenStart:l.cursor+1]) {
			l.cursor++
		}
		return l.createToken(OPERATOR), nil
	// "!=" has no single character prefix in the operator table
	case strings.HasPrefix(l.input[l.cursor:], "!="):
		l.cursor += 2
		return l.createToken(OPERATOR), nil
	default:
		_, size := utf8.DecodeRuneInString(l.input[l.cursor:])
		l.cursor += size
		return l.createToken(UNKNOWN), nil
	}
}

// scanQuoted consumes a quoted run up to the closing quote. A doubled quote
// stands for one literal quote character.
func (l *Lexer) scanQuoted(quote rune) (string, bool) {
	var sb strings.Builder
	for l.cursor < len(l.input) {
		char, size := utf8.DecodeRuneInString(l.input[l.cursor:])
		l.advance(char, size)
		if char != quote {
			sb.WriteRune(char)
			continue
		}
		if l.peekChar() == quote {
			l.cursor++
			sb.WriteRune(quote)
			continue
		}
		return sb.String(), true
	}
	return "", false
}

func (l *Lexer) matchChar(value rune) bool {
	if l.cursor >= len(l.input) {
		return false
	}
	char, size := utf8.DecodeRuneInString(l.input[l.cursor:])
	if char == value {
		l.advance(char, size)
		return true
	}
	return false
}

func (l *Lexer) matchCharFunc(cb func(char rune) bool) bool {
	if l.cursor >= len(l.input) {
		return false
	}
	char, size := utf8.DecodeRuneInString(l.input[l.cursor:])
	if cb(char) {
		l.advance(char, size)
		return true
	}
	return false
}

func (l *Lexer) advance(char rune, size int) {
	l.cursor += size
	if char == '\n' {
		l.line++
		l.lineStart = l.cursor
	}
}

func (l Lexer) peekChar() rune {
	return l.peekCharAt(0)
}

func (l Lexer) peekCharAt(offset int) rune {
	if l.cursor+offset >= len(l.input) {
		return utf8.RuneError
	}
	char, _ := utf8.DecodeRuneInString(l.input[l.cursor+offset:])
	return char
}

func (l Lexer) currString() string {
	return l.input[l.currTokenStart:l.cursor]
}

func (l Lexer) createToken(tokenType TokenType) Token {
	return Token{Type: tokenType, Value: l.currString(), Pos: l.startPos}
}
