package main

import (
	"fmt"
	"strconv"
	"strings"
)

// SQLParser lexes and parses statement text. It is the StatementParser the
// console dispatches to.
type SQLParser struct{}

func (SQLParser) ParseStatement(text string) (Statement, error) {
	lexer := NewLexer()
	parser := NewParser()

	tokens, err := lexer.Scan(text)
	if err != nil {
		return Statement{}, err
	}
	return parser.Parse(tokens)
}

// maxDepth bounds expression nesting so deep input fails as a parse error
// instead of exhausting the stack.
const maxDepth = 1000

type Parser struct {
	tokens []Token
	cursor int
	depth  int
}

func NewParser() Parser {
	return Parser{}
}

// Parse builds a Statement from tokens produced by Lexer.Scan. A single
// trailing semicolon is accepted.
func (p *Parser) Parse(tokens []Token) (Statement, error) {
	var emptyStatement Statement

	p.tokens = tokens
	p.cursor = 0
	p.depth = 0

	start := p.peek()
	if start.Type == EOF {
		return emptyStatement, NewParseError(start.Pos, "empty statement")
	}

	var statement Statement
	var err error
	switch {
	case p.matchKeyword("select"):
		statement.Kind = SelectKind
		statement.Select, err = p.parseSelect()
	case p.matchKeyword("insert into"):
		statement.Kind = InsertKind
		statement.Insert, err = p.parseInsert()
	case p.matchKeyword("create table"):
		statement.Kind = CreateTableKind
		statement.CreateTable, err = p.parseCreateTable()
	case p.matchKeyword("update"):
		statement.Kind = UpdateKind
		statement.Update, err = p.parseUpdate()
	case p.matchKeyword("delete from"):
		statement.Kind = DeleteKind
		statement.Delete, err = p.parseDelete()
	case p.matchKeyword("drop table"):
		statement.Kind = DropTableKind
		statement.DropTable, err = p.parseDropTable()
	default:
		return emptyStatement, NewParseError(start.Pos, "unable to identify operation type from %s", describe(start))
	}
	if err != nil {
		return emptyStatement, err
	}

	p.matchToken(SEMICOLON)
	if next := p.peek(); next.Type != EOF {
		return emptyStatement, NewParseError(next.Pos, "unexpected %s after end of statement", describe(next))
	}

	return statement, nil
}

func (p *Parser) parseSelect() (*SelectStatement, error) {
	statement := &SelectStatement{}
	statement.Distinct = p.matchKeyword("distinct")

	// Select ...
	items, err := p.parseSelectItems()
	if err != nil {
		return nil, err
	}
	statement.Items = items

	// From ...
	if p.matchKeyword("from") {
		table, err := p.parseTableRef("from")
		if err != nil {
			return nil, err
		}
		statement.From = &table
	}

	// Where ...
	if statement.Where, err = p.parseOptionalExpression("where"); err != nil {
		return nil, err
	}

	// Group by ...
	if p.matchKeyword("group by") {
		if statement.GroupBy, err = p.parseExpressionList(); err != nil {
			return nil, err
		}
	}

	// Having ...
	if statement.Having, err = p.parseOptionalExpression("having"); err != nil {
		return nil, err
	}

	// Order by ...
	if p.matchKeyword("order by") {
		if statement.OrderBy, err = p.parseOrderBy(); err != nil {
			return nil, err
		}
	}

	// Limit ...
	if statement.Limit, err = p.parseInt("limit"); err != nil {
		return nil, err
	}

	// Offset ...
	if statement.Offset, err = p.parseInt("offset"); err != nil {
		return nil, err
	}

	return statement, nil
}

func (p *Parser) parseSelectItems() ([]SelectItem, error) {
	var items []SelectItem

	for {
		expression, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		item := SelectItem{Expression: expression}

		alias, err := p.parseAlias()
		if err != nil {
			return nil, err
		}
		item.Alias = alias

		items = append(items, item)
		if _, ok := p.matchToken(COMMA); !ok {
			break
		}
	}

	return items, nil
}

func (p *Parser) parseAlias() (string, error) {
	if p.matchKeyword("as") {
		alias, err := p.expectIdentifier("as")
		if err != nil {
			return "", err
		}
		return alias.Value, nil
	}
	if alias, ok := p.matchToken(IDENTIFIER); ok {
		return alias.Value, nil
	}
	return "", nil
}

func (p *Parser) parseTableRef(after string) (TableRef, error) {
	table, err := p.expectIdentifier(after)
	if err != nil {
		return TableRef{}, err
	}
	alias, err := p.parseAlias()
	if err != nil {
		return TableRef{}, err
	}
	return TableRef{Name: table.Value, Alias: alias}, nil
}

func (p *Parser) parseOrderBy() ([]OrderBy, error) {
	var orderBy []OrderBy

	for {
		by, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		item := OrderBy{By: by}
		switch {
		case p.matchKeyword("desc"):
			item.Direction = "desc"
		case p.matchKeyword("asc"):
			item.Direction = "asc"
		default:
			item.Direction = "asc"
		}
		orderBy = append(orderBy, item)
		if _, ok := p.matchToken(COMMA); !ok {
			break
		}
	}

	return orderBy, nil
}

func (p *Parser) parseInt(keyword string) (*int64, error) {
	if !p.matchKeyword(keyword) {
		return nil, nil
	}

	token, ok := p.matchToken(NUMBER)
	if !ok || strings.Contains(token.Value, ".") {
		return nil, NewParseError(p.peekOrPrevious(ok).Pos, "expected valid int after '%s'", keyword)
	}
	value, err := strconv.ParseInt(token.Value, 10, 64)
	if err != nil {
		return nil, NewParseError(token.Pos, "invalid int '%s' after '%s'", token.Value, keyword)
	}
	return &value, nil
}

func (p *Parser) parseInsert() (*InsertStatement, error) {
	table, err := p.expectIdentifier("insert into")
	if err != nil {
		return nil, err
	}
	statement := &InsertStatement{Table: table.Value}

	// Optional columns list
	if _, ok := p.matchToken(LEFT_PAREN); ok {
		for {
			column, err := p.expectIdentifier("'('")
			if err != nil {
				return nil, err
			}
			statement.Columns = append(statement.Columns, column.Value)
			if _, ok := p.matchToken(COMMA); !ok {
				break
			}
		}
		if _, err := p.expectToken(RIGHT_PAREN, "columns list"); err != nil {
			return nil, err
		}
	}

	if !p.matchKeyword("values") {
		return nil, NewParseError(p.peek().Pos, "expected 'values', found %s", describe(p.peek()))
	}

	for {
		open := p.peek()
		if _, err := p.expectToken(LEFT_PAREN, "'values'"); err != nil {
			return nil, err
		}
		row, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectToken(RIGHT_PAREN, "values list"); err != nil {
			return nil, err
		}
		if statement.Columns != nil && len(row) != len(statement.Columns) {
			return nil, NewParseError(open.Pos, "values list has %d items, expected %d", len(row), len(statement.Columns))
		}
		statement.Values = append(statement.Values, row)
		if _, ok := p.matchToken(COMMA); !ok {
			break
		}
	}

	return statement, nil
}

func (p *Parser) parseCreateTable() (*CreateTableStatement, error) {
	table, err := p.expectIdentifier("create table")
	if err != nil {
		return nil, err
	}
	statement := &CreateTableStatement{Name: table.Value}

	if _, err := p.expectToken(LEFT_PAREN, "table name"); err != nil {
		return nil, err
	}

	for {
		columnName, err := p.expectIdentifier("'('")
		if err != nil {
			return nil, err
		}

		columnType, ok := p.matchToken(KEYWORD)
		if !ok || !stringIsColumnType(columnType.Value) {
			return nil, NewParseError(p.peekOrPrevious(ok).Pos, "expected column type after '%s'", columnName.Value)
		}

		statement.Columns = append(
			statement.Columns,
			ColumnDefinition{Name: columnName.Value, Type: columnType.Value},
		)

		if _, ok := p.matchToken(COMMA); !ok {
			break
		}
	}

	if _, err := p.expectToken(RIGHT_PAREN, "column definitions"); err != nil {
		return nil, err
	}

	return statement, nil
}

func (p *Parser) parseDropTable() (*DropTableStatement, error) {
	table, err := p.expectIdentifier("drop table")
	if err != nil {
		return nil, err
	}
	return &DropTableStatement{Name: table.Value}, nil
}

func (p *Parser) parseUpdate() (*UpdateStatement, error) {
	table, err := p.expectIdentifier("update")
	if err != nil {
		return nil, err
	}
	statement := &UpdateStatement{Table: table.Value}

	if !p.matchKeyword("set") {
		return nil, NewParseError(p.peek().Pos, "expected 'set' after table name, found %s", describe(p.peek()))
	}

	for {
		column, err := p.expectIdentifier("'set'")
		if err != nil {
			return nil, err
		}
		if _, ok := p.matchOperator("="); !ok {
			return nil, NewParseError(p.peek().Pos, "expected '=' after '%s'", column.Value)
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		statement.Set = append(statement.Set, Assignment{Column: column.Value, Value: value})
		if _, ok := p.matchToken(COMMA); !ok {
			break
		}
	}

	if statement.Where, err = p.parseOptionalExpression("where"); err != nil {
		return nil, err
	}

	return statement, nil
}

func (p *Parser) parseDelete() (*DeleteStatement, error) {
	table, err := p.expectIdentifier("delete from")
	if err != nil {
		return nil, err
	}
	statement := &DeleteStatement{Table: table.Value}

	if statement.Where, err = p.parseOptionalExpression("where"); err != nil {
		return nil, err
	}

	return statement, nil
}

/*
-----------
Expressions
-----------
*/

func (p *Parser) parseOptionalExpression(keyword string) (*Expression, error) {
	if !p.matchKeyword(keyword) {
		return nil, nil
	}
	if p.peek().Type == EOF {
		return nil, NewParseError(p.peek().Pos, "expected valid expression after '%s'", keyword)
	}
	expression, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &expression, nil
}

func (p *Parser) parseExpressionList() ([]Expression, error) {
	var expressions []Expression
	for {
		expression, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		expressions = append(expressions, expression)
		if _, ok := p.matchToken(COMMA); !ok {
			return expressions, nil
		}
	}
}

func (p *Parser) parseExpression() (Expression, error) {
	defer p.leave()
	if err := p.enter(); err != nil {
		return Expression{}, err
	}
	return p.parseOr()
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return NewParseError(p.peek().Pos, "expression nested too deeply")
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) parseOr() (Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return left, err
	}
	for p.matchKeyword("or") {
		right, err := p.parseAnd()
		if err != nil {
			return right, err
		}
		left = binary(left, "or", right)
	}
	return left, nil
}

func (p *Parser) parseAnd() (Expression, error) {
	left, err := p.parseNot()
	if err != nil {
		return left, err
	}
	for p.matchKeyword("and") {
		right, err := p.parseNot()
		if err != nil {
			return right, err
		}
		left = binary(left, "and", right)
	}
	return left, nil
}

func (p *Parser) parseNot() (Expression, error) {
	if p.matchKeyword("not") {
		defer p.leave()
		if err := p.enter(); err != nil {
			return Expression{}, err
		}
		operand, err := p.parseNot()
		if err != nil {
			return operand, err
		}
		return unary("not", operand), nil
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() (Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return left, err
	}
	for {
		if p.matchKeyword("is") {
			operator := "is null"
			if p.matchKeyword("not") {
				operator = "is not null"
			}
			if !p.matchKeyword("null") {
				return left, NewParseError(p.peek().Pos, "expected 'null' after 'is', found %s", describe(p.peek()))
			}
			left = unary(operator, left)
			continue
		}
		operator, ok := p.matchOperatorFunc(stringIsComparison)
		if !ok {
			return left, nil
		}
		right, err := p.parseAdditive()
		if err != nil {
			return right, err
		}
		left = binary(left, operator.Value, right)
	}
}

func (p *Parser) parseAdditive() (Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return left, err
	}
	for {
		operator, ok := p.matchOperator("+", "-")
		if !ok {
			return left, nil
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return right, err
		}
		left = binary(left, operator.Value, right)
	}
}

func (p *Parser) parseMultiplicative() (Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return left, err
	}
	for {
		var operator string
		if _, ok := p.matchToken(WILDCARD); ok {
			operator = "*"
		} else if token, ok := p.matchOperator("/", "%"); ok {
			operator = token.Value
		} else {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return right, err
		}
		left = binary(left, operator, right)
	}
}

func (p *Parser) parseUnary() (Expression, error) {
	if operator, ok := p.matchOperator("-", "+"); ok {
		defer p.leave()
		if err := p.enter(); err != nil {
			return Expression{}, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return operand, err
		}
		return unary(operator.Value, operand), nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Expression, error) {
	var expression Expression
	token := p.peek()

	switch token.Type {
	case NUMBER:
		p.cursor++
		return parseNumber(token)
	case STRING:
		p.cursor++
		return Expression{Kind: LiteralExpressionKind, Literal: token.Value}, nil
	case WILDCARD:
		p.cursor++
		return Expression{Kind: WildcardExpressionKind}, nil
	case LEFT_PAREN:
		p.cursor++
		inner, err := p.parseExpression()
		if err != nil {
			return inner, err
		}
		if _, err := p.expectToken(RIGHT_PAREN, "expression"); err != nil {
			return expression, err
		}
		return inner, nil
	case KEYWORD:
		switch token.Value {
		case "null":
			p.cursor++
			return Expression{Kind: NullExpressionKind}, nil
		case "true", "false":
			p.cursor++
			return Expression{Kind: LiteralExpressionKind, Literal: token.Value == "true"}, nil
		}
	case IDENTIFIER:
		p.cursor++
		if _, ok := p.matchToken(LEFT_PAREN); ok {
			return p.parseFunction(token)
		}
		if _, ok := p.matchToken(DOT); ok {
			if _, ok := p.matchToken(WILDCARD); ok {
				return Expression{Kind: WildcardExpressionKind, Table: token.Value}, nil
			}
			column, err := p.expectIdentifier(token.Value + ".")
			if err != nil {
				return expression, err
			}
			return Expression{Kind: IdentifierExpressionKind, Table: token.Value, Identifier: column.Value}, nil
		}
		return Expression{Kind: IdentifierExpressionKind, Identifier: token.Value}, nil
	}

	return expression, NewParseError(token.Pos, "expected expression, found %s", describe(token))
}

func (p *Parser) parseFunction(name Token) (Expression, error) {
	function := &Function{Name: strings.ToLower(name.Value), Args: []Expression{}}
	expression := Expression{Kind: FunctionExpressionKind, Function: function}

	if _, ok := p.matchToken(RIGHT_PAREN); ok {
		return expression, nil
	}
	args, err := p.parseExpressionList()
	if err != nil {
		return expression, err
	}
	function.Args = args
	if _, err := p.expectToken(RIGHT_PAREN, "function arguments"); err != nil {
		return expression, err
	}
	return expression, nil
}

func parseNumber(token Token) (Expression, error) {
	if strings.Contains(token.Value, ".") {
		value, err := strconv.ParseFloat(token.Value, 64)
		if err != nil {
			return Expression{}, NewParseError(token.Pos, "invalid number '%s'", token.Value)
		}
		return Expression{Kind: LiteralExpressionKind, Literal: value}, nil
	}
	value, err := strconv.ParseInt(token.Value, 10, 64)
	if err != nil {
		return Expression{}, NewParseError(token.Pos, "invalid number '%s'", token.Value)
	}
	return Expression{Kind: LiteralExpressionKind, Literal: value}, nil
}

func binary(left Expression, operator string, right Expression) Expression {
	return Expression{
		Kind:   BinaryExpressionKind,
		Binary: &BinaryExpression{Left: left, Operator: operator, Right: right},
	}
}

func unary(operator string, operand Expression) Expression {
	return Expression{
		Kind:  UnaryExpressionKind,
		Unary: &UnaryExpression{Operator: operator, Operand: operand},
	}
}

/*
--------
Matching
--------
*/

func (p *Parser) peek() Token {
	if p.cursor >= len(p.tokens) {
		if len(p.tokens) == 0 {
			return Token{Type: EOF, Pos: Position{Line: 1, Column: 1}}
		}
		last := p.tokens[len(p.tokens)-1]
		return Token{Type: EOF, Pos: last.Pos}
	}
	return p.tokens[p.cursor]
}

// peekOrPrevious returns the token an error should point at: the one just
// consumed when matched is true, the upcoming one otherwise.
func (p *Parser) peekOrPrevious(matched bool) Token {
	if matched && p.cursor > 0 {
		return p.tokens[p.cursor-1]
	}
	return p.peek()
}

// matchKeyword consumes a space separated keyword sequence such as
// "group by" only when every word matches.
func (p *Parser) matchKeyword(value string) bool {
	words := strings.Split(value, " ")
	for i, word := range words {
		if p.cursor+i >= len(p.tokens) {
			return false
		}
		token := p.tokens[p.cursor+i]
		if token.Type != KEYWORD || token.Value != word {
			return false
		}
	}
	p.cursor += len(words)
	return true
}

func (p *Parser) matchToken(tokenTypes ...TokenType) (Token, bool) {
	token := p.peek()
	for _, tokenType := range tokenTypes {
		if token.Type == tokenType {
			if token.Type != EOF {
				p.cursor++
			}
			return token, true
		}
	}
	return Token{}, false
}

func (p *Parser) matchOperator(values ...string) (Token, bool) {
	return p.matchOperatorFunc(func(operator string) bool {
		for _, value := range values {
			if operator == value {
				return true
			}
		}
		return false
	})
}

func (p *Parser) matchOperatorFunc(accept func(operator string) bool) (Token, bool) {
	token := p.peek()
	if token.Type != OPERATOR || !accept(token.Value) {
		return Token{}, false
	}
	p.cursor++
	return token, true
}

func (p *Parser) expectToken(tokenType TokenType, after string) (Token, error) {
	token, ok := p.matchToken(tokenType)
	if !ok {
		return token, NewParseError(p.peek().Pos, "expected %s after %s, found %s", tokenType, after, describe(p.peek()))
	}
	return token, nil
}

func (p *Parser) expectIdentifier(after string) (Token, error) {
	token, ok := p.matchToken(IDENTIFIER)
	if !ok {
		return token, NewParseError(p.peek().Pos, "expected identifier after '%s', found %s", strings.Trim(after, "'"), describe(p.peek()))
	}
	return token, nil
}

func describe(token Token) string {
	switch token.Type {
	case KEYWORD, IDENTIFIER, NUMBER, OPERATOR, UNKNOWN:
		return fmt.Sprintf("%s '%s'", token.Type, token.Value)
	case STRING:
		return fmt.Sprintf("string '%s'", token.Value)
	default:
		return token.Type.String()
	}
}
