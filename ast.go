package main

import "fmt"

/*
---------
Statement
---------
*/

type StatementKind uint

const (
	SelectKind StatementKind = iota
	InsertKind
	CreateTableKind
	UpdateKind
	DeleteKind
	DropTableKind
)

var statementKindNames = [...]string{
	SelectKind:      "select",
	InsertKind:      "insert",
	CreateTableKind: "create table",
	UpdateKind:      "update",
	DeleteKind:      "delete",
	DropTableKind:   "drop table",
}

func (k StatementKind) String() string {
	if int(k) < len(statementKindNames) {
		return statementKindNames[k]
	}
	return fmt.Sprintf("StatementKind(%d)", uint(k))
}

func (k StatementKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Statement is the parsed form of one statement. Exactly one of the
// sub-statement fields is set, selected by Kind.
type Statement struct {
	Kind        StatementKind         `json:"type"`
	Select      *SelectStatement      `json:"select,omitempty"`
	Insert      *InsertStatement      `json:"insert,omitempty"`
	CreateTable *CreateTableStatement `json:"createTable,omitempty"`
	Update      *UpdateStatement      `json:"update,omitempty"`
	Delete      *DeleteStatement      `json:"delete,omitempty"`
	DropTable   *DropTableStatement   `json:"dropTable,omitempty"`
}

/*
----------
Expression
----------
*/

type ExpressionKind uint

const (
	LiteralExpressionKind ExpressionKind = iota
	NullExpressionKind
	IdentifierExpressionKind
	WildcardExpressionKind
	BinaryExpressionKind
	UnaryExpressionKind
	FunctionExpressionKind
)

var expressionKindNames = [...]string{
	LiteralExpressionKind:    "literal",
	NullExpressionKind:       "null",
	IdentifierExpressionKind: "identifier",
	WildcardExpressionKind:   "wildcard",
	BinaryExpressionKind:     "binary",
	UnaryExpressionKind:      "unary",
	FunctionExpressionKind:   "function",
}

func (k ExpressionKind) String() string {
	if int(k) < len(expressionKindNames) {
		return expressionKindNames[k]
	}
	return fmt.Sprintf("ExpressionKind(%d)", uint(k))
}

func (k ExpressionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Expression is a kind-tagged expression node. Literal holds an int64,
// float64, string or bool.
type Expression struct {
	Kind       ExpressionKind    `json:"type"`
	Literal    interface{}       `json:"value,omitempty"`
	Table      string            `json:"table,omitempty"`
	Identifier string            `json:"name,omitempty"`
	Binary     *BinaryExpression `json:"binary,omitempty"`
	Unary      *UnaryExpression  `json:"unary,omitempty"`
	Function   *Function         `json:"function,omitempty"`
}

type BinaryExpression struct {
	Left     Expression `json:"left"`
	Operator string     `json:"operator"`
	Right    Expression `json:"right"`
}

type UnaryExpression struct {
	Operator string     `json:"operator"`
	Operand  Expression `json:"operand"`
}

type Function struct {
	Name string       `json:"name"`
	Args []Expression `json:"args"`
}

/*
----------------
Select statement
----------------
*/

type SelectStatement struct {
	Distinct bool         `json:"distinct,omitempty"`
	Items    []SelectItem `json:"items"`
	From     *TableRef    `json:"from,omitempty"`
	Where    *Expression  `json:"where,omitempty"`
	GroupBy  []Expression `json:"groupBy,omitempty"`
	Having   *Expression  `json:"having,omitempty"`
	OrderBy  []OrderBy    `json:"orderBy,omitempty"`
	Limit    *int64       `json:"limit,omitempty"`
	Offset   *int64       `json:"offset,omitempty"`
}

type SelectItem struct {
	Expression Expression `json:"expression"`
	Alias      string     `json:"alias,omitempty"`
}

type TableRef struct {
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
}

type OrderBy struct {
	By        Expression `json:"by"`
	Direction string     `json:"direction"`
}

/*
----------------
Insert statement
----------------
*/

type InsertStatement struct {
	Table   string         `json:"table"`
	Columns []string       `json:"columns,omitempty"`
	Values  [][]Expression `json:"values"`
}

/*
----------------------
Create table statement
----------------------
*/

type CreateTableStatement struct {
	Name    string             `json:"name"`
	Columns []ColumnDefinition `json:"columns"`
}

type ColumnDefinition struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

/*
--------------------
Drop table statement
--------------------
*/

type DropTableStatement struct {
	Name string `json:"name"`
}

/*
----------------
Update statement
----------------
*/

type UpdateStatement struct {
	Table string       `json:"table"`
	Set   []Assignment `json:"set"`
	Where *Expression  `json:"where,omitempty"`
}

type Assignment struct {
	Column string     `json:"column"`
	Value  Expression `json:"value"`
}

/*
----------------
Delete statement
----------------
*/

type DeleteStatement struct {
	Table string      `json:"table"`
	Where *Expression `json:"where,omitempty"`
}
