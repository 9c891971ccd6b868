package main

import (
	"unicode"

	"golang.org/x/exp/slices"
)

var keywords = []string{
	"select",
	"distinct",
	"as",
	"from",
	"where",
	"group",
	"by",
	"having",
	"order",
	"asc",
	"desc",
	"limit",
	"offset",
	"create",
	"table",
	"drop",
	"insert",
	"into",
	"values",
	"update",
	"set",
	"delete",
	"and",
	"or",
	"not",
	"is",
	"null",
	"true",
	"false",
	"text",
	"integer",
}

var operators = []string{
	"=",
	"<>",
	"!=",
	">",
	">=",
	"<",
	"<=",
	"+",
	"-",
	"/",
	"%",
}

var comparisonOperators = []string{"=", "<>", "!=", ">", ">=", "<", "<="}

var columnTypes = []string{"integer", "text"}

func isDigit(char rune) bool {
	return char >= '0' && char <= '9'
}

func isLetterOrUnderscore(char rune) bool {
	return unicode.IsLetter(char) || char == '_'
}

func isAlphanumericOrUnderscore(char rune) bool {
	return unicode.IsLetter(char) || unicode.IsNumber(char) || char == '_'
}

func stringIsKeyword(token string) bool {
	return slices.Contains(keywords, token)
}

func stringIsOperator(token string) bool {
	return slices.Contains(operators, token)
}

func stringIsComparison(token string) bool {
	return slices.Contains(comparisonOperators, token)
}

func stringIsColumnType(token string) bool {
	return slices.Contains(columnTypes, token)
}
