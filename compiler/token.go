package compiler

import "regexp"

// TokenKind is the terminal category of a token.
type TokenKind string

const (
	MUL    TokenKind = "MUL"
	PLUS   TokenKind = "PLUS"
	MINUS  TokenKind = "MINUS"
	DIV    TokenKind = "DIV"
	EQ     TokenKind = "EQ"
	LT     TokenKind = "LT"
	LBRACE TokenKind = "LBRACE"
	RBRACE TokenKind = "RBRACE"
	LPAR   TokenKind = "LPAR"
	RPAR   TokenKind = "RPAR"
	SEMI   TokenKind = "SEMI"
	ASSIGN TokenKind = "ASSIGN"
	AMP    TokenKind = "AMP"
	COMMA  TokenKind = "COMMA"
	NUM    TokenKind = "NUM"
	ID     TokenKind = "ID"

	// IGNORE is consumed by the tokenizer and never returned.
	IGNORE TokenKind = "IGNORE"

	IF    TokenKind = "IF"
	ELSE  TokenKind = "ELSE"
	FOR   TokenKind = "FOR"
	INT   TokenKind = "INT"
	FLOAT TokenKind = "FLOAT"
	VOID  TokenKind = "VOID"
)

// Token is one lexeme and its category. Line is the 1-based line the token
// starts on and Offset its byte offset in the source.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Line   int
	Offset int
}

type tokenPattern struct {
	kind TokenKind
	re   *regexp.Regexp
}

// tokenPatterns is ordered: when several patterns fully match the same
// substring, the earlier entry wins.
var tokenPatterns = []tokenPattern{
	{MUL, regexp.MustCompile(`^\*$`)},
	{PLUS, regexp.MustCompile(`^\+$`)},
	{MINUS, regexp.MustCompile(`^-$`)},
	{DIV, regexp.MustCompile(`^/$`)},
	{EQ, regexp.MustCompile(`^==$`)},
	{LT, regexp.MustCompile(`^<$`)},
	{LBRACE, regexp.MustCompile(`^\{$`)},
	{RBRACE, regexp.MustCompile(`^\}$`)},
	{LPAR, regexp.MustCompile(`^\($`)},
	{RPAR, regexp.MustCompile(`^\)$`)},
	{SEMI, regexp.MustCompile(`^;$`)},
	{ASSIGN, regexp.MustCompile(`^=$`)},
	{AMP, regexp.MustCompile(`^&$`)},
	{COMMA, regexp.MustCompile(`^,$`)},
	{NUM, regexp.MustCompile(`^(?:[0-9]+(?:\.[0-9]+)?|\.[0-9]+)$`)},
	{ID, regexp.MustCompile(`^[a-zA-Z]+[a-zA-Z0-9]*$`)},
	{IGNORE, regexp.MustCompile(`^[ \t\r\n]$`)},
}

var keywords = map[string]TokenKind{
	"if":    IF,
	"else":  ELSE,
	"for":   FOR,
	"int":   INT,
	"float": FLOAT,
	"void":  VOID,
}

// lookupKeyword reclassifies an identifier lexeme that is exactly a keyword.
func lookupKeyword(lexeme string) TokenKind {
	if kind, ok := keywords[lexeme]; ok {
		return kind
	}
	return ID
}
