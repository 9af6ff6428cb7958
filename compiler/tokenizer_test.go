package compiler

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeLongestMatch(t *testing.T) {
	tokens, err := Tokenize("123")
	be.Err(t, err, nil)
	be.Equal(t, len(tokens), 1)
	be.Equal(t, tokens[0], Token{Kind: NUM, Lexeme: "123", Line: 1, Offset: 0})
}

func TestTokenizeEqualityBeforeAssign(t *testing.T) {
	tokens, err := Tokenize("a==b=c")
	be.Err(t, err, nil)
	be.Equal(t, kinds(tokens), []TokenKind{ID, EQ, ID, ASSIGN, ID})
}

func TestTokenizeKeywords(t *testing.T) {
	tokens, err := Tokenize("void f if else for int float iffy")
	be.Err(t, err, nil)
	be.Equal(t, kinds(tokens), []TokenKind{VOID, ID, IF, ELSE, FOR, INT, FLOAT, ID})
	be.Equal(t, tokens[7].Lexeme, "iffy")
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		input   string
		lexemes []string
	}{
		{"0", []string{"0"}},
		{"3.14", []string{"3.14"}},
		{".5", []string{".5"}},
		{"1.2.3", []string{"1.2", ".3"}},
		{"7x", []string{"7", "x"}},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			tokens, err := Tokenize(test.input)
			be.Err(t, err, nil)
			var lexemes []string
			for _, tok := range tokens {
				lexemes = append(lexemes, tok.Lexeme)
			}
			be.Equal(t, lexemes, test.lexemes)
		})
	}
}

func TestTokenizeTrailingDotIsAnError(t *testing.T) {
	_, err := Tokenize("1.")
	be.True(t, errors.Is(err, LexicalError))
	be.Equal(t, err.Error(), "line 1: no token matches input at offset 1")
}

func TestTokenizeLinesAndOffsets(t *testing.T) {
	tokens, err := Tokenize("x\n  y\n\nz")
	be.Err(t, err, nil)
	be.Equal(t, tokens, []Token{
		{Kind: ID, Lexeme: "x", Line: 1, Offset: 0},
		{Kind: ID, Lexeme: "y", Line: 2, Offset: 4},
		{Kind: ID, Lexeme: "z", Line: 4, Offset: 7},
	})
}

func TestTokenizeLastCharacter(t *testing.T) {
	// The final byte of the input must be scanned too.
	tokens, err := Tokenize("x;")
	be.Err(t, err, nil)
	be.Equal(t, kinds(tokens), []TokenKind{ID, SEMI})
}

func TestTokenizeEmpty(t *testing.T) {
	tokens, err := Tokenize("")
	be.Err(t, err, nil)
	be.Equal(t, len(tokens), 0)

	tokens, err = Tokenize(" \t\r\n")
	be.Err(t, err, nil)
	be.Equal(t, len(tokens), 0)
}

func TestTokenizeUnknownCharacter(t *testing.T) {
	_, err := Tokenize("x\ny = _z;")
	be.True(t, errors.Is(err, LexicalError))

	var cerr *Error
	be.True(t, errors.As(err, &cerr))
	be.Equal(t, cerr.Line, 2)
	be.Equal(t, cerr.Message, "no token matches input at offset 6")
}

func TestTokenizerNextIsLazy(t *testing.T) {
	tz := NewTokenizer("a b $")

	tok, err := tz.Next()
	be.Err(t, err, nil)
	be.Equal(t, tok.Lexeme, "a")

	tok, err = tz.Next()
	be.Err(t, err, nil)
	be.Equal(t, tok.Lexeme, "b")
	be.Equal(t, tz.Offset(), 3)

	tok, err = tz.Next()
	be.True(t, tok == nil)
	be.True(t, errors.Is(err, LexicalError))
}

func TestTokenizerEndOfInput(t *testing.T) {
	tz := NewTokenizer("x")
	_, err := tz.Next()
	be.Err(t, err, nil)

	for range 2 {
		tok, err := tz.Next()
		be.Err(t, err, nil)
		be.True(t, tok == nil)
	}
	be.Equal(t, tz.Line(), 1)
}
