package compiler

// Tokenizer turns source text into tokens, one per call to Next.
//
// Each call picks the longest substring starting at the cursor that fully
// matches some entry of tokenPatterns. Candidate ends are tried from the end
// of the input downwards, so finding a token costs time proportional to the
// remaining input rather than to the token. This keeps the lexing rule
// exactly "longest full match, earliest pattern on ties" without building an
// automaton.
type Tokenizer struct {
	src    string
	offset int
	line   int
}

func NewTokenizer(src string) *Tokenizer {
	return &Tokenizer{src: src, line: 1}
}

// Line returns the 1-based line of the cursor.
func (t *Tokenizer) Line() int {
	return t.line
}

// Offset returns the byte offset of the cursor.
func (t *Tokenizer) Offset() int {
	return t.offset
}

// Next returns the next token, or nil at end of input. Whitespace is skipped.
func (t *Tokenizer) Next() (*Token, error) {
	for t.offset < len(t.src) {
		kind, end := t.longestMatch()
		if end < 0 {
			return nil, errorf(LexicalError, t.line, "no token matches input at offset %d", t.offset)
		}

		lexeme := t.src[t.offset:end]
		start := t.offset
		t.offset = end

		if kind == IGNORE {
			if lexeme == "\n" {
				t.line++
			}
			continue
		}
		if kind == ID {
			kind = lookupKeyword(lexeme)
		}
		return &Token{Kind: kind, Lexeme: lexeme, Line: t.line, Offset: start}, nil
	}
	return nil, nil
}

// longestMatch returns the winning pattern and the end offset of its lexeme,
// or -1 if nothing starting at the cursor matches.
func (t *Tokenizer) longestMatch() (TokenKind, int) {
	for end := len(t.src); end > t.offset; end-- {
		candidate := t.src[t.offset:end]
		for _, p := range tokenPatterns {
			if p.re.MatchString(candidate) {
				return p.kind, end
			}
		}
	}
	return "", -1
}

// Tokenize drains a fresh Tokenizer over src.
func Tokenize(src string) ([]Token, error) {
	t := NewTokenizer(src)
	var tokens []Token
	for {
		tok, err := t.Next()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return tokens, nil
		}
		tokens = append(tokens, *tok)
	}
}
