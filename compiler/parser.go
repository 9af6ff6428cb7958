package compiler

import "strings"

// Parser is a recursive-descent parser with one token of lookahead. It
// resolves identifiers and types as it goes, so the Function it returns is
// ready for code generation.
type Parser struct {
	tokens  *Tokenizer
	tok     *Token // nil once the input is exhausted
	symbols *SymbolTable
	names   *NameAllocator
	arena   *Arena
	locals  []*Symbol
}

func NewParser(src string, names *NameAllocator) *Parser {
	return &Parser{
		tokens:  NewTokenizer(src),
		symbols: NewSymbolTable(),
		names:   names,
		arena:   NewArena(),
	}
}

// Parse parses one function definition. The first error stops parsing.
//
//	function := 'void' ID '(' args_list ')' '{' statement_list '}'
func (p *Parser) Parse() (*Function, error) {
	if _, err := p.eatMaybe(); err != nil {
		return nil, err
	}
	if _, err := p.eat(VOID); err != nil {
		return nil, err
	}
	name, err := p.eat(ID)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(LPAR); err != nil {
		return nil, err
	}
	params, err := p.parseArgsList()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(RPAR); err != nil {
		return nil, err
	}

	// The body shares the parameters' frame.
	open, err := p.eat(LBRACE)
	if err != nil {
		return nil, err
	}
	stmts, err := p.parseStatementList()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(RBRACE); err != nil {
		return nil, err
	}
	if p.tok != nil {
		return nil, p.unexpected("end of input")
	}

	return &Function{
		Name:   name.Lexeme,
		Params: params,
		Locals: p.locals,
		Body:   &Stmt{Kind: StmtBlock, Line: open.Line, Expr: NoNode, Children: stmts},
		Arena:  p.arena,
	}, nil
}

// advance moves the lookahead to the next token.
func (p *Parser) advance() error {
	tok, err := p.tokens.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// eat consumes the lookahead if it is one of kinds.
func (p *Parser) eat(kinds ...TokenKind) (*Token, error) {
	if !p.at(kinds...) {
		return nil, p.unexpected(describeKinds(kinds))
	}
	tok := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	return tok, nil
}

// eatMaybe is eat, except that with no kinds it only loads the lookahead.
// Parse calls it this way before the first token exists.
func (p *Parser) eatMaybe(kinds ...TokenKind) (*Token, error) {
	if len(kinds) == 0 {
		return nil, p.advance()
	}
	return p.eat(kinds...)
}

func (p *Parser) at(kinds ...TokenKind) bool {
	if p.tok == nil {
		return false
	}
	for _, kind := range kinds {
		if p.tok.Kind == kind {
			return true
		}
	}
	return false
}

func (p *Parser) line() int {
	if p.tok != nil {
		return p.tok.Line
	}
	return p.tokens.Line()
}

func (p *Parser) unexpected(expected string) error {
	found := "end of input"
	if p.tok != nil {
		found = string(p.tok.Kind) + " \"" + p.tok.Lexeme + "\""
	}
	return errorf(SyntaxError, p.line(), "expected %s but found %s", expected, found)
}

func describeKinds(kinds []TokenKind) string {
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = string(kind)
	}
	return strings.Join(names, " or ")
}

// args_list := (arg (',' arg)*)?
func (p *Parser) parseArgsList() ([]*Symbol, error) {
	var params []*Symbol
	if !p.at(INT, FLOAT) {
		return params, nil
	}
	for {
		param, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !p.at(COMMA) {
			return params, nil
		}
		if _, err := p.eat(COMMA); err != nil {
			return nil, err
		}
	}
}

// arg := ('int'|'float') '&' ID
func (p *Parser) parseArg() (*Symbol, error) {
	typeTok, err := p.eat(INT, FLOAT)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(AMP); err != nil {
		return nil, err
	}
	name, err := p.eat(ID)
	if err != nil {
		return nil, err
	}
	typ, _ := typeForKeyword(typeTok.Kind)
	sym := &Symbol{
		Name:         name.Lexeme,
		Kind:         IOParam,
		Type:         typ,
		InternalName: name.Lexeme,
		Line:         name.Line,
	}
	if err := p.symbols.Declare(sym); err != nil {
		return nil, err
	}
	return sym, nil
}

func (p *Parser) parseStatementList() ([]*Stmt, error) {
	var stmts []*Stmt
	for p.tok != nil && p.tok.Kind != RBRACE {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) parseStatement() (*Stmt, error) {
	switch {
	case p.at(INT, FLOAT):
		return p.parseDeclaration()
	case p.at(ID):
		return p.parseAssignment(true)
	case p.at(IF):
		return p.parseIfElse()
	case p.at(LBRACE):
		return p.parseBlock()
	case p.at(FOR):
		return p.parseForLoop()
	default:
		return nil, p.unexpected(describeKinds([]TokenKind{INT, FLOAT, ID, IF, LBRACE, FOR}))
	}
}

// declaration := ('int'|'float') ID ';'
func (p *Parser) parseDeclaration() (*Stmt, error) {
	typeTok, err := p.eat(INT, FLOAT)
	if err != nil {
		return nil, err
	}
	name, err := p.eat(ID)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(SEMI); err != nil {
		return nil, err
	}
	typ, _ := typeForKeyword(typeTok.Kind)
	sym := &Symbol{
		Name: name.Lexeme,
		Kind: Local,
		Type: typ,
		Line: name.Line,
	}
	if err := p.symbols.Declare(sym); err != nil {
		return nil, err
	}
	sym.InternalName = p.names.Next()
	p.locals = append(p.locals, sym)
	return &Stmt{Kind: StmtDecl, Line: name.Line, Symbol: sym, Expr: NoNode}, nil
}

// assignment := ID '=' expr ';'
//
// The increment of a for loop is followed by ')', so there the ';' is
// optional.
func (p *Parser) parseAssignment(requireSemi bool) (*Stmt, error) {
	name, err := p.eat(ID)
	if err != nil {
		return nil, err
	}
	sym := p.symbols.Lookup(name.Lexeme)
	if sym == nil {
		return nil, errorf(UndefinedIdentifierError, name.Line, "variable '%s' is not declared", name.Lexeme)
	}
	if _, err := p.eat(ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if requireSemi || p.at(SEMI) {
		if _, err := p.eat(SEMI); err != nil {
			return nil, err
		}
	}

	typ, err := Infer(p.arena, value)
	if err != nil {
		return nil, err
	}
	value = Coerce(p.arena, value, typ, sym.Type)
	return &Stmt{Kind: StmtAssign, Line: name.Line, Symbol: sym, Expr: value}, nil
}

// if_else := 'if' '(' expr ')' statement ('else' statement)?
func (p *Parser) parseIfElse() (*Stmt, error) {
	ifTok, err := p.eat(IF)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(LPAR); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(RPAR); err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt := &Stmt{Kind: StmtIf, Line: ifTok.Line, Expr: cond, Children: []*Stmt{then}}
	if p.at(ELSE) {
		if _, err := p.eat(ELSE); err != nil {
			return nil, err
		}
		els, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmt.Children = append(stmt.Children, els)
	}
	return stmt, nil
}

// block := '{' statement_list '}'
func (p *Parser) parseBlock() (*Stmt, error) {
	open, err := p.eat(LBRACE)
	if err != nil {
		return nil, err
	}
	p.symbols.PushScope()
	stmts, err := p.parseStatementList()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(RBRACE); err != nil {
		return nil, err
	}
	p.symbols.PopScope()
	return &Stmt{Kind: StmtBlock, Line: open.Line, Expr: NoNode, Children: stmts}, nil
}

// for_loop := 'for' '(' assignment expr ';' assignment ')' statement
func (p *Parser) parseForLoop() (*Stmt, error) {
	forTok, err := p.eat(FOR)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(LPAR); err != nil {
		return nil, err
	}
	init, err := p.parseAssignment(true)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(SEMI); err != nil {
		return nil, err
	}
	incr, err := p.parseAssignment(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(RPAR); err != nil {
		return nil, err
	}

	p.symbols.PushScope()
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	p.symbols.PopScope()

	return &Stmt{
		Kind:     StmtFor,
		Line:     forTok.Line,
		Expr:     cond,
		Children: []*Stmt{init, incr, body},
	}, nil
}

// parseCondition parses an if or for condition, which must be an int.
func (p *Parser) parseCondition() (NodeID, error) {
	line := p.line()
	cond, err := p.parseExpr()
	if err != nil {
		return NoNode, err
	}
	typ, err := Infer(p.arena, cond)
	if err != nil {
		return NoNode, err
	}
	if typ != Int {
		return NoNode, errorf(TypeMismatchError, line, "condition must be int, found %s", typ)
	}
	return cond, nil
}

var exprOps = map[TokenKind]Op{
	PLUS:  OpAdd,
	MINUS: OpSub,
	EQ:    OpEq,
	LT:    OpLt,
}

var termOps = map[TokenKind]Op{
	MUL: OpMul,
	DIV: OpDiv,
}

// expr := term (('+'|'-'|'=='|'<') term)*
func (p *Parser) parseExpr() (NodeID, error) {
	left, err := p.parseTerm()
	if err != nil {
		return NoNode, err
	}
	for p.at(PLUS, MINUS, EQ, LT) {
		opTok, err := p.eat(PLUS, MINUS, EQ, LT)
		if err != nil {
			return NoNode, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return NoNode, err
		}
		left = p.arena.Binary(exprOps[opTok.Kind], left, right, opTok.Line)
	}
	return left, nil
}

// term := factor (('*'|'/') factor)*
func (p *Parser) parseTerm() (NodeID, error) {
	left, err := p.parseFactor()
	if err != nil {
		return NoNode, err
	}
	for p.at(MUL, DIV) {
		opTok, err := p.eat(MUL, DIV)
		if err != nil {
			return NoNode, err
		}
		right, err := p.parseFactor()
		if err != nil {
			return NoNode, err
		}
		left = p.arena.Binary(termOps[opTok.Kind], left, right, opTok.Line)
	}
	return left, nil
}

// factor := NUM | ID | '(' expr ')'
func (p *Parser) parseFactor() (NodeID, error) {
	switch {
	case p.at(NUM):
		tok, err := p.eat(NUM)
		if err != nil {
			return NoNode, err
		}
		typ := Int
		if strings.Contains(tok.Lexeme, ".") {
			typ = Float
		}
		return p.arena.Leaf(OpNum, typ, tok.Lexeme, tok.Line), nil

	case p.at(ID):
		tok, err := p.eat(ID)
		if err != nil {
			return NoNode, err
		}
		sym := p.symbols.Lookup(tok.Lexeme)
		if sym == nil {
			return NoNode, errorf(UndefinedIdentifierError, tok.Line, "variable '%s' is not declared", tok.Lexeme)
		}
		if sym.Kind == IOParam {
			return loadIO(p.arena, sym, tok.Line), nil
		}
		return p.arena.Leaf(OpVarRef, sym.Type, sym.InternalName, tok.Line), nil

	case p.at(LPAR):
		if _, err := p.eat(LPAR); err != nil {
			return NoNode, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return NoNode, err
		}
		if _, err := p.eat(RPAR); err != nil {
			return NoNode, err
		}
		return inner, nil

	default:
		return NoNode, p.unexpected(describeKinds([]TokenKind{NUM, ID, LPAR}))
	}
}
