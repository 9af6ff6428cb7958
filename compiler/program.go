// Package compiler lowers a single minic function into three-address IR over
// virtual registers.
//
// The pipeline is Tokenizer -> Parser (with symbol resolution, type inference
// and coercion) -> Generator (register assignment and linearization). Every
// stage returns an *Error on the first fault; nothing is recovered.
package compiler

import (
	"strings"
)

// Options tunes code generation.
type Options struct {
	// UnrollFactor is how many copies of a for loop body are emitted per
	// back edge. Values below 1 are treated as 1.
	UnrollFactor int
}

// Program is the emitted IR of one function.
type Program struct {
	Name         string
	Params       []*Symbol
	Locals       []*Symbol
	Instructions []string
	Registers    []string
}

// String renders the instructions followed by one declaration per virtual
// register.
func (p *Program) String() string {
	var sb strings.Builder
	for _, instr := range p.Instructions {
		sb.WriteString(instr)
		sb.WriteString("\n")
	}
	for _, reg := range p.Registers {
		sb.WriteString("virtual_reg ")
		sb.WriteString(reg)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Compiler holds the counters of one compilation unit. Two Compilers never
// share state, so they may run concurrently.
type Compiler struct {
	opts   Options
	names  *NameAllocator
	regs   *RegisterAllocator
	labels *LabelAllocator
}

func New(opts Options) *Compiler {
	return &Compiler{
		opts:   opts,
		names:  NewNameAllocator(),
		regs:   NewRegisterAllocator(),
		labels: NewLabelAllocator(),
	}
}

// Parse parses and type-checks src.
func (c *Compiler) Parse(src string) (*Function, error) {
	return NewParser(src, c.names).Parse()
}

// Generate lowers a parsed function.
func (c *Compiler) Generate(fn *Function) (*Program, error) {
	g := NewGenerator(fn.Arena, c.regs, c.labels, c.opts.UnrollFactor)
	if err := g.LowerStmt(fn.Body); err != nil {
		return nil, err
	}
	return &Program{
		Name:         fn.Name,
		Params:       fn.Params,
		Locals:       fn.Locals,
		Instructions: g.Instructions(),
		Registers:    c.regs.Registers(),
	}, nil
}

func (c *Compiler) Compile(src string) (*Program, error) {
	fn, err := c.Parse(src)
	if err != nil {
		return nil, err
	}
	return c.Generate(fn)
}

// Parse parses src with a fresh Compiler.
func Parse(src string) (*Function, error) {
	return New(Options{}).Parse(src)
}

// Generate lowers fn with a fresh Compiler.
func Generate(fn *Function, opts Options) (*Program, error) {
	return New(opts).Generate(fn)
}

// Compile runs the whole pipeline over src with a fresh Compiler.
func Compile(src string, opts Options) (*Program, error) {
	return New(opts).Compile(src)
}
