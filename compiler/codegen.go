package compiler

import "fmt"

var binaryMnemonics = map[Op]string{
	OpAdd: "add",
	OpSub: "sub",
	OpMul: "mult",
	OpDiv: "div",
	OpEq:  "eq",
	OpLt:  "lt",
}

// Generator lowers a type-resolved Function into IR instructions.
type Generator struct {
	arena  *Arena
	regs   *RegisterAllocator
	labels *LabelAllocator
	unroll int
	out    []string
}

func NewGenerator(a *Arena, regs *RegisterAllocator, labels *LabelAllocator, unroll int) *Generator {
	if unroll < 1 {
		unroll = 1
	}
	return &Generator{arena: a, regs: regs, labels: labels, unroll: unroll}
}

// Instructions returns everything emitted so far.
func (g *Generator) Instructions() []string {
	return g.out
}

func (g *Generator) emit(format string, args ...any) {
	g.out = append(g.out, fmt.Sprintf(format, args...))
}

// AssignRegisters gives every node under id a fresh virtual register, children
// before parents, so a child's register always sorts before its parent's.
// Variable and I/O references are named by their variable instead.
func (g *Generator) AssignRegisters(id NodeID) error {
	n := g.arena.Node(id)
	if len(n.Children) != n.Op.Arity() {
		return arityError(n)
	}
	for _, child := range n.Children {
		if err := g.AssignRegisters(child); err != nil {
			return err
		}
	}
	switch n.Op {
	case OpVarRef, OpIORef:
		n.Reg = n.Text
	case OpLeaf:
		n.Reg = ""
	default:
		n.Reg = g.regs.Next()
	}
	return nil
}

// LinearizeExpr serializes the subtree under id, children first. Registers
// must already be assigned.
func (g *Generator) LinearizeExpr(id NodeID) ([]string, error) {
	var code []string
	if err := g.linearize(id, &code); err != nil {
		return nil, err
	}
	return code, nil
}

func (g *Generator) linearize(id NodeID, code *[]string) error {
	n := g.arena.Node(id)
	if len(n.Children) != n.Op.Arity() {
		return arityError(n)
	}
	for _, child := range n.Children {
		if err := g.linearize(child, code); err != nil {
			return err
		}
	}

	var instr string
	switch n.Op {
	case OpVarRef, OpIORef, OpLeaf:
		return nil
	case OpNum:
		instr = fmt.Sprintf("%s = %s2vr(%s);", n.Reg, n.Type, n.Text)
	case OpLoadIntToRegister, OpLoadFloatToRegister:
		instr = fmt.Sprintf("%s = %s2vr(%s);", n.Reg, n.Type, g.reg(n.Children[0]))
	case OpIntToFloat:
		instr = fmt.Sprintf("%s = vr_int2float(%s);", n.Reg, g.reg(n.Children[0]))
	case OpFloatToInt:
		instr = fmt.Sprintf("%s = vr_float2int(%s);", n.Reg, g.reg(n.Children[0]))
	case OpAdd, OpSub, OpMul, OpDiv, OpEq, OpLt:
		// Comparisons produce an int but compare operands of either type.
		operand := g.arena.Node(n.Children[0]).Type
		instr = fmt.Sprintf("%s = %s%s(%s,%s);", n.Reg, binaryMnemonics[n.Op], operand.Suffix(),
			g.reg(n.Children[0]), g.reg(n.Children[1]))
	default:
		return errorf(InternalConsistencyError, n.Line, "cannot linearize %s", n.Op)
	}
	*code = append(*code, instr)
	return nil
}

func (g *Generator) reg(id NodeID) string {
	return g.arena.Node(id).Reg
}

// lowerExpr emits the code for an expression and returns the register or
// variable name holding its value.
func (g *Generator) lowerExpr(id NodeID) (string, error) {
	if err := g.AssignRegisters(id); err != nil {
		return "", err
	}
	code, err := g.LinearizeExpr(id)
	if err != nil {
		return "", err
	}
	g.out = append(g.out, code...)
	return g.reg(id), nil
}

// LowerStmt emits the code for a statement.
func (g *Generator) LowerStmt(s *Stmt) error {
	switch s.Kind {
	case StmtDecl:
		return nil

	case StmtAssign:
		value, err := g.lowerExpr(s.Expr)
		if err != nil {
			return err
		}
		if s.Symbol.Kind == IOParam {
			g.emit("%s = vr2%s(%s);", s.Symbol.InternalName, s.Symbol.Type, value)
		} else {
			g.emit("%s = mov%s(%s);", s.Symbol.InternalName, s.Symbol.Type.Suffix(), value)
		}
		return nil

	case StmtBlock:
		for _, child := range s.Children {
			if err := g.LowerStmt(child); err != nil {
				return err
			}
		}
		return nil

	case StmtIf:
		if len(s.Children) < 1 || len(s.Children) > 2 {
			return errorf(InternalConsistencyError, s.Line, "if statement has %d branches", len(s.Children))
		}
		elseLabel := g.labels.Next()
		endLabel := g.labels.Next()
		if err := g.branchIfZero(s.Expr, elseLabel); err != nil {
			return err
		}
		if err := g.LowerStmt(s.Children[0]); err != nil {
			return err
		}
		g.emit("jmp(%s);", endLabel)
		g.emit("%s:", elseLabel)
		if len(s.Children) == 2 {
			if err := g.LowerStmt(s.Children[1]); err != nil {
				return err
			}
		}
		g.emit("%s:", endLabel)
		return nil

	case StmtFor:
		if len(s.Children) != 3 {
			return errorf(InternalConsistencyError, s.Line, "for statement has %d parts", len(s.Children))
		}
		init, incr, body := s.Children[0], s.Children[1], s.Children[2]
		if err := g.LowerStmt(init); err != nil {
			return err
		}
		topLabel := g.labels.Next()
		endLabel := g.labels.Next()
		g.emit("%s:", topLabel)
		// Every unrolled copy re-tests the condition, so any trip count works.
		for i := 0; i < g.unroll; i++ {
			if err := g.branchIfZero(s.Expr, endLabel); err != nil {
				return err
			}
			if err := g.LowerStmt(body); err != nil {
				return err
			}
			if err := g.LowerStmt(incr); err != nil {
				return err
			}
		}
		g.emit("jmp(%s);", topLabel)
		g.emit("%s:", endLabel)
		return nil
	}

	return errorf(InternalConsistencyError, s.Line, "unknown statement kind %q", s.Kind)
}

// branchIfZero evaluates cond and jumps to label when it is zero.
func (g *Generator) branchIfZero(cond NodeID, label string) error {
	value, err := g.lowerExpr(cond)
	if err != nil {
		return err
	}
	zero := g.regs.Next()
	g.emit("%s = %s2vr(%s);", zero, Int, Int.DefaultLiteral())
	g.emit("beq(%s,%s,%s);", value, zero, label)
	return nil
}
