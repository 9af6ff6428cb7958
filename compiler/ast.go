package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

// Op is the operation an expression node performs.
type Op int

const (
	OpNum Op = iota
	OpVarRef
	OpIORef
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpEq
	OpLt
	OpIntToFloat
	OpFloatToInt
	OpLoadIntToRegister
	OpLoadFloatToRegister
	OpLeaf
)

var opNames = [...]string{
	OpNum:                 "num",
	OpVarRef:              "var",
	OpIORef:               "io",
	OpAdd:                 "add",
	OpSub:                 "sub",
	OpMul:                 "mul",
	OpDiv:                 "div",
	OpEq:                  "eq",
	OpLt:                  "lt",
	OpIntToFloat:          "int-to-float",
	OpFloatToInt:          "float-to-int",
	OpLoadIntToRegister:   "load-int",
	OpLoadFloatToRegister: "load-float",
	OpLeaf:                "leaf",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// Arity is the number of children a node with this operation must have.
func (op Op) Arity() int {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv, OpEq, OpLt:
		return 2
	case OpIntToFloat, OpFloatToInt, OpLoadIntToRegister, OpLoadFloatToRegister:
		return 1
	default:
		return 0
	}
}

func (op Op) isComparison() bool {
	return op == OpEq || op == OpLt
}

// NodeID indexes a Node in its Arena.
type NodeID int32

// NoNode marks an absent expression, e.g. on a decl statement.
const NoNode NodeID = -1

// Node is one expression tree node. Reg stays empty until register
// assignment.
type Node struct {
	Op       Op
	Type     ValueType
	Children []NodeID
	Reg      string
	// Text is the literal for OpNum, the internal name for OpVarRef and the
	// parameter name for OpIORef.
	Text string
	Line int
}

// Arena owns every expression node of one function. Nodes refer to each
// other by index, so putting a new parent above a subtree never copies it.
type Arena struct {
	nodes []Node
}

func NewArena() *Arena {
	return &Arena{}
}

func (a *Arena) Add(n Node) NodeID {
	a.nodes = append(a.nodes, n)
	return NodeID(len(a.nodes) - 1)
}

// Node returns the node for id. The pointer is invalidated by the next Add.
func (a *Arena) Node(id NodeID) *Node {
	return &a.nodes[id]
}

func (a *Arena) Len() int {
	return len(a.nodes)
}

func (a *Arena) Leaf(op Op, typ ValueType, text string, line int) NodeID {
	return a.Add(Node{Op: op, Type: typ, Text: text, Line: line})
}

func (a *Arena) Binary(op Op, left, right NodeID, line int) NodeID {
	return a.Add(Node{Op: op, Children: []NodeID{left, right}, Line: line})
}

// Wrap creates a new node of the given op whose only child is child. The
// child itself is left untouched.
func (a *Arena) Wrap(op Op, typ ValueType, child NodeID) NodeID {
	line := a.nodes[child].Line
	return a.Add(Node{Op: op, Type: typ, Children: []NodeID{child}, Line: line})
}

// SExpr renders the subtree rooted at id as an s-expression.
func (a *Arena) SExpr(id NodeID) string {
	n := a.Node(id)
	switch n.Op {
	case OpNum, OpVarRef, OpIORef:
		return "(" + n.Op.String() + " " + n.Type.String() + " " + strconv.Quote(n.Text) + ")"
	case OpLeaf:
		return "(leaf)"
	}
	var sb strings.Builder
	sb.WriteString("(" + n.Op.String() + " " + n.Type.String())
	for _, child := range n.Children {
		sb.WriteString(" " + a.SExpr(child))
	}
	sb.WriteString(")")
	return sb.String()
}

// StmtKind represents the different kinds of statements.
type StmtKind string

const (
	StmtDecl   StmtKind = "decl"
	StmtAssign StmtKind = "assign"
	StmtIf     StmtKind = "if"
	StmtBlock  StmtKind = "block"
	StmtFor    StmtKind = "for"
)

// Stmt is a statement of the function body.
//
//	decl:   Symbol
//	assign: Symbol (target), Expr (already coerced to the target's type)
//	if:     Expr (condition), Children = [then] or [then, else]
//	block:  Children = statements
//	for:    Expr (condition), Children = [init, incr, body]
type Stmt struct {
	Kind     StmtKind
	Line     int
	Symbol   *Symbol
	Expr     NodeID
	Children []*Stmt
}

// Function is the parsed, type-resolved program.
type Function struct {
	Name   string
	Params []*Symbol
	Locals []*Symbol
	Body   *Stmt
	Arena  *Arena
}

// ToSExpr renders a function as an s-expression.
func ToSExpr(fn *Function) string {
	params := "(params"
	for _, p := range fn.Params {
		params += " " + symbolSExpr(p)
	}
	params += ")"
	return "(function " + strconv.Quote(fn.Name) + " " + params + " " + stmtSExpr(fn.Arena, fn.Body) + ")"
}

func symbolSExpr(sym *Symbol) string {
	if sym.Kind == IOParam {
		return "(io " + sym.Type.String() + " " + strconv.Quote(sym.Name) + ")"
	}
	return "(local " + sym.Type.String() + " " + strconv.Quote(sym.Name) + " " + strconv.Quote(sym.InternalName) + ")"
}

func stmtSExpr(a *Arena, s *Stmt) string {
	switch s.Kind {
	case StmtDecl:
		return "(decl " + symbolSExpr(s.Symbol) + ")"
	case StmtAssign:
		return "(assign " + strconv.Quote(s.Symbol.InternalName) + " " + a.SExpr(s.Expr) + ")"
	case StmtIf:
		result := "(if " + a.SExpr(s.Expr)
		for _, child := range s.Children {
			result += " " + stmtSExpr(a, child)
		}
		return result + ")"
	case StmtBlock:
		result := "(block"
		for _, child := range s.Children {
			result += " " + stmtSExpr(a, child)
		}
		return result + ")"
	case StmtFor:
		return "(for " + stmtSExpr(a, s.Children[0]) + " " + a.SExpr(s.Expr) + " " +
			stmtSExpr(a, s.Children[1]) + " " + stmtSExpr(a, s.Children[2]) + ")"
	default:
		return ""
	}
}
