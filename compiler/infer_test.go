package compiler

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"
)

func TestInferLeaves(t *testing.T) {
	a := NewArena()
	be.Equal(t, must(Infer(a, a.Leaf(OpNum, Int, "1", 1))), Int)
	be.Equal(t, must(Infer(a, a.Leaf(OpNum, Float, "1.0", 1))), Float)
	be.Equal(t, must(Infer(a, a.Leaf(OpVarRef, Float, "_new_name0", 1))), Float)
}

func TestInferArithmetic(t *testing.T) {
	a := NewArena()
	sum := a.Binary(OpAdd, a.Leaf(OpNum, Float, "1.5", 1), a.Leaf(OpNum, Float, "2.5", 1), 1)
	prod := a.Binary(OpMul, sum, a.Leaf(OpNum, Float, "2.0", 1), 1)

	be.Equal(t, must(Infer(a, prod)), Float)
	// Types are recorded on every node of the tree.
	be.Equal(t, a.Node(sum).Type, Float)
	be.Equal(t, a.Node(prod).Type, Float)
}

func TestInferComparisonIsInt(t *testing.T) {
	for _, op := range []Op{OpEq, OpLt} {
		a := NewArena()
		cmp := a.Binary(op, a.Leaf(OpNum, Float, "1.5", 1), a.Leaf(OpNum, Float, "2.5", 1), 1)
		be.Equal(t, must(Infer(a, cmp)), Int)
	}
}

func TestInferMismatch(t *testing.T) {
	a := NewArena()
	sub := a.Binary(OpSub, a.Leaf(OpNum, Int, "1", 4), a.Leaf(OpNum, Float, "2.0", 4), 4)

	_, err := Infer(a, sub)
	be.True(t, errors.Is(err, TypeMismatchError))
	be.Equal(t, err.Error(), "line 4: mismatched types int and float for '-'")
}

func TestInferArityViolation(t *testing.T) {
	a := NewArena()
	bad := a.Add(Node{Op: OpAdd, Children: []NodeID{a.Leaf(OpNum, Int, "1", 3)}, Line: 3})

	_, err := Infer(a, bad)
	be.True(t, errors.Is(err, InternalConsistencyError))
	be.Equal(t, err.Error(), "line 3: add node has 1 children, expected 2")
}

func TestInferLoadRequiresIORef(t *testing.T) {
	a := NewArena()
	load := a.Wrap(OpLoadIntToRegister, Int, a.Leaf(OpVarRef, Int, "_new_name0", 1))

	_, err := Infer(a, load)
	be.True(t, errors.Is(err, InternalConsistencyError))
}

func TestInferConversionOperand(t *testing.T) {
	a := NewArena()
	conv := a.Wrap(OpIntToFloat, Float, a.Leaf(OpNum, Float, "1.0", 1))

	_, err := Infer(a, conv)
	be.True(t, errors.Is(err, InternalConsistencyError))
	be.Equal(t, err.Error(), "line 1: int-to-float applied to a float operand")
}

func TestCoerceSameTypeIsIdentity(t *testing.T) {
	a := NewArena()
	root := a.Leaf(OpNum, Int, "1", 1)
	before := a.Len()

	be.Equal(t, Coerce(a, root, Int, Int), root)
	be.Equal(t, a.Len(), before)
}

func TestCoerceWrapsRootOnce(t *testing.T) {
	a := NewArena()
	left := a.Leaf(OpNum, Int, "1", 1)
	right := a.Leaf(OpNum, Int, "2", 1)
	sum := a.Binary(OpAdd, left, right, 1)
	be.Equal(t, must(Infer(a, sum)), Int)

	root := Coerce(a, sum, Int, Float)
	be.Equal(t, a.Node(root).Op, OpIntToFloat)
	be.Equal(t, a.Node(root).Type, Float)
	be.Equal(t, a.Node(root).Children, []NodeID{sum})
	// The operands keep their own type.
	be.Equal(t, a.Node(sum).Type, Int)
	be.Equal(t, a.SExpr(root), `(int-to-float float (add int (num int "1") (num int "2")))`)

	back := Coerce(a, a.Leaf(OpNum, Float, "2.5", 1), Float, Int)
	be.Equal(t, a.Node(back).Op, OpFloatToInt)
	be.Equal(t, a.Node(back).Type, Int)
}

func TestLoadIO(t *testing.T) {
	a := NewArena()
	id := loadIO(a, &Symbol{Name: "p", Kind: IOParam, Type: Float, InternalName: "p"}, 2)
	be.Equal(t, a.SExpr(id), `(load-float float (io float "p"))`)
	be.Equal(t, must(Infer(a, id)), Float)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
