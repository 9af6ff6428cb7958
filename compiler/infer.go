package compiler

var opSymbols = map[Op]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpEq:  "==",
	OpLt:  "<",
}

// Infer computes the type of every node under id, children first, and
// records it on the node. Operands of a binary operation must already have
// the same type; nothing is promoted inside an expression.
func Infer(a *Arena, id NodeID) (ValueType, error) {
	n := a.Node(id)
	if len(n.Children) != n.Op.Arity() {
		return 0, arityError(n)
	}

	switch n.Op {
	case OpNum, OpVarRef, OpIORef, OpLeaf:
		return n.Type, nil

	case OpAdd, OpSub, OpMul, OpDiv, OpEq, OpLt:
		left, err := Infer(a, n.Children[0])
		if err != nil {
			return 0, err
		}
		right, err := Infer(a, n.Children[1])
		if err != nil {
			return 0, err
		}
		if left != right {
			return 0, errorf(TypeMismatchError, n.Line, "mismatched types %s and %s for '%s'", left, right, opSymbols[n.Op])
		}
		n.Type = left
		if n.Op.isComparison() {
			n.Type = Int
		}
		return n.Type, nil

	case OpIntToFloat, OpFloatToInt, OpLoadIntToRegister, OpLoadFloatToRegister:
		from, err := Infer(a, n.Children[0])
		if err != nil {
			return 0, err
		}
		want, result := conversionTypes(n.Op)
		if from != want {
			return 0, errorf(InternalConsistencyError, n.Line, "%s applied to a %s operand", n.Op, from)
		}
		if n.Op == OpLoadIntToRegister || n.Op == OpLoadFloatToRegister {
			if child := a.Node(n.Children[0]); child.Op != OpIORef {
				return 0, errorf(InternalConsistencyError, n.Line, "%s applied to %s instead of an I/O parameter", n.Op, child.Op)
			}
		}
		n.Type = result
		return result, nil
	}

	return 0, errorf(InternalConsistencyError, n.Line, "unknown operation %s", n.Op)
}

// conversionTypes gives the operand and result type of a unary node.
func conversionTypes(op Op) (from ValueType, to ValueType) {
	switch op {
	case OpIntToFloat:
		return Int, Float
	case OpFloatToInt:
		return Float, Int
	case OpLoadFloatToRegister:
		return Float, Float
	default:
		return Int, Int
	}
}

// Coerce returns root unchanged if from equals to. Otherwise it returns a new
// conversion node whose only child is root.
func Coerce(a *Arena, root NodeID, from, to ValueType) NodeID {
	if from == to {
		return root
	}
	if to == Int {
		return a.Wrap(OpFloatToInt, Int, root)
	}
	return a.Wrap(OpIntToFloat, Float, root)
}

// loadIO builds a read of an I/O parameter: a load node over the reference.
func loadIO(a *Arena, sym *Symbol, line int) NodeID {
	ref := a.Leaf(OpIORef, sym.Type, sym.InternalName, line)
	if sym.Type == Float {
		return a.Wrap(OpLoadFloatToRegister, Float, ref)
	}
	return a.Wrap(OpLoadIntToRegister, Int, ref)
}

func arityError(n *Node) error {
	return errorf(InternalConsistencyError, n.Line, "%s node has %d children, expected %d", n.Op, len(n.Children), n.Op.Arity())
}
