package compiler

import "fmt"

// ValueType is the static type of a variable or expression.
type ValueType int

const (
	Int ValueType = iota + 1
	Float
)

func (v ValueType) String() string {
	switch v {
	case Int:
		return "int"
	case Float:
		return "float"
	default:
		return fmt.Sprintf("ValueType(%d)", int(v))
	}
}

// Suffix is the letter appended to typed instruction mnemonics (addi, addf).
func (v ValueType) Suffix() string {
	if v == Float {
		return "f"
	}
	return "i"
}

// DefaultLiteral is the literal a value of this type starts out as.
func (v ValueType) DefaultLiteral() string {
	if v == Float {
		return "0.0"
	}
	return "0"
}

// typeForKeyword maps the INT and FLOAT keyword tokens to their types.
func typeForKeyword(kind TokenKind) (ValueType, bool) {
	switch kind {
	case INT:
		return Int, true
	case FLOAT:
		return Float, true
	default:
		return 0, false
	}
}
