package compiler

// ParamKind says where a variable's value lives.
type ParamKind int

const (
	// Local variables live in the IR under their internal name.
	Local ParamKind = iota
	// IOParam values live outside the register file and need explicit loads
	// and stores.
	IOParam
)

func (k ParamKind) String() string {
	if k == IOParam {
		return "IOParam"
	}
	return "Local"
}

// Symbol represents a declared variable.
type Symbol struct {
	Name         string
	Kind         ParamKind
	Type         ValueType
	InternalName string
	Line         int
}

// SymbolTable is a stack of scope frames. The bottom frame holds the function
// parameters and the top-level locals.
type SymbolTable struct {
	frames []map[string]*Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{frames: []map[string]*Symbol{{}}}
}

func (st *SymbolTable) PushScope() {
	st.frames = append(st.frames, map[string]*Symbol{})
}

func (st *SymbolTable) PopScope() {
	if len(st.frames) == 1 {
		panic("cannot pop the outermost scope")
	}
	st.frames = st.frames[:len(st.frames)-1]
}

// Depth is the number of frames, 1 at function level.
func (st *SymbolTable) Depth() int {
	return len(st.frames)
}

// Declare binds sym in the innermost frame. Shadowing an outer frame is fine;
// a second binding in the same frame is a RedeclarationError.
func (st *SymbolTable) Declare(sym *Symbol) error {
	frame := st.frames[len(st.frames)-1]
	if prev, ok := frame[sym.Name]; ok {
		return errorf(RedeclarationError, sym.Line, "variable '%s' already declared on line %d", sym.Name, prev.Line)
	}
	frame[sym.Name] = sym
	return nil
}

// Lookup finds name in the innermost frame that binds it, or returns nil.
func (st *SymbolTable) Lookup(name string) *Symbol {
	for i := len(st.frames) - 1; i >= 0; i-- {
		if sym, ok := st.frames[i][name]; ok {
			return sym
		}
	}
	return nil
}
