package compiler

import "strconv"

// counter hands out prefix0, prefix1, ... in order.
type counter struct {
	prefix string
	next   int
}

func (c *counter) Next() string {
	name := c.prefix + strconv.Itoa(c.next)
	c.next++
	return name
}

// Count is the number of names issued so far.
func (c *counter) Count() int {
	return c.next
}

// RegisterAllocator issues virtual register names vr0, vr1, ...
type RegisterAllocator struct {
	counter
}

func NewRegisterAllocator() *RegisterAllocator {
	return &RegisterAllocator{counter{prefix: "vr"}}
}

// Registers lists every register issued so far, in issue order.
func (r *RegisterAllocator) Registers() []string {
	regs := make([]string, r.next)
	for i := range regs {
		regs[i] = r.prefix + strconv.Itoa(i)
	}
	return regs
}

// LabelAllocator issues control-flow labels label0, label1, ...
type LabelAllocator struct {
	counter
}

func NewLabelAllocator() *LabelAllocator {
	return &LabelAllocator{counter{prefix: "label"}}
}

// NameAllocator issues the IR-level names _new_name0, _new_name1, ... that
// keep shadowed source variables apart.
type NameAllocator struct {
	counter
}

func NewNameAllocator() *NameAllocator {
	return &NameAllocator{counter{prefix: "_new_name"}}
}
