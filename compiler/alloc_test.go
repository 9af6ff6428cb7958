package compiler

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestAllocatorsCountFromZero(t *testing.T) {
	regs := NewRegisterAllocator()
	labels := NewLabelAllocator()
	names := NewNameAllocator()

	be.Equal(t, regs.Next(), "vr0")
	be.Equal(t, regs.Next(), "vr1")
	be.Equal(t, labels.Next(), "label0")
	be.Equal(t, names.Next(), "_new_name0")
	be.Equal(t, names.Next(), "_new_name1")

	be.Equal(t, regs.Count(), 2)
	be.Equal(t, labels.Count(), 1)
}

func TestRegistersListsIssueOrder(t *testing.T) {
	regs := NewRegisterAllocator()
	be.Equal(t, len(regs.Registers()), 0)

	for range 11 {
		regs.Next()
	}
	got := regs.Registers()
	be.Equal(t, len(got), 11)
	be.Equal(t, got[0], "vr0")
	be.Equal(t, got[10], "vr10")
}
