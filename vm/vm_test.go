package vm_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qexat/vism-go/bytecode"
	"github.com/qexat/vism-go/storage"
	"github.com/qexat/vism-go/vm"
)

func TestRunMovAndPrint(t *testing.T) {
	var stdout, stderr strings.Builder
	machine := vm.New(&stdout, &stderr)

	err := machine.Run([]bytecode.Instruction{
		{Op: bytecode.Mov, Operands: []any{"x", 42}},
		{Op: bytecode.Print, Operands: []any{"x"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "42", stdout.String())
}

func TestPrintNeverAssignedSlotPrintsNothing(t *testing.T) {
	var stdout, stderr strings.Builder
	machine := vm.New(&stdout, &stderr)

	err := machine.Run([]bytecode.Instruction{
		{Op: bytecode.Print, Operands: []any{"unknown"}},
	})

	require.NoError(t, err)
	assert.Empty(t, stdout.String())
}

// TestNullStreamDiscardsWrites: writes to fd -1 are silent, reaching
// neither endpoint even after a flush.
func TestNullStreamDiscardsWrites(t *testing.T) {
	var stdout, stderr strings.Builder
	machine := vm.New(&stdout, &stderr)

	err := machine.Run([]bytecode.Instruction{
		{Op: bytecode.Write, Operands: []any{storage.NullFD, "should not appear"}},
		{Op: bytecode.Flush, Operands: []any{storage.NullFD}},
	})

	require.NoError(t, err)
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

// TestWriteRequiresFlushToReachEndpoint covers the other half of stream
// semantics: a write alone is buffered, not yet observable.
func TestWriteRequiresFlushToReachEndpoint(t *testing.T) {
	var stdout, stderr strings.Builder
	machine := vm.New(&stdout, &stderr)

	require.NoError(t, machine.Run([]bytecode.Instruction{
		{Op: bytecode.Write, Operands: []any{vm.StdoutFD, "buffered"}},
	}))
	assert.Empty(t, stdout.String())

	require.NoError(t, machine.Run([]bytecode.Instruction{
		{Op: bytecode.Flush, Operands: []any{vm.StdoutFD}},
	}))
	assert.Equal(t, "buffered", stdout.String())
}

func TestRunArithmetic(t *testing.T) {
	var stdout, stderr strings.Builder
	machine := vm.New(&stdout, &stderr)

	err := machine.Run([]bytecode.Instruction{
		{Op: bytecode.Mov, Operands: []any{"a", 7}},
		{Op: bytecode.Mov, Operands: []any{"b", 3}},
		{Op: bytecode.Add, Operands: []any{"sum", "a", "b"}},
		{Op: bytecode.Sub, Operands: []any{"diff", "a", "b"}},
		{Op: bytecode.Mul, Operands: []any{"prod", "a", "b"}},
		{Op: bytecode.IntDiv, Operands: []any{"q", "a", "b"}},
		{Op: bytecode.Modulo, Operands: []any{"m", "a", "b"}},
		{Op: bytecode.DivMod, Operands: []any{"dm", "a", "b"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 10, machine.Memory["sum"])
	assert.Equal(t, 4, machine.Memory["diff"])
	assert.Equal(t, 21, machine.Memory["prod"])
	assert.Equal(t, 2, machine.Memory["q"])
	assert.Equal(t, 1, machine.Memory["m"])
}

// TestRunStrictModeHaltsOnError covers the strict-mode default
// (vm.New starts StrictMode = true) and the VM's own responsibility to
// write a diagnostic to its stderr endpoint before halting.
func TestRunStrictModeHaltsOnError(t *testing.T) {
	var stdout, stderr strings.Builder
	machine := vm.New(&stdout, &stderr)

	err := machine.Run([]bytecode.Instruction{
		{Op: bytecode.Mov, Operands: []any{"a", 1}},
		{Op: bytecode.IntDiv, Operands: []any{"boom", "a", "zero"}},
		{Op: bytecode.Mov, Operands: []any{"never", 1}},
	})

	require.Error(t, err)
	_, reached := machine.Memory["never"]
	assert.False(t, reached, "strict mode must halt before later instructions run")
	assert.Contains(t, stderr.String(), "runtime error")
	assert.Contains(t, stderr.String(), err.Error())
}

func TestRunNonStrictModeContinuesPastError(t *testing.T) {
	var stdout, stderr strings.Builder
	machine := vm.New(&stdout, &stderr)
	machine.StrictMode = false

	err := machine.Run([]bytecode.Instruction{
		{Op: bytecode.Mov, Operands: []any{"a", 1}},
		{Op: bytecode.IntDiv, Operands: []any{"boom", "a", "zero"}},
		{Op: bytecode.Mov, Operands: []any{"after", 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, machine.Memory["after"])
	assert.Empty(t, stderr.String())
}
