// Package vm executes the bytecode the backend package produces. It
// owns the two pieces of mutable state a Vism run needs: a flat memory
// map keyed by identifier, and a small set of numbered output streams
// (stdout, stderr, and a write-discarding null stream), each buffered
// until flushed to its bound endpoint.
package vm

import (
	"bytes"
	"fmt"
	"io"

	"github.com/qexat/vism-go/bytecode"
	"github.com/qexat/vism-go/storage"
)

// StdoutFD and StderrFD name the two real, flushable streams every VM
// is seeded with, mirroring storage's well-known stream descriptors.
const (
	StdoutFD = 0
	StderrFD = 1
)

// VM holds the state a bytecode program runs against.
type VM struct {
	Memory  map[string]any
	streams map[int]*bytes.Buffer
	sinks   map[int]io.Writer

	// StrictMode, when true, aborts Run on the first instruction error
	// instead of skipping it and continuing, useful for tests that want
	// to assert a specific failure.
	StrictMode bool
}

// New builds a VM with its three well-known streams wired to stdout,
// stderr, and a discarding null sink. StrictMode defaults to true; an
// embedder that wants a VM that keeps going past a runtime error sets
// StrictMode = false after construction.
func New(stdout, stderr io.Writer) *VM {
	return &VM{
		Memory: make(map[string]any),
		streams: map[int]*bytes.Buffer{
			storage.NullFD: {},
			StdoutFD:       {},
			StderrFD:       {},
		},
		sinks: map[int]io.Writer{
			storage.NullFD: io.Discard,
			StdoutFD:       stdout,
			StderrFD:       stderr,
		},
		StrictMode: true,
	}
}

// Run executes a bytecode program in order. In non-strict mode a
// failing instruction's error is discarded and execution continues, matching a
// VM that keeps going after a runtime hiccup. In StrictMode (the
// default) the VM halts at the first error, after writing a diagnostic
// to its stderr endpoint, the VM's own responsibility rather than the
// embedder's.
func (vm *VM) Run(instrs []bytecode.Instruction) error {
	for _, instr := range instrs {
		if err := vm.exec(instr); err != nil {
			if vm.StrictMode {
				vm.reportFailure(instr, err)
				return err
			}
		}
	}
	return nil
}

// reportFailure writes a one-paragraph diagnostic describing a
// strict-mode runtime failure to the VM's stderr endpoint.
func (vm *VM) reportFailure(instr bytecode.Instruction, err error) {
	sink := vm.sinks[StderrFD]
	if sink == nil {
		return
	}
	fmt.Fprintf(sink, "vism: runtime error during %s: %v\n", instr.Op, err)
}

func (vm *VM) exec(instr bytecode.Instruction) error {
	switch instr.Op {
	case bytecode.Mov:
		dest := instr.Operands[0].(string)
		vm.Memory[dest] = instr.Operands[1]
		return nil

	case bytecode.Write:
		return vm.write(instr.Operands[0].(int), fmt.Sprint(instr.Operands[1]))

	case bytecode.Flush:
		return vm.flush(instr.Operands[0].(int))

	case bytecode.Print:
		return vm.print(instr.Operands[0].(string))

	case bytecode.Add:
		return vm.ternary(instr, vmAdd)
	case bytecode.Sub:
		return vm.ternary(instr, vmSub)
	case bytecode.Mul:
		return vm.ternary(instr, vmMul)
	case bytecode.IntDiv:
		return vm.ternary(instr, vmIntDiv)
	case bytecode.Modulo:
		return vm.ternary(instr, vmModulo)
	case bytecode.DivMod:
		return vm.ternary(instr, vmDivMod)
	case bytecode.Union:
		return vm.ternary(instr, vmUnion)
	case bytecode.StrDiff:
		return vm.ternary(instr, vmStrDiff)
	case bytecode.SeqDiff:
		return vm.ternary(instr, vmSeqDiff)
	case bytecode.PathJoin:
		return vm.ternary(instr, vmPathJoin)

	default:
		return fmt.Errorf("vm: unsupported opcode %s", instr.Op)
	}
}

// ternary reads two memory-valued operands, applies op, and stores the
// result at the destination, the shape shared by every arithmetic and
// container bytecode instruction.
func (vm *VM) ternary(instr bytecode.Instruction, op func(a, b any) (any, error)) error {
	dest := instr.Operands[0].(string)
	a := vm.Memory[instr.Operands[1].(string)]
	b := vm.Memory[instr.Operands[2].(string)]
	result, err := op(a, b)
	if err != nil {
		return fmt.Errorf("vm: %s: %w", instr.Op, err)
	}
	vm.Memory[dest] = result
	return nil
}

func (vm *VM) write(fd int, s string) error {
	buf, ok := vm.streams[fd]
	if !ok {
		return fmt.Errorf("vm: stream %d does not exist", fd)
	}
	buf.WriteString(s)
	return nil
}

func (vm *VM) flush(fd int) error {
	buf, ok := vm.streams[fd]
	if !ok {
		return fmt.Errorf("vm: stream %d does not exist", fd)
	}
	sink := vm.sinks[fd]
	if sink == nil {
		return fmt.Errorf("vm: stream %d has no bound endpoint", fd)
	}
	if _, err := sink.Write(buf.Bytes()); err != nil {
		return err
	}
	buf.Reset()
	return nil
}

// print writes a memory slot's formatted value to stdout and flushes
// immediately, a one-step write-then-flush composite. A never-assigned
// slot (nil) prints nothing.
func (vm *VM) print(identifier string) error {
	val, ok := vm.Memory[identifier]
	if !ok || val == nil {
		return nil
	}
	if err := vm.write(StdoutFD, formatValue(val)); err != nil {
		return err
	}
	return vm.flush(StdoutFD)
}
