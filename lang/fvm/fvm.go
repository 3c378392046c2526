// Package fvm implements the Funcy Virtual Machine, the stack machine that
// executes serialized bytecode: a flat word stack, a byte-addressed program
// memory, and a single fetch-decode-execute loop. Runtime faults never
// surface as Go errors; they clear the execution flag and set an exit code,
// matching the compiler's own "exec always returns an int" contract.
package fvm

import (
	"io"

	"github.com/fy-lang/funcy/lang/bytecode"
)

// Exit codes named after original_source's fvm_exit_code enumeration.
const (
	ExitOK    int32 = 0
	ExitCrash int32 = 1
)

// Limits bounds a VM's resource usage; DefaultLimits is used where the
// caller doesn't override them (e.g. via internal/config).
type Limits struct {
	MaxSteps int
	MaxStack int
}

// DefaultLimits are generous enough for any well-formed test program while
// still catching a runaway (e.g. infinitely recursive) one.
var DefaultLimits = Limits{MaxSteps: 10_000_000, MaxStack: 1 << 16}

// VM is one Funcy Virtual Machine instance: program memory loaded once at
// construction, a stack and registers reset by Begin, stepped one opcode at
// a time by Step.
type VM struct {
	Stdout io.Writer

	limits  Limits
	program []byte

	stack []int32
	ip    uint32
	fp    uint32
	ec    int32
	steps int

	// running is the execution flag from §4.11: Step clears it on HALT or on
	// any runtime fault, and the run loop stops as soon as it is false.
	running bool
}

// New returns a VM with no program loaded; call Load or LoadFlat before
// Begin.
func New(limits Limits, stdout io.Writer) *VM {
	return &VM{limits: limits, Stdout: stdout}
}

// Load verifies b's header (magic, version, declared payload size) and, if
// valid, sets the program memory to the payload that follows. It does not
// reset the machine; call Begin afterward.
func (vm *VM) Load(b []byte) error {
	size, err := bytecode.DecodeHeader(b)
	if err != nil {
		return err
	}
	vm.program = b[bytecode.HeaderSize : bytecode.HeaderSize+int(size)]
	return nil
}

// LoadFlat sets the program memory directly to b, with no header to
// validate; used when the caller just serialized code in bytecode.Flat
// format and wants to execute it without a round trip through a file.
func (vm *VM) LoadFlat(b []byte) {
	vm.program = b
}

// Begin resets the stack and registers: FP=0, IP=0, EC=0, execution flag
// true, step counter zero.
func (vm *VM) Begin() {
	vm.stack = vm.stack[:0]
	vm.ip = 0
	vm.fp = 0
	vm.ec = 0
	vm.steps = 0
	vm.running = true
}

// Run steps the machine until the execution flag clears, then returns the
// exit code. Load and Begin must have been called first.
func (vm *VM) Run() int32 {
	for vm.running {
		vm.Step()
	}
	return vm.ec
}

// ExitCode returns the machine's current exit code register.
func (vm *VM) ExitCode() int32 { return vm.ec }

// Running reports whether the machine's execution flag is still set.
func (vm *VM) Running() bool { return vm.running }

func (vm *VM) crash() {
	vm.running = false
	vm.ec = ExitCrash
}

func (vm *VM) push(w int32) {
	if len(vm.stack) >= vm.limits.MaxStack {
		vm.crash()
		return
	}
	vm.stack = append(vm.stack, w)
}

func (vm *VM) pop() (int32, bool) {
	if len(vm.stack) == 0 {
		return 0, false
	}
	n := len(vm.stack) - 1
	w := vm.stack[n]
	vm.stack = vm.stack[:n]
	return w, true
}

func (vm *VM) fetchByte() (byte, bool) {
	if vm.ip >= uint32(len(vm.program)) {
		return 0, false
	}
	b := vm.program[vm.ip]
	vm.ip++
	return b, true
}

func (vm *VM) fetch(n int) ([]byte, bool) {
	if uint64(vm.ip)+uint64(n) > uint64(len(vm.program)) {
		return nil, false
	}
	b := vm.program[vm.ip : vm.ip+uint32(n)]
	vm.ip += uint32(n)
	return b, true
}
