package fvm

import (
	"encoding/binary"

	"github.com/fy-lang/funcy/lang/bytecode"
)

// Step fetches and executes exactly one opcode. If the machine's execution
// flag is already clear, Step is a no-op: the flag stays clear and the exit
// code stays whatever crash or HALT set it to. If the step budget is
// exhausted, Step crashes the machine instead of executing an opcode.
func (vm *VM) Step() {
	if !vm.running {
		return
	}
	vm.steps++
	if vm.steps > vm.limits.MaxSteps {
		vm.crash()
		return
	}

	b, ok := vm.fetchByte()
	if !ok {
		vm.crash()
		return
	}
	op := bytecode.Opcode(b)
	if !bytecode.Valid(op) {
		vm.crash()
		return
	}

	switch op {
	case bytecode.HALT:
		ec, ok := vm.pop()
		if !ok {
			vm.crash()
			return
		}
		vm.ec = ec
		vm.running = false

	case bytecode.NO_OPERATION:
		// nothing

	case bytecode.JUMP:
		addr, ok := vm.pop()
		if !ok {
			vm.crash()
			return
		}
		vm.ip = uint32(addr)

	case bytecode.JUMP_NOT_ZERO:
		addr, ok1 := vm.pop()
		cond, ok2 := vm.pop()
		if !ok1 || !ok2 {
			vm.crash()
			return
		}
		if cond != 0 {
			vm.ip = uint32(addr)
		}

	case bytecode.JUMP_ZERO:
		addr, ok1 := vm.pop()
		cond, ok2 := vm.pop()
		if !ok1 || !ok2 {
			vm.crash()
			return
		}
		if cond == 0 {
			vm.ip = uint32(addr)
		}

	case bytecode.CALL:
		vm.execCall()

	case bytecode.RETURN:
		vm.execReturn()

	case bytecode.DROP:
		if _, ok := vm.pop(); !ok {
			vm.crash()
		}

	case bytecode.DUPLICATE:
		if len(vm.stack) == 0 {
			vm.crash()
			return
		}
		vm.push(vm.stack[len(vm.stack)-1])

	case bytecode.PUSH_U8:
		vm.execPush(1, false)
	case bytecode.PUSH_S8:
		vm.execPush(1, true)
	case bytecode.PUSH_U16:
		vm.execPush(2, false)
	case bytecode.PUSH_S16:
		vm.execPush(2, true)
	case bytecode.PUSH_U32:
		vm.execPush(4, false)
	case bytecode.PUSH_S32:
		vm.execPush(4, true)

	case bytecode.LOAD_LOCAL:
		off, ok := vm.pop()
		if !ok {
			vm.crash()
			return
		}
		idx := int64(vm.fp) + int64(off)
		if idx < 0 || idx >= int64(len(vm.stack)) {
			vm.crash()
			return
		}
		vm.push(vm.stack[idx])

	case bytecode.STORE_LOCAL:
		off, ok := vm.pop()
		if !ok {
			vm.crash()
			return
		}
		if len(vm.stack) == 0 {
			vm.crash()
			return
		}
		idx := int64(vm.fp) + int64(off)
		if idx < 0 || idx >= int64(len(vm.stack)) {
			vm.crash()
			return
		}
		vm.stack[idx] = vm.stack[len(vm.stack)-1]

	case bytecode.UNARY_DEREFERENCE:
		addr, ok := vm.pop()
		if !ok {
			vm.crash()
			return
		}
		if addr < 0 || int(addr) >= len(vm.program) {
			vm.crash()
			return
		}
		vm.push(int32(vm.program[addr]))

	case bytecode.UNARY_NEGATE:
		x, ok := vm.pop()
		if !ok {
			vm.crash()
			return
		}
		vm.push(-x)

	case bytecode.UNARY_NOT:
		x, ok := vm.pop()
		if !ok {
			vm.crash()
			return
		}
		vm.push(boolWord(x == 0))

	case bytecode.BINARY_ADD, bytecode.BINARY_SUBTRACT, bytecode.BINARY_MULTIPLY,
		bytecode.BINARY_DIVIDE, bytecode.BINARY_MODULO,
		bytecode.BINARY_EQUALS, bytecode.BINARY_NOT_EQUALS,
		bytecode.BINARY_GREATER, bytecode.BINARY_GREATER_EQUALS,
		bytecode.BINARY_LESS, bytecode.BINARY_LESS_EQUALS,
		bytecode.BINARY_AND, bytecode.BINARY_OR:
		vm.execBinary(op)

	case bytecode.PUT_CHR:
		if len(vm.stack) == 0 {
			vm.crash()
			return
		}
		top := vm.stack[len(vm.stack)-1]
		if vm.Stdout != nil {
			if _, err := vm.Stdout.Write([]byte{byte(top & 0xFF)}); err != nil {
				vm.crash()
				return
			}
		}

	case bytecode.PRINT:
		v, ok := vm.pop()
		if !ok {
			vm.crash()
			return
		}
		if vm.Stdout != nil {
			fprintDecimalLine(vm.Stdout, v)
		}

	default:
		vm.crash()
	}
}

func (vm *VM) execPush(width int, signed bool) {
	b, ok := vm.fetch(width)
	if !ok {
		vm.crash()
		return
	}
	var u uint32
	switch width {
	case 1:
		u = uint32(b[0])
	case 2:
		u = uint32(binary.LittleEndian.Uint16(b))
	case 4:
		u = binary.LittleEndian.Uint32(b)
	}
	if !signed {
		vm.push(int32(u))
		return
	}
	switch width {
	case 1:
		vm.push(int32(int8(u)))
	case 2:
		vm.push(int32(int16(u)))
	case 4:
		vm.push(int32(u))
	}
}

// execCall implements CALL's layout: pop paramc, pop target, pop paramc
// args (popped in reverse, so restored to original left-to-right order),
// push saved FP, set FP to the new top, push saved IP, set IP to target,
// then push the args back in their original order.
func (vm *VM) execCall() {
	paramc, ok := vm.pop()
	if !ok || paramc < 0 {
		vm.crash()
		return
	}
	target, ok := vm.pop()
	if !ok {
		vm.crash()
		return
	}
	n := int(paramc)
	if len(vm.stack) < n {
		vm.crash()
		return
	}
	args := make([]int32, n)
	copy(args, vm.stack[len(vm.stack)-n:])
	vm.stack = vm.stack[:len(vm.stack)-n]

	savedFP := int32(vm.fp)
	savedIP := int32(vm.ip)
	vm.push(savedFP)
	vm.fp = uint32(len(vm.stack) - 1)
	vm.push(savedIP)
	vm.ip = uint32(target)
	for _, a := range args {
		vm.push(a)
	}
}

// execReturn implements RETURN: IP and FP are restored from the saved
// frame header at the current FP, the return value is popped, the stack is
// truncated back to the frame header's own position, and the return value
// is pushed back on top.
func (vm *VM) execReturn() {
	oldFP := int64(vm.fp)
	if oldFP < 0 || oldFP+1 >= int64(len(vm.stack)) {
		vm.crash()
		return
	}
	savedIP := vm.stack[oldFP+1]
	savedFP := vm.stack[oldFP]
	retval := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:oldFP]
	vm.fp = uint32(savedFP)
	vm.ip = uint32(savedIP)
	vm.push(retval)
}

func (vm *VM) execBinary(op bytecode.Opcode) {
	y, ok1 := vm.pop()
	x, ok2 := vm.pop()
	if !ok1 || !ok2 {
		vm.crash()
		return
	}
	switch op {
	case bytecode.BINARY_ADD:
		vm.push(x + y)
	case bytecode.BINARY_SUBTRACT:
		vm.push(x - y)
	case bytecode.BINARY_MULTIPLY:
		vm.push(x * y)
	case bytecode.BINARY_DIVIDE:
		if y == 0 {
			vm.crash()
			return
		}
		vm.push(x / y)
	case bytecode.BINARY_MODULO:
		if y == 0 {
			vm.crash()
			return
		}
		vm.push(x % y)
	case bytecode.BINARY_EQUALS:
		vm.push(boolWord(x == y))
	case bytecode.BINARY_NOT_EQUALS:
		vm.push(boolWord(x != y))
	case bytecode.BINARY_GREATER:
		vm.push(boolWord(x > y))
	case bytecode.BINARY_GREATER_EQUALS:
		vm.push(boolWord(x >= y))
	case bytecode.BINARY_LESS:
		vm.push(boolWord(x < y))
	case bytecode.BINARY_LESS_EQUALS:
		vm.push(boolWord(x <= y))
	case bytecode.BINARY_AND:
		vm.push(boolWord(x != 0 && y != 0))
	case bytecode.BINARY_OR:
		vm.push(boolWord(x != 0 || y != 0))
	}
}

func boolWord(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
