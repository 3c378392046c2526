package bytecode

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// widthOf reports how many trailing operand bytes follow a PUSH_* opcode
// byte, or -1 if op isn't a PUSH_* opcode.
func widthOf(op Opcode) int {
	switch op {
	case PUSH_U8, PUSH_S8:
		return 1
	case PUSH_U16, PUSH_S16:
		return 2
	case PUSH_U32, PUSH_S32:
		return 4
	default:
		return -1
	}
}

func operandOf(op Opcode, b []byte) (uint32, bool) {
	w := widthOf(op)
	if w < 0 || len(b) < w {
		return 0, false
	}
	switch w {
	case 1:
		return uint32(b[0]), true
	case 2:
		return uint32(binary.LittleEndian.Uint16(b)), true
	default:
		return binary.LittleEndian.Uint32(b), true
	}
}

// Disassemble renders code's instruction stream as one "addr: mnemonic
// operand" line per opcode, for use as a debug aid. codeSize bounds where
// the instruction stream ends and the string table begins; bytes beyond
// codeSize are not disassembled as code. Disassemble makes no attempt to
// print the string table itself - its offsets are already visible as
// PUSH_U32 operands against code addresses below codeSize.
func Disassemble(code []byte, codeSize uint32) string {
	var out strings.Builder
	var addr uint32
	for addr < codeSize && addr < uint32(len(code)) {
		op := Opcode(code[addr])
		if !Valid(op) {
			fmt.Fprintf(&out, "%6d: <invalid opcode %d>\n", addr, op)
			addr++
			continue
		}
		rest := code[addr+1:]
		if operand, ok := operandOf(op, rest); ok {
			w := uint32(widthOf(op))
			fmt.Fprintf(&out, "%6d: %-16s %d\n", addr, op, operand)
			addr += 1 + w
			continue
		}
		fmt.Fprintf(&out, "%6d: %s\n", addr, op)
		addr++
	}
	return out.String()
}
