// Package bytecode lowers optimized IR into the flat byte format the FVM
// executes: a two-pass address assignment (sizes and labels, then bytes), a
// suffix-compressed string table, and an optional fixed header.
package bytecode

import "fmt"

// Opcode is a single FVM instruction byte. This is the machine-level
// instruction set, distinct from (and a refinement of) ir.OpKind: several
// IR ops expand into more than one Opcode, and the reverse never happens.
type Opcode uint8

const ( //nolint:revive
	HALT Opcode = iota
	NO_OPERATION
	JUMP
	JUMP_NOT_ZERO
	JUMP_ZERO
	CALL
	RETURN
	DROP
	DUPLICATE
	PUSH_U8
	PUSH_S8
	PUSH_U16
	PUSH_S16
	PUSH_U32
	PUSH_S32
	LOAD_LOCAL
	STORE_LOCAL
	UNARY_DEREFERENCE
	UNARY_NEGATE
	UNARY_NOT
	BINARY_ADD
	BINARY_SUBTRACT
	BINARY_MULTIPLY
	BINARY_DIVIDE
	BINARY_MODULO
	BINARY_EQUALS
	BINARY_NOT_EQUALS
	BINARY_GREATER
	BINARY_GREATER_EQUALS
	BINARY_LESS
	BINARY_LESS_EQUALS
	BINARY_AND
	BINARY_OR
	PUT_CHR
	PRINT // legacy: pop and print a decimal integer followed by a newline

	maxOpcode
)

var opcodeNames = [...]string{
	HALT:                  "halt",
	NO_OPERATION:          "no_operation",
	JUMP:                  "jump",
	JUMP_NOT_ZERO:         "jump_not_zero",
	JUMP_ZERO:             "jump_zero",
	CALL:                  "call",
	RETURN:                "return",
	DROP:                  "drop",
	DUPLICATE:             "duplicate",
	PUSH_U8:               "push_u8",
	PUSH_S8:               "push_s8",
	PUSH_U16:              "push_u16",
	PUSH_S16:              "push_s16",
	PUSH_U32:              "push_u32",
	PUSH_S32:              "push_s32",
	LOAD_LOCAL:            "load_local",
	STORE_LOCAL:           "store_local",
	UNARY_DEREFERENCE:     "unary_dereference",
	UNARY_NEGATE:          "unary_negate",
	UNARY_NOT:             "unary_not",
	BINARY_ADD:            "binary_add",
	BINARY_SUBTRACT:       "binary_subtract",
	BINARY_MULTIPLY:       "binary_multiply",
	BINARY_DIVIDE:         "binary_divide",
	BINARY_MODULO:         "binary_modulo",
	BINARY_EQUALS:         "binary_equals",
	BINARY_NOT_EQUALS:     "binary_not_equals",
	BINARY_GREATER:        "binary_greater",
	BINARY_GREATER_EQUALS: "binary_greater_equals",
	BINARY_LESS:           "binary_less",
	BINARY_LESS_EQUALS:    "binary_less_equals",
	BINARY_AND:            "binary_and",
	BINARY_OR:             "binary_or",
	PUT_CHR:               "put_chr",
	PRINT:                 "print",
}

func (op Opcode) String() string {
	if op < maxOpcode {
		return opcodeNames[op]
	}
	return fmt.Sprintf("illegal opcode (%d)", op)
}

// Valid reports whether op is a recognized opcode. The FVM crashes on any
// other byte it fetches as an opcode.
func Valid(op Opcode) bool { return op < maxOpcode }
