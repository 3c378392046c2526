// Package ir is the intermediate representation the visitor emits and the
// serializer lowers to bytecode: labeled basic blocks of a small, closed
// instruction set, with a fixed-point optimizer in between.
package ir

import "fmt"

// OpKind enumerates the closed set of IR instructions.
type OpKind uint8

const ( //nolint:revive
	HALT OpKind = iota
	JUMP_LABEL
	JUMP_NOT_ZERO_LABEL
	JUMP_ZERO_LABEL
	CALL_PARAMC
	RETURN
	DROP
	DUPLICATE
	PUSH_LABEL
	PUSH_INT
	PUSH_CHR
	PUSH_STR
	LOAD_LOCAL_OFFSET
	STORE_LOCAL_OFFSET
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
	PRINT

	maxOpKind
)

var opKindNames = [...]string{
	HALT:                  "HALT",
	JUMP_LABEL:            "JUMP_LABEL",
	JUMP_NOT_ZERO_LABEL:   "JUMP_NOT_ZERO_LABEL",
	JUMP_ZERO_LABEL:       "JUMP_ZERO_LABEL",
	CALL_PARAMC:           "CALL_PARAMC",
	RETURN:                "RETURN",
	DROP:                  "DROP",
	DUPLICATE:             "DUPLICATE",
	PUSH_LABEL:            "PUSH_LABEL",
	PUSH_INT:              "PUSH_INT",
	PUSH_CHR:              "PUSH_CHR",
	PUSH_STR:              "PUSH_STR",
	LOAD_LOCAL_OFFSET:     "LOAD_LOCAL_OFFSET",
	STORE_LOCAL_OFFSET:    "STORE_LOCAL_OFFSET",
	UNARY_DEREFERENCE:     "UNARY_DEREFERENCE",
	UNARY_NEGATE:          "UNARY_NEGATE",
	UNARY_NOT:             "UNARY_NOT",
	BINARY_ADD:            "BINARY_ADD",
	BINARY_SUBTRACT:       "BINARY_SUBTRACT",
	BINARY_MULTIPLY:       "BINARY_MULTIPLY",
	BINARY_DIVIDE:         "BINARY_DIVIDE",
	BINARY_MODULO:         "BINARY_MODULO",
	BINARY_EQUALS:         "BINARY_EQUALS",
	BINARY_NOT_EQUALS:     "BINARY_NOT_EQUALS",
	BINARY_GREATER:        "BINARY_GREATER",
	BINARY_GREATER_EQUALS: "BINARY_GREATER_EQUALS",
	BINARY_LESS:           "BINARY_LESS",
	BINARY_LESS_EQUALS:    "BINARY_LESS_EQUALS",
	BINARY_AND:            "BINARY_AND",
	BINARY_OR:             "BINARY_OR",
	PUT_CHR:               "PUT_CHR",
	PRINT:                 "PRINT",
}

func (k OpKind) String() string {
	if k < maxOpKind {
		return opKindNames[k]
	}
	return fmt.Sprintf("illegal op (%d)", k)
}

// labelOps carry a block label reference instead of (or in addition to) a
// literal value.
var labelOps = map[OpKind]bool{
	JUMP_LABEL:          true,
	JUMP_NOT_ZERO_LABEL: true,
	JUMP_ZERO_LABEL:     true,
	PUSH_LABEL:          true,
}

// IsLabelOp reports whether k carries a block-label operand in StrValue.
func IsLabelOp(k OpKind) bool { return labelOps[k] }

// terminators are ops after which no further op in the same block executes.
var terminators = map[OpKind]bool{
	HALT:       true,
	JUMP_LABEL: true,
	RETURN:     true,
}

// IsTerminator reports whether k ends a basic block.
func IsTerminator(k OpKind) bool { return terminators[k] }

// Op is a single IR instruction. IntValue carries CALL_PARAMC's arity,
// PUSH_INT/PUSH_CHR's literal, and LOAD/STORE_LOCAL_OFFSET's offset.
// StrValue carries PUSH_STR's literal and, for the label ops, the target
// block's label.
type Op struct {
	Kind     OpKind
	IntValue int64
	StrValue string
}

func (op Op) String() string {
	switch {
	case IsLabelOp(op.Kind):
		return fmt.Sprintf("%s %s", op.Kind, op.StrValue)
	case op.Kind == PUSH_STR:
		return fmt.Sprintf("%s %q", op.Kind, op.StrValue)
	case op.Kind == CALL_PARAMC, op.Kind == PUSH_INT, op.Kind == PUSH_CHR,
		op.Kind == LOAD_LOCAL_OFFSET, op.Kind == STORE_LOCAL_OFFSET:
		return fmt.Sprintf("%s %d", op.Kind, op.IntValue)
	default:
		return op.Kind.String()
	}
}
