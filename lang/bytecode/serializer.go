package bytecode

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/fy-lang/funcy/lang/ir"
)

// Format selects the shape of Serialize's output.
type Format int

const (
	// Framed output is {header, code, strings}, suitable for writing to a
	// file `run`/`build` will later load.
	Framed Format = iota
	// Flat output is just {code, strings}, with no header. Used when the
	// caller already knows the provenance and size of the bytes (e.g.
	// executing a just-compiled program in the same process without a
	// round trip through the filesystem).
	Flat
)

// localFrameBias accounts for the 2-word frame header (saved FP, saved IP)
// that CALL pushes before a function's arguments, so offset 0 addresses
// the first parameter rather than the saved FP cell.
const localFrameBias = 2

// frameHeaderOp is the bytecode op directly following a PUSH_U32 immediate
// for ops whose IR form carries a label or local offset.
var frameHeaderOp = map[ir.OpKind]Opcode{
	ir.JUMP_LABEL:          JUMP,
	ir.JUMP_NOT_ZERO_LABEL: JUMP_NOT_ZERO,
	ir.JUMP_ZERO_LABEL:     JUMP_ZERO,
	ir.LOAD_LOCAL_OFFSET:   LOAD_LOCAL,
	ir.STORE_LOCAL_OFFSET:  STORE_LOCAL,
}

// directOpcode is the 1:1 mapping for IR ops that carry no operand at all.
var directOpcode = map[ir.OpKind]Opcode{
	ir.HALT:                  HALT,
	ir.RETURN:                RETURN,
	ir.DROP:                  DROP,
	ir.DUPLICATE:             DUPLICATE,
	ir.UNARY_DEREFERENCE:     UNARY_DEREFERENCE,
	ir.UNARY_NEGATE:          UNARY_NEGATE,
	ir.UNARY_NOT:             UNARY_NOT,
	ir.BINARY_ADD:            BINARY_ADD,
	ir.BINARY_SUBTRACT:       BINARY_SUBTRACT,
	ir.BINARY_MULTIPLY:       BINARY_MULTIPLY,
	ir.BINARY_DIVIDE:         BINARY_DIVIDE,
	ir.BINARY_MODULO:         BINARY_MODULO,
	ir.BINARY_EQUALS:         BINARY_EQUALS,
	ir.BINARY_NOT_EQUALS:     BINARY_NOT_EQUALS,
	ir.BINARY_GREATER:        BINARY_GREATER,
	ir.BINARY_GREATER_EQUALS: BINARY_GREATER_EQUALS,
	ir.BINARY_LESS:           BINARY_LESS,
	ir.BINARY_LESS_EQUALS:    BINARY_LESS_EQUALS,
	ir.BINARY_AND:            BINARY_AND,
	ir.BINARY_OR:             BINARY_OR,
	ir.PUT_CHR:                PUT_CHR,
	ir.PRINT:                  PRINT,
}

// sizeOf returns an IR op's encoded size in bytes, per the fixed op-size
// table: a PUSH_U32 immediate followed by its consuming opcode is 6 bytes
// for label/local-offset ops and CALL_PARAMC; PUSH_INT and PUSH_STR are a
// single 5-byte push; PUSH_LABEL is likewise a single 5-byte push (it has
// no consuming opcode of its own, unlike the jump/call/local-offset
// group - it just leaves an address value on the stack, same shape as
// PUSH_STR); PUSH_CHR is a single 2-byte push; everything else is 1 byte.
func sizeOf(op ir.Op) int {
	switch op.Kind {
	case ir.PUSH_CHR:
		return 2
	case ir.PUSH_INT, ir.PUSH_STR, ir.PUSH_LABEL:
		return 5
	case ir.JUMP_LABEL, ir.JUMP_NOT_ZERO_LABEL, ir.JUMP_ZERO_LABEL,
		ir.CALL_PARAMC, ir.LOAD_LOCAL_OFFSET, ir.STORE_LOCAL_OFFSET:
		return 6
	default:
		if _, ok := directOpcode[op.Kind]; ok {
			return 1
		}
		panic(fmt.Sprintf("bug: unsized IR op %v", op.Kind))
	}
}

// Serialize lowers code to bytecode bytes in the requested format. code is
// expected to already have been optimized, though Serialize does not
// require it.
func Serialize(code *ir.Code, format Format) ([]byte, error) {
	labelOffsets, codeSize := assignAddresses(code)

	strs := collectStrings(code)
	table, strOffsets := buildStringTable(strs)
	for s, off := range strOffsets {
		strOffsets[s] = off + codeSize
	}

	var payload bytes.Buffer
	for _, b := range code.Blocks {
		for _, op := range b.Ops {
			if err := emitOp(&payload, op, labelOffsets, strOffsets); err != nil {
				return nil, err
			}
		}
	}
	payload.Write(table)

	if format == Flat {
		return payload.Bytes(), nil
	}
	out := EncodeHeader(uint32(payload.Len()))
	return append(out, payload.Bytes()...), nil
}

// CodeSize returns the byte length of code's instruction stream, i.e. the
// offset at which Serialize's output transitions from code to string
// table. Used by disassembly, which must not try to decode string-table
// bytes as instructions.
func CodeSize(code *ir.Code) uint32 {
	_, size := assignAddresses(code)
	return size
}

// assignAddresses is the serializer's first pass: walk every block in
// code's order, computing each op's size to build the label -> byte-offset
// map, and the total code size (the ir.EndLabel sentinel address).
func assignAddresses(code *ir.Code) (map[string]uint32, uint32) {
	offsets := make(map[string]uint32, len(code.Blocks)+1)
	var addr uint32
	for _, b := range code.Blocks {
		offsets[b.Label] = addr
		for _, op := range b.Ops {
			addr += uint32(sizeOf(op))
		}
	}
	offsets[ir.EndLabel] = addr
	return offsets, addr
}

// collectStrings gathers every PUSH_STR literal in block order, including
// duplicates; buildStringTable is responsible for deduplication.
func collectStrings(code *ir.Code) []string {
	var lits []string
	for _, b := range code.Blocks {
		for _, op := range b.Ops {
			if op.Kind == ir.PUSH_STR {
				lits = append(lits, op.StrValue)
			}
		}
	}
	return lits
}

func emitOp(buf *bytes.Buffer, op ir.Op, labels, strOffsets map[string]uint32) error {
	if consuming, ok := frameHeaderOp[op.Kind]; ok {
		var operand uint32
		switch op.Kind {
		case ir.LOAD_LOCAL_OFFSET, ir.STORE_LOCAL_OFFSET:
			operand = uint32(op.IntValue) + localFrameBias
		default:
			addr, ok := labels[op.StrValue]
			if !ok {
				return fmt.Errorf("bytecode: unresolved label %q", op.StrValue)
			}
			operand = addr
		}
		buf.WriteByte(byte(PUSH_U32))
		writeU32(buf, operand)
		buf.WriteByte(byte(consuming))
		return nil
	}

	switch op.Kind {
	case ir.CALL_PARAMC:
		buf.WriteByte(byte(PUSH_U32))
		writeU32(buf, uint32(op.IntValue))
		buf.WriteByte(byte(CALL))
	case ir.PUSH_INT:
		buf.WriteByte(byte(PUSH_S32))
		writeU32(buf, uint32(int32(op.IntValue)))
	case ir.PUSH_CHR:
		buf.WriteByte(byte(PUSH_U8))
		buf.WriteByte(byte(op.IntValue))
	case ir.PUSH_STR:
		off, ok := strOffsets[op.StrValue]
		if !ok {
			return fmt.Errorf("bytecode: unresolved string literal %q", op.StrValue)
		}
		buf.WriteByte(byte(PUSH_U32))
		writeU32(buf, off)
	case ir.PUSH_LABEL:
		addr, ok := labels[op.StrValue]
		if !ok {
			return fmt.Errorf("bytecode: unresolved label %q", op.StrValue)
		}
		buf.WriteByte(byte(PUSH_U32))
		writeU32(buf, addr)
	default:
		opcode, ok := directOpcode[op.Kind]
		if !ok {
			return fmt.Errorf("bug: no bytecode mapping for IR op %v", op.Kind)
		}
		buf.WriteByte(byte(opcode))
	}
	return nil
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}
