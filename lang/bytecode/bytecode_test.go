package bytecode_test

import (
	"testing"

	"github.com/fy-lang/funcy/lang/bytecode"
	"github.com/fy-lang/funcy/lang/ir"
	"github.com/stretchr/testify/require"
)

func TestSerializeIsIdempotent(t *testing.T) {
	code := ir.New()
	code.Emit(ir.Op{Kind: ir.PUSH_INT, IntValue: 42})
	code.Emit(ir.Op{Kind: ir.PUSH_STR, StrValue: "hello"})
	code.Emit(ir.Op{Kind: ir.HALT})

	a, err := bytecode.Serialize(code, bytecode.Framed)
	require.NoError(t, err)
	b, err := bytecode.Serialize(code, bytecode.Framed)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestFlatOmitsHeader(t *testing.T) {
	code := ir.New()
	code.Emit(ir.Op{Kind: ir.HALT})

	flat, err := bytecode.Serialize(code, bytecode.Flat)
	require.NoError(t, err)
	framed, err := bytecode.Serialize(code, bytecode.Framed)
	require.NoError(t, err)

	require.False(t, bytecode.HasMagic(flat))
	require.True(t, bytecode.HasMagic(framed))
	require.Equal(t, framed[bytecode.HeaderSize:], flat)
}

func TestHeaderRoundTrip(t *testing.T) {
	hdr := bytecode.EncodeHeader(123)
	payload := make([]byte, 123)
	size, err := bytecode.DecodeHeader(append(hdr, payload...))
	require.NoError(t, err)
	require.Equal(t, uint32(123), size)
}

func TestDecodeHeaderRejectsBadMagic(t *testing.T) {
	hdr := bytecode.EncodeHeader(0)
	hdr[0] = 0x00
	_, err := bytecode.DecodeHeader(hdr)
	require.Error(t, err)
}

func TestDecodeHeaderRejectsSizeMismatch(t *testing.T) {
	hdr := bytecode.EncodeHeader(10)
	_, err := bytecode.DecodeHeader(hdr) // no payload appended, declared 10
	require.Error(t, err)
}

func TestStringTableReusesSuffix(t *testing.T) {
	code := ir.New()
	code.Emit(ir.Op{Kind: ir.PUSH_STR, StrValue: "world"})
	code.Emit(ir.Op{Kind: ir.PUSH_STR, StrValue: "hello world"})
	code.Emit(ir.Op{Kind: ir.HALT})

	out, err := bytecode.Serialize(code, bytecode.Flat)
	require.NoError(t, err)

	// "hello world\0" (12 bytes) should appear exactly once; "world" should
	// not be duplicated as its own separate NUL-terminated entry.
	require.Equal(t, 1, countOccurrences(out, []byte("hello world\x00")))
	require.Equal(t, 0, countOccurrences(out, []byte("\x00world\x00")))
}

func countOccurrences(haystack, needle []byte) int {
	count := 0
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			count++
		}
	}
	return count
}

func TestJumpLabelResolvesToBlockAddress(t *testing.T) {
	code := ir.New()
	code.Emit(ir.Op{Kind: ir.JUMP_LABEL, StrValue: "target"})
	target := code.NewNamedBlock("target")
	target.Ops = append(target.Ops, ir.Op{Kind: ir.HALT})

	out, err := bytecode.Serialize(code, bytecode.Flat)
	require.NoError(t, err)

	// JUMP_LABEL emits PUSH_U32 <addr>; JUMP -- 6 bytes, with the .main
	// block's single op being at address 0, so "target" sits at address 6.
	require.Equal(t, byte(bytecode.PUSH_U32), out[0])
	require.Equal(t, uint32(6), leU32(out[1:5]))
	require.Equal(t, byte(bytecode.JUMP), out[5])
	require.Equal(t, byte(bytecode.HALT), out[6])
}

func TestLocalOffsetOpsApplyFrameBias(t *testing.T) {
	code := ir.New()
	code.Emit(ir.Op{Kind: ir.LOAD_LOCAL_OFFSET, IntValue: 0})
	code.Emit(ir.Op{Kind: ir.HALT})

	out, err := bytecode.Serialize(code, bytecode.Flat)
	require.NoError(t, err)

	require.Equal(t, byte(bytecode.PUSH_U32), out[0])
	require.Equal(t, uint32(2), leU32(out[1:5]))
	require.Equal(t, byte(bytecode.LOAD_LOCAL), out[5])
}

func TestPushLabelHasNoConsumingOpcode(t *testing.T) {
	code := ir.New()
	code.Emit(ir.Op{Kind: ir.PUSH_LABEL, StrValue: ir.MainLabel})
	code.Emit(ir.Op{Kind: ir.HALT})

	out, err := bytecode.Serialize(code, bytecode.Flat)
	require.NoError(t, err)

	require.Equal(t, byte(bytecode.PUSH_U32), out[0])
	require.Equal(t, uint32(0), leU32(out[1:5]))
	require.Equal(t, byte(bytecode.HALT), out[5])
}

func TestDisassembleRendersMnemonicsAndOperands(t *testing.T) {
	code := ir.New()
	code.Emit(ir.Op{Kind: ir.PUSH_INT, IntValue: 7})
	code.Emit(ir.Op{Kind: ir.PUT_CHR})
	code.Emit(ir.Op{Kind: ir.HALT})

	out, err := bytecode.Serialize(code, bytecode.Flat)
	require.NoError(t, err)

	text := bytecode.Disassemble(out, bytecode.CodeSize(code))
	require.Contains(t, text, "push_s32")
	require.Contains(t, text, "put_chr")
	require.Contains(t, text, "halt")
}

func leU32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
