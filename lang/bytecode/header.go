package bytecode

import (
	"encoding/binary"
	"fmt"
)

// Magic is the fixed 8-byte signature every bytecode file starts with,
// also used for file auto-detection: open in binary mode, and if the
// first 8 bytes match, treat the file as bytecode rather than source.
var Magic = [8]byte{0x83, 'F', 'V', 'M', 0x0D, 0x0A, 0x1A, 0x0A}

// Version is the current bytecode format version. Loading rejects any
// other value outright rather than attempting to interpret it.
const Version uint32 = 1

// HeaderSize is the fixed size, in bytes, of the header: 8-byte magic,
// 4-byte little-endian version, 4-byte little-endian payload size.
const HeaderSize = len(Magic) + 4 + 4

// EncodeHeader returns the 16-byte header for a payload of the given size.
func EncodeHeader(payloadSize uint32) []byte {
	buf := make([]byte, HeaderSize)
	copy(buf, Magic[:])
	binary.LittleEndian.PutUint32(buf[8:12], Version)
	binary.LittleEndian.PutUint32(buf[12:16], payloadSize)
	return buf
}

// DecodeHeader validates and parses a header from the start of b, returning
// the declared payload size. All three fields (magic, version, payload
// size) must match exactly; a mismatch on any of them is an error, per the
// load contract that nothing is silently tolerated.
func DecodeHeader(b []byte) (payloadSize uint32, err error) {
	if len(b) < HeaderSize {
		return 0, fmt.Errorf("bytecode: header truncated: got %d bytes, want %d", len(b), HeaderSize)
	}
	if [8]byte(b[:8]) != Magic {
		return 0, fmt.Errorf("bytecode: bad magic")
	}
	version := binary.LittleEndian.Uint32(b[8:12])
	if version != Version {
		return 0, fmt.Errorf("bytecode: unsupported version %d, want %d", version, Version)
	}
	size := binary.LittleEndian.Uint32(b[12:16])
	if int(size) != len(b)-HeaderSize {
		return 0, fmt.Errorf("bytecode: declared payload size %d does not match actual %d", size, len(b)-HeaderSize)
	}
	return size, nil
}

// HasMagic reports whether b begins with the bytecode magic; used for file
// auto-detection before deciding whether to parse b as source or bytecode.
func HasMagic(b []byte) bool {
	return len(b) >= len(Magic) && [8]byte(b[:8]) == Magic
}
