package visitor

import "github.com/fy-lang/funcy/lang/ir"

// intrinsicDef is a standard-library intrinsic's fixed shape: how many
// arguments it takes and the inline op sequence that consumes them,
// assuming the arguments are already on the stack in order.
type intrinsicDef struct {
	Arity int
	Body  []ir.Op
}

// intrinsics is the closed set of standard-library intrinsics. Additional
// intrinsics extend this map without changing any other interface.
var intrinsics = map[string]intrinsicDef{
	"putChr": {Arity: 1, Body: []ir.Op{{Kind: ir.PUT_CHR}}},
	"chrAt":  {Arity: 2, Body: []ir.Op{{Kind: ir.BINARY_ADD}, {Kind: ir.UNARY_DEREFERENCE}}},
	// print is the legacy alternative to putChr: print a decimal integer
	// followed by a newline, per the PRINT opcode (§4.11, legacy). PRINT pops
	// its operand, so it runs on a copy and the argument stays on the stack
	// as the call's value, as with putChr.
	"print": {Arity: 1, Body: []ir.Op{{Kind: ir.DUPLICATE}, {Kind: ir.PRINT}}},
}
