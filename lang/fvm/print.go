package fvm

import (
	"fmt"
	"io"
)

// fprintDecimalLine writes v as a decimal integer followed by a newline,
// the legacy PRINT opcode's format.
func fprintDecimalLine(w io.Writer, v int32) {
	fmt.Fprintf(w, "%d\n", v)
}
