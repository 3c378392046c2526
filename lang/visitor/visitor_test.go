package visitor_test

import (
	"fmt"
	"testing"

	"github.com/fy-lang/funcy/lang/diag"
	"github.com/fy-lang/funcy/lang/ir"
	"github.com/fy-lang/funcy/lang/resolver"
	"github.com/fy-lang/funcy/lang/visitor"
	"github.com/stretchr/testify/require"
)

const stdSource = `
func putChr(c) {
	return $(putChr, c);
}

func chrAt(ptr, i) {
	return $(chrAt, ptr, i);
}
`

type mapLoader map[string]string

func (m mapLoader) Load(canon string) ([]byte, error) {
	src, ok := m[canon]
	if !ok {
		return nil, fmt.Errorf("no such module %q", canon)
	}
	return []byte(src), nil
}

func compile(t *testing.T, mainSrc string) (*ir.Code, *diag.Log) {
	t.Helper()
	loader := mapLoader{"std": stdSource, "main": mainSrc}
	log := &diag.Log{}
	root := resolver.Resolve("main", loader, log)
	require.False(t, log.HasErrors(), "resolve: %s", log.String())
	code := visitor.Visit(root, log)
	ir.Optimize(code)
	return code, log
}

func TestEmptyMainHalts(t *testing.T) {
	code, log := compile(t, `func main() { return 0; }`)
	require.False(t, log.HasErrors())
	main, ok := code.Block(ir.MainLabel)
	require.True(t, ok)
	last, ok := main.LastOp()
	require.True(t, ok)
	require.Equal(t, ir.HALT, last.Kind)
}

func TestMissingMainStillHalts(t *testing.T) {
	code, log := compile(t, `func other() { return 0; }`)
	require.False(t, log.HasErrors())
	main, ok := code.Block(ir.MainLabel)
	require.True(t, ok)
	require.Equal(t, ir.PUSH_INT, main.Ops[0].Kind)
	require.Equal(t, int64(0), main.Ops[0].IntValue)
}

func TestFunctionCallArityMatches(t *testing.T) {
	_, log := compile(t, `
func f(x, y) { return x + y; }
func main() { return f(20, 22); }
`)
	require.False(t, log.HasErrors())
}

func TestArityMismatchIsDiagnosedButStackBalanced(t *testing.T) {
	code, log := compile(t, `
func f(x, y) { return x + y; }
func main() { return f(1); }
`)
	require.True(t, log.HasErrors())
	fnBlock, ok := code.Block("func_main")
	require.True(t, ok)
	var paramc int64 = -1
	for _, op := range fnBlock.Ops {
		if op.Kind == ir.CALL_PARAMC {
			paramc = op.IntValue
		}
	}
	require.Equal(t, int64(2), paramc)
}

func TestUndefinedNameIsDiagnosed(t *testing.T) {
	_, log := compile(t, `func main() { return missing; }`)
	require.True(t, log.HasErrors())
}

func TestBreakOutsideLoopIsDiagnosed(t *testing.T) {
	_, log := compile(t, `func main() { break; return 0; }`)
	require.True(t, log.HasErrors())
}

func TestBreakInsideLoopResolves(t *testing.T) {
	_, log := compile(t, `
func main() {
	let mut i = 0;
	while (i < 3) {
		if (i == 1) { break; }
		i += 1;
	}
	return 0;
}
`)
	require.False(t, log.HasErrors())
}

func TestAssignToImmutableIsDiagnosed(t *testing.T) {
	_, log := compile(t, `
func main() {
	let x = 1;
	x = 2;
	return 0;
}
`)
	require.True(t, log.HasErrors())
}

func TestImmutableLetWithoutInitializerIsDiagnosedButAccepted(t *testing.T) {
	_, log := compile(t, `func main() { let x; return 0; }`)
	require.True(t, log.HasErrors())
}

func TestMutableLetWithoutInitializerIsAccepted(t *testing.T) {
	_, log := compile(t, `func main() { let mut x; x = 1; return x; }`)
	require.False(t, log.HasErrors())
}

func TestShortCircuitAndMakesUnreachableBranchDisappear(t *testing.T) {
	code, log := compile(t, `
func main() {
	if (1 && 0) {
		return 1;
	}
	return 0;
}
`)
	require.False(t, log.HasErrors())
	require.NotEmpty(t, code.Labels())
	// The then-branch's block pushing 1 must have been pruned since it is
	// unreachable after the optimizer runs.
	found := false
	for _, b := range code.Blocks {
		for _, op := range b.Ops {
			if op.Kind == ir.PUSH_INT && op.IntValue == 1 {
				found = true
			}
		}
	}
	require.False(t, found)
}

func TestNestedIfMergeBlockFallsThroughToOuterMerge(t *testing.T) {
	code, log := compile(t, `
func main() {
	if (1) {
		if (0) {
		}
	}
	return 7;
}
`)
	require.False(t, log.HasErrors())

	main, ok := code.Block("func_main")
	require.True(t, ok)

	// two JUMP_ZERO_LABEL ops are emitted, to the outer if's merge block and
	// then the inner one; capture both in emission order.
	var labels []string
	for _, op := range main.Ops {
		if op.Kind == ir.JUMP_ZERO_LABEL {
			labels = append(labels, op.StrValue)
		}
	}
	require.Len(t, labels, 2)
	outerEndLabel, innerEndLabel := labels[0], labels[1]

	indexOf := func(label string) int {
		for i, b := range code.Blocks {
			if b.Label == label {
				return i
			}
		}
		t.Fatalf("block %q not found", label)
		return -1
	}

	// the inner if's merge block must sit immediately before the outer
	// if's merge block in list order, so that its empty body's
	// fall-through lands on the outer merge (which holds "return 7")
	// rather than running off the end of the code segment.
	require.Equal(t, indexOf(innerEndLabel)+1, indexOf(outerEndLabel))

	outerEnd, _ := code.Block(outerEndLabel)
	require.Equal(t, ir.PUSH_INT, outerEnd.Ops[0].Kind)
	require.Equal(t, int64(7), outerEnd.Ops[0].IntValue)
}

func TestCharLiteralMustBeOneCharacter(t *testing.T) {
	_, log := compile(t, `func main() { let x = 'ab'; return x; }`)
	require.True(t, log.HasErrors())
}

func TestPutChrIntrinsicInlinesInsteadOfCalling(t *testing.T) {
	code, log := compile(t, `
func main() {
	let mut i = 0;
	while (i < 3) {
		putChr('0' + i);
		i += 1;
	}
	return 0;
}
`)
	require.False(t, log.HasErrors())
	sawPutChr := false
	sawCallToPutChr := false
	for _, b := range code.Blocks {
		for _, op := range b.Ops {
			if op.Kind == ir.PUT_CHR {
				sawPutChr = true
			}
			if op.Kind == ir.PUSH_LABEL && op.StrValue == "func_putChr" {
				sawCallToPutChr = true
			}
		}
	}
	require.True(t, sawPutChr)
	require.False(t, sawCallToPutChr)
}

func TestDivisionExpressionCompilesToBinaryDivide(t *testing.T) {
	code, log := compile(t, `func main() { return 1 / 0; }`)
	require.False(t, log.HasErrors())
	found := false
	for _, b := range code.Blocks {
		for _, op := range b.Ops {
			if op.Kind == ir.BINARY_DIVIDE {
				found = true
			}
		}
	}
	require.True(t, found)
}
