package fvm_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/fy-lang/funcy/lang/bytecode"
	"github.com/fy-lang/funcy/lang/diag"
	"github.com/fy-lang/funcy/lang/fvm"
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

// run compiles mainSrc end to end and executes it, returning captured
// stdout and the exit code.
func run(t *testing.T, mainSrc string) (string, int32) {
	t.Helper()
	loader := mapLoader{"std": stdSource, "main": mainSrc}
	log := &diag.Log{}
	root := resolver.Resolve("main", loader, log)
	require.False(t, log.HasErrors(), "resolve: %s", log.String())

	code := visitor.Visit(root, log)
	require.False(t, log.HasErrors(), "visit: %s", log.String())
	ir.Optimize(code)

	out, err := bytecode.Serialize(code, bytecode.Flat)
	require.NoError(t, err)

	var stdout bytes.Buffer
	vm := fvm.New(fvm.DefaultLimits, &stdout)
	vm.LoadFlat(out)
	vm.Begin()
	ec := vm.Run()
	return stdout.String(), ec
}

func TestScenario1ReturnZero(t *testing.T) {
	out, ec := run(t, `func main() { return 0; }`)
	require.Equal(t, "", out)
	require.Equal(t, int32(0), ec)
}

func TestScenario2Return42(t *testing.T) {
	out, ec := run(t, `func main() { return 42; }`)
	require.Equal(t, "", out)
	require.Equal(t, int32(42), ec)
}

func TestScenario3FunctionCall(t *testing.T) {
	out, ec := run(t, `
func f(x, y) { return x + y; }
func main() { return f(20, 22); }
`)
	require.Equal(t, "", out)
	require.Equal(t, int32(42), ec)
}

func TestScenario4PutChrLoop(t *testing.T) {
	out, ec := run(t, `
func main() {
	let mut i = 0;
	while (i < 3) {
		putChr('0' + i);
		i += 1;
	}
	return 0;
}
`)
	require.Equal(t, "012", out)
	require.Equal(t, int32(0), ec)
}

func TestScenario5ShortCircuitAnd(t *testing.T) {
	out, ec := run(t, `
func main() {
	if (1 && 0) {
		return 1;
	}
	return 0;
}
`)
	require.Equal(t, "", out)
	require.Equal(t, int32(0), ec)
}

func TestScenario6DivisionByZeroCrashes(t *testing.T) {
	out, ec := run(t, `func main() { return 1 / 0; }`)
	require.Equal(t, "", out)
	require.Equal(t, fvm.ExitCrash, ec)
}

func TestLoadRejectsBadHeader(t *testing.T) {
	vm := fvm.New(fvm.DefaultLimits, nil)
	err := vm.Load([]byte{0, 0, 0, 0})
	require.Error(t, err)
}

func TestLoadAcceptsFramedOutput(t *testing.T) {
	code := ir.New()
	code.Emit(ir.Op{Kind: ir.PUSH_INT, IntValue: 7})
	code.Emit(ir.Op{Kind: ir.HALT})
	framed, err := bytecode.Serialize(code, bytecode.Framed)
	require.NoError(t, err)

	vm := fvm.New(fvm.DefaultLimits, nil)
	require.NoError(t, vm.Load(framed))
	vm.Begin()
	require.Equal(t, int32(7), vm.Run())
}

func TestStackUnderflowCrashes(t *testing.T) {
	code := ir.New()
	code.Emit(ir.Op{Kind: ir.RETURN})
	out, err := bytecode.Serialize(code, bytecode.Flat)
	require.NoError(t, err)

	vm := fvm.New(fvm.DefaultLimits, nil)
	vm.LoadFlat(out)
	vm.Begin()
	ec := vm.Run()
	require.Equal(t, fvm.ExitCrash, ec)
	require.False(t, vm.Running())
}

func TestStepBudgetExhaustionCrashes(t *testing.T) {
	code := ir.New()
	loop := ir.MainLabel
	code.Emit(ir.Op{Kind: ir.JUMP_LABEL, StrValue: loop})
	out, err := bytecode.Serialize(code, bytecode.Flat)
	require.NoError(t, err)

	vm := fvm.New(fvm.Limits{MaxSteps: 100, MaxStack: 1024}, nil)
	vm.LoadFlat(out)
	vm.Begin()
	ec := vm.Run()
	require.Equal(t, fvm.ExitCrash, ec)
}
