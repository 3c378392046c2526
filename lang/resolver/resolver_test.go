package resolver_test

import (
	"fmt"
	"testing"

	"github.com/fy-lang/funcy/lang/ast"
	"github.com/fy-lang/funcy/lang/diag"
	"github.com/fy-lang/funcy/lang/resolver"
	"github.com/stretchr/testify/require"
)

type mapLoader map[string]string

func (m mapLoader) Load(canon string) ([]byte, error) {
	src, ok := m[canon]
	if !ok {
		return nil, fmt.Errorf("no such module %q", canon)
	}
	return []byte(src), nil
}

func withStd(mods map[string]string) mapLoader {
	out := mapLoader{"std": `func putChr_helper() { return; }`}
	for k, v := range mods {
		out[k] = v
	}
	return out
}

func TestResolveSingleModule(t *testing.T) {
	loader := withStd(map[string]string{
		"main": `func main() { return 0; }`,
	})
	log := &diag.Log{}
	root := resolver.Resolve("main", loader, log)
	require.False(t, log.HasErrors())
	require.Len(t, root.Modules, 2)
	require.Equal(t, "std", root.Modules[0].Name)
	require.Equal(t, "main", root.Modules[1].Name)
}

func TestResolveOrdersDependenciesFirst(t *testing.T) {
	loader := withStd(map[string]string{
		"main": `include "util"; func main() { return 0; }`,
		"util": `func helper() { return 1; }`,
	})
	log := &diag.Log{}
	root := resolver.Resolve("main", loader, log)
	require.False(t, log.HasErrors())
	names := moduleNames(root)
	require.Equal(t, []string{"std", "util", "main"}, names)
}

func TestResolveDetectsCircularInclude(t *testing.T) {
	loader := withStd(map[string]string{
		"main": `include "a"; func main() { return 0; }`,
		"a":    `include "b"; func fa() { return 0; }`,
		"b":    `include "a"; func fb() { return 0; }`,
	})
	log := &diag.Log{}
	resolver.Resolve("main", loader, log)
	require.True(t, log.HasErrors())
}

func TestResolveDetectsSelfInclude(t *testing.T) {
	loader := withStd(map[string]string{
		"main": `include "main"; func main() { return 0; }`,
	})
	log := &diag.Log{}
	resolver.Resolve("main", loader, log)
	require.True(t, log.HasErrors())
}

func TestResolveDetectsDuplicateInclude(t *testing.T) {
	loader := withStd(map[string]string{
		"main": `include "util"; include "util"; func main() { return 0; }`,
		"util": `func helper() { return 1; }`,
	})
	log := &diag.Log{}
	resolver.Resolve("main", loader, log)
	require.True(t, log.HasErrors())
}

func TestResolveRejectsEscapingRoot(t *testing.T) {
	loader := withStd(map[string]string{
		"main": `include "../outside"; func main() { return 0; }`,
	})
	log := &diag.Log{}
	resolver.Resolve("main", loader, log)
	require.True(t, log.HasErrors())
}

func TestResolveRejectsIllegalPathCharacters(t *testing.T) {
	loader := withStd(map[string]string{
		"main": `include "util:weird"; func main() { return 0; }`,
	})
	log := &diag.Log{}
	resolver.Resolve("main", loader, log)
	require.True(t, log.HasErrors())
}

func TestResolveRejectsExplicitStdlibInclude(t *testing.T) {
	loader := withStd(map[string]string{
		"main": `include "std"; func main() { return 0; }`,
	})
	log := &diag.Log{}
	resolver.Resolve("main", loader, log)
	require.True(t, log.HasErrors())
}

func TestResolveSharesDiamondDependencyOnce(t *testing.T) {
	loader := withStd(map[string]string{
		"main": `include "a"; include "b"; func main() { return 0; }`,
		"a":    `include "shared"; func fa() { return 0; }`,
		"b":    `include "shared"; func fb() { return 0; }`,
		"shared": `func helper() { return 1; }`,
	})
	log := &diag.Log{}
	root := resolver.Resolve("main", loader, log)
	require.False(t, log.HasErrors())
	names := moduleNames(root)
	require.Equal(t, 1, count(names, "shared"))
	require.Equal(t, 1, count(names, "main"))
}

func moduleNames(root *ast.Root) []string {
	names := make([]string, len(root.Modules))
	for i, m := range root.Modules {
		names[i] = m.Name
	}
	return names
}

func count(s []string, v string) int {
	n := 0
	for _, x := range s {
		if x == v {
			n++
		}
	}
	return n
}
