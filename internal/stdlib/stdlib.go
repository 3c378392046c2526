// Package stdlib embeds the standard-library module source and serves it
// to the resolver under its reserved canonical path.
package stdlib

import (
	_ "embed"
	"fmt"

	"github.com/fy-lang/funcy/lang/resolver"
)

//go:embed std.fy
var source []byte

// Loader implements resolver.Loader, serving the embedded standard-library
// source for resolver.StdlibPath and delegating every other canonical path
// to root, the loader responsible for user source files.
type Loader struct {
	Root resolver.Loader
}

// New returns a Loader that serves the embedded standard library and
// delegates everything else to root.
func New(root resolver.Loader) Loader {
	return Loader{Root: root}
}

// Load implements resolver.Loader.
func (l Loader) Load(canon string) ([]byte, error) {
	if canon == resolver.StdlibPath {
		return source, nil
	}
	if l.Root == nil {
		return nil, fmt.Errorf("stdlib: no loader configured for %q", canon)
	}
	return l.Root.Load(canon)
}
