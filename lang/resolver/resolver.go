// Package resolver assembles a Root AST by walking a module's `include`
// directives, normalizing and validating each include path, parsing every
// reachable module exactly once, and ordering the result so each module
// follows every module it includes. Source loading itself is delegated to
// an opaque Loader collaborator; this package never touches a filesystem.
package resolver

import (
	"github.com/fy-lang/funcy/lang/ast"
	"github.com/fy-lang/funcy/lang/diag"
	"github.com/fy-lang/funcy/lang/parser"
	"github.com/fy-lang/funcy/lang/token"
)

// StdlibPath is the reserved canonical path of the standard-library module.
// It is always loaded and parsed first, and is the only module parsed with
// parser.StdlibMode (permitting "$(" intrinsic syntax).
const StdlibPath = "std"

// Loader fetches the source of a module by its canonical path. The concrete
// implementation (filesystem, embedded FS, in-memory map) lives outside
// this package.
type Loader interface {
	Load(canonicalPath string) ([]byte, error)
}

// Resolve loads the standard library, then mainPath and everything it
// transitively includes, and returns the assembled Root: modules ordered so
// that each one follows every module it includes. Errors (illegal paths,
// missing files, cycles, self-includes, duplicate includes) are reported to
// log; Resolve always returns a non-nil Root, even a partial one, so
// callers can proceed to "trap" bytecode generation per the error-handling
// design rather than aborting outright.
func Resolve(mainPath string, loader Loader, log *diag.Log) *ast.Root {
	r := &resolver{
		loader:   loader,
		log:      log,
		modules:  make(map[string]*ast.Module),
		visiting: make(map[string]bool),
		visited:  make(map[string]bool),
	}
	r.load(StdlibPath, parser.StdlibMode, "<root>")
	mainCanon, ok := canonicalize("", mainPath)
	if !ok {
		r.log.Add(token.Unlocated, "illegal main module path %q", mainPath)
		return &ast.Root{Modules: r.ordered()}
	}
	r.load(mainCanon, 0, "<root>")
	return &ast.Root{Modules: r.ordered()}
}

type resolver struct {
	loader Loader
	log    *diag.Log

	modules  map[string]*ast.Module
	order    []string
	visiting map[string]bool // canonical paths currently on the DFS stack (cycle detection)
	visited  map[string]bool // canonical paths fully processed
}

func (r *resolver) ordered() []*ast.Module {
	mods := make([]*ast.Module, 0, len(r.order))
	for _, name := range r.order {
		if m := r.modules[name]; m != nil {
			mods = append(mods, m)
		}
	}
	return mods
}

// load parses canon (already-normalized) if not already visited, memoizing
// the result and recursing into its includes. from names the including
// module for cycle-diagnostic purposes.
func (r *resolver) load(canon string, mode parser.Mode, from string) {
	if r.visited[canon] {
		return
	}
	if r.visiting[canon] {
		r.log.Add(token.Unlocated, "circular include: %s includes %s, which is already being resolved", from, canon)
		return
	}

	src, err := r.loader.Load(canon)
	if err != nil {
		r.log.Add(token.Unlocated, "cannot load module %q: %s", canon, err)
		r.visited[canon] = true
		return
	}

	r.visiting[canon] = true
	mod := parser.ParseModule(canon, src, mode, r.log)
	mod.Name = canon

	seenIncludes := make(map[string]bool)
	for _, incl := range mod.Includes {
		child, ok := canonicalize(canon, incl.Path)
		if !ok {
			r.log.Add(incl.Span(), "illegal include path %q", incl.Path)
			continue
		}
		if child == canon {
			r.log.Add(incl.Span(), "module cannot include itself")
			continue
		}
		if seenIncludes[child] {
			r.log.Add(incl.Span(), "duplicate include of %q", incl.Path)
			continue
		}
		seenIncludes[child] = true
		if child == StdlibPath {
			r.log.Add(incl.Span(), "the standard library is included implicitly and must not be named explicitly")
			continue
		}
		r.load(child, 0, canon)
	}

	delete(r.visiting, canon)
	r.visited[canon] = true
	r.modules[canon] = mod
	r.order = append(r.order, canon)
}
