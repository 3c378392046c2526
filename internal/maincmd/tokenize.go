package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/fy-lang/funcy/lang/diag"
	"github.com/fy-lang/funcy/lang/lexer"
	"github.com/fy-lang/funcy/lang/token"
)

// Tokenize prints the token stream of each file in args, one token per
// line, as a debug aid.
func (c *Cmd) Tokenize(_ context.Context, stdio mainer.Stdio, args []string) error {
	var failed bool
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			failed = true
			continue
		}
		log := &diag.Log{}
		lx := lexer.New(path, src, false, log)
		for {
			tok := lx.Next()
			fmt.Fprintf(stdio.Stdout, "%s: %s %s\n", tok.Span.Start, tok.Kind, tok.Lit())
			if tok.Kind == token.EOF {
				break
			}
		}
		if log.HasErrors() {
			fmt.Fprint(stdio.Stderr, log.String())
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("tokenize: one or more files failed")
	}
	return nil
}
