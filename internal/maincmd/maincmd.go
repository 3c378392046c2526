// Package maincmd implements the funcy CLI's command dispatch, reusing the
// mna/mainer flag-parsing and process-wiring conventions.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "funcy"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s build <in> <out>
       %[1]s run <path>
       %[1]s tokenize <path>...
       %[1]s parse <path>...
       %[1]s disasm <path>...
       %[1]s -h|--help
       %[1]s -v|--version

Compiler and virtual machine for the Funcy programming language.

The <command> can be one of:
       build <in> <out>          Compile source at <in>, write bytecode to
                                  <out>.
       run <path>                Load source or bytecode from <path> and
                                  execute it, exiting with the program's
                                  own exit code.
       tokenize <path>...        Execute the lexer phase and print the
                                  resulting tokens (debug aid).
       parse <path>...           Execute the parser phase and print the
                                  resulting syntax tree (debug aid).
       disasm <path>...          Print the disassembled instruction stream
                                  of source or bytecode files (debug aid).

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
`, binName)
)

// Cmd is the root command; mainer.Parser populates its flags, then Main
// dispatches to the named subcommand.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) { c.args = args }
func (c *Cmd) SetFlags(flags map[string]bool) { c.flags = flags }

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]
	switch cmdName {
	case "build":
		if len(c.args[1:]) != 2 {
			return fmt.Errorf("build: expected exactly 2 arguments (<in> <out>), got %d", len(c.args[1:]))
		}
	case "run":
		if len(c.args[1:]) != 1 {
			return fmt.Errorf("run: expected exactly 1 argument (<path>), got %d", len(c.args[1:]))
		}
		return nil
	}

	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}
	if (cmdName == "tokenize" || cmdName == "parse" || cmdName == "disasm") && len(c.args[1:]) == 0 {
		return fmt.Errorf("%s: at least one file must be provided", cmdName)
	}
	return nil
}

// Main parses args and dispatches to the named subcommand, returning the
// process exit code. build/tokenize/parse follow the generic
// success-or-failure convention; run is special-cased since its exit code
// is the compiled program's own, not just success/failure.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false, // runtime limits are read separately via internal/config
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)

	if c.args[0] == "run" {
		ec, err := c.Run(ctx, stdio, c.args[1:])
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return mainer.Failure
		}
		return mainer.ExitCode(ec)
	}

	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		// each subcommand prints its own errors; just report failure here
		return mainer.Failure
	}
	return mainer.Success
}

// valid commands are methods taking (context.Context, mainer.Stdio,
// []string) and returning error, dispatched by lower-cased method name.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type
		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
