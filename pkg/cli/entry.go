// Package cli implements spec.md §6's abstract CLI surface: the
// `build`/`eval`/`doc` subcommands, builtin-permission flags, and
// SPWN_PATH-aware import resolution. Documentation generation and the CLI
// front-end itself are named in spec.md §1 as external collaborators this
// core doesn't own; this package is the minimal, concrete shape spec.md
// §6 still requires something to drive internal/compiler through. Grounded
// on cmd/funxy/main.go's own manual flag-parsing loop (no cobra/pflag —
// funvibe/funxy's own CLI is itself hand-rolled) and internal/evaluator's
// isatty-gated color detection (builtins_term.go).
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/kr/pretty"
	"github.com/mattn/go-isatty"

	"github.com/spwn-lang/spwn/internal/compiler"
	"github.com/spwn-lang/spwn/internal/config"
	"github.com/spwn-lang/spwn/internal/diagnostic"
	"github.com/spwn-lang/spwn/internal/modules"
	"github.com/spwn-lang/spwn/internal/object"
)

// Version is reported by `spwn --version`.
const Version = config.Version

// options collects every flag build/eval/doc accept, parsed by hand from
// os.Args the way cmd/funxy/main.go's own loop does.
type options struct {
	file        string
	levelPath   string
	outPath     string
	permissions []string
	debug       bool
	stats       bool
	noColor     bool
}

func parseArgs(args []string) (options, error) {
	var o options
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--level":
			i++
			if i >= len(args) {
				return o, fmt.Errorf("--level requires a path")
			}
			o.levelPath = args[i]
		case a == "--out":
			i++
			if i >= len(args) {
				return o, fmt.Errorf("--out requires a path")
			}
			o.outPath = args[i]
		case a == "--perm":
			i++
			if i >= len(args) {
				return o, fmt.Errorf("--perm requires a comma-separated list")
			}
			o.permissions = strings.Split(args[i], ",")
		case a == "--debug":
			o.debug = true
		case a == "--stats":
			o.stats = true
		case a == "--no-color":
			o.noColor = true
		case strings.HasPrefix(a, "-"):
			return o, fmt.Errorf("unknown flag %q", a)
		default:
			if o.file != "" {
				return o, fmt.Errorf("unexpected argument %q", a)
			}
			o.file = a
		}
	}
	if o.file == "" {
		return o, fmt.Errorf("missing source file")
	}
	return o, nil
}

// colorize reports whether diagnostics should be ANSI-colored: only when
// stdout is a real terminal, NO_COLOR is unset, and the caller didn't pass
// --no-color. Grounded on internal/evaluator/builtins_term.go's own
// isatty + NO_COLOR gate.
func colorize(o options) bool {
	if o.noColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func printDiagnostic(w io.Writer, d *diagnostic.Diagnostic, color bool) {
	msg := d.Error()
	if color {
		fmt.Fprintf(w, "\x1b[31;1merror\x1b[0m: %s\n", msg)
		return
	}
	fmt.Fprintf(w, "error: %s\n", msg)
}

func checkPermissions(names []string) (config.Permissions, error) {
	if len(names) == 0 {
		return 0, nil
	}
	data := "permissions: [" + strings.Join(names, ", ") + "]"
	return config.ParseProject([]byte(data), "<--perm>")
}

// Run is the process entry point, exercised by cmd/spwn's one-line main.
// Exit code 0 on success, non-zero on any parse/compile/runtime-semantic/
// I/O error, matching spec.md §6.
func Run(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: spwn <build|eval|doc> <file> [flags]")
		return 2
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "build":
		return runBuild(rest)
	case "eval":
		return runEval(rest)
	case "doc":
		return runDoc(rest)
	case "--version", "version":
		fmt.Println("spwn " + Version)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", sub)
		return 2
	}
}

func loadSource(o options) (string, error) {
	data, err := os.ReadFile(o.file)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func compileEntry(o options) (*compiler.Result, int) {
	color := colorize(o)
	if _, err := checkPermissions(o.permissions); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		return nil, 1
	}
	source, err := loadSource(o)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: reading %s: %s\n", o.file, err)
		return nil, 1
	}
	if o.debug {
		prog, diag := compiler.Parse(source, o.file)
		if diag != nil {
			printDiagnostic(os.Stderr, diag, color)
			return nil, 1
		}
		pretty.Println(prog)
	}
	loader := modules.NewPathLoader()
	result, diag := compiler.CompileFile(source, o.file, loader)
	if diag != nil {
		printDiagnostic(os.Stderr, diag, color)
		return nil, 1
	}
	return result, 0
}

func runEval(args []string) int {
	o, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		return 2
	}
	result, code := compileEntry(o)
	if code != 0 {
		return code
	}
	if o.stats {
		printStats(result)
	}
	return 0
}

func runBuild(args []string) int {
	o, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		return 2
	}
	result, code := compileEntry(o)
	if code != 0 {
		return code
	}

	var existing string
	if o.levelPath != "" {
		data, err := os.ReadFile(o.levelPath)
		if err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "error: reading level %s: %s\n", o.levelPath, err)
			return 1
		}
		existing = string(data)
	}

	newLevel, counts, err := result.Finish(existing)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		return 1
	}

	out := o.outPath
	if out == "" {
		out = o.levelPath
	}
	if out != "" {
		if err := os.WriteFile(out, []byte(newLevel), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "error: writing %s: %s\n", out, err)
			return 1
		}
	} else {
		fmt.Println(newLevel)
	}

	if o.stats {
		printStats(result)
		printIDCounts(counts)
	}
	return 0
}

func runDoc(args []string) int {
	o, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		return 2
	}
	result, code := compileEntry(o)
	if code != 0 {
		return code
	}
	// The introspection contract spec.md §6 grants a documentation
	// collaborator is exactly Globals.Types/Impls; full Markdown rendering
	// is out of scope (spec.md §1), so this prints the same surface a
	// doc-generation tool would consume instead of rendering pages.
	for _, name := range result.Session.Globals.Types.Names() {
		fmt.Printf("## %s\n", name)
		id, _ := result.Session.Globals.Types.Lookup(name)
		members := result.Session.Globals.Impls[id]
		if len(members) == 0 {
			continue
		}
		for member := range members {
			fmt.Printf("- %s\n", member)
		}
	}
	return 0
}

func printStats(result *compiler.Result) {
	fmt.Printf("compile id: %s\n", result.ID)
	var objectCount, triggerCount int
	for _, fn := range result.Session.Globals.Funcs {
		for _, e := range fn.Objects {
			if e.Obj.Mode == object.ModeTrigger {
				triggerCount++
			} else {
				objectCount++
			}
		}
	}
	fmt.Printf("objects: %s, triggers: %s\n", humanize.Comma(int64(objectCount)), humanize.Comma(int64(triggerCount)))
}

func printIDCounts(counts [4]int) {
	fmt.Printf("groups: %d/999, colors: %d/999, blocks: %d/999, items: %d/999\n",
		counts[0], counts[1], counts[2], counts[3])
}
