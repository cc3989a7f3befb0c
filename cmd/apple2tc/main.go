package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/apple2tc/apple2tc/internal/cpu6502"
	"github.com/apple2tc/apple2tc/internal/emit"
	"github.com/apple2tc/apple2tc/internal/ir"
	"github.com/apple2tc/apple2tc/internal/loader"
	"github.com/apple2tc/apple2tc/internal/symbols"
	"github.com/apple2tc/apple2tc/internal/trace"
	"github.com/k0kubun/pp/v3"
	"github.com/urfave/cli"
)

// maxRunInstructions is the interpreter's own safety valve (SPEC_FULL.md
// §4.9), independent of the tracer's --limit: it exists purely so a
// malformed or looping binary cannot hang the CLI.
const maxRunInstructions = 2_000_000

func main() {
	app := cli.NewApp()
	app.Name = "apple2tc"
	app.Description = "Apple II / 6502 static binary translator and debugging tracer"
	app.Usage = "apple2tc [--asm | --simple-c] input_file"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "asm", Usage: "Generate an annotated assembly listing (default)"},
		cli.BoolFlag{Name: "simple-c", Usage: "Generate a simple C skeleton"},
		cli.BoolFlag{Name: "resolve-symbols", Usage: "Resolve addresses to Apple II ROM symbol names"},
		cli.BoolFlag{Name: "dump-ir", Usage: "Pretty-print the built IR graph to stderr before emitting"},
		cli.StringFlag{Name: "mode", Usage: "collect|debugbb|trace — which of the hook's three dispatch branches drives the run", Value: "collect"},
		cli.StringSliceFlag{Name: "watch", Usage: "name:addr:size, repeatable (observed only in --mode=trace or --mode=debugbb)"},
		cli.StringSliceFlag{Name: "non-debug", Usage: "from:to inclusive range, repeatable"},
		cli.IntFlag{Name: "max-history", Usage: "History ring cap", Value: 100},
		cli.IntFlag{Name: "limit", Usage: "Maximum instructions observed (0 = unlimited)", Value: 0},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "*** FATAL: %s\n", err)
		os.Exit(2)
	}
}

func run(c *cli.Context) error {
	path := c.Args().Get(0)
	if path == "" {
		cli.ShowAppHelp(c)
		return cli.NewExitError("not enough arguments", 1)
	}
	if c.NArg() > 1 {
		cli.ShowAppHelp(c)
		return cli.NewExitError("too many arguments", 1)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("*** FATAL: %s", err), 2)
	}

	img, err := loader.LoadDOS33(path, data)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return cli.NewExitError("", 3)
	}

	slog.Info("loaded binary", "path", path, "start", fmt.Sprintf("$%04X", img.Start), "size", len(img.Data))

	ds, err := configureTracer(c)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	mode := c.String("mode")
	switch mode {
	case "collect", "debugbb", "trace":
	default:
		return cli.NewExitError(fmt.Sprintf("--mode must be one of collect, debugbb, trace, got %q", mode), 1)
	}

	cpu := cpu6502.New(img.Start)
	cpu.LoadAt(img.Start, img.Data)

	// spec.md §4.5's dispatch precedence is collect > debugBB > tracing, so
	// only one of these is ever on at a time (collect is the default: it's
	// the only mode that feeds the IR builder below).
	ds.SetCollect(cpu, mode == "collect")
	ds.SetDebugBB(mode == "debugbb")

	cpu.SetHook(ds.Hook)
	cpu.Run(maxRunInstructions)

	if mode != "collect" {
		return nil
	}

	fn := ir.BuildFunction(ds.SMC().Generations(), ds.SMC().BranchTargets())
	slog.Info("traced", "generations", len(ds.SMC().Generations()), "basic_blocks", len(fn.Blocks))

	if c.Bool("dump-ir") {
		pp.SetDefaultOutput(os.Stderr)
		pp.Println(fn)
	}

	var resolver cpu6502.SymbolResolver
	if c.Bool("resolve-symbols") {
		resolver = symbols.FindSymbol
	}

	if c.Bool("simple-c") {
		emit.PrintSimpleC(os.Stdout, fn)
	} else {
		emit.PrintAsmListing(os.Stdout, fn, resolver)
	}

	return nil
}

func configureTracer(c *cli.Context) (*trace.DebugState, error) {
	ds := trace.New(os.Stdout)
	ds.SetSymbolResolver(symbols.FindSymbol)
	ds.SetResolveSymbols(c.Bool("resolve-symbols"))
	ds.SetMaxHistory(uint(c.Int("max-history")))
	ds.SetLimit(uint(c.Int("limit")))

	for _, spec := range c.StringSlice("watch") {
		name, addr, size, err := parseWatch(spec)
		if err != nil {
			return nil, err
		}
		ds.AddWatch(name, addr, size)
	}

	for _, spec := range c.StringSlice("non-debug") {
		from, to, err := parseRange(spec)
		if err != nil {
			return nil, err
		}
		ds.AddNonDebug(from, to)
	}

	return ds, nil
}

func parseWatch(spec string) (name string, addr uint16, size uint8, err error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) != 3 {
		return "", 0, 0, fmt.Errorf("--watch wants name:addr:size, got %q", spec)
	}
	a, err := strconv.ParseUint(parts[1], 0, 16)
	if err != nil {
		return "", 0, 0, fmt.Errorf("--watch bad addr in %q: %w", spec, err)
	}
	s, err := strconv.ParseUint(parts[2], 0, 8)
	if err != nil {
		return "", 0, 0, fmt.Errorf("--watch bad size in %q: %w", spec, err)
	}
	return parts[0], uint16(a), uint8(s), nil
}

func parseRange(spec string) (from, to uint16, err error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("--non-debug wants from:to, got %q", spec)
	}
	f, err := strconv.ParseUint(parts[0], 0, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("--non-debug bad from in %q: %w", spec, err)
	}
	t, err := strconv.ParseUint(parts[1], 0, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("--non-debug bad to in %q: %w", spec, err)
	}
	return uint16(f), uint16(t), nil
}
