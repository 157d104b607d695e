// SPDX-License-Identifier: MIT

// lvmatch scans files (or stdin) for the keyword sets defined in a config
// file, reporting every occurrence of every keyword.
//
// Each selected type is compiled once into an Aho-Corasick automaton over a
// shared fixed-capacity arena; every input is then streamed in chunks
// through one scanner per type.
//
// Exit status: 0 when at least one keyword matched, 1 when none did,
// 2 on any error.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/lvmatch/arena"
	"github.com/katalvlaran/lvmatch/automaton"
	"github.com/katalvlaran/lvmatch/config"
	"github.com/katalvlaran/lvmatch/pattern"
	"github.com/katalvlaran/lvmatch/registry"
	"github.com/katalvlaran/lvmatch/report"
)

const version = "0.1.0"

const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// options holds the parsed command line.
type options struct {
	configPath string
	types      []int32
	format     string
	dump       bool
	chunk      int
	logLevel   string
	inputs     []string
}

func parseArguments(args []string, stderr io.Writer) (options, error) {
	var o options
	flagSet := pflag.NewFlagSet("lvmatch", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&o.configPath, "config", "c", "", "config file (default: $"+config.EnvVar+")")
	flagSet.Int32SliceVarP(&o.types, "type", "t", nil, "type selector to scan with (repeatable; default: every configured type)")
	flagSet.StringVarP(&o.format, "format", "f", "text", "output format: text, json or cbor")
	flagSet.BoolVar(&o.dump, "dump", false, "print each automaton's states instead of scanning")
	flagSet.IntVar(&o.chunk, "chunk", 32<<10, "read chunk size in bytes")
	flagSet.StringVar(&o.logLevel, "log-level", "", "log level override: debug, info, warn or error")
	versionFlag := flagSet.Bool("version", false, "print version and exit")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage: lvmatch [flags] [file ...]\n\nReads stdin when no file (or \"-\") is given.\n\nFlags:\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return o, err
	}
	if *versionFlag {
		return o, errVersion
	}
	if o.chunk <= 0 {
		return o, fmt.Errorf("--chunk must be positive, got %d", o.chunk)
	}
	o.inputs = flagSet.Args()
	if len(o.inputs) == 0 {
		o.inputs = []string{"-"}
	}
	return o, nil
}

var errVersion = errors.New("version requested")

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o, err := parseArguments(args, stderr)
	switch {
	case errors.Is(err, errVersion):
		fmt.Fprintf(stdout, "lvmatch %s\n", version)
		return exitMatch
	case errors.Is(err, pflag.ErrHelp):
		return exitMatch
	case err != nil:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	format, err := report.ParseFormat(o.format)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}

	reg, types, err := buildRegistry(ctx, cfg, o, logger)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	defer reg.TeardownAll()

	if o.dump {
		if err := dump(stdout, reg, types); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitError
		}
		return exitMatch
	}

	enc := report.NewEncoder(stdout, format)
	for _, input := range o.inputs {
		if err := ctx.Err(); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitError
		}
		if err := scanInput(input, stdin, reg, types, o.chunk, enc); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitError
		}
	}
	logger.Debug("scan complete", "inputs", len(o.inputs), "matches", enc.Count())
	if enc.Count() == 0 {
		return exitNoMatch
	}
	return exitMatch
}

func buildRegistry(ctx context.Context, cfg *config.Config, o options, logger *slog.Logger) (*registry.Registry, []pattern.Type, error) {
	lib, err := cfg.Library()
	if err != nil {
		return nil, nil, err
	}
	pool, err := arena.NewPool(cfg.Capacity())
	if err != nil {
		return nil, nil, err
	}
	reg, err := registry.New(lib, pool, registry.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}

	types := lib.Types()
	if len(o.types) > 0 {
		types = types[:0]
		for _, t := range o.types {
			if !slices.Contains(types, pattern.Type(t)) {
				types = append(types, pattern.Type(t))
			}
		}
	}
	if len(types) == 0 {
		return nil, nil, errors.New("no pattern types configured")
	}
	for _, t := range types {
		if err := reg.Build(ctx, t); err != nil {
			reg.TeardownAll()
			return nil, nil, err
		}
	}
	return reg, types, nil
}

// scanInput streams one source through a scanner per type. Chunks are read
// once and fed to every scanner in turn.
func scanInput(name string, stdin io.Reader, reg *registry.Registry, types []pattern.Type, chunk int, enc *report.Encoder) error {
	var r io.Reader = stdin
	source := name
	if name == "-" {
		source = "stdin"
	} else {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	scanners := make([]*automaton.Scanner, len(types))
	for i, t := range types {
		a, err := reg.Automaton(t)
		if err != nil {
			return err
		}
		scanners[i] = a.NewScanner()
	}

	var encErr error
	emit := func(a *automaton.Automaton) func(automaton.Match) {
		return func(m automaton.Match) {
			if encErr == nil {
				encErr = enc.Encode(report.NewRecord(source, a, m))
			}
		}
	}
	emitters := make([]func(automaton.Match), len(scanners))
	for i, sc := range scanners {
		emitters[i] = emit(sc.Automaton())
	}

	buf := make([]byte, chunk)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			for i, sc := range scanners {
				sc.Feed(buf[:n], emitters[i])
			}
			if encErr != nil {
				return encErr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", source, err)
		}
	}
}

// dump prints every state of each type's automaton, one per line:
// type, state, depth, fail, quoted path, outputs.
func dump(w io.Writer, reg *registry.Registry, types []pattern.Type) error {
	for _, t := range types {
		a, err := reg.Automaton(t)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "# type %d: %d states, %d edges, fingerprint %s\n", t, a.Len(), a.Edges(), a.Fingerprint())
		err = a.Walk(func(info automaton.StateInfo) error {
			_, err := fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%s\t%v\n",
				t, info.ID, info.Depth, info.Fail, strconv.Quote(string(info.Path)), info.Outputs)
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}
