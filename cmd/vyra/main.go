// Copyright (C) 2024 Vyra Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Command vyra runs, parses, or interactively evaluates Vyra programs.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/sys/unix"

	"github.com/poojapathak0/vyra/airewrite"
	"github.com/poojapathak0/vyra/graph"
	"github.com/poojapathak0/vyra/interp"
	"github.com/poojapathak0/vyra/lex"
	"github.com/poojapathak0/vyra/parse"
	"github.com/poojapathak0/vyra/repl"
	"github.com/poojapathak0/vyra/source"
	"github.com/poojapathak0/vyra/vyraerr"
)

var (
	dashDebug   bool
	dashViz     string
	dashAI      bool
	dashConfig  string
	dashIterLim int64
)

func init() {
	flag.BoolVar(&dashDebug, "debug", false, "trace each executed opcode to stderr")
	flag.StringVar(&dashViz, "viz", "", "dump the lowered logic graph as graphviz to this path (.zst compresses) instead of running it")
	flag.BoolVar(&dashAI, "ai", false, "rewrite input through the configured AI endpoint before parsing")
	flag.StringVar(&dashConfig, "config", "vyra.yaml", "path to the optional AI-rewrite config file")
	flag.Int64Var(&dashIterLim, "iteration-limit", interp.DefaultIterationLimit, "abort after this many executed opcodes (0 disables the limit)")
}

func main() {
	flag.Usage = printHelp
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	runID := uuid.New()
	ctx, cancel := context.WithCancel(context.Background())
	installSignalHandler(cancel)

	var err error
	switch args[0] {
	case "run":
		err = cmdRun(ctx, runID, args[1:])
	case "parse":
		err = cmdParse(args[1:])
	case "repl":
		err = cmdRepl()
	default:
		flag.Usage()
		os.Exit(1)
	}
	cancel()

	if err != nil {
		fmt.Fprintf(os.Stderr, "vyra: %s\n", err)
		os.Exit(vyraerr.ExitCode(err))
	}
}

// installSignalHandler cancels ctx on SIGINT, mirroring the teacher's
// preference for os/signal.Notify wired to x/sys's platform signal
// numbers rather than the syscall package directly. Exit code 130
// follows the shell convention for "killed by signal 2".
func installSignalHandler(cancel context.CancelFunc) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGINT)
	go func() {
		if _, ok := <-ch; ok {
			cancel()
			os.Exit(130)
		}
	}()
}

func loadUnit(ctx context.Context, path string) (*source.Unit, error) {
	if dashAI {
		return loadUnitWithRewrite(ctx, path)
	}
	return source.Load(path)
}

func loadUnitWithRewrite(ctx context.Context, path string) (*source.Unit, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &source.IOError{Path: path, Err: err}
	}
	cfg, err := airewrite.LoadConfig(dashConfig)
	if err != nil {
		return nil, err
	}
	rw, err := airewrite.New(cfg)
	if err != nil {
		return nil, err
	}
	rewritten, err := rw.Rewrite(ctx, string(raw))
	if err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp("", "vyra-rewrite-*.vyra")
	if err != nil {
		return nil, &source.IOError{Path: path, Err: err}
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(rewritten); err != nil {
		tmp.Close()
		return nil, &source.IOError{Path: tmp.Name(), Err: err}
	}
	tmp.Close()
	return source.Load(tmp.Name())
}

func pipeline(ctx context.Context, path string) ([]parse.Stmt, error) {
	unit, err := loadUnit(ctx, path)
	if err != nil {
		return nil, err
	}
	sents, err := lex.Split(unit)
	if err != nil {
		return nil, err
	}
	return parse.Parse(sents)
}

func cmdParse(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: vyra parse <file>")
	}
	stmts, err := pipeline(context.Background(), args[0])
	if err != nil {
		return err
	}
	for _, s := range stmts {
		fmt.Printf("%T @ %s\n", s, posOfStmt(s))
	}
	return nil
}

func posOfStmt(s parse.Stmt) source.Pos { return s.Pos() }

func cmdRun(ctx context.Context, runID uuid.UUID, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: vyra run <file>")
	}
	stmts, err := pipeline(ctx, args[0])
	if err != nil {
		return err
	}
	prog, err := graph.Build(stmts)
	if err != nil {
		return err
	}
	graph.Dedup(prog)

	if dashViz != "" {
		return writeViz(prog, dashViz)
	}

	var opts []interp.Option
	opts = append(opts, interp.WithIterationLimit(dashIterLim))
	if dashDebug {
		opts = append(opts, interp.WithDebug(tracingWriter{runID: runID}))
	}
	ip := interp.New(prog, os.Stdout, os.Stdin, opts...)
	return ip.Run()
}

// tracingWriter prefixes every --debug trace line with the run's
// correlation id, the way cmd/snellerd stamps request logs with
// uuid.New() for tracing across a distributed run.
type tracingWriter struct {
	runID uuid.UUID
}

func (t tracingWriter) Write(p []byte) (int, error) {
	fmt.Fprintf(os.Stderr, "[%s] %s", t.runID, p)
	return len(p), nil
}

func writeViz(prog *graph.Program, path string) error {
	var buf bytes.Buffer
	if err := graph.Graphviz(prog, &buf); err != nil {
		return err
	}
	if hasZstSuffix(path) {
		f, err := os.Create(path)
		if err != nil {
			return &source.IOError{Path: path, Err: err}
		}
		defer f.Close()
		zw, err := zstd.NewWriter(f)
		if err != nil {
			return err
		}
		defer zw.Close()
		_, err = io.Copy(zw, &buf)
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func hasZstSuffix(path string) bool {
	return len(path) > 4 && path[len(path)-4:] == ".zst"
}

func cmdRepl() error {
	prog := &graph.Program{Functions: map[string]*graph.Function{}}
	ip := interp.New(prog, os.Stdout, os.Stdin)
	r := repl.New(ip, os.Stdout)
	return r.Run(os.Stdin)
}

func printHelp() {
	fmt.Fprintln(os.Stderr, `usage: vyra <command> [arguments]

Commands:
  run <file>    parse and execute a Vyra program
  parse <file>  print the parsed statement list without executing it
  repl          start an interactive read-eval-print loop

Flags:`)
	flag.PrintDefaults()
}
