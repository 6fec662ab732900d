package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/poojapathak0/vyra/graph"
)

func writeProgram(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.vyra")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestHasZstSuffix(t *testing.T) {
	cases := map[string]bool{
		"out.zst":  true,
		"out.dot":  false,
		"a.b.zst":  true,
		"zst":      false,
		"":         false,
	}
	for path, want := range cases {
		if got := hasZstSuffix(path); got != want {
			t.Errorf("hasZstSuffix(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestPipelineParsesFile(t *testing.T) {
	path := writeProgram(t, "Display 1.\nDisplay 2.\n")
	stmts, err := pipeline(context.Background(), path)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
}

func TestPipelineMissingFileErrors(t *testing.T) {
	_, err := pipeline(context.Background(), filepath.Join(t.TempDir(), "nope.vyra"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestWriteVizPlainDot(t *testing.T) {
	path := writeProgram(t, "Display 1.\n")
	stmts, err := pipeline(context.Background(), path)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	prog, err := graph.Build(stmts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	out := filepath.Join(t.TempDir(), "out.dot")
	if err := writeViz(prog, out); err != nil {
		t.Fatalf("writeViz: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("digraph vyra {")) {
		t.Errorf("expected dot output, got %q", data)
	}
}

func TestWriteVizCompressesZst(t *testing.T) {
	path := writeProgram(t, "Display 1.\n")
	stmts, err := pipeline(context.Background(), path)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	prog, err := graph.Build(stmts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	out := filepath.Join(t.TempDir(), "out.dot.zst")
	if err := writeViz(prog, out); err != nil {
		t.Fatalf("writeViz: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	zr, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("zstd.NewReader: %v", err)
	}
	defer zr.Close()
	data, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("reading decompressed viz: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("digraph vyra {")) {
		t.Errorf("expected dot output after decompression, got %q", data)
	}
}

func TestTracingWriterPrefixesRunID(t *testing.T) {
	id := uuid.New()
	tw := tracingWriter{runID: id}

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	origStderr := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = origStderr }()

	n, err := tw.Write([]byte("step 1: ASSIGN\n"))
	w.Close()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != len("step 1: ASSIGN\n") {
		t.Errorf("Write returned %d, want %d", n, len("step 1: ASSIGN\n"))
	}

	data, _ := io.ReadAll(r)
	if !bytes.Contains(data, []byte(id.String())) {
		t.Errorf("expected trace output to contain the run id, got %q", data)
	}
}

func TestPosOfStmt(t *testing.T) {
	path := writeProgram(t, "Display 1.\n")
	stmts, err := pipeline(context.Background(), path)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	pos := posOfStmt(stmts[0])
	if pos.Line != 1 {
		t.Errorf("got line %d, want 1", pos.Line)
	}
}
