package driver

import (
	"context"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quill/internal/ast"
	"quill/internal/snapshot"
	"quill/internal/symbols"
)

func writeSnapshot(t *testing.T, dir, name string, prog *ast.Program) string {
	t.Helper()
	data, err := snapshot.Encode(prog)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func testProgram(value int64) *ast.Program {
	integer := &symbols.Type{RenderName: "Integer"}
	return &ast.Program{
		Fields: []ast.Field{{
			Variable: &symbols.Variable{RenderName: "x", Type: integer},
			Value:    &ast.Literal{Value: big.NewInt(value)},
		}},
	}
}

func TestListSnapshots_SortedRecursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeSnapshot(t, dir, "b.qast", testProgram(1))
	writeSnapshot(t, dir, "a.qast", testProgram(2))
	writeSnapshot(t, sub, "c.qast", testProgram(3))
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ListSnapshots(dir)
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.qast"),
		filepath.Join(dir, "b.qast"),
		filepath.Join(sub, "c.qast"),
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestGenFile_WritesCheckedOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeSnapshot(t, dir, "prog.qast", testProgram(5))
	out := filepath.Join(dir, "out")
	if err := os.MkdirAll(out, 0o755); err != nil {
		t.Fatal(err)
	}

	res := GenFile(context.Background(), in, Options{OutDir: out, Check: true, Newline: "\n"})
	if res.Err != nil {
		t.Fatalf("GenFile: %v", res.Err)
	}
	if res.OutPath != filepath.Join(out, "prog.java") {
		t.Errorf("out path = %s", res.OutPath)
	}
	data, err := os.ReadFile(res.OutPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "Integer x = 5;") {
		t.Errorf("unexpected output:\n%s", data)
	}
	if res.Bytes != len(data) {
		t.Errorf("Bytes = %d, file has %d", res.Bytes, len(data))
	}
}

func TestGenFile_BadSnapshot(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "broken.qast")
	if err := os.WriteFile(in, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	res := GenFile(context.Background(), in, Options{Newline: "\n"})
	if res.Err == nil {
		t.Fatal("expected decode failure")
	}
	if res.OutPath != "" {
		t.Errorf("no output should be written on failure, got %s", res.OutPath)
	}
}

func TestGenAll_OrderAndIsolation(t *testing.T) {
	dir := t.TempDir()
	var inputs []string
	for _, name := range []string{"one.qast", "two.qast", "three.qast"} {
		inputs = append(inputs, writeSnapshot(t, dir, name, testProgram(int64(len(name)))))
	}
	// A broken input must not poison the rest of the batch.
	broken := filepath.Join(dir, "zz.qast")
	if err := os.WriteFile(broken, []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}
	inputs = append(inputs, broken)

	events := make(chan Event, 64)
	results, err := GenAll(context.Background(), inputs, Options{
		OutDir:  filepath.Join(dir, "out"),
		Check:   true,
		Newline: "\n",
		Jobs:    2,
		Events:  events,
	})
	if err != nil {
		t.Fatalf("GenAll: %v", err)
	}
	close(events)

	if len(results) != len(inputs) {
		t.Fatalf("got %d results for %d inputs", len(results), len(inputs))
	}
	for i, res := range results {
		if res.Path != inputs[i] {
			t.Errorf("results[%d].Path = %s, want %s (input order)", i, res.Path, inputs[i])
		}
	}
	for _, res := range results[:3] {
		if res.Err != nil {
			t.Errorf("%s: %v", res.Path, res.Err)
		}
		if _, err := os.Stat(res.OutPath); err != nil {
			t.Errorf("missing output for %s: %v", res.Path, err)
		}
	}
	if results[3].Err == nil {
		t.Error("broken snapshot should fail")
	}

	// Every successful file reports decode, emit, check and write stages.
	stages := map[string]int{}
	for ev := range events {
		if ev.Err == nil {
			stages[ev.Path]++
		}
	}
	for _, in := range inputs[:3] {
		if stages[in] != 4 {
			t.Errorf("%s: %d stage events, want 4", in, stages[in])
		}
	}
}

func TestGenAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := t.TempDir()
	in := writeSnapshot(t, dir, "prog.qast", testProgram(1))
	results, err := GenAll(ctx, []string{in}, Options{Newline: "\n"})
	if err == nil {
		// The per-file result must carry the cancellation instead.
		if len(results) != 1 || results[0].Err == nil {
			t.Error("expected cancellation to surface")
		}
	}
}
