// Package driver orchestrates batch code generation: it reads resolved
// program snapshots, runs the Java backend over each one, optionally
// syntax-checks the result, and writes the .java files.
package driver

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"quill/internal/backend/java"
	"quill/internal/javacheck"
	"quill/internal/snapshot"
)

// SnapshotExt is the file extension the analyzer uses for resolved program
// snapshots.
const SnapshotExt = ".qast"

// Options controls a generation run.
type Options struct {
	// OutDir receives the generated .java files. Empty writes each file
	// next to its snapshot.
	OutDir string
	// Check runs the Java syntax checker over every generated program
	// before it is written.
	Check bool
	// Newline overrides the line terminator (see java.Options).
	Newline string
	// Jobs bounds parallelism; zero or negative means one worker per CPU.
	Jobs int
	// Events, when non-nil, receives one event per stage per file. The
	// channel is not closed by the driver.
	Events chan<- Event
}

// Result describes the outcome for a single snapshot.
type Result struct {
	Path    string // input snapshot path
	OutPath string // written .java path (empty on failure before write)
	Bytes   int    // size of the generated source
	Err     error  // nil on success
}

// ListSnapshots returns all snapshot files under dir, sorted by path so a
// run always processes inputs in the same order.
func ListSnapshots(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SnapshotExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// OutPathFor maps a snapshot path to its generated file path under opts.
func (o Options) OutPathFor(inPath string) string {
	base := strings.TrimSuffix(filepath.Base(inPath), SnapshotExt) + ".java"
	if o.OutDir == "" {
		return filepath.Join(filepath.Dir(inPath), base)
	}
	return filepath.Join(o.OutDir, base)
}

// GenFile generates one Java source file from one snapshot.
func GenFile(ctx context.Context, inPath string, opts Options) Result {
	res := Result{Path: inPath}
	fail := func(stage Stage, err error) Result {
		res.Err = err
		opts.emit(Event{Path: inPath, Stage: stage, Err: err})
		return res
	}

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	data, err := os.ReadFile(inPath)
	if err != nil {
		return fail(StageDecode, fmt.Errorf("read snapshot: %w", err))
	}
	prog, err := snapshot.Decode(data)
	if err != nil {
		return fail(StageDecode, err)
	}
	opts.emit(Event{Path: inPath, Stage: StageDecode})

	var buf bytes.Buffer
	if err := java.New(&buf, java.Options{Newline: opts.Newline}).EmitProgram(prog); err != nil {
		return fail(StageEmit, err)
	}
	opts.emit(Event{Path: inPath, Stage: StageEmit})

	if opts.Check {
		if err := javacheck.Check(buf.Bytes()); err != nil {
			return fail(StageCheck, fmt.Errorf("generated source: %w", err))
		}
		opts.emit(Event{Path: inPath, Stage: StageCheck})
	}

	outPath := opts.OutPathFor(inPath)
	if err := writeFileAtomic(outPath, buf.Bytes()); err != nil {
		return fail(StageWrite, err)
	}
	res.OutPath = outPath
	res.Bytes = buf.Len()
	opts.emit(Event{Path: inPath, Stage: StageWrite})
	return res
}

// GenAll generates every input with bounded parallelism. Results come back
// in input order regardless of completion order; per-file failures land in
// Result.Err rather than aborting the batch. The returned error reports
// only context cancellation.
func GenAll(ctx context.Context, inputs []string, opts Options) ([]Result, error) {
	if opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]Result, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, inPath := range inputs {
		i, inPath := i, inPath
		g.Go(func() error {
			// Each snapshot gets its own emitter; nothing is shared
			// between files.
			results[i] = GenFile(ctx, inPath, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

// writeFileAtomic writes via a temp file and rename so readers never see a
// half-written program.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
