// Package apply writes a manifest into a project directory.
//
// Applying runs in two phases. The plan phase is read-only: it renders every
// creation, compares it with what is on disk, and computes every registry
// merge in memory. Only when the whole plan is free of conflicts does the
// write phase start, writing each file through a temp file and rename.
package apply

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fullstack-gen/fsgen/internal/endpoint"
	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
	"github.com/fullstack-gen/fsgen/internal/fsutil"
	"github.com/fullstack-gen/fsgen/internal/manifest"
	"github.com/fullstack-gen/fsgen/internal/output"
)

// Status is the outcome of one manifest entry.
type Status string

const (
	StatusCreated     Status = "created"
	StatusOverwritten Status = "overwritten"
	StatusMerged      Status = "merged"
	StatusUnchanged   Status = "unchanged"
	StatusFailed      Status = "failed"
	StatusSkipped     Status = "skipped"
)

// EntryResult reports what happened to one entry.
type EntryResult struct {
	Entry  manifest.Entry
	Status Status
	Err    error
}

// Result lists the entry outcomes in manifest order. After a write-phase
// failure it tells the caller which entries completed.
type Result struct {
	Root    string
	DryRun  bool
	Entries []EntryResult
}

// Count returns the number of entries with status s.
func (r *Result) Count(s Status) int {
	n := 0
	for _, e := range r.Entries {
		if e.Status == s {
			n++
		}
	}
	return n
}

// Changed reports whether any file was (or, for a dry run, would be)
// written.
func (r *Result) Changed() bool {
	return r.Count(StatusCreated)+r.Count(StatusOverwritten)+r.Count(StatusMerged) > 0
}

// RenderFunc produces the content of a creation entry.
type RenderFunc func(e manifest.Entry) ([]byte, error)

// Options control an apply.
type Options struct {
	// Force overwrites existing files whose content differs.
	Force bool

	// DryRun stops after the plan phase.
	DryRun bool
}

type step struct {
	entry   manifest.Entry
	status  Status
	content []byte
}

// Apply plans and writes m below root.
func Apply(ctx context.Context, root string, m *manifest.Manifest, render RenderFunc, opts Options) (*Result, error) {
	steps, err := plan(root, m, render, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{Root: root, DryRun: opts.DryRun, Entries: make([]EntryResult, len(steps))}
	for i, s := range steps {
		res.Entries[i] = EntryResult{Entry: s.entry, Status: s.status}
	}
	if opts.DryRun {
		return res, nil
	}

	for i, s := range steps {
		if err := ctx.Err(); err != nil {
			markSkipped(res, i)
			return res, err
		}
		if s.status == StatusUnchanged {
			continue
		}
		target := filepath.Join(root, filepath.FromSlash(s.entry.Path))
		if err := fsutil.WriteFileAtomic(target, s.content, 0o644); err != nil {
			ioErr := oerrors.NewIOError("writing file", s.entry.Path, err)
			res.Entries[i].Status = StatusFailed
			res.Entries[i].Err = ioErr
			markSkipped(res, i+1)
			return res, ioErr
		}
		output.Debug("wrote file", "path", s.entry.Path, "status", s.status)
	}
	return res, nil
}

func markSkipped(res *Result, from int) {
	for j := from; j < len(res.Entries); j++ {
		if res.Entries[j].Status != StatusUnchanged {
			res.Entries[j].Status = StatusSkipped
		}
	}
}

// plan is the read-only phase. It fails on the first conflict, render
// error, unreadable aggregate file or broken registry region.
func plan(root string, m *manifest.Manifest, render RenderFunc, opts Options) ([]step, error) {
	steps := make([]step, 0, m.Len())
	for _, e := range m.Entries() {
		target := filepath.Join(root, filepath.FromSlash(e.Path))
		existing, err := os.ReadFile(target)
		exists := err == nil
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, oerrors.NewIOError("reading existing file", e.Path, err)
		}

		switch e.Kind {
		case manifest.KindMerge:
			if !exists {
				return nil, oerrors.NewIOError("aggregate file is missing", e.Path, fs.ErrNotExist)
			}
			out, changed, err := endpoint.ApplyMerge(e.Path, existing, *e.Merge)
			if err != nil {
				return nil, err
			}
			s := step{entry: e, status: StatusUnchanged}
			if changed {
				s.status, s.content = StatusMerged, out
			}
			steps = append(steps, s)

		default:
			content, err := render(e)
			if err != nil {
				return nil, err
			}
			s := step{entry: e, status: StatusCreated, content: content}
			if exists {
				switch {
				case bytes.Equal(existing, content):
					s.status, s.content = StatusUnchanged, nil
				case opts.Force:
					s.status = StatusOverwritten
				default:
					return nil, oerrors.NewDuplicatePathError(e.Path, "existing file", strings.Join(e.Tags, "+"))
				}
			}
			steps = append(steps, s)
		}
	}
	return steps, nil
}
