package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fullstack-gen/fsgen/internal/apply"
	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
	"github.com/fullstack-gen/fsgen/internal/manifest"
	"github.com/fullstack-gen/fsgen/internal/output"
)

// commandContext returns the command's context, or a background context
// when the command runs outside Execute (tests).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// writeApplyResult prints one status line per entry followed by a summary.
// Unchanged entries are only listed with --verbose.
func writeApplyResult(w io.Writer, res *apply.Result) {
	for _, e := range res.Entries {
		if e.Status == apply.StatusUnchanged && !verboseFlag {
			continue
		}
		fmt.Fprintln(w, output.FormatEntryLine(e.Entry.Path, e.Entry.Kind == manifest.KindMerge, string(e.Status)))
	}

	var parts []string
	for _, s := range []apply.Status{
		apply.StatusCreated,
		apply.StatusOverwritten,
		apply.StatusMerged,
		apply.StatusUnchanged,
		apply.StatusFailed,
		apply.StatusSkipped,
	} {
		if n := res.Count(s); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, s))
		}
	}
	summary := strings.Join(parts, ", ")
	if summary == "" {
		summary = "nothing to do"
	}
	if res.DryRun {
		summary = "dry run: " + summary
	}
	fmt.Fprintln(w, output.FormatCheckmark(summary))
}

// reportFailure logs err and marks it as printed, keeping its exit code.
func reportFailure(msg string, err error) error {
	output.Error(msg, "error", err)
	return &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
}
