package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
	"github.com/fullstack-gen/fsgen/internal/history"
	"github.com/fullstack-gen/fsgen/internal/output"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	var outf OutputFlags
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded generation runs",
		Long: `List the runs recorded in the history ledger, newest first, or show one
run with the outcome of each of its entries.

A run id may be abbreviated to any unique prefix.

Examples:
  # Last 20 runs
  fsgen history

  # One run as YAML
  fsgen history 3f2a -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, args, &outf, limitFlag)
		},
	}

	outf.AddTo(cmd, string(output.FormatTable))
	cmd.Flags().IntVar(&limitFlag, "limit", 20, "Maximum number of runs to list (0 for all)")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string, outf *OutputFlags, limit int) error {
	format, err := outf.Parse()
	if err != nil {
		return err
	}
	if format == output.FormatTree {
		return oerrors.NewValidationError("history has no tree output", "", "output", "Use yaml, json or table.")
	}

	cfg := GetConfig()
	if !cfg.History.Enabled {
		return errors.New("history is disabled (history.enabled: false)")
	}
	store := openHistory(cfg)
	if store == nil {
		return oerrors.NewNotFoundError("history ledger unavailable", cfg.History.Path, "Check history.path in the config file.")
	}
	defer store.Close()

	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		run, err := store.Get(ctx, args[0])
		if err != nil {
			return err
		}
		if format != output.FormatTable {
			return writeStructured(cmd, format, run)
		}
		fmt.Fprintf(out, "Run %s (%s, %s)\n", run.ID, run.Kind, run.Status)
		fmt.Fprintf(out, "  Project:  %s\n", run.Project)
		if run.Subject != "" {
			fmt.Fprintf(out, "  Subject:  %s\n", run.Subject)
		}
		fmt.Fprintf(out, "  Started:  %s\n", run.StartedAt.Local().Format(time.DateTime))
		fmt.Fprintf(out, "  Duration: %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
		if run.Error != "" {
			fmt.Fprintf(out, "  Error:    %s\n", run.Error)
		}
		if len(run.Entries) > 0 {
			fmt.Fprintln(out)
			for _, e := range run.Entries {
				fmt.Fprintln(out, output.FormatEntryLine(e.Path, e.Kind == "merge", e.Status))
			}
		}
		return nil
	}

	runs, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	if format != output.FormatTable {
		return writeStructured(cmd, format, runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}

	tbl := output.NewTable("ID", "KIND", "STATUS", "SUBJECT", "PROJECT", "STARTED")
	for _, r := range runs {
		tbl.Row(shortID(r.ID), r.Kind, output.StatusStyle(statusWord(r.Status)).Render(r.Status),
			r.Subject, r.Project, r.StartedAt.Local().Format(time.DateTime))
	}
	fmt.Fprintln(out, tbl.String())
	return nil
}

// writeStructured prints v as JSON or YAML.
func writeStructured(cmd *cobra.Command, format output.OutputFormat, v any) error {
	out := cmd.OutOrStdout()
	if format == output.FormatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	_, err = out.Write(data)
	return err
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// statusWord maps run statuses onto the entry status palette.
func statusWord(status string) string {
	if status == history.StatusSucceeded {
		return output.StatusPassed
	}
	return output.StatusFailed
}
