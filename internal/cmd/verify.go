package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
	"github.com/fullstack-gen/fsgen/internal/generator"
	"github.com/fullstack-gen/fsgen/internal/output"
	"github.com/fullstack-gen/fsgen/internal/runner"
)

// NewVerifyCmd creates the verify command.
func NewVerifyCmd() *cobra.Command {
	var (
		dirFlag    string
		ignoreFlag []string
		runFlag    []string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a project against its manifest",
		Long: `Compare every file in a generated project with the files its stored
options and registered endpoints produce.

Missing and unexpected files are listed. With --run, the project's package
scripts are executed afterwards, each retried up to runner.attempts times.
` + fmt.Sprintf("Always ignored: %s", strings.Join(generator.DefaultIgnore, ", ")) + `

Examples:
  # Tree check only
  fsgen verify --dir ./shop

  # Tree check, then lint and both test suites
  fsgen verify --dir ./shop --run lint,test:client,test:server`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, generator.VerifyRequest{Dir: dirFlag, Ignore: ignoreFlag, Scripts: runFlag})
		},
	}

	cmd.Flags().StringVar(&dirFlag, "dir", ".", "Project directory")
	cmd.Flags().StringSliceVar(&ignoreFlag, "ignore", nil, "Additional paths to ignore; end directories with '/'")
	cmd.Flags().StringSliceVar(&runFlag, "run", nil,
		"Package scripts to run after the tree check (e.g. "+strings.Join(runner.VerifyScripts, ",")+")")

	return cmd
}

func runVerify(cmd *cobra.Command, req generator.VerifyRequest) error {
	g, closeFn, err := newGenerator()
	if err != nil {
		return err
	}
	defer closeFn()

	report, err := g.Verify(commandContext(cmd), req)
	if report != nil {
		writeVerifyReport(cmd, report)
	}
	if err != nil {
		return reportFailure("verification failed", err)
	}
	if !report.Tree.Empty() {
		return &oerrors.ExitError{
			Code: oerrors.ExitValidationError,
			Err: fmt.Errorf("project tree does not match its manifest: %d missing, %d unexpected",
				len(report.Tree.Missing), len(report.Tree.Extra)),
		}
	}
	return nil
}

func writeVerifyReport(cmd *cobra.Command, report *generator.VerifyReport) {
	out := cmd.OutOrStdout()

	for _, e := range report.Endpoints {
		output.Debug("registered endpoint", "module", e)
	}

	if !report.Tree.Empty() {
		fmt.Fprintln(out, output.RenderDiff(report.Tree.Extra, report.Tree.Missing, nil))
	} else {
		fmt.Fprintln(out, output.FormatCheckmark(fmt.Sprintf("tree matches manifest (%d endpoints)", len(report.Endpoints))))
	}

	for _, c := range report.Checks {
		status := output.StatusPassed
		if c.Err != nil {
			status = output.StatusFailed
		}
		line := fmt.Sprintf("%s (%d attempt", c.Command, c.Attempts)
		if c.Attempts != 1 {
			line += "s"
		}
		line += ")"
		fmt.Fprintln(out, output.FormatEntryLine(line, false, status))
	}
}
