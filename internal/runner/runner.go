// Package runner executes the generated project's package-manager commands
// (install, lint, tests) with bounded retries.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"

	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
	"github.com/fullstack-gen/fsgen/internal/output"
)

// Verification scripts defined by every generated package.json.
const (
	ScriptLint       = "lint"
	ScriptTestClient = "test:client"
	ScriptTestServer = "test:server"
)

// VerifyScripts lists the verification scripts in run order.
var VerifyScripts = []string{ScriptLint, ScriptTestClient, ScriptTestServer}

// EnvFile is the project file whose variables are passed to commands.
const EnvFile = ".env"

// ExecFunc runs one command attempt and returns its combined output.
type ExecFunc func(ctx context.Context, dir string, env []string, name string, args ...string) ([]byte, error)

// Options configures a Runner.
type Options struct {
	// PackageManager is the executable, "npm" when empty.
	PackageManager string

	Policy RetryPolicy

	// Timeout bounds each attempt. Zero means no limit.
	Timeout time.Duration

	// Spinner shows progress on a terminal.
	Spinner bool

	// Exec replaces process execution, for tests.
	Exec ExecFunc
}

// Outcome is the terminal result of a command.
type Outcome struct {
	Command  string
	Attempts int
	Duration time.Duration
	Output   string
	Err      error
}

// Runner runs commands in a project directory.
type Runner struct {
	pm      string
	policy  RetryPolicy
	timeout time.Duration
	spinner bool
	exec    ExecFunc
}

// New creates a Runner.
func New(opts Options) *Runner {
	r := &Runner{
		pm:      opts.PackageManager,
		policy:  opts.Policy,
		timeout: opts.Timeout,
		spinner: opts.Spinner,
		exec:    opts.Exec,
	}
	if r.pm == "" {
		r.pm = "npm"
	}
	if r.policy.Attempts < 1 {
		r.policy = DefaultPolicy()
	}
	if r.exec == nil {
		r.exec = execCommand
	}
	return r
}

// Install installs the project's dependencies.
func (r *Runner) Install(ctx context.Context, dir string) (Outcome, error) {
	return r.Run(ctx, dir, "install")
}

// Script runs a package.json script.
func (r *Runner) Script(ctx context.Context, dir, script string) (Outcome, error) {
	return r.Run(ctx, dir, "run", script)
}

// Verify runs the given scripts in order and stops at the first failure.
func (r *Runner) Verify(ctx context.Context, dir string, scripts []string) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(scripts))
	for _, s := range scripts {
		out, err := r.Script(ctx, dir, s)
		outcomes = append(outcomes, out)
		if err != nil {
			return outcomes, err
		}
	}
	return outcomes, nil
}

// Run executes the package manager with args in dir, retrying failures.
// The project's .env variables are added to the environment.
func (r *Runner) Run(ctx context.Context, dir string, args ...string) (Outcome, error) {
	command := strings.Join(append([]string{r.pm}, args...), " ")
	outcome := Outcome{Command: command}

	env, err := projectEnv(dir)
	if err != nil {
		outcome.Err = err
		return outcome, err
	}

	start := time.Now()
	action := func(ctx context.Context) error {
		attempts, err := Retry(ctx, r.policy, func(attempt int) error {
			attemptCtx := ctx
			if r.timeout > 0 {
				var cancel context.CancelFunc
				attemptCtx, cancel = context.WithTimeout(ctx, r.timeout)
				defer cancel()
			}

			out, err := r.exec(attemptCtx, dir, env, r.pm, args...)
			outcome.Output = string(out)
			if err != nil {
				output.Debug("command attempt failed", "command", command, "attempt", attempt, "error", err)
			}
			return err
		})
		outcome.Attempts = attempts
		return err
	}

	if r.spinner && output.IsTTY() {
		err = output.RunWithSpinner(ctx, action, output.WithTitle(command))
	} else {
		err = action(ctx)
	}
	outcome.Duration = time.Since(start)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			outcome.Err = ctxErr
			return outcome, ctxErr
		}
		outcome.Err = &oerrors.DetailError{
			Type:     "external command failed",
			Message:  fmt.Sprintf("%s failed after %d attempt(s)", command, outcome.Attempts),
			Location: dir,
			Context:  map[string]string{"Output": lastLines(outcome.Output, 5)},
			Hint:     "Run the command in the project directory to see the full output.",
			Cause:    oerrors.ErrCommandFailed,
			Err:      err,
		}
		return outcome, outcome.Err
	}

	output.Debug("command finished", "command", command, "attempts", outcome.Attempts, "duration", outcome.Duration)
	return outcome, nil
}

// projectEnv returns the process environment extended with dir/.env.
func projectEnv(dir string) ([]string, error) {
	env := os.Environ()

	path := filepath.Join(dir, EnvFile)
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return env, nil
		}
		return nil, oerrors.NewIOError("reading project environment", path, err)
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+vars[k])
	}
	return env, nil
}

func execCommand(ctx context.Context, dir string, env []string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = env
	return cmd.CombinedOutput()
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
