package pkg

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/oa-devs/ScanMyLAN/pkg/types"
	"github.com/projectdiscovery/gologger"
)

// Command describes a single external process invocation
type Command struct {
	Name    string
	Args    []string
	Timeout time.Duration
	// Attach connects the process to the terminal instead of discarding its output
	Attach bool
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Commander runs external processes
type Commander interface {
	Run(ctx context.Context, cmd Command) types.ExitOutcome
}

// ExecCommander runs processes on the host with os/exec
type ExecCommander struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecCommander creates a commander attached to the process stdio
func NewExecCommander() *ExecCommander {
	return &ExecCommander{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes the command and classifies how it ended
func (e *ExecCommander) Run(ctx context.Context, cmd Command) types.ExitOutcome {
	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	gologger.Verbose().Msgf("Executing: %s", cmd)

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if cmd.Attach {
		c.Stdin = e.Stdin
		c.Stdout = e.Stdout
		c.Stderr = e.Stderr
	}

	err := c.Run()
	return classify(ctx, err)
}

func classify(ctx context.Context, err error) types.ExitOutcome {
	if err == nil {
		return types.ExitOutcome{Code: 0, Exited: true}
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return types.ExitOutcome{Code: -1, TimedOut: true, Err: err}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return types.ExitOutcome{Code: exitErr.ExitCode(), Exited: true, Err: err}
	}

	// lookup and start failures surface as *exec.Error or *fs.PathError
	var execErr *exec.Error
	if errors.As(err, &execErr) || errors.Is(err, os.ErrNotExist) {
		return types.ExitOutcome{Code: -1, NotFound: true, Err: err}
	}
	return types.ExitOutcome{Code: -1, Err: err}
}
