// Package handoff passes control to the external scan routine
package handoff

import (
	"context"
	"time"

	"github.com/oa-devs/ScanMyLAN/pkg"
	"github.com/oa-devs/ScanMyLAN/pkg/types"
	errorutil "github.com/projectdiscovery/utils/errors"
)

const (
	DefaultChmodTimeout = 10 * time.Second
	DefaultScanTimeout  = 3600 * time.Second
)

// ResultKind classifies how the scan routine ended
type ResultKind int

const (
	ResultOK ResultKind = iota
	ResultNotFound
	ResultNonZeroExit
	ResultTimeout
	ResultFailed
)

func (k ResultKind) String() string {
	switch k {
	case ResultOK:
		return "ok"
	case ResultNotFound:
		return "not-found"
	case ResultNonZeroExit:
		return "non-zero-exit"
	case ResultTimeout:
		return "timeout"
	default:
		return "failed"
	}
}

// Result is the outcome of a handoff
type Result struct {
	Kind    ResultKind
	Outcome types.ExitOutcome
}

// Launcher runs the scan routine script
type Launcher struct {
	commander    pkg.Commander
	script       string
	chmodTimeout time.Duration
	scanTimeout  time.Duration
}

// NewLauncher creates a launcher for script. A zero scanTimeout uses DefaultScanTimeout.
func NewLauncher(commander pkg.Commander, script string, scanTimeout time.Duration) *Launcher {
	if scanTimeout <= 0 {
		scanTimeout = DefaultScanTimeout
	}
	return &Launcher{
		commander:    commander,
		script:       script,
		chmodTimeout: DefaultChmodTimeout,
		scanTimeout:  scanTimeout,
	}
}

// Script returns the collaborator entry point
func (l *Launcher) Script() string {
	return l.script
}

// ScanTimeout returns how long Launch waits for the script
func (l *Launcher) ScanTimeout() time.Duration {
	return l.scanTimeout
}

// MakeExecutable marks the script executable
func (l *Launcher) MakeExecutable(ctx context.Context) error {
	outcome := l.commander.Run(ctx, pkg.Command{
		Name:    "chmod",
		Args:    []string{"+x", l.script},
		Timeout: l.chmodTimeout,
	})
	if !outcome.Success() {
		return errorutil.New("could not make %s executable: %s", l.script, outcome)
	}
	return nil
}

// Launch runs `<script> <range> <mode>` attached to the terminal and waits for it
func (l *Launcher) Launch(ctx context.Context, req types.ScanRequest) Result {
	outcome := l.commander.Run(ctx, pkg.Command{
		Name:    l.script,
		Args:    req.Args(),
		Timeout: l.scanTimeout,
		Attach:  true,
	})

	result := Result{Outcome: outcome}
	switch {
	case outcome.Success():
		result.Kind = ResultOK
	case outcome.NotFound:
		result.Kind = ResultNotFound
	case outcome.TimedOut:
		result.Kind = ResultTimeout
	case outcome.Code > 0, outcome.Exited:
		result.Kind = ResultNonZeroExit
	default:
		result.Kind = ResultFailed
	}
	return result
}
