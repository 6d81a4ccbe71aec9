// Package shellexec runs the shell commands the RUN/SHOW-MESSAGE-RUN
// actions name (spec §5 "Spawned child shell processes are detached —
// do not wait for them").
package shellexec

import (
	"bufio"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Runner executes action.Run/ShowMessageRun commands through $SHELL -c.
type Runner struct {
	Shell string
	Log   *logrus.Entry
}

// New returns a Runner using shell (falls back to "sh" if empty).
func New(shell string, log *logrus.Entry) *Runner {
	if shell == "" {
		shell = "sh"
	}
	return &Runner{Shell: shell, Log: log}
}

// RunDetached starts cmd and does not wait for it: Start, not Run; a
// background goroutine calls Wait only to reap the exited process, and
// its exit status is discarded, matching spec §5's explicit "do not
// wait" rule and termtile's own exec.Command usage.
func (r *Runner) RunDetached(cmd string) {
	c := exec.Command(r.Shell, "-c", cmd)
	if err := c.Start(); err != nil {
		if r.Log != nil {
			r.Log.WithError(err).WithField("cmd", cmd).Warn("shellexec: failed to start command")
		}
		return
	}
	go func() { _ = c.Wait() }()
}

// captureTimeout bounds SHOW-MESSAGE-RUN so a hanging command can't
// stall the single event-dispatch thread indefinitely.
const captureTimeout = 5 * time.Second

// RunCaptureLine runs cmd to completion (bounded by captureTimeout) and
// returns its first line of combined stdout+stderr output, for
// SHOW-MESSAGE-RUN.
func (r *Runner) RunCaptureLine(cmd string) string {
	ctx, cancel := context.WithTimeout(context.Background(), captureTimeout)
	defer cancel()

	c := exec.CommandContext(ctx, r.Shell, "-c", cmd)
	out, err := c.CombinedOutput()
	if err != nil && len(out) == 0 {
		if r.Log != nil {
			r.Log.WithError(err).WithField("cmd", cmd).Warn("shellexec: command failed")
		}
		return ""
	}

	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	if scanner.Scan() {
		return scanner.Text()
	}
	return ""
}
