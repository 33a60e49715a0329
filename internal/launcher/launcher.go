// Package launcher starts user commands detached from the window manager.
package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/sirupsen/logrus"
)

// Shell runs every command line.
var Shell = "/bin/sh"

// Launcher runs shell command lines in their own session with stdio on
// /dev/null. Each command runs as a grandchild: an intermediate shell puts it
// in the background and exits, so the manager never has to reap it and a
// re-exec of the manager cannot leave zombies behind.
type Launcher struct {
	Log *logrus.Logger

	// Env, when set, replaces the child environment.
	Env []string
}

// New returns a Launcher reporting launch failures to log.
func New(log *logrus.Logger) *Launcher {
	return &Launcher{Log: log}
}

// detach is run by the intermediate shell: $0 is the shell, $1 the command.
const detach = `"$0" -c "$1" &`

// Start launches "sh -c command" detached and returns the intermediate
// shell, which has already exited. The command's own exit status is not
// observed.
func (l *Launcher) Start(command string) (*exec.Cmd, error) {
	devnull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", os.DevNull, err)
	}
	defer devnull.Close()

	cmd := exec.Command(Shell, "-c", detach, Shell, command)
	cmd.Stdin = devnull
	cmd.Stdout = devnull
	cmd.Stderr = devnull
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if l.Env != nil {
		cmd.Env = l.Env
	}

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to start %q: %w", command, err)
	}
	if l.Log != nil {
		l.Log.WithField("command", command).Debug("launched")
	}
	return cmd, nil
}

// Launch is Start for callers that only care whether the command started.
func (l *Launcher) Launch(command string) error {
	_, err := l.Start(command)
	return err
}

// StartAll launches each command in order, stopping at the first failure.
func (l *Launcher) StartAll(commands []string) error {
	for _, c := range commands {
		if _, err := l.Start(c); err != nil {
			return err
		}
	}
	return nil
}
