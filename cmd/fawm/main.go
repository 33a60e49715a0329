package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/1broseidon/fawm/internal/config"
	"github.com/1broseidon/fawm/internal/launcher"
	"github.com/1broseidon/fawm/internal/logging"
	"github.com/1broseidon/fawm/internal/menu"
	"github.com/1broseidon/fawm/internal/platform"
	"github.com/1broseidon/fawm/internal/runtimepath"
	"github.com/1broseidon/fawm/internal/version"
	"github.com/1broseidon/fawm/internal/wm"
	"github.com/1broseidon/fawm/internal/x11"
)

// options holds the parsed command line.
type options struct {
	configPath    string
	logFile       string
	errorLog      string
	abortOnXError bool
	debug         bool
}

type runFunc func(ctx context.Context, opts options, startup []string) error

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(runManager).ExecuteContext(ctx)
	stop()
	if err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func newRootCmd(run runFunc) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "fawm [flags] [startup-command...]",
		Short: "A small reparenting window manager for X11",
		Long: `fawm decorates top-level windows with a title bar and a border, lets them
be moved and resized with the mouse, and offers a root menu and a taskbar.

Each positional argument is run through /bin/sh once the manager is ready.`,
		Version:       version.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(cmd.Context(), opts, args)
		},
	}

	errorLog, err := runtimepath.ErrorLogPath()
	if err != nil {
		errorLog = ""
	}

	flags := cmd.Flags()
	flags.SetInterspersed(false)
	flags.StringVar(&opts.configPath, "config", "", "configuration file (default $HOME/.config/fawm/config.yaml)")
	flags.StringVar(&opts.logFile, "log-file", "", "write a trace of every display call and event to this file")
	flags.StringVar(&opts.errorLog, "error-log", errorLog, "append X protocol errors to this file")
	flags.BoolVar(&opts.abortOnXError, "abort-on-x-error", false, "exit on the first X protocol error")
	flags.BoolVar(&opts.debug, "debug", false, "log debug messages to stderr")
	return cmd
}

func runManager(ctx context.Context, opts options, startup []string) error {
	logs, err := logging.New(logging.Options{
		TraceFile: opts.logFile,
		ErrorFile: opts.errorLog,
		Debug:     opts.debug,
	})
	if err != nil {
		return fmt.Errorf("failed to open logs: %w", err)
	}
	defer logs.Close()

	exit, err := manage(ctx, logs, opts, startup)
	if err != nil {
		return err
	}
	if exit == wm.ExitReload {
		logs.Log.Info("reloading")
		logs.Close()
		return reexec(reloadArgs(os.Args, startup))
	}
	return nil
}

func manage(ctx context.Context, logs *logging.Set, opts options, startup []string) (wm.Exit, error) {
	path := opts.configPath
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return wm.ExitQuit, err
		}
		path = p
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return wm.ExitQuit, err
	}

	compiler, err := menu.CompilerPath()
	if err != nil {
		return wm.ExitQuit, err
	}
	items, err := menu.Compile(ctx, compiler, path)
	if err != nil {
		return wm.ExitQuit, err
	}

	conn, err := x11.NewConnection("")
	if err != nil {
		return wm.ExitQuit, fmt.Errorf("cannot open display: %w", err)
	}
	defer conn.Close()

	if err := conn.BecomeWM(); err != nil {
		return wm.ExitQuit, err
	}

	display := platform.Trace(platform.NewX11Display(conn), logs.Trace)
	run := launcher.New(logs.Log)

	mgr, err := wm.New(display, wm.Options{
		Appearance:    res.Config.Appearance,
		Menu:          items,
		Logs:          logs,
		Launcher:      run,
		AbortOnXError: opts.abortOnXError,
	})
	if err != nil {
		return wm.ExitQuit, err
	}
	defer func() {
		if err := mgr.Close(); err != nil {
			logs.Log.WithError(err).Warn("shutdown left resources behind")
		}
	}()

	if err := mgr.Start(); err != nil {
		return wm.ExitQuit, err
	}
	if err := run.StartAll(startup); err != nil {
		logs.Log.WithError(err).Warn("startup command failed")
	}

	logs.Log.WithField("config", res.File).Debug("fawm running")
	exit, err := mgr.Run(ctx, conn.Events(ctx))
	if errors.Is(err, wm.ErrDisconnected) {
		return exit, fmt.Errorf("lost the display connection: %w", err)
	}
	return exit, err
}

// reloadArgs drops the startup commands from argv. They were already run
// and their programs are still alive after a reload.
func reloadArgs(argv, startup []string) []string {
	n := len(argv) - len(startup)
	if n < 1 {
		n = 1
	}
	args := append([]string(nil), argv[:n]...)
	if len(startup) > 0 && len(args) > 1 && args[len(args)-1] == "--" {
		args = args[:len(args)-1]
	}
	return args
}

// reexec replaces the process with a fresh copy of the same binary.
func reexec(argv []string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("cannot reload: %w", err)
	}
	return syscall.Exec(exe, argv, os.Environ())
}
