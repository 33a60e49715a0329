// Package logging builds the loggers fawm writes to: diagnostics on stderr,
// an optional trace file, and the X protocol error log.
package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Options selects where each logger writes.
type Options struct {
	Stderr io.Writer
	// TraceFile receives one line per display call and event. Empty
	// disables tracing.
	TraceFile string
	// ErrorFile receives X protocol errors. Empty sends them to Stderr only.
	ErrorFile string
	Debug     bool
}

// Set is the group of loggers used by the window manager.
type Set struct {
	Log     *logrus.Logger
	Trace   *logrus.Logger
	XErrors *logrus.Logger

	closers []io.Closer
}

// New opens the configured log files. A trace file that cannot be opened is
// an error; an error log that cannot be opened degrades to stderr with a
// warning.
func New(opts Options) (*Set, error) {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	s := &Set{Log: newStderrLogger(stderr, opts.Debug)}

	s.Trace = logrus.New()
	s.Trace.SetFormatter(&LineFormatter{})
	s.Trace.SetOutput(io.Discard)
	s.Trace.SetLevel(logrus.PanicLevel)
	if opts.TraceFile != "" {
		f, err := openTrace(opts.TraceFile)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, f)
		s.Trace.SetOutput(f)
		s.Trace.SetLevel(logrus.DebugLevel)
	}

	s.XErrors = logrus.New()
	s.XErrors.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	s.XErrors.SetOutput(stderr)
	if opts.ErrorFile != "" {
		f, err := openErrorLog(opts.ErrorFile)
		if err != nil {
			s.Log.WithError(err).Warn("X errors will only be reported on stderr")
		} else {
			s.closers = append(s.closers, f)
			s.XErrors.SetOutput(io.MultiWriter(f, stderr))
		}
	}
	return s, nil
}

// Tracing reports whether the trace logger writes anywhere.
func (s *Set) Tracing() bool {
	return s.Trace.IsLevelEnabled(logrus.DebugLevel)
}

// Close closes every file opened by New.
func (s *Set) Close() error {
	var result *multierror.Error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	s.closers = nil
	return result.ErrorOrNil()
}

func newStderrLogger(w io.Writer, debug bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors: !isTerminal(w),
		FullTimestamp: true,
	})
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Discard returns a Set whose loggers drop everything.
func Discard() *Set {
	discard := func() *logrus.Logger {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	s := &Set{Log: discard(), Trace: discard(), XErrors: discard()}
	s.Trace.SetLevel(logrus.PanicLevel)
	return s
}
