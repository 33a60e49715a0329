package wm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/sirupsen/logrus"

	"github.com/1broseidon/fawm/internal/x11"
)

// tickInterval is how often the clock is checked.
const tickInterval = time.Second

// XError is returned by Run when an X protocol error arrives and the
// manager was told to abort on them.
type XError struct {
	Info x11.ErrorInfo
}

func (e *XError) Error() string {
	return fmt.Sprintf("X error %s on %s (resource 0x%x)", e.Info.Name, e.Info.Request(), e.Info.BadValue)
}

// Run handles events until a menu item asks to quit or reload, ctx is
// cancelled, or the event channel closes. Cancelling ctx is a clean quit.
func (m *Manager) Run(ctx context.Context, events <-chan x11.Event) (Exit, error) {
	m.events = events
	m.running = true
	m.exit = ExitQuit

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for m.running {
		if len(m.pending) > 0 {
			ev := m.pending[0]
			m.pending = m.pending[1:]
			if err := m.process(ev); err != nil {
				return ExitQuit, err
			}
			continue
		}
		if m.disconnected {
			return ExitQuit, ErrDisconnected
		}

		select {
		case <-ctx.Done():
			m.log.Info("shutting down")
			return ExitQuit, nil
		case <-ticker.C:
			m.tickClock()
		case ev, ok := <-events:
			if !ok {
				return ExitQuit, ErrDisconnected
			}
			if err := m.process(ev); err != nil {
				return ExitQuit, err
			}
		}
	}
	return m.exit, nil
}

func (m *Manager) process(ev x11.Event) error {
	if ev.Err != nil {
		return m.reportXError(ev.Err)
	}
	if ev.Event != nil {
		m.handle(ev.Event)
	}
	return nil
}

func (m *Manager) stop(exit Exit) {
	m.running = false
	m.exit = exit
}

// reportXError writes err to the X error log. Errors are expected while
// clients come and go, so they only stop the manager when asked to.
func (m *Manager) reportXError(err xgb.Error) error {
	info := x11.DescribeError(err)
	m.xerrors.Error("**********")
	m.xerrors.WithFields(logrus.Fields{
		"pid":      os.Getpid(),
		"serial":   info.Sequence,
		"error":    info.Name,
		"major":    info.MajorOpcode,
		"minor":    info.MinorOpcode,
		"resource": fmt.Sprintf("0x%x", info.BadValue),
		"request":  info.Request(),
	}).Error("X error")
	if m.abortOnXError {
		return &XError{Info: info}
	}
	return nil
}
