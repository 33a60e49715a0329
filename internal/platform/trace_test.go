package platform

import (
	"bytes"
	"strings"
	"testing"

	"github.com/1broseidon/fawm/internal/logging"
	"github.com/sirupsen/logrus"
)

type stubDisplay struct {
	Display
	mapped []Window
}

func (s *stubDisplay) MapWindow(w Window) error {
	s.mapped = append(s.mapped, w)
	return nil
}

func TestTrace_DisabledReturnsDisplay(t *testing.T) {
	d := &stubDisplay{}
	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)
	if got := Trace(d, log); got != Display(d) {
		t.Fatalf("Trace() wrapped display with debug disabled")
	}
}

func TestTrace_LogsCallSite(t *testing.T) {
	d := &stubDisplay{}
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logging.LineFormatter{PID: 7})
	log.SetLevel(logrus.DebugLevel)

	traced := Trace(d, log)
	if err := traced.MapWindow(42); err != nil {
		t.Fatalf("MapWindow: %v", err)
	}

	if len(d.mapped) != 1 || d.mapped[0] != 42 {
		t.Fatalf("mapped = %v, want [42]", d.mapped)
	}
	line := buf.String()
	if !strings.HasPrefix(line, "trace_test.go:") {
		t.Fatalf("line %q does not start with the test's call site", line)
	}
	if !strings.Contains(line, "[7] MapWindow window=42") {
		t.Fatalf("line %q missing op and window", line)
	}
}

func TestSupportsDelete(t *testing.T) {
	if !SupportsDelete([]string{"WM_TAKE_FOCUS", "WM_DELETE_WINDOW"}) {
		t.Fatalf("expected WM_DELETE_WINDOW to be found")
	}
	if SupportsDelete(nil) {
		t.Fatalf("expected no support for empty protocols")
	}
}
