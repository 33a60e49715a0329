package logging

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/sirupsen/logrus"
)

// CallerKey is the entry field holding a "file:line" call site. When it is
// absent LineFormatter falls back to the caller logrus recorded.
const CallerKey = "caller"

// LineFormatter renders "file:line [pid] message key=value ..." lines.
type LineFormatter struct {
	// PID is printed in the prefix; zero means os.Getpid().
	PID int
}

var _ logrus.Formatter = (*LineFormatter)(nil)

// Format implements logrus.Formatter.
func (f *LineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	pid := f.PID
	if pid == 0 {
		pid = os.Getpid()
	}

	var b bytes.Buffer
	caller, _ := entry.Data[CallerKey].(string)
	if caller == "" && entry.HasCaller() {
		caller = fmt.Sprintf("%s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line)
	}
	if caller != "" {
		b.WriteString(caller)
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "[%d] %s", pid, entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k != CallerKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := entry.Data[k].(type) {
		case string:
			fmt.Fprintf(&b, " %s=%q", k, v)
		case error:
			fmt.Fprintf(&b, " %s=%q", k, v.Error())
		default:
			fmt.Fprintf(&b, " %s=%v", k, v)
		}
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// Caller returns the "file:line" skip frames up the stack; Caller(0) is the
// line that called it.
func Caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}
