package x11

import (
	"strings"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestDescribeError_ValueErrors(t *testing.T) {
	err := xproto.WindowError{Sequence: 12, NiceName: "Window", BadValue: 0x400001, MajorOpcode: 12}
	info := DescribeError(err)
	if info.Name != "Window" || info.Sequence != 12 || info.BadValue != 0x400001 {
		t.Fatalf("DescribeError = %+v", info)
	}
	if info.Request() != "ConfigureWindow" {
		t.Fatalf("Request() = %q", info.Request())
	}
}

func TestDescribeError_RequestErrors(t *testing.T) {
	err := xproto.MatchError{Sequence: 3, NiceName: "Match", MajorOpcode: 42, MinorOpcode: 0}
	info := DescribeError(err)
	if info.Name != "Match" || info.Request() != "SetInputFocus" {
		t.Fatalf("DescribeError = %+v (%s)", info, info.Request())
	}
}

func TestErrorInfo_UnknownOpcode(t *testing.T) {
	info := ErrorInfo{MajorOpcode: 200}
	if !strings.Contains(info.Request(), "200") {
		t.Fatalf("Request() = %q", info.Request())
	}
}
