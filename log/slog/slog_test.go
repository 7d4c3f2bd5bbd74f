package slog

import (
	"bytes"
	stdslog "log/slog"
	"strings"
	"testing"

	"github.com/unkn0wn-root/ljson"
)

func TestLevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	h := stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelInfo})
	l := New(stdslog.New(h))

	l.Debug("hidden", ljson.Fields{"x": 1})
	l.Info("shown", ljson.Fields{"b": 2, "a": 1})
	l.Error("failed", nil)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug should be filtered:\n%s", out)
	}
	if !strings.Contains(out, "msg=shown a=1 b=2") {
		t.Fatalf("fields should follow in key order:\n%s", out)
	}
	if !strings.Contains(out, "level=ERROR msg=failed") {
		t.Fatalf("missing error line:\n%s", out)
	}
}
