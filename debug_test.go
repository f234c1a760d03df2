package mapview

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestInvariantPanics(t *testing.T) {
	expectPanic(t, "bad mode 7", func() {
		invariant(false, "bad mode %d", 7)
	})
}

func TestInvariantHolds(t *testing.T) {
	invariant(true, "never formatted %d", 1)
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	componentLogger(base, "arbiter").Debug("mode activated", "mode", ModeSelect)

	out := buf.String()
	if !strings.Contains(out, "component=arbiter") {
		t.Errorf("log line missing component attr: %s", out)
	}
	if !strings.Contains(out, "mode=select") {
		t.Errorf("log line missing mode attr: %s", out)
	}
}

func TestConfigLoggerDiscards(t *testing.T) {
	if (Config{}).logger() == nil {
		t.Fatal("logger() = nil")
	}
	var buf bytes.Buffer
	cfg := Config{Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	cfg.logger().Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Error("configured logger not used")
	}
}
