package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLoggerInit(t *testing.T) {
	// Test development mode
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize development logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}

	// Test production mode
	err = Init()
	if err != nil {
		t.Fatalf("failed to initialize production logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	logger = Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}
}

// Basic logging test (slog-backed; no Sugar)
func TestLoggerBasic(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil")
	}

	ctx := context.Background()
	logger.Info(ctx, "test message", String("k", "v"))
}

func TestLoggerNamed(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	namedLogger := Named("test")
	if namedLogger == nil {
		t.Fatal("named logger is nil")
	}

	ctx := context.Background()
	namedLogger.Info(ctx, "test message")
}

func TestLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithWriter(&buf, FormatJSON); err != nil {
		t.Fatalf("failed to initialize json logger: %v", err)
	}

	Get().Info(context.Background(), "value map built",
		Int("navigators", 24),
		Bool("reloaded", true),
		Duration("took", 1500*time.Microsecond),
	)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log line is not json: %v (%q)", err, buf.String())
	}
	if record["msg"] != "value map built" {
		t.Errorf("unexpected msg: %v", record["msg"])
	}
	if record["navigators"] != float64(24) {
		t.Errorf("unexpected navigators: %v", record["navigators"])
	}
	if record["reloaded"] != true {
		t.Errorf("unexpected reloaded: %v", record["reloaded"])
	}
	if record["took"] != "1.5ms" {
		t.Errorf("unexpected took: %v", record["took"])
	}
	if _, ok := record["source"]; !ok {
		t.Error("missing source field")
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithWriter(&buf, FormatText); err != nil {
		t.Fatalf("failed to initialize text logger: %v", err)
	}
	ctx := context.Background()

	Get().Debug(ctx, "hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug logged at info level: %q", buf.String())
	}

	if err := SetLevelString("DEBUG"); err != nil {
		t.Fatalf("failed to set level: %v", err)
	}
	Get().Debug(ctx, "shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("debug not logged after level change: %q", buf.String())
	}

	if err := SetLevelString("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLoggerUnknownFormat(t *testing.T) {
	if err := InitWithWriter(&bytes.Buffer{}, "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
