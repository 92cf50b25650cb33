package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"json to stdout", Config{Level: "debug", Format: "json", Output: "stdout"}, false},
		{"text to stderr", Config{Level: "info", Format: "text", Output: "stderr"}, false},
		{"json to file", Config{Level: "warn", Format: "json", Output: filepath.Join(t.TempDir(), "kickbot.log")}, false},
		{"invalid level", Config{Level: "loud", Format: "json", Output: "stdout"}, true},
		{"invalid format", Config{Level: "debug", Format: "xml", Output: "stdout"}, true},
		{"unwritable file", Config{Level: "debug", Format: "json", Output: "/nonexistent/dir/kickbot.log"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && log == nil {
				t.Error("New() returned nil logger without error")
			}
		})
	}
}

func bufferLogger(buf *bytes.Buffer, level slog.Level) *Logger {
	handler := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level})
	return &Logger{slog: slog.New(handler)}
}

func TestLogger_FieldsAppearInOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	log := bufferLogger(buf, slog.LevelDebug)

	log.Info("proposal registered", Field{Key: "chat_id", Value: int64(-100)})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry["msg"] != "proposal registered" {
		t.Errorf("unexpected msg: %v", entry["msg"])
	}
	if entry["chat_id"] != float64(-100) {
		t.Errorf("unexpected chat_id: %v", entry["chat_id"])
	}
}

func TestLogger_ErrorAttachesError(t *testing.T) {
	buf := &bytes.Buffer{}
	log := bufferLogger(buf, slog.LevelDebug)

	log.Error("store write failed", errors.New("connection reset"), Field{Key: "user_id", Value: 7})

	output := buf.String()
	if !strings.Contains(output, "store write failed") || !strings.Contains(output, "connection reset") {
		t.Errorf("expected message and error in output, got: %s", output)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	log := bufferLogger(buf, slog.LevelWarn)

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Errorf("levels below warn must be filtered, got: %s", output)
	}
	if !strings.Contains(output, "warn message") {
		t.Errorf("warn must pass the filter, got: %s", output)
	}
}

func TestLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	log := bufferLogger(buf, slog.LevelDebug)

	log.With(Field{Key: "component", Value: "moderation"}).Info("batch started")

	if !strings.Contains(buf.String(), "component") {
		t.Errorf("expected attached field in output, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	for level, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"Warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, ok := parseLevel(level)
		if !ok || got != want {
			t.Errorf("parseLevel(%q) = %v, %v", level, got, ok)
		}
	}

	if _, ok := parseLevel("trace"); ok {
		t.Error("parseLevel must reject unknown levels")
	}
}
