package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"debug", DebugLevel},
		{" info ", InfoLevel},
		{"WARN", WarnLevel},
		{"warning", WarnLevel},
		{"Error", ErrorLevel},
		{"verbose", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	if got := Level(42).String(); got != "UNKNOWN" {
		t.Errorf("Level(42).String() = %q, want UNKNOWN", got)
	}
	if got := WarnLevel.String(); got != "WARN" {
		t.Errorf("WarnLevel.String() = %q, want WARN", got)
	}
}

func TestFieldConstructors(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"Dataset", Dataset("elliptic_pp"), "dataset", "elliptic_pp"},
		{"Table", Table("edges"), "table", "edges"},
		{"Rows", Rows(7), "rows", 7},
		{"Columns", Columns(3), "columns", 3},
		{"Format", Format("tensor"), "format", "tensor"},
		{"Duration", Duration("timeout", 5*time.Second), "timeout", "5s"},
		{"Error", Error(errors.New("boom")), "error", "boom"},
		{"ErrorNil", Error(nil), "error", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.key || tt.field.Value != tt.value {
				t.Errorf("got %+v, want {Key:%s Value:%v}", tt.field, tt.key, tt.value)
			}
		})
	}
}

func TestJSONLogger_BasicLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	logger.Info("table loaded", Table("features"), Rows(3))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal log entry: %v", err)
	}

	if entry.Level != "INFO" {
		t.Errorf("Level = %v, want INFO", entry.Level)
	}
	if entry.Message != "table loaded" {
		t.Errorf("Message = %v, want 'table loaded'", entry.Message)
	}
	if entry.Fields["table"] != "features" {
		t.Errorf("Fields[table] = %v, want features", entry.Fields["table"])
	}
	if entry.Fields["rows"] != float64(3) {
		t.Errorf("Fields[rows] = %v, want 3", entry.Fields["rows"])
	}
	if entry.Time == "" {
		t.Error("Time field is empty")
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 log entries, got %d", len(lines))
	}

	for i, want := range []string{"WARN", "ERROR"} {
		var entry LogEntry
		if err := json.Unmarshal([]byte(lines[i]), &entry); err != nil {
			t.Fatalf("Failed to unmarshal entry %d: %v", i, err)
		}
		if entry.Level != want {
			t.Errorf("entry %d level = %v, want %v", i, entry.Level, want)
		}
	}
}

func TestJSONLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(Component("loader"), Dataset("elliptic_pp"))
	child.Info("masks derived", Count(2))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	if entry.Fields["component"] != "loader" {
		t.Errorf("component field = %v, want loader", entry.Fields["component"])
	}
	if entry.Fields["dataset"] != "elliptic_pp" {
		t.Errorf("dataset field = %v, want elliptic_pp", entry.Fields["dataset"])
	}
	if entry.Fields["count"] != float64(2) {
		t.Errorf("count field = %v, want 2", entry.Fields["count"])
	}
}

func TestJSONLogger_WithDoesNotLeakToParent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	_ = logger.With(String("child", "yes"))
	logger.Info("parent")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if _, exists := entry["fields"]; exists {
		t.Error("Expected fields key to be omitted on the parent logger")
	}
}

func TestJSONLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.SetLevel(ErrorLevel)
	if logger.GetLevel() != ErrorLevel {
		t.Errorf("After SetLevel, level = %v, want ErrorLevel", logger.GetLevel())
	}

	logger.Info("info")
	if buf.Len() != 0 {
		t.Error("Expected no output for Info at ErrorLevel")
	}

	logger.Error("error")
	if buf.Len() == 0 {
		t.Error("Expected output for Error at ErrorLevel")
	}
}

func TestGlobalHelperFunctions(t *testing.T) {
	var buf bytes.Buffer
	SetDefaultLogger(NewJSONLogger(&buf, DebugLevel))
	defer SetDefaultLogger(nil)

	Debug("debug msg")
	Info("info msg")
	Warn("warn msg")
	ErrorLog("error msg")
	With(RunID("abc")).Info("child msg")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("Expected 5 log entries, got %d", len(lines))
	}

	var last LogEntry
	if err := json.Unmarshal([]byte(lines[4]), &last); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if last.Fields["run_id"] != "abc" {
		t.Errorf("run_id field = %v, want abc", last.Fields["run_id"])
	}
}

func TestDefaultLogger_FromEnv(t *testing.T) {
	SetDefaultLogger(nil)
	defer SetDefaultLogger(nil)
	t.Setenv("FRAUDNET_LOG_LEVEL", "error")

	if got := DefaultLogger().GetLevel(); got != ErrorLevel {
		t.Errorf("DefaultLogger level = %v, want ErrorLevel", got)
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	timer := StartTimer(logger, "export finished", Format("general"))
	timer.End(Count(4))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if entry.Fields["format"] != "general" {
		t.Errorf("format field = %v, want general", entry.Fields["format"])
	}
	if _, ok := entry.Fields["latency"]; !ok {
		t.Error("latency field missing")
	}

	buf.Reset()
	StartTimer(logger, "export failed").EndError(errors.New("no nodes"))
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if entry.Level != "ERROR" || entry.Fields["error"] != "no nodes" {
		t.Errorf("unexpected entry %+v", entry)
	}
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Info("ignored")
	if l.With(String("a", "b")) == nil {
		t.Error("With() returned nil")
	}
	if l.GetLevel() != InfoLevel {
		t.Errorf("GetLevel() = %v, want InfoLevel", l.GetLevel())
	}
}

func BenchmarkJSONLogger_Info(b *testing.B) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", Table("edges"), Rows(42))
	}
}
