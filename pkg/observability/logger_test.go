package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// decodeEntry parses the single JSON log line in buf
func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal log entry: %v", err)
	}
	return entry
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	t.Run("debug not logged at info level", func(t *testing.T) {
		buf.Reset()
		logger.Debug("debug message")
		if buf.Len() > 0 {
			t.Error("Debug message should not be logged at Info level")
		}
	})

	t.Run("info logged at info level", func(t *testing.T) {
		buf.Reset()
		logger.Info("info message")

		entry := decodeEntry(t, &buf)
		if entry["level"] != "INFO" {
			t.Errorf("Expected level INFO, got %v", entry["level"])
		}
		if entry["msg"] != "info message" {
			t.Errorf("Expected message 'info message', got %v", entry["msg"])
		}
	})

	t.Run("warn logged at info level", func(t *testing.T) {
		buf.Reset()
		logger.Warn("warn message")
		if buf.Len() == 0 {
			t.Error("Warn message should be logged at Info level")
		}
	})

	t.Run("error logged at info level", func(t *testing.T) {
		buf.Reset()
		logger.Error("error message")
		if buf.Len() == 0 {
			t.Error("Error message should be logged at Info level")
		}
	})
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	logger.WithField("session_id", "abc").WithFields(map[string]interface{}{
		"event":       "toggle",
		"price_cents": 2500,
	}).Info("Session transition")

	entry := decodeEntry(t, &buf)
	if entry["session_id"] != "abc" {
		t.Errorf("Expected session_id 'abc', got %v", entry["session_id"])
	}
	if entry["event"] != "toggle" {
		t.Errorf("Expected event 'toggle', got %v", entry["event"])
	}
	if entry["price_cents"] != float64(2500) {
		t.Errorf("Expected price_cents 2500, got %v", entry["price_cents"])
	}
}

func TestLogger_WithFieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(InfoLevel, &buf).WithFields(map[string]interface{}{
		"zeta": 1, "alpha": 2, "mid": 3,
	}).Info("ordered")

	line := buf.String()
	a, m, z := strings.Index(line, `"alpha"`), strings.Index(line, `"mid"`), strings.Index(line, `"zeta"`)
	if !(a < m && m < z) {
		t.Errorf("Expected fields in sorted order, got %s", line)
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.WithField("module", "leads").Error("dropped")
	logger.Infof("dropped %d", 1)
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	logger.WithError(errors.New("catalog configuration error")).Error("Reload failed")
	entry := decodeEntry(t, &buf)
	if entry["error"] != "catalog configuration error" {
		t.Errorf("Expected error field, got %v", entry["error"])
	}

	if logger.WithError(nil) != logger {
		t.Error("Expected WithError(nil) to return the same logger")
	}
}

func TestLogger_Formatters(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		name string
		log  func(*Logger)
		want string
	}{
		{"Debugf", func(l *Logger) { l.Debugf("test %s %d", "string", 42) }, "test string 42"},
		{"Infof", func(l *Logger) { l.Infof("test %d", 123) }, "test 123"},
		{"Warnf", func(l *Logger) { l.Warnf("warning %s", "test") }, "warning test"},
		{"Errorf", func(l *Logger) { l.Errorf("error %v", "test") }, "error test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log(NewLogger(DebugLevel, &buf))
			if entry := decodeEntry(t, &buf); entry["msg"] != tt.want {
				t.Errorf("Expected %q, got %v", tt.want, entry["msg"])
			}
		})
	}
}

func TestContextHelpers(t *testing.T) {
	t.Run("RequestID", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-123")
		if got := GetRequestID(ctx); got != "req-123" {
			t.Errorf("Expected request ID 'req-123', got %s", got)
		}
	})

	t.Run("SessionID", func(t *testing.T) {
		ctx := WithSessionID(context.Background(), "sess-456")
		if got := GetSessionID(ctx); got != "sess-456" {
			t.Errorf("Expected session ID 'sess-456', got %s", got)
		}
	})

	t.Run("Logger", func(t *testing.T) {
		if GetLogger(context.Background()) == nil {
			t.Error("Expected a default logger")
		}
	})

	t.Run("FromContext", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := WithLogger(context.Background(), NewLogger(InfoLevel, &buf))
		ctx = WithRequestID(ctx, "req-123")
		ctx = WithSessionID(ctx, "sess-456")

		FromContext(ctx).Info("test message")

		entry := decodeEntry(t, &buf)
		if entry["request_id"] != "req-123" {
			t.Errorf("Expected request_id 'req-123', got %v", entry["request_id"])
		}
		if entry["session_id"] != "sess-456" {
			t.Errorf("Expected session_id 'sess-456', got %v", entry["session_id"])
		}
	})
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{LogLevel(9), "LEVEL(9)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("LogLevel.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{"", InfoLevel, false},
		{"INFO", InfoLevel, false},
		{"warning", WarnLevel, false},
		{" error ", ErrorLevel, false},
		{"verbose", InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
