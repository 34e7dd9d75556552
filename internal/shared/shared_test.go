package shared

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("GenerateID produced invalid uuid %q: %v", id, err)
	}

	if GenerateID() == id {
		t.Error("consecutive ids should differ")
	}
}

func TestLogger(t *testing.T) {
	t.Run("writes to the given writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("log output missing message: %q", buf.String())
		}
	})

	t.Run("request logger carries the request id", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)

		RequestLogger(logger, "req-123").Info("handled")

		if !strings.Contains(buf.String(), "req-123") {
			t.Errorf("log output missing request id: %q", buf.String())
		}
	})

	t.Run("level filtering", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.ErrorLevel)

		logger.Info("suppressed")
		if strings.Contains(buf.String(), "suppressed") {
			t.Error("info entry logged above error level")
		}

		logger.Error("kept")
		if !strings.Contains(buf.String(), "kept") {
			t.Error("error entry missing")
		}
	})
}
