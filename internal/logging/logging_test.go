package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestTraceWritesSessionTaggedEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "trace.log")
	Configure(path)
	SetTraceEnabled(true)
	t.Cleanup(func() {
		SetTraceEnabled(false)
		Configure("")
	})

	Trace("focus.commit", map[string]interface{}{"focused": "#1.1"})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry struct {
		Session string                 `json:"session"`
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &entry))
	require.Equal(t, "focus.commit", entry.Event)
	require.Equal(t, SessionID(), entry.Session)
	require.Equal(t, "#1.1", entry.Payload["focused"])
	_, err = uuid.Parse(entry.Session)
	require.NoError(t, err)
}

func TestTraceDisabledWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	Configure(path)
	SetTraceEnabled(false)
	t.Cleanup(func() { Configure("") })

	Trace("focus.commit", nil)

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestErrorAppendsToLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error.log")
	Configure(path)
	t.Cleanup(func() { Configure("") })

	Error(errors.New("layout reload failed"))
	Error(nil)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(string(data), "layout reload failed"))
}
