package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_CreatesLogDirAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "steril")
	t.Cleanup(func() { Logger = nil })

	require.NoError(t, Init(Config{Dir: dir}))
	require.NotNil(t, Logger)

	Warn("timer completion not persisted", "session", "abc")

	data, err := os.ReadFile(filepath.Join(dir, "logs", "steril.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "timer completion not persisted")
	assert.Contains(t, string(data), "session=abc")
}

func TestNew_LevelFollowsDebug(t *testing.T) {
	var buf bytes.Buffer
	quiet := New(&buf, false)
	quiet.Info("hidden")
	quiet.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	loud := New(&buf, true)
	loud.Debug("details", "k", 1)
	assert.Contains(t, buf.String(), "details")
}

func TestHelpers_NilSafe(t *testing.T) {
	Logger = nil
	assert.NotPanics(t, func() {
		Debug("d")
		Info("i")
		Warn("w")
		Error("e")
	})
}
