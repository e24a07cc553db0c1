package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitializeWritesJSONToFile(t *testing.T) {
	t.Cleanup(UseNop)
	path := filepath.Join(t.TempDir(), "quote.log")

	require.NoError(t, Initialize(Config{Level: "debug", Format: "json", Output: path}))
	Debug("quote computed", zap.String("category", "osb"))
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.Contains(t, line, `"msg":"quote computed"`)
	assert.Contains(t, line, `"category":"osb"`)
	assert.Contains(t, line, `"timestamp"`)
}

func TestInitializeFiltersByLevel(t *testing.T) {
	t.Cleanup(UseNop)
	path := filepath.Join(t.TempDir(), "quote.log")

	require.NoError(t, Initialize(Config{Level: "bogus", Format: "json", Output: path}))
	Debug("hidden")
	Info("shown")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestInitializeRejectsUnwritableOutput(t *testing.T) {
	t.Cleanup(UseNop)
	err := Initialize(Config{Output: filepath.Join(t.TempDir(), "missing", "quote.log")})
	assert.Error(t, err)
}
