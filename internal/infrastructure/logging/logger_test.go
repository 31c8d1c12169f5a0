package logging_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvaldes/statecraft/internal/infrastructure/config"
	"github.com/lvaldes/statecraft/internal/infrastructure/logging"
)

func TestNewLogger_FiltersBelowConfiguredLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "turns.log")
	logger, err := logging.NewLogger(&config.LoggingConfig{
		Level:    "warn",
		Format:   "text",
		Output:   "file",
		FilePath: path,
	})
	require.NoError(t, err)

	logger.Log("INFO", "routine turn detail", nil)
	logger.Log("ERROR", "country persist failed", map[string]interface{}{"country": "Arcadia"})

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "routine turn detail")
	assert.Contains(t, string(content), "country persist failed")
	assert.Contains(t, string(content), "country=Arcadia")
}

func TestNewLogger_JSONLinesCarryMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "turns.log")
	logger, err := logging.NewLogger(&config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: path,
	})
	require.NoError(t, err)

	logger.Log("WARN", "no decisions for country this turn", map[string]interface{}{"turn": 3})

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "no decisions for country this turn", entry["message"])
	assert.Equal(t, float64(3), entry["turn"])
}

func TestNewLogger_FileOutputRequiresPath(t *testing.T) {
	_, err := logging.NewLogger(&config.LoggingConfig{
		Level:  "info",
		Format: "text",
		Output: "file",
	})
	assert.Error(t, err)
}
