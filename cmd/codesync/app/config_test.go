package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/codesync/pkg/constants"
	"github.com/agentstation/codesync/pkg/errors"
)

// isolate points HOME at an empty directory and clears the variables
// LoadConfig reads.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"THESAURUS", "NEW_CODES", "EXISTING", "OUT", "SUPPRESS_INFO", "METRICS_FILE", "FORMAT", "LOG_LEVEL", "CONFIG"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultThesaurusPath, config.Thesaurus)
	assert.Equal(t, constants.DefaultNewCodesPath, config.NewCodes)
	assert.Equal(t, constants.DefaultExistingPath, config.Existing)
	assert.Equal(t, constants.DefaultOutputPath, config.Out)
	assert.True(t, config.SuppressInfo)
	assert.Empty(t, config.MetricsFile)
	assert.Empty(t, config.EnvLogLevel)
	assert.Equal(t, "stderr", config.LogOutput)
}

func TestLoadConfigEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("THESAURUS", "/data/Thesaurus.txt")
	t.Setenv("NEW_CODES", "/data/pqcmc.json")
	t.Setenv("SUPPRESS_INFO", "false")
	t.Setenv("METRICS_FILE", "/var/lib/node_exporter/codesync.prom")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "/data/Thesaurus.txt", config.Thesaurus)
	assert.Equal(t, "/data/pqcmc.json", config.NewCodes)
	assert.False(t, config.SuppressInfo)
	assert.Equal(t, "/var/lib/node_exporter/codesync.prom", config.MetricsFile)
	assert.Equal(t, "debug", config.EnvLogLevel)
	assert.Empty(t, config.LogLevel)
}

func TestLoadConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "codesync.yaml")
	require.NoError(t, os.WriteFile(path, []byte("thesaurus: from-file.txt\nout: merged.yaml\nsuppress_info: false\n"), 0o600))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file.txt", config.Thesaurus)
	assert.Equal(t, "merged.yaml", config.Out)
	assert.False(t, config.SuppressInfo)
	assert.Equal(t, path, config.ConfigFile)

	t.Setenv("THESAURUS", "from-env.txt")
	config, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.txt", config.Thesaurus, "environment beats config file")
}

func TestLoadConfigMissingFile(t *testing.T) {
	isolate(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Format: "json", EnvLogLevel: "warn"}
	config.UpdateFromFlags(true, false, true, "", "")

	assert.True(t, config.Verbose)
	assert.True(t, config.NoColor)
	assert.Equal(t, "json", config.Format)
	assert.Empty(t, config.LogLevel)

	config.UpdateFromFlags(false, false, false, "yaml", "trace")
	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, "trace", config.LogLevel)
}
