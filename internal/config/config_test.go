package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_GetOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name: "configured location",
			config: &Config{
				ProjectPath: "/project",
				OutputDir:   "build/test-results",
				OutputFile:  "output.txt",
			},
			expected: "/project/build/test-results/output.txt",
		},
		{
			name: "flag overrides location",
			config: &Config{
				ProjectPath: "/project",
				OutputDir:   "build/test-results",
				OutputFile:  "output.txt",
				Flags:       Flags{OutputFile: "/tmp/other.txt"},
			},
			expected: "/tmp/other.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.GetOutputPath())
		})
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	assert.Equal(t, DefaultProjectPath, cfg.ProjectPath)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, DefaultOutputFile, cfg.OutputFile)
	assert.True(t, cfg.Stats)
	assert.False(t, cfg.IgnoreFailures)
}

func TestConfig_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "optest.yaml")
	content := "output_dir: out\nignore_failures: true\nmetrics_file: out/optest.prom\nstats: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := New()
	require.NoError(t, cfg.LoadFile(path, true))

	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, DefaultOutputFile, cfg.OutputFile)
	assert.True(t, cfg.IgnoreFailures)
	assert.Equal(t, "out/optest.prom", cfg.MetricsFile)
	assert.False(t, cfg.Stats)

	t.Run("missing optional file", func(t *testing.T) {
		assert.NoError(t, New().LoadFile(filepath.Join(dir, "nope.yaml"), false))
	})

	t.Run("missing required file", func(t *testing.T) {
		assert.Error(t, New().LoadFile(filepath.Join(dir, "nope.yaml"), true))
	})

	t.Run("malformed file", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("stats: [nope"), 0644))
		assert.Error(t, New().LoadFile(bad, true))
	})
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv(EnvOutputDir, "env-out")
	t.Setenv(EnvIgnoreFailures, "true")
	t.Setenv(EnvProgress, "1")

	cfg := New()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "env-out", cfg.OutputDir)
	assert.True(t, cfg.IgnoreFailures)
	assert.True(t, cfg.Progress)

	t.Setenv(EnvStats, "sometimes")
	assert.Error(t, New().ApplyEnv())
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: from-file\noutput_file: file.txt\n"), 0644))
	t.Setenv(EnvOutputFile, "env.txt")

	cfg, err := Load(Flags{ConfigFile: path, IgnoreFailures: true})
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.OutputDir)
	assert.Equal(t, "env.txt", cfg.OutputFile)
	assert.True(t, cfg.IgnoreFailures)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, LoadEnv(filepath.Join(dir, ".env")))

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("OPTEST_TEST_ONLY_VALUE=from-dotenv\n"), 0644))
	t.Setenv("OPTEST_TEST_ONLY_VALUE", "")
	os.Unsetenv("OPTEST_TEST_ONLY_VALUE")

	require.NoError(t, LoadEnv(envFile))
	assert.Equal(t, "from-dotenv", os.Getenv("OPTEST_TEST_ONLY_VALUE"))
}
