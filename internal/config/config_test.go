package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_UsesDefaultsWhenNoFileOrEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "data/input", cfg.InputDir)
	assert.Equal(t, "milp", cfg.Algorithm)
	assert.Equal(t, 900.0, cfg.Solver.TimeLimitSeconds)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "scheduler.yaml"), []byte("algorithm: greedy\nmax_iterations: 3\n"), 0o644))

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "greedy", cfg.Algorithm)
	assert.Equal(t, 3, cfg.MaxIterations)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "scheduler.yaml"), []byte("algorithm: greedy\n"), 0o644))
	t.Setenv("SCHEDULER_ALGORITHM", "milp")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "milp", cfg.Algorithm)
}

func TestLoad_AcceptsBothAlgorithm(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "scheduler.yaml"), []byte("algorithm: both\n"), 0o644))

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "both", cfg.Algorithm)
}

func TestLoad_RejectsUnknownAlgorithm(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "scheduler.yaml"), []byte("algorithm: quantum\n"), 0o644))

	_, err = Load(viper.New())
	assert.ErrorContains(t, err, "algorithm")
}
