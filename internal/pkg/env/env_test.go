package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetEnv(t *testing.T) {
	t.Helper()
	prev := Env
	Env = map[string]string{}
	t.Cleanup(func() { Env = prev })
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestGetEnv_PrefersLoadedFile(t *testing.T) {
	resetEnv(t)
	t.Setenv("PLAN_CHANGE_POLICY", "base")

	assert.Equal(t, "base", GetEnv("PLAN_CHANGE_POLICY", "standard"))

	Env["PLAN_CHANGE_POLICY"] = "standard"
	assert.Equal(t, "standard", GetEnv("PLAN_CHANGE_POLICY", "base"))

	assert.Equal(t, "fallback", GetEnv("PLAN_CHANGE_UNSET_KEY", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	resetEnv(t)
	Env["CACHE_DB"] = "3"
	Env["CACHE_BROKEN"] = "three"

	assert.Equal(t, 3, GetEnvInt("CACHE_DB", 0))
	assert.Equal(t, 7, GetEnvInt("CACHE_BROKEN", 7))
	assert.Equal(t, 1, GetEnvInt("CACHE_MISSING", 1))
}

func TestGetEnvDuration(t *testing.T) {
	resetEnv(t)
	Env["PLAN_CHANGE_CACHE_TTL"] = "90s"
	Env["PLAN_CHANGE_BROKEN_TTL"] = "soon"

	assert.Equal(t, 90*time.Second, GetEnvDuration("PLAN_CHANGE_CACHE_TTL", time.Minute))
	assert.Equal(t, time.Minute, GetEnvDuration("PLAN_CHANGE_BROKEN_TTL", time.Minute))
	assert.Equal(t, 5*time.Minute, GetEnvDuration("PLAN_CHANGE_MISSING_TTL", 5*time.Minute))
}

func TestSetupEnvFile(t *testing.T) {
	resetEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DB_NAME=plans_test\nAPP_ENV=dev\n"), 0o600))
	chdir(t, dir)

	require.NoError(t, SetupEnvFile())
	assert.Equal(t, "plans_test", GetEnv("DB_NAME", ""))
	assert.True(t, IsDev())
}

func TestSetupEnvFile_Missing(t *testing.T) {
	resetEnv(t)
	chdir(t, filepath.Join(t.TempDir()))

	assert.ErrorIs(t, SetupEnvFile(), ErrNoEnvFile)
	assert.NotNil(t, Env)
	assert.False(t, IsDev())
}
