package configuration

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockGenericConfigProvider is a [genericConfigProvider] mock.
type mockGenericConfigProvider struct {
	mock.Mock
}

func (m *mockGenericConfigProvider) Read(filenames ...string) (map[string]string, error) {
	args := m.Called(filenames)

	envMap, _ := args.Get(0).(map[string]string)

	return envMap, args.Error(1)
}

// TestLoad_Success tests reading settings from an environment file.
func TestLoad_Success(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), DefaultFile)
	content := "ATOMFS_LOG_LEVEL=debug\nATOMFS_VERIFY_COPIES=yes\nATOMFS_LOCK_APPENDS=false\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	handler := NewHandler(&GodotenvProvider{})

	config, err := handler.Load(file)
	require.NoError(t, err, "no error should occur")

	assert.Equal(t, slog.LevelDebug, config.LogLevel)
	assert.True(t, config.VerifyCopies)
	assert.False(t, config.CopyOnWindows, "unset keys should keep their default")
	assert.False(t, config.LockAppends)
}

// TestLoad_Success_MissingFile tests that a missing file yields the
// defaults.
func TestLoad_Success_MissingFile(t *testing.T) {
	t.Parallel()

	handler := NewHandler(&GodotenvProvider{})

	config, err := handler.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err, "missing file should not be an error")
	assert.Equal(t, NewAppConfiguration(), config)
}

// TestLoad_Fail_Reader tests that reader errors are passed on.
func TestLoad_Fail_Reader(t *testing.T) {
	t.Parallel()

	readErr := errors.New("malformed")

	provider := &mockGenericConfigProvider{}
	provider.On("Read", []string{"broken.env"}).Return(nil, readErr).Once()

	handler := NewHandler(provider)

	_, err := handler.Load("broken.env")
	require.ErrorIs(t, err, readErr)

	provider.AssertExpectations(t)
}

// TestMapKeyToBool_Success tests the accepted boolean spellings.
func TestMapKeyToBool_Success(t *testing.T) {
	t.Parallel()

	handler := NewHandler(&mockGenericConfigProvider{})
	envMap := map[string]string{
		"A": "true", "B": "0", "C": "on", "D": "No", "E": "maybe",
	}

	assert.True(t, handler.MapKeyToBool(envMap, "A", false))
	assert.False(t, handler.MapKeyToBool(envMap, "B", true))
	assert.True(t, handler.MapKeyToBool(envMap, "C", false))
	assert.False(t, handler.MapKeyToBool(envMap, "D", true))
	assert.True(t, handler.MapKeyToBool(envMap, "E", true), "invalid values should yield the default")
	assert.False(t, handler.MapKeyToBool(envMap, "MISSING", false))
}

// TestMapKeyToLevel_Success tests parsing log levels.
func TestMapKeyToLevel_Success(t *testing.T) {
	t.Parallel()

	handler := NewHandler(&mockGenericConfigProvider{})
	envMap := map[string]string{"A": "WARN", "B": "loud"}

	assert.Equal(t, slog.LevelWarn, handler.MapKeyToLevel(envMap, "A", slog.LevelInfo))
	assert.Equal(t, slog.LevelInfo, handler.MapKeyToLevel(envMap, "B", slog.LevelInfo))
	assert.Equal(t, slog.LevelError, handler.MapKeyToLevel(envMap, "C", slog.LevelError))
}

// TestGodotenvProvider_Layered tests that later files and the process
// environment override earlier values.
func TestGodotenvProvider_Layered(t *testing.T) {
	dir := t.TempDir()
	global := filepath.Join(dir, "global.env")
	local := filepath.Join(dir, "local.env")
	require.NoError(t, os.WriteFile(global, []byte("ATOMFS_LOG_LEVEL=debug\nATOMFS_LOCK_APPENDS=no\n"), 0o644))
	require.NoError(t, os.WriteFile(local, []byte("ATOMFS_LOG_LEVEL=warn\n"), 0o644))

	t.Setenv(KeyVerifyCopies, "on")

	provider := &GodotenvProvider{Prefix: EnvPrefix}

	envMap, err := provider.Read(global, filepath.Join(dir, "missing.env"), local)
	require.NoError(t, err)

	assert.Equal(t, "warn", envMap[KeyLogLevel])
	assert.Equal(t, "no", envMap[KeyLockAppends])
	assert.Equal(t, "on", envMap[KeyVerifyCopies])
}
