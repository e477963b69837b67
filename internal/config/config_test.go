package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Store:  StoreConfig{DataPath: "/some/path"},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	err := validConfig().Validate()
	assert.NoError(t, err)
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"WARN", true}, // levels are case insensitive
		{"trace", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_MailRequiresAdmin(t *testing.T) {
	cfg := validConfig()
	cfg.Mail.Host = "smtp.example.com"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_EMAIL")

	cfg.Mail.AdminEmail = "admin@example.com"
	assert.NoError(t, cfg.Validate())
}

func TestExpandPath(t *testing.T) {
	t.Run("empty uses default", func(t *testing.T) {
		got, err := expandPath("", "/default")
		require.NoError(t, err)
		assert.Equal(t, "/default", got)
	})

	t.Run("tilde expands to home", func(t *testing.T) {
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		got, err := expandPath("~/wisher", "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "wisher"), got)
	})

	t.Run("relative becomes absolute", func(t *testing.T) {
		got, err := expandPath("data", "")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
	})
}

func TestLoadEnvFile(t *testing.T) {
	tmpDir := t.TempDir()
	envPath := filepath.Join(tmpDir, ".env")

	content := "# comment line\nWISHER_TEST_KEY=hello\nWISHER_TEST_QUOTED=\"quoted value\"\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0600))

	t.Cleanup(func() {
		os.Unsetenv("WISHER_TEST_KEY")
		os.Unsetenv("WISHER_TEST_QUOTED")
	})

	err := loadEnvFile(envPath)
	require.NoError(t, err)

	assert.Equal(t, "hello", os.Getenv("WISHER_TEST_KEY"))
	assert.Equal(t, "quoted value", os.Getenv("WISHER_TEST_QUOTED"))
}

func TestLoadEnvFile_EnvVarsWin(t *testing.T) {
	tmpDir := t.TempDir()
	envPath := filepath.Join(tmpDir, ".env")

	require.NoError(t, os.WriteFile(envPath, []byte("WISHER_TEST_PRECEDENCE=file\n"), 0600))
	t.Setenv("WISHER_TEST_PRECEDENCE", "env")

	err := loadEnvFile(envPath)
	require.NoError(t, err)

	assert.Equal(t, "env", os.Getenv("WISHER_TEST_PRECEDENCE"))
}

func TestGetIntConfigValue(t *testing.T) {
	assert.Equal(t, 587, getIntConfigValue("", "WISHER_MISSING_INT", 587))

	t.Setenv("WISHER_TEST_INT", "2525")
	assert.Equal(t, 2525, getIntConfigValue("", "WISHER_TEST_INT", 587))

	t.Setenv("WISHER_TEST_INT", "not-a-number")
	assert.Equal(t, 587, getIntConfigValue("", "WISHER_TEST_INT", 587))
}
