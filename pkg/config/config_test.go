package config

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "./data", config.DataDir)
	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, "127.0.0.1", config.Bind)
	assert.Equal(t, "auto", config.Security.APIKey)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, 16<<20, config.Decode.MaxSize)
	assert.False(t, config.Decode.VersionGate)
	assert.True(t, config.Decode.StrictEntryCount)
	assert.Equal(t, []string{".bin", ".ods"}, config.Watch.Extensions)
	assert.NoError(t, config.Validate())
}

func TestDecode_CodecConfig(t *testing.T) {
	c := Decode{MaxSize: 1024, VersionGate: true, StrictEntryCount: true}.CodecConfig()
	assert.Equal(t, 1024, c.MaxSize)
	assert.True(t, c.VersionGate)
	assert.False(t, c.LenientEntryCount)
	assert.Nil(t, c.RichText)

	lenient := Decode{}.CodecConfig()
	assert.True(t, lenient.LenientEntryCount)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "invalid port"},
		{name: "negative max size", mutate: func(c *Config) { c.Decode.MaxSize = -1 }, wantErr: "invalid decode max_size"},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "chatty" }, wantErr: "invalid logging level"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig()
			tc.mutate(config)
			err := config.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestGenerateSecureKey(t *testing.T) {
	t.Run("generate 32 byte key", func(t *testing.T) {
		key, err := GenerateSecureKey(32)
		require.NoError(t, err)
		assert.Len(t, key, 64) // 32 bytes = 64 hex characters

		// Verify it's valid hex
		_, err = hex.DecodeString(key)
		assert.NoError(t, err)
	})

	t.Run("generate different keys", func(t *testing.T) {
		key1, err := GenerateSecureKey(16)
		require.NoError(t, err)
		key2, err := GenerateSecureKey(16)
		require.NoError(t, err)

		assert.NotEqual(t, key1, key2)
	})

	t.Run("zero length", func(t *testing.T) {
		key, err := GenerateSecureKey(0)
		require.NoError(t, err)
		assert.Empty(t, key)
	})
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := &Config{
		DataDir:  "/custom/data",
		Port:     9000,
		Bind:     "0.0.0.0",
		Security: Security{APIKey: "test-api-key"},
		Logging:  Logging{Level: "debug"},
		Decode:   Decode{MaxSize: 4096, VersionGate: true},
		Watch:    Watch{Dir: "/srv/outlines", Extensions: []string{".bin"}},
	}

	require.NoError(t, SaveConfig(want, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadConfig_Overlay(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		check func(t *testing.T, c *Config)
	}{
		{
			name: "port only",
			yaml: "port: 9100\n",
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 9100, c.Port)
				assert.True(t, c.Decode.StrictEntryCount)
				assert.Equal(t, "info", c.Logging.Level)
			},
		},
		{
			name: "lenient decode",
			yaml: "decode:\n  strict_entry_count: false\n",
			check: func(t *testing.T, c *Config) {
				assert.False(t, c.Decode.StrictEntryCount)
				assert.Equal(t, DefaultConfig().Decode.MaxSize, c.Decode.MaxSize)
				assert.True(t, c.Decode.CodecConfig().LenientEntryCount)
			},
		},
		{
			name: "watch extensions",
			yaml: "watch:\n  dir: /in\n  extensions: [.ods, .bin]\n",
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "/in", c.Watch.Dir)
				assert.Equal(t, []string{".ods", ".bin"}, c.Watch.Extensions)
				assert.Equal(t, "./data", c.DataDir)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := LoadConfig(writeFile(t, "config.yaml", tt.yaml))
			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "config file does not exist")

	_, err = LoadConfig(writeFile(t, "invalid.yaml", "invalid: yaml: content: ["))
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestSaveConfig_ParentIsFile(t *testing.T) {
	parent := writeFile(t, "not-a-dir", "x")

	err := SaveConfig(DefaultConfig(), filepath.Join(parent, "config.yaml"))
	assert.ErrorContains(t, err, "failed to create config directory")
}

func TestBootstrapConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	c, err := BootstrapConfig(path, "/custom/data/dir")
	require.NoError(t, err)
	assert.Equal(t, "/custom/data/dir", c.DataDir)
	assert.Len(t, c.Security.APIKey, 64)
	_, err = hex.DecodeString(c.Security.APIKey)
	assert.NoError(t, err)
	assert.True(t, ConfigExists(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)

	c, err = BootstrapConfig(filepath.Join(t.TempDir(), "config.yaml"), "")
	require.NoError(t, err)
	assert.Equal(t, "./data", c.DataDir)
}

func TestGetDefaultConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".config", "odsctl", "config.yaml"), GetDefaultConfigPath())
}

func TestConfigExists(t *testing.T) {
	assert.True(t, ConfigExists(writeFile(t, "exists.yaml", "port: 1\n")))
	assert.False(t, ConfigExists(filepath.Join(t.TempDir(), "nope.yaml")))
}
