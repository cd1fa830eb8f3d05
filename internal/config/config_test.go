package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"port": 9000,
		"subject_name": "Rajath",
		"resume_path": "files/rajath.pdf",
		"stream_chat": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "Rajath", cfg.SubjectName)
	assert.Equal(t, "files/rajath.pdf", cfg.ResumePath)
	assert.True(t, cfg.StreamChat)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Port: 9000, Model: "gemini-2.5-pro"}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "gemini-2.5-pro", merged.Model)
	assert.Equal(t, "Rajath", merged.SubjectName)
	assert.Equal(t, "files/resume.pdf", merged.ResumePath)
	assert.Equal(t, "files/summary.txt", merged.SummaryPath)
	assert.Equal(t, "static", merged.StaticDir)
}

func TestApplyEnv_Overrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("PORT", "8123")

	cfg := Defaults()
	cfg.APIKey = "file-key"

	err := cfg.ApplyEnv()
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, 8123, cfg.Port)
}

func TestApplyEnv_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	cfg := Defaults()
	err := cfg.ApplyEnv()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid PORT")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantError string
	}{
		{
			name: "valid",
			cfg:  Config{Port: 8000, APIKey: "key"},
		},
		{
			name:      "port out of range",
			cfg:       Config{Port: 70000, APIKey: "key"},
			wantError: "out of range",
		},
		{
			name:      "missing API key",
			cfg:       Config{Port: 8000},
			wantError: "API key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantError == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
			}
		})
	}
}
