package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the global config at a temp dir, runs from another temp
// dir, and clears INQUIRY_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	for _, b := range envBindings {
		t.Setenv(b[1], "")
	}
	work := filepath.Join(tmpDir, "work")
	require.NoError(t, os.MkdirAll(work, 0755))
	t.Chdir(work)
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	t.Run("with XDG_CONFIG_HOME set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		if got := GlobalPath(); got != "/custom/config/inquiry/inquiry.yml" {
			t.Errorf("GlobalPath() = %v", got)
		}
	})

	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		got := GlobalPath()
		if !filepath.IsAbs(got) {
			t.Errorf("GlobalPath() should return absolute path, got %v", got)
		}
		if filepath.Base(got) != "inquiry.yml" {
			t.Errorf("GlobalPath() should end with inquiry.yml, got %v", got)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, Exists())
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(GlobalPath()), 0755))
	require.NoError(t, os.WriteFile(GlobalPath(), []byte("data_dir: /global\nlog_level: debug\nsubmit_timeout: 20s\n"), 0644))
	require.NoError(t, os.WriteFile(ProjectPath(), []byte("log_level: warn\nbanner_duration: 2s\n"), 0644))
	t.Setenv("INQUIRY_SUBMIT_TIMEOUT", "45s")
	t.Setenv("INQUIRY_UPLOAD_ATTACHMENTS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, Exists())
	assert.Equal(t, "/global", cfg.DataDir, "global value survives when project does not set it")
	assert.Equal(t, "warn", cfg.LogLevel, "project overrides global")
	assert.Equal(t, 2*time.Second, cfg.BannerDuration)
	assert.Equal(t, 45*time.Second, cfg.SubmitTimeout, "env overrides files")
	assert.False(t, cfg.UploadAttachments)
	assert.Equal(t, DefaultRetentionDays, cfg.RetentionDays)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(ProjectPath(), []byte("submit_timeout: 0s\nretention_days: -1\n"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "submit_timeout")
	assert.Contains(t, err.Error(), "retention_days")
}

func TestWriteGlobal_RoundTrip(t *testing.T) {
	isolate(t)

	cfg := &Config{
		DataDir:           ".test",
		LogLevel:          "debug",
		LogFile:           "/tmp/test.log",
		SubmitTimeout:     30 * time.Second,
		BannerDuration:    3 * time.Second,
		UploadAttachments: false,
		RetentionDays:     30,
	}
	require.NoError(t, WriteGlobal(cfg))

	data, err := os.ReadFile(GlobalPath())
	require.NoError(t, err)
	for _, field := range []string{
		"data_dir: .test",
		"log_level: debug",
		"log_file: /tmp/test.log",
		"submit_timeout: 30s",
		"banner_duration: 3s",
		"upload_attachments: false",
		"retention_days: 30",
	} {
		assert.Contains(t, string(data), field)
	}

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestWriteProject(t *testing.T) {
	isolate(t)

	require.NoError(t, WriteProject(Default()))
	_, err := os.Stat(ProjectPath())
	require.NoError(t, err)

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)
}

func TestRetention(t *testing.T) {
	cfg := Default()
	cfg.RetentionDays = 2
	assert.Equal(t, 48*time.Hour, cfg.Retention())
}
