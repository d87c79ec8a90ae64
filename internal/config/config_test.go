package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/seatnorm/internal/config"
	"github.com/calvinalkan/seatnorm/internal/logging"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func Test_Load_Defaults_When_No_Files(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := config.Load(config.LoadInput{WorkDirOverride: dir, Env: map[string]string{}})
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.EffectiveCwd)
	assert.Equal(t, logging.DefaultLevel, cfg.LogLevel)
	assert.Empty(t, cfg.ManifestAbs)
	assert.Empty(t, cfg.HistoryFileAbs, "no HOME means no history")
	assert.Equal(t, runtime.NumCPU(), cfg.EffectiveJobs)
	assert.Equal(t, config.Sources{}, cfg.Sources)

	_, err = cfg.RequireManifest()
	require.ErrorIs(t, err, config.ErrManifestRequired)
}

func Test_Load_Project_File_With_Comments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, config.FileName), `{
		// venue export
		"manifest": "data/manifest.csv",
		"log_level": "debug",
		"jobs": 3,
	}`)

	cfg, err := config.Load(config.LoadInput{WorkDirOverride: dir, Env: map[string]string{}})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data", "manifest.csv"), cfg.ManifestAbs)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3, cfg.EffectiveJobs)
	assert.Equal(t, filepath.Join(dir, config.FileName), cfg.Sources.Project)

	path, err := cfg.RequireManifest()
	require.NoError(t, err)
	assert.Equal(t, cfg.ManifestAbs, path)
}

func Test_Load_Precedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	xdg := t.TempDir()
	globalFile := filepath.Join(xdg, "seatnorm", "config.json")

	writeFile(t, globalFile, `{"manifest": "/global/manifest.csv", "log_level": "error", "jobs": 2}`)
	writeFile(t, filepath.Join(dir, config.FileName), `{"log_level": "info"}`)

	env := map[string]string{"XDG_CONFIG_HOME": xdg}

	cfg, err := config.Load(config.LoadInput{WorkDirOverride: dir, Env: env})
	require.NoError(t, err)

	assert.Equal(t, "/global/manifest.csv", cfg.ManifestAbs, "global value survives when project omits it")
	assert.Equal(t, "info", cfg.LogLevel, "project beats global")
	assert.Equal(t, 2, cfg.Jobs)
	assert.Equal(t, globalFile, cfg.Sources.Global)

	cfg, err = config.Load(config.LoadInput{
		WorkDirOverride:  dir,
		ManifestOverride: "cli.csv",
		LogLevelOverride: "warn",
		Env:              env,
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "cli.csv"), cfg.ManifestAbs, "CLI beats files")
	assert.Equal(t, "warn", cfg.LogLevel)
}

func Test_Load_Global_From_Home(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	home := t.TempDir()
	writeFile(t, filepath.Join(home, ".config", "seatnorm", "config.json"), `{"history_file": "/tmp/hist"}`)

	cfg, err := config.Load(config.LoadInput{WorkDirOverride: dir, Env: map[string]string{"HOME": home}})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/hist", cfg.HistoryFileAbs)
}

func Test_Load_History_Defaults_To_Home(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	home := t.TempDir()

	cfg, err := config.Load(config.LoadInput{WorkDirOverride: dir, Env: map[string]string{"HOME": home}})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".seatnorm_history"), cfg.HistoryFileAbs)
}

func Test_Load_Explicit_Config_Replaces_Project(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, config.FileName), `{"manifest": "project.csv"}`)
	writeFile(t, filepath.Join(dir, "conf", "custom.json"), `{"manifest": "custom.csv"}`)

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: dir,
		ConfigPath:      filepath.Join("conf", "custom.json"),
		Env:             map[string]string{},
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "conf", "custom.csv"), cfg.ManifestAbs, "relative to the config file")
	assert.Equal(t, filepath.Join(dir, "conf", "custom.json"), cfg.Sources.Project)
}

func Test_Load_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		input   config.LoadInput
		wantErr error
	}{
		{
			name:    "explicit config missing",
			input:   config.LoadInput{ConfigPath: "nope.json"},
			wantErr: config.ErrConfigFileNotFound,
		},
		{
			name:    "invalid json",
			file:    `{invalid json}`,
			wantErr: config.ErrConfigInvalid,
		},
		{
			name:    "wrong type",
			file:    `{"jobs": "many"}`,
			wantErr: config.ErrConfigInvalid,
		},
		{
			name:    "negative jobs",
			file:    `{"jobs": -1}`,
			wantErr: config.ErrInvalidJobs,
		},
		{
			name:    "bad log level in file",
			file:    `{"log_level": "loud"}`,
			wantErr: logging.ErrInvalidLogLevel,
		},
		{
			name:    "bad log level override",
			input:   config.LoadInput{LogLevelOverride: "verbose"},
			wantErr: logging.ErrInvalidLogLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			if tt.file != "" {
				writeFile(t, filepath.Join(dir, config.FileName), tt.file)
			}

			input := tt.input
			input.WorkDirOverride = dir
			input.Env = map[string]string{}

			_, err := config.Load(input)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
