// Package config loads seatnorm configuration from JSONC files and CLI
// overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/seatnorm/internal/logging"
)

// Error variables for configuration.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrManifestRequired   = errors.New("no manifest configured (set \"manifest\" in " + FileName + " or pass --manifest)")
	ErrInvalidJobs        = errors.New("jobs must be non-negative")
)

// FileName is the default project config file name.
const FileName = ".seatnorm.json"

// historyFileName is the REPL history file placed in $HOME by default.
const historyFileName = ".seatnorm_history"

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	Manifest    string `json:"manifest,omitempty"`
	LogLevel    string `json:"log_level,omitempty"`
	Jobs        int    `json:"jobs,omitempty"`
	HistoryFile string `json:"history_file,omitempty"`

	// Resolved values (computed, not serialized)
	EffectiveCwd   string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	ManifestAbs    string `json:"-"` // Absolute manifest path, empty if none configured
	HistoryFileAbs string `json:"-"` // Absolute REPL history path, empty to disable history
	EffectiveJobs  int    `json:"-"` // Jobs, with 0 replaced by the CPU count

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		LogLevel: logging.DefaultLevel,
	}
}

// globalPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/seatnorm/config.json if set, otherwise
// ~/.config/seatnorm/config.json. Returns empty string if home directory
// cannot be determined.
func globalPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "seatnorm", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "seatnorm", "config.json")
	}

	return ""
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride  string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath       string            // -c/--config flag value
	ManifestOverride string            // -m/--manifest flag value; empty means no override
	LogLevelOverride string            // --log-level flag value; empty means no override
	Env              map[string]string // environment variables
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/seatnorm/config.json or $XDG_CONFIG_HOME/seatnorm/config.json)
// 3. Project config file at default location (.seatnorm.json, if exists)
// 4. Explicit config file via ConfigPath (replaces 3)
// 5. CLI overrides.
//
// All paths in the returned Config are resolved to absolute paths.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := Default()

	globalCfg, globalFile, err := loadGlobal(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalFile
	cfg = merge(cfg, globalCfg)

	projectCfg, projectFile, err := loadProject(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectFile
	cfg = merge(cfg, projectCfg)

	if input.ManifestOverride != "" {
		cfg.Manifest = input.ManifestOverride
	}

	if input.LogLevelOverride != "" {
		cfg.LogLevel = input.LogLevelOverride
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	cfg.EffectiveCwd = workDir
	cfg.ManifestAbs = absolute(workDir, cfg.Manifest)

	cfg.HistoryFileAbs = absolute(workDir, cfg.HistoryFile)
	if cfg.HistoryFileAbs == "" && input.Env["HOME"] != "" {
		cfg.HistoryFileAbs = filepath.Join(input.Env["HOME"], historyFileName)
	}

	cfg.EffectiveJobs = cfg.Jobs
	if cfg.EffectiveJobs == 0 {
		cfg.EffectiveJobs = runtime.NumCPU()
	}

	return cfg, nil
}

// absolute resolves path against workDir; empty stays empty.
func absolute(workDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(workDir, path)
}

// loadGlobal loads the global user config file if it exists.
// Returns the config, the path if loaded, and any error.
func loadGlobal(env map[string]string) (Config, string, error) {
	path := globalPath(env)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, loaded, err := loadFile(path, false)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return cfg, path, nil
}

// loadProject loads the project config file (.seatnorm.json) or an explicit
// config file. Returns the config, the path if loaded, and any error.
func loadProject(workDir, configPath string) (Config, string, error) {
	var (
		path      string
		mustExist bool
	)

	if configPath != "" {
		// Explicit config file - must exist
		path = absolute(workDir, configPath)
		mustExist = true

		if _, statErr := os.Stat(path); statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	} else {
		// Default project config file - optional
		path = filepath.Join(workDir, FileName)
	}

	cfg, loaded, err := loadFile(path, mustExist)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	// Relative paths inside a config file are relative to that file.
	cfg.Manifest = absolute(filepath.Dir(path), cfg.Manifest)
	cfg.HistoryFile = absolute(filepath.Dir(path), cfg.HistoryFile)

	return cfg, path, nil
}

// loadFile loads a config file. If mustExist is false, missing files return
// zero config. Returns the config, whether the file was loaded, and any error.
func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, false, nil
	}

	cfg, parseErr := parse(data)
	if parseErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, true, nil
}

func parse(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return cfg, nil
}

func merge(base, overlay Config) Config {
	if overlay.Manifest != "" {
		base.Manifest = overlay.Manifest
	}

	if overlay.LogLevel != "" {
		base.LogLevel = overlay.LogLevel
	}

	if overlay.Jobs != 0 {
		base.Jobs = overlay.Jobs
	}

	if overlay.HistoryFile != "" {
		base.HistoryFile = overlay.HistoryFile
	}

	return base
}

func validate(cfg Config) error {
	if cfg.Jobs < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidJobs, cfg.Jobs)
	}

	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}

	return nil
}

// RequireManifest returns [ErrManifestRequired] when no manifest is set.
func (c Config) RequireManifest() (string, error) {
	if c.ManifestAbs == "" {
		return "", ErrManifestRequired
	}

	return c.ManifestAbs, nil
}
