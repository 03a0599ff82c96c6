// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// LoaderAny accepts versions built for any mod loader.
	LoaderAny ModLoader = ""
	// LoaderFabric selects Fabric builds.
	LoaderFabric ModLoader = "fabric"
	// LoaderForge selects Forge builds.
	LoaderForge ModLoader = "forge"
	// LoaderNeoForge selects NeoForge builds.
	LoaderNeoForge ModLoader = "neoforge"
	// LoaderQuilt selects Quilt builds.
	LoaderQuilt ModLoader = "quilt"

	// PermissionsPerEntry keeps each archived file's own permission bits.
	// Defined locally to avoid coupling config to internal/backup.
	PermissionsPerEntry BackupPermissions = "entry"
	// PermissionsFromRoot stamps archived files with the mod directory's bits.
	PermissionsFromRoot BackupPermissions = "root"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// LogLevelDebug logs everything.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs informational messages and above.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs warnings and errors.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs errors only.
	LogLevelError LogLevel = "error"
)

var (
	// ErrModDirNotSet is returned when no mod directory is configured. Commands
	// that touch the mod directory treat it as fatal to the command only.
	ErrModDirNotSet = errors.New("mod directory is not configured")
	// ErrUnknownKey is returned by Set for keys that do not exist.
	ErrUnknownKey = errors.New("unknown configuration key")
	// ErrInvalidValue is the sentinel wrapped by InvalidValueError.
	ErrInvalidValue = errors.New("invalid configuration value")
	// ErrInvalidConfig is the sentinel wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ModLoader names a mod loader as used by the Modrinth API.
	ModLoader string

	// BackupPermissions selects where archived permission bits come from.
	BackupPermissions string

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// LogLevel is the minimum level written to the log file.
	LogLevel string

	// InvalidValueError is returned when a field holds a value outside its domain.
	// It wraps ErrInvalidValue for errors.Is() compatibility.
	InvalidValueError struct {
		Key     string
		Value   string
		Allowed []string
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig and collects the field-level errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// ModDir is the directory holding installed mod jars.
		ModDir string `json:"mod_dir" mapstructure:"mod_dir"`
		// MinecraftVersion is the default game version for installs.
		MinecraftVersion string `json:"minecraft_version" mapstructure:"minecraft_version"`
		// Loader restricts installs to one mod loader; empty accepts any.
		Loader ModLoader `json:"loader" mapstructure:"loader"`
		// Backup configures the mod directory archiver.
		Backup BackupConfig `json:"backup" mapstructure:"backup"`
		// API configures the Modrinth client.
		API APIConfig `json:"api" mapstructure:"api"`
		// UI configures console output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Log configures the optional log file.
		Log LogConfig `json:"log" mapstructure:"log"`
	}

	// BackupConfig configures backups.
	BackupConfig struct {
		Permissions BackupPermissions `json:"permissions" mapstructure:"permissions"`
	}

	// APIConfig configures the Modrinth API client.
	APIConfig struct {
		BaseURL        string `json:"base_url" mapstructure:"base_url"`
		UserAgent      string `json:"user_agent" mapstructure:"user_agent"`
		TimeoutSeconds int    `json:"timeout_seconds" mapstructure:"timeout_seconds"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose error output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// LogConfig configures file logging.
	LogConfig struct {
		File  string   `json:"file" mapstructure:"file"`
		Level LogLevel `json:"level" mapstructure:"level"`
	}
)

// IsValid reports whether l is a known loader.
func (l ModLoader) IsValid() bool {
	switch l {
	case LoaderAny, LoaderFabric, LoaderForge, LoaderNeoForge, LoaderQuilt:
		return true
	default:
		return false
	}
}

// IsValid reports whether p is a known permission source.
func (p BackupPermissions) IsValid() bool {
	return p == PermissionsPerEntry || p == PermissionsFromRoot
}

// IsValid reports whether c is a known color scheme.
func (c ColorScheme) IsValid() bool {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true
	default:
		return false
	}
}

// IsValid reports whether l is a known log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	default:
		return false
	}
}

// Error implements the error interface for InvalidValueError.
func (e *InvalidValueError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("invalid %s %q", e.Key, e.Value)
	}
	return fmt.Sprintf("invalid %s %q: must be one of %s", e.Key, e.Value, strings.Join(e.Allowed, ", "))
}

// Unwrap returns ErrInvalidValue for errors.Is() compatibility.
func (e *InvalidValueError) Unwrap() error { return ErrInvalidValue }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, fe := range e.FieldErrors {
		msgs = append(msgs, fe.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Validate checks every enumerated field and returns an *InvalidConfigError
// listing each offending value.
func (c *Config) Validate() error {
	var errs []error
	if !c.Loader.IsValid() {
		errs = append(errs, &InvalidValueError{Key: "loader", Value: string(c.Loader), Allowed: loaderNames()})
	}
	if !c.Backup.Permissions.IsValid() {
		errs = append(errs, &InvalidValueError{Key: "backup.permissions", Value: string(c.Backup.Permissions), Allowed: []string{"entry", "root"}})
	}
	if !c.UI.ColorScheme.IsValid() {
		errs = append(errs, &InvalidValueError{Key: "ui.color_scheme", Value: string(c.UI.ColorScheme), Allowed: []string{"auto", "dark", "light"}})
	}
	if !c.Log.Level.IsValid() {
		errs = append(errs, &InvalidValueError{Key: "log.level", Value: string(c.Log.Level), Allowed: []string{"debug", "info", "warn", "error"}})
	}
	if c.API.TimeoutSeconds <= 0 {
		errs = append(errs, &InvalidValueError{Key: "api.timeout_seconds", Value: fmt.Sprint(c.API.TimeoutSeconds)})
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// RequireModDir returns the configured mod directory or ErrModDirNotSet.
func (c *Config) RequireModDir() (string, error) {
	dir := strings.TrimSpace(c.ModDir)
	if dir == "" {
		return "", ErrModDirNotSet
	}
	return dir, nil
}

func loaderNames() []string {
	return []string{`""`, "fabric", "forge", "neoforge", "quilt"}
}

// TimeoutDuration returns api.timeout_seconds as a duration.
func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}
