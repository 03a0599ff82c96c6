// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Entry is one flattened configuration key and its printable value.
type Entry struct {
	Key   string
	Value string
}

var keys = []string{
	"mod_dir",
	"minecraft_version",
	"loader",
	"backup.permissions",
	"api.base_url",
	"api.user_agent",
	"api.timeout_seconds",
	"ui.verbose",
	"ui.color_scheme",
	"log.file",
	"log.level",
}

// Keys returns every settable key in display order.
func Keys() []string {
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Entries flattens cfg into key/value pairs in the order of Keys.
func Entries(cfg *Config) []Entry {
	return []Entry{
		{"mod_dir", cfg.ModDir},
		{"minecraft_version", cfg.MinecraftVersion},
		{"loader", string(cfg.Loader)},
		{"backup.permissions", string(cfg.Backup.Permissions)},
		{"api.base_url", cfg.API.BaseURL},
		{"api.user_agent", cfg.API.UserAgent},
		{"api.timeout_seconds", strconv.Itoa(cfg.API.TimeoutSeconds)},
		{"ui.verbose", strconv.FormatBool(cfg.UI.Verbose)},
		{"ui.color_scheme", string(cfg.UI.ColorScheme)},
		{"log.file", cfg.Log.File},
		{"log.level", string(cfg.Log.Level)},
	}
}

// Set assigns value to key on cfg. cfg is left untouched when the key is
// unknown or the value is rejected.
func Set(cfg *Config, key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))

	switch key {
	case "mod_dir":
		cfg.ModDir = value

	case "minecraft_version":
		cfg.MinecraftVersion = strings.ToLower(value)

	case "loader":
		l := ModLoader(strings.ToLower(value))
		if !l.IsValid() {
			return &InvalidValueError{Key: key, Value: value, Allowed: loaderNames()}
		}
		cfg.Loader = l

	case "backup.permissions":
		p := BackupPermissions(value)
		if !p.IsValid() {
			return &InvalidValueError{Key: key, Value: value, Allowed: []string{"entry", "root"}}
		}
		cfg.Backup.Permissions = p

	case "api.base_url":
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return &InvalidValueError{Key: key, Value: value}
		}
		cfg.API.BaseURL = strings.TrimRight(value, "/")

	case "api.user_agent":
		cfg.API.UserAgent = value

	case "api.timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 || n > 600 {
			return &InvalidValueError{Key: key, Value: value}
		}
		cfg.API.TimeoutSeconds = n

	case "ui.verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &InvalidValueError{Key: key, Value: value, Allowed: []string{"true", "false"}}
		}
		cfg.UI.Verbose = b

	case "ui.color_scheme":
		c := ColorScheme(value)
		if !c.IsValid() {
			return &InvalidValueError{Key: key, Value: value, Allowed: []string{"auto", "dark", "light"}}
		}
		cfg.UI.ColorScheme = c

	case "log.file":
		cfg.Log.File = value

	case "log.level":
		l := LogLevel(value)
		if !l.IsValid() {
			return &InvalidValueError{Key: key, Value: value, Allowed: []string{"debug", "info", "warn", "error"}}
		}
		cfg.Log.Level = l

	default:
		return fmt.Errorf("%w: %s (valid keys: %s)", ErrUnknownKey, key, strings.Join(keys, ", "))
	}

	return nil
}
