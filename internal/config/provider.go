// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from (and saving to) a specific file when set.
	ConfigFilePath string
	// ConfigDirPath overrides the config directory lookup when set.
	ConfigDirPath string
}

// Provider loads and persists configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
	Save(ctx context.Context, opts LoadOptions, cfg *Config) (string, error)
	Path(opts LoadOptions) (string, error)
}

type fileProvider struct{}

// NewProvider creates a configuration provider backed by config.cue.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to the file Load would read and returns its path.
func (p *fileProvider) Save(ctx context.Context, opts LoadOptions, cfg *Config) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := p.Path(opts)
	if err != nil {
		return "", err
	}
	if err := Save(cfg, path); err != nil {
		return "", err
	}
	return path, nil
}

// Path resolves the config file location for opts.
func (p *fileProvider) Path(opts LoadOptions) (string, error) {
	return FilePath(opts)
}
