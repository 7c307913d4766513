package game

import "path/filepath"

// Config holds the extraction-domain settings: where the exported table
// documents live, where catalogs are written, and how control-prompt tokens
// are rendered.
type Config struct {
	// DataDir is the root data directory.
	DataDir string `mapstructure:"data_dir" default:"data"`
	// TableDir is the directory holding the exported MXML table documents.
	TableDir string `mapstructure:"table_dir" default:"data/mbin"`
	// OutputDir is the directory catalogs are written to.
	OutputDir string `mapstructure:"output_dir" default:"data/json"`
	// Platform selects the control-prompt icon table (Win, Psn, Xbx, Nsw).
	Platform string `mapstructure:"platform" default:"Win"`
	// RawTokens leaves control-prompt tokens untouched in resolved text.
	RawTokens bool `mapstructure:"raw_tokens" default:"false"`
}

// TablePath returns the path of one exported table document.
func (c Config) TablePath(name string) string {
	return filepath.Join(c.TableDir, name)
}

// OutputPath returns the path of one generated catalog file.
func (c Config) OutputPath(name string) string {
	return filepath.Join(c.OutputDir, name)
}
