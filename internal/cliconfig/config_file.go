package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	PagesFile     string   `toml:"pages_file"`
	Pages         []string `toml:"pages"`
	InfinitePages *bool    `toml:"infinite_pages"`
	Start         int      `toml:"start"`
	Watch         *bool    `toml:"watch"`
	Debounce      string   `toml:"debounce"`
	LogLevel      string   `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.pageturn/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".pageturn", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
// A relative pages_file is resolved against the config file's directory
// when cfgDir is not empty.
func ApplyFileConfig(cfg *Config, fc FileConfig, cfgDir string, changed map[string]bool) error {
	s := newConfigSetter(changed)

	pagesFile := fc.PagesFile
	if pagesFile != "" && cfgDir != "" && !filepath.IsAbs(pagesFile) {
		pagesFile = filepath.Join(cfgDir, pagesFile)
	}
	s.setString("pages-file", pagesFile, &cfg.PagesFile)
	s.setStrings("page", fc.Pages, &cfg.Pages)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("debounce", fc.Debounce, &cfg.Debounce); err != nil {
		return err
	}

	s.setInt("start", fc.Start, &cfg.Start)

	s.setBool("infinite", fc.InfinitePages, &cfg.InfinitePages)
	s.setBool("watch", fc.Watch, &cfg.Watch)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
