package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (PAGETURN_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("pages-file", os.Getenv("PAGETURN_PAGES_FILE"), &cfg.PagesFile)
	s.setStringsFromList("page", os.Getenv("PAGETURN_PAGES"), &cfg.Pages)
	s.setString("log-level", os.Getenv("PAGETURN_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("debounce", os.Getenv("PAGETURN_DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}
	if err := s.setIntFromString("start", os.Getenv("PAGETURN_START"), &cfg.Start); err != nil {
		return err
	}

	s.setBoolFromString("infinite", os.Getenv("PAGETURN_INFINITE_PAGES"), &cfg.InfinitePages)
	s.setBoolFromString("watch", os.Getenv("PAGETURN_WATCH"), &cfg.Watch)

	return nil
}
