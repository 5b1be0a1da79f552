package cliconfig

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true
	falseVal := false

	tests := []struct {
		name       string
		fileConfig FileConfig
		cfgDir     string
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				PagesFile:     "/srv/pages.toml",
				Pages:         []string{"a", "b"},
				InfinitePages: &trueVal,
				Start:         2,
				Watch:         &trueVal,
				Debounce:      "250ms",
				LogLevel:      "debug",
			},
			changed: map[string]bool{},
			initial: DefaultConfig(),
			expected: Config{
				PagesFile:     "/srv/pages.toml",
				Pages:         []string{"a", "b"},
				InfinitePages: true,
				Start:         2,
				Watch:         true,
				Debounce:      250 * time.Millisecond,
				LogLevel:      "debug",
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				PagesFile:     "/file/pages.toml",
				InfinitePages: &falseVal,
				Start:         3,
			},
			changed: map[string]bool{"pages-file": true, "infinite": true},
			initial: Config{
				PagesFile:     "/flag/pages.toml",
				InfinitePages: true,
				Start:         1,
			},
			expected: Config{
				PagesFile:     "/flag/pages.toml", // unchanged because flag was set
				InfinitePages: true,
				Start:         3,
			},
		},
		{
			name:       "relative pages file resolves against config dir",
			fileConfig: FileConfig{PagesFile: "pages.toml"},
			cfgDir:     "/etc/pageturn",
			changed:    map[string]bool{},
			expected:   Config{PagesFile: filepath.Join("/etc/pageturn", "pages.toml")},
		},
		{
			name:       "invalid duration",
			fileConfig: FileConfig{Debounce: "soon"},
			changed:    map[string]bool{},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.cfgDir, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyFileConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyFileConfig() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(cfg, tt.expected) {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	content := `
pages_file = "pages.toml"
pages = ["one", "two"]
infinite_pages = true
start = 2
watch = false
debounce = "1s"
log_level = "warn"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	if fc.PagesFile != "pages.toml" {
		t.Errorf("PagesFile = %v, want pages.toml", fc.PagesFile)
	}
	if !reflect.DeepEqual(fc.Pages, []string{"one", "two"}) {
		t.Errorf("Pages = %v, want [one two]", fc.Pages)
	}
	if fc.InfinitePages == nil || !*fc.InfinitePages {
		t.Errorf("InfinitePages = %v, want true", fc.InfinitePages)
	}
	if fc.Watch == nil || *fc.Watch {
		t.Errorf("Watch = %v, want false", fc.Watch)
	}
	if fc.Start != 2 {
		t.Errorf("Start = %v, want 2", fc.Start)
	}
	if fc.Debounce != "1s" {
		t.Errorf("Debounce = %v, want 1s", fc.Debounce)
	}
	if fc.LogLevel != "warn" {
		t.Errorf("LogLevel = %v, want warn", fc.LogLevel)
	}
}

func TestLoadFileConfig_InvalidFile(t *testing.T) {
	if _, err := LoadFileConfig("/nonexistent/path/config.toml"); err == nil {
		t.Error("LoadFileConfig() expected error for nonexistent file")
	}
}

func TestLoadFileConfig_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("pages = [\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFileConfig(path); err == nil {
		t.Error("LoadFileConfig() expected error for invalid TOML")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if path != "" && !strings.HasSuffix(path, filepath.Join(".pageturn", "config.toml")) {
		t.Errorf("DefaultConfigPath() = %v, want suffix .pageturn/config.toml", path)
	}
}

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exists.toml")
	if FileExists(path) {
		t.Errorf("FileExists() = true before create")
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !FileExists(path) {
		t.Errorf("FileExists() = false after create")
	}
}
