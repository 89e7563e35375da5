package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Formats(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"frontend.toml": `
[log]
level = "debug"
format = "json"

[limits]
max_nodes = 500
max_string_bytes = 4096

[parser]
inject_basic_classes = true
`,
		"frontend.yaml": `
log:
  level: debug
  format: json
limits:
  max_nodes: 500
  max_string_bytes: 4096
parser:
  inject_basic_classes: true
`,
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
				t.Errorf("Log = %+v", cfg.Log)
			}
			if l := cfg.TreeLimits(); l.MaxNodes != 500 || l.MaxStringBytes != 4096 {
				t.Errorf("TreeLimits() = %+v", l)
			}
			if !cfg.ParserConfig().InjectBasicClasses {
				t.Error("InjectBasicClasses not set")
			}
		})
	}
}

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv(EnvPath, "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "warn" || cfg.Limits.MaxNodes != 0 {
		t.Errorf("defaults = %+v", cfg)
	}

	path := filepath.Join(t.TempDir(), "env.toml")
	if err := os.WriteFile(path, []byte("[limits]\nmax_nodes = 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvPath, path)
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Limits.MaxNodes != 7 {
		t.Errorf("MaxNodes = %d, want 7", cfg.Limits.MaxNodes)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want default text", cfg.Log.Format)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		format  Format
	}{
		{"bad toml", "[log\nlevel = 1", FormatTOML},
		{"bad yaml", "log: [unclosed", FormatYAML},
		{"bad level", "[log]\nlevel = \"loud\"", FormatTOML},
		{"bad format", "log:\n  format: xml\n", FormatYAML},
		{"negative nodes", "[limits]\nmax_nodes = -1", FormatTOML},
		{"negative bytes", "limits:\n  max_string_bytes: -5\n", FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.content), tt.format); err == nil {
				t.Error("Parse() expected error")
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"a.toml":     FormatTOML,
		"a.yaml":     FormatYAML,
		"b/c.YML":    FormatYAML,
		"noext":      FormatTOML,
		"weird.json": FormatTOML,
	}
	for path, want := range tests {
		if got := detectFormat(path); got != want {
			t.Errorf("detectFormat(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestLogConfig(t *testing.T) {
	cfg := Default()
	cfg.Log.File = "/tmp/coolfe.log"
	cfg.Log.AddSource = true
	lc := cfg.LogConfig()
	if lc.Level != "warn" || lc.LogFile != "/tmp/coolfe.log" || !lc.AddSource || lc.Output == nil {
		t.Errorf("LogConfig() = %+v", lc)
	}
}
