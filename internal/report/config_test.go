package report

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_DefaultsWhenUnset(t *testing.T) {
	t.Setenv("REPORT_CONFIG", "")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfig_FromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	content := "title: Plant Overview\nfooter: internal use only\nprecision: 3\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("REPORT_CONFIG", path)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Title != "Plant Overview" || cfg.Footer != "internal use only" || cfg.Precision != 3 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfig_PartialYAMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	if err := os.WriteFile(path, []byte("footer: ops\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("REPORT_CONFIG", path)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Title != DefaultConfig().Title {
		t.Fatalf("expected default title, got %q", cfg.Title)
	}
	if cfg.Precision != DefaultConfig().Precision {
		t.Fatalf("expected default precision, got %d", cfg.Precision)
	}
}
