package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("could not write %s: %v", name, err)
	}
	return path
}

func TestLoadConfigFileTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
value_mode = "cost"
products = ["actions", "copilot"]
top = 5

[sku_labels]
my_sku = "My Runner"
`)

	config, err := NewConfigRepository().LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile returned error: %v", err)
	}

	if config.ValueMode != "cost" {
		t.Errorf("ValueMode = %q, want %q", config.ValueMode, "cost")
	}
	if len(config.Products) != 2 || config.Products[0] != "actions" {
		t.Errorf("Products = %v, want [actions copilot]", config.Products)
	}
	if config.Top != 5 {
		t.Errorf("Top = %d, want 5", config.Top)
	}
	if config.SKULabels["my_sku"] != "My Runner" {
		t.Errorf("SKULabels = %v, want my_sku entry", config.SKULabels)
	}
}

func TestLoadConfigFileYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
value_mode: minutes
workflow: CI
report_type: [csv, json]
`)

	config, err := NewConfigRepository().LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile returned error: %v", err)
	}

	if config.ValueMode != "minutes" {
		t.Errorf("ValueMode = %q, want %q", config.ValueMode, "minutes")
	}
	if config.Workflow != "CI" {
		t.Errorf("Workflow = %q, want %q", config.Workflow, "CI")
	}
	if len(config.ReportType) != 2 {
		t.Errorf("ReportType = %v, want [csv json]", config.ReportType)
	}
}

func TestLoadConfigFileJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"sku": "actions_linux", "dir": "/tmp/reports"}`)

	config, err := NewConfigRepository().LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile returned error: %v", err)
	}

	if config.SKU != "actions_linux" {
		t.Errorf("SKU = %q, want %q", config.SKU, "actions_linux")
	}
	if config.Dir != "/tmp/reports" {
		t.Errorf("Dir = %q, want %q", config.Dir, "/tmp/reports")
	}
}

func TestLoadConfigFileUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "config.ini", "value_mode=cost")

	if _, err := NewConfigRepository().LoadConfigFile(path); err == nil {
		t.Error("LoadConfigFile accepted an unsupported format, want error")
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	if _, err := NewConfigRepository().LoadConfigFile("/does/not/exist.toml"); err == nil {
		t.Error("LoadConfigFile of missing file succeeded, want error")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GHUSAGE_VALUE_MODE", "cost")
	t.Setenv("GHUSAGE_TOP", "25")

	config, err := NewConfigRepository().LoadConfigFile(writeFile(t, "config.toml", `value_mode = "minutes"`))
	if err != nil {
		t.Fatalf("LoadConfigFile returned error: %v", err)
	}

	if err := NewConfigRepository().LoadEnv(config); err != nil {
		t.Fatalf("LoadEnv returned error: %v", err)
	}

	if config.ValueMode != "cost" {
		t.Errorf("ValueMode = %q, want env override %q", config.ValueMode, "cost")
	}
	if config.Top != 25 {
		t.Errorf("Top = %d, want env override 25", config.Top)
	}
}
