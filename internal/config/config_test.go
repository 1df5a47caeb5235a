package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg.DataDir != "" || cfg.AccentColor != "" {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
	if !cfg.SidebarVisible() {
		t.Fatal("sidebar should default to visible")
	}
}

func TestLoadReadsFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "data_dir: /tmp/deck\naccent_color: \"#ff0000\"\nsidebar_open: false\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "/tmp/deck" {
		t.Fatalf("DataDir = %q", cfg.DataDir)
	}
	if cfg.AccentColor != "#ff0000" {
		t.Fatalf("AccentColor = %q", cfg.AccentColor)
	}
	if cfg.SidebarVisible() {
		t.Fatal("sidebar_open: false should hide the sidebar")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("data_dir: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("error should name the file: %v", err)
	}
	// Malformed input must not leave partial settings behind.
	if cfg.DataDir != "" {
		t.Fatalf("expected defaults on parse error, got %+v", cfg)
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(path, filepath.Join("taskdeck", "config.yaml")) {
		t.Fatalf("unexpected path %q", path)
	}
}
