package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/unkn0wn-root/restbench/internal/config"
	"github.com/unkn0wn-root/restbench/internal/workspace"
)

func TestLoadOrSeedSettingsWritesFirstRunFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvConfigDir, dir)

	settings := loadOrSeedSettings()
	if settings.Theme != "auto" {
		t.Fatalf("first-run theme = %q, want auto", settings.Theme)
	}

	seeded := filepath.Join(dir, "settings.toml")
	if _, err := os.Stat(seeded); err != nil {
		t.Fatalf("expected seeded settings file at %s: %v", seeded, err)
	}

	// A second load must come from the seeded file, not defaults.
	_, handle, err := config.LoadSettings()
	if err != nil {
		t.Fatalf("reload settings: %v", err)
	}
	if !handle.OnDisk {
		t.Fatalf("expected seeded settings to load from disk")
	}
}

func TestLoadEnvironmentsExplicitDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env.local")
	content := "API_URL=http://localhost\ntoken=abc\n"
	if err := os.WriteFile(envPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	envs := loadEnvironments(envPath, "")
	env := envs["local"]
	if env == nil {
		t.Fatalf("expected local environment, got %v", envs)
	}
	if env["API_URL"] != "http://localhost" {
		t.Fatalf("API_URL = %q, want %q", env["API_URL"], "http://localhost")
	}
}

func TestLoadEnvironmentsDiscoversNextToWorkspace(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "stages.env.json")
	payload := `{"dev": {"host": "dev.local"}, "prod": {"host": "example.com"}}`
	if err := os.WriteFile(envPath, []byte(payload), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	envs := loadEnvironments("", filepath.Join(dir, "bench.yaml"))
	if envs["dev"]["host"] != "dev.local" {
		t.Fatalf("dev host = %q, want dev.local", envs["dev"]["host"])
	}
	if envs["prod"]["host"] != "example.com" {
		t.Fatalf("prod host = %q, want example.com", envs["prod"]["host"])
	}
}

func TestApplyStartupEnvironmentDefaultsToFirst(t *testing.T) {
	ws := &workspace.Workspace{
		Environments: []workspace.Environment{
			{Name: "alpha"},
			{Name: "beta"},
		},
	}
	applyStartupEnvironment(ws, "")
	if ws.ActiveEnvironment != "alpha" {
		t.Fatalf("active = %q, want alpha", ws.ActiveEnvironment)
	}

	applyStartupEnvironment(ws, "beta")
	if ws.ActiveEnvironment != "beta" {
		t.Fatalf("active = %q, want beta", ws.ActiveEnvironment)
	}
}

func TestSampleWorkspaceIsWellFormed(t *testing.T) {
	ws := sampleWorkspace()
	if len(ws.Collections) == 0 || len(ws.Collections[0].Requests) == 0 {
		t.Fatalf("sample workspace has no requests")
	}
	snap := ws.Snapshot(ws.Collections[0].ID)
	if snap.Global["host"] == "" {
		t.Fatalf("sample snapshot missing host, got %v", snap.Global)
	}
	if snap.Collection["basePath"] != "/v1" {
		t.Fatalf("sample collection basePath = %q", snap.Collection["basePath"])
	}
}
