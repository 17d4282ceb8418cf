// ABOUTME: Tests for CLI wiring
// ABOUTME: Tests that turn collaborators are built and fail before the TUI starts
package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/voiceturn/voiceturn-go/internal/config"
)

func TestNewServices(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "clips")

	svc, err := newServices(config.Config{OutputDir: dir, APIURL: "http://localhost:1/gen"})
	if err != nil {
		t.Fatalf("newServices failed: %v", err)
	}
	defer svc.player.Close()

	if svc.clips.Dir() != dir {
		t.Errorf("expected store in %s, got %s", dir, svc.clips.Dir())
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("output directory not created: %v", err)
	}
	if svc.api == nil || svc.device == nil || svc.player == nil {
		t.Errorf("expected all services, got %+v", svc)
	}
}

func TestNewServicesBadOutputDir(t *testing.T) {
	// A regular file where the output directory should be
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	svc, err := newServices(config.Config{OutputDir: filepath.Join(blocker, "clips")})
	if err == nil {
		t.Fatal("expected error for unusable output directory")
	}
	if svc != nil {
		t.Errorf("expected nil services, got %+v", svc)
	}
}
