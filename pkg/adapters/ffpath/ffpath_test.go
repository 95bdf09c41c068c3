package ffpath

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFind_CustomPath(t *testing.T) {
	tmpDir := t.TempDir()
	bin := filepath.Join(tmpDir, "ffmpeg")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("write fake binary: %v", err)
	}

	got, err := Find("ffmpeg", bin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != bin {
		t.Errorf("expected %s, got %s", bin, got)
	}
}

func TestFind_CustomPathMissing(t *testing.T) {
	_, err := Find("ffmpeg", "/nonexistent/ffmpeg")
	if !errors.Is(err, ErrToolNotFound) {
		t.Errorf("expected ErrToolNotFound, got %v", err)
	}
}

func TestFind_EnvVar(t *testing.T) {
	tmpDir := t.TempDir()
	bin := filepath.Join(tmpDir, "sometool")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("write fake binary: %v", err)
	}
	t.Setenv("SOMETOOL_PATH", bin)

	got, err := Find("sometool", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != bin {
		t.Errorf("expected %s, got %s", bin, got)
	}
}

func TestFind_EnvVarMissing(t *testing.T) {
	t.Setenv("SOMETOOL_PATH", "/nonexistent/sometool")

	_, err := Find("sometool", "")
	if !errors.Is(err, ErrToolNotFound) {
		t.Errorf("expected ErrToolNotFound, got %v", err)
	}
}

func TestFind_NotAnywhere(t *testing.T) {
	_, err := Find("definitely-not-a-real-tool-name", "")
	if !errors.Is(err, ErrToolNotFound) {
		t.Errorf("expected ErrToolNotFound, got %v", err)
	}
}
