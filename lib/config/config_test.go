// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tarpit.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
dirs: 5000
files_per_dir: 1
slowdown_ms: 250
fs_name: molasses
allow_other: true
`)

	file, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if file.Dirs == nil || *file.Dirs != 5000 {
		t.Errorf("Dirs = %v, want 5000", file.Dirs)
	}
	if file.FilesPerDir == nil || *file.FilesPerDir != 1 {
		t.Errorf("FilesPerDir = %v, want 1", file.FilesPerDir)
	}
	if file.SlowdownMS == nil || *file.SlowdownMS != 250 {
		t.Errorf("SlowdownMS = %v, want 250", file.SlowdownMS)
	}
	if file.FsName == nil || *file.FsName != "molasses" {
		t.Errorf("FsName = %v, want molasses", file.FsName)
	}
	if file.AllowOther == nil || !*file.AllowOther {
		t.Errorf("AllowOther = %v, want true", file.AllowOther)
	}
}

func TestLoadPartialFileLeavesRestUnset(t *testing.T) {
	path := writeConfig(t, "slowdown_ms: 50\n")

	file, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if file.SlowdownMS == nil || *file.SlowdownMS != 50 {
		t.Errorf("SlowdownMS = %v, want 50", file.SlowdownMS)
	}
	if file.Dirs != nil || file.FilesPerDir != nil || file.FsName != nil || file.AllowOther != nil {
		t.Errorf("absent fields were set: %+v", file)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeConfig(t, "")

	file, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if file.Dirs != nil || file.SlowdownMS != nil {
		t.Errorf("empty file set fields: %+v", file)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "slowdown: 50\n")

	if _, err := Load(path); err == nil {
		t.Error("Load accepted an unknown key")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "dirs: [not a number\n")

	if _, err := Load(path); err == nil {
		t.Error("Load accepted malformed YAML")
	}
}
