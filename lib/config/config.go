// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the tarpit configuration file. Absent fields keep their
// flag defaults; the pointer types distinguish "not set" from a zero
// value.
type File struct {
	// Dirs is the number of directories in the tree.
	Dirs *uint64 `yaml:"dirs"`

	// FilesPerDir is the number of files per directory.
	FilesPerDir *uint64 `yaml:"files_per_dir"`

	// SlowdownMS is the artificial delay applied to every directory
	// listing, in milliseconds.
	SlowdownMS *uint64 `yaml:"slowdown_ms"`

	// FsName is the filesystem name shown in mount tables.
	FsName *string `yaml:"fs_name"`

	// AllowOther permits other users to access the mount.
	AllowOther *bool `yaml:"allow_other"`
}

// Load reads and parses the configuration file at path. Unknown keys
// are rejected so a typo cannot silently configure nothing.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var file File
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			// An empty file configures nothing.
			return &File{}, nil
		}
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &file, nil
}
