// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tarpit

import (
	"syscall"
	"testing"
)

func TestDirNamePadding(t *testing.T) {
	cases := []struct {
		num  uint64
		want string
	}{
		{1, "pit001"},
		{7, "pit007"},
		{42, "pit042"},
		{999, "pit999"},
		{1000, "pit1000"},
		{123456, "pit123456"},
	}
	for _, c := range cases {
		if got := dirName(c.num); got != c.want {
			t.Errorf("dirName(%d) = %q, want %q", c.num, got, c.want)
		}
	}
}

func TestParseDirName(t *testing.T) {
	// Every generated name must parse back to its number.
	for _, num := range []uint64{1, 7, 999, 1000, 123456} {
		got, ok := parseDirName(dirName(num))
		if !ok || got != num {
			t.Errorf("parseDirName(%q) = (%d, %v), want (%d, true)", dirName(num), got, ok, num)
		}
	}

	for _, name := range []string{"", "pit", "007", "pitx", "pit7x", "hello.txt", "Pit007", "pit-1"} {
		if _, ok := parseDirName(name); ok {
			t.Errorf("parseDirName(%q) succeeded", name)
		}
	}
}

func TestDirectoryAttributes(t *testing.T) {
	attr := dirAttr(RootIno)
	if !attr.IsDir() {
		t.Error("directory attributes do not report a directory")
	}
	if attr.Mode != syscall.S_IFDIR|0o755 {
		t.Errorf("directory mode = %#o", attr.Mode)
	}
	if attr.Nlink != 2 || attr.Size != 0 {
		t.Errorf("directory nlink/size = %d/%d, want 2/0", attr.Nlink, attr.Size)
	}
	if !attr.Atime.Equal(epoch) || !attr.Mtime.Equal(epoch) || !attr.Ctime.Equal(epoch) {
		t.Error("directory timestamps are not pinned to the epoch")
	}
}

func TestFileAttributes(t *testing.T) {
	ino, err := EncodeFile(2, helloFileNumber)
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	attr := fileAttr(ino)
	if attr.IsDir() {
		t.Error("file attributes report a directory")
	}
	if attr.Mode != syscall.S_IFREG|0o644 {
		t.Errorf("file mode = %#o", attr.Mode)
	}
	if attr.Nlink != 1 {
		t.Errorf("file nlink = %d, want 1", attr.Nlink)
	}
	if attr.Size != uint64(len(helloContent)) {
		t.Errorf("file size = %d, want %d", attr.Size, len(helloContent))
	}
	if !attr.Mtime.Equal(epoch) {
		t.Error("file timestamps are not pinned to the epoch")
	}
}
