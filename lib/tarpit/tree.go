// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tarpit

import (
	"fmt"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// helloName is the single file exposed in every directory.
const helloName = "hello.txt"

// helloContent is served for every file in the tree. It is never
// stored per-file; Read slices this constant.
const helloContent = "Hello World!\n"

// helloFileNumber is the file number under which hello.txt is encoded.
// Lookup and Readdir expose exactly this one file; the configured
// NumFiles only widens the validity bound checked by Getattr.
const helloFileNumber = 2

// dirNamePrefix precedes the zero-padded directory number in every
// directory name.
const dirNamePrefix = "pit"

// epoch is the single instant reported for every timestamp in the
// tree. The filesystem is immutable, so no real time tracking exists.
// Initialized once at process start and never mutated.
var epoch = time.Unix(1751364000, 0)

// Attr holds the computed metadata for a directory or file. The
// fields mirror what the kernel protocol reports for a stat call;
// ownership is left to the presentation layer.
type Attr struct {
	Ino     Ino
	Mode    uint32
	Nlink   uint32
	Size    uint64
	Blocks  uint64
	Blksize uint32
	Atime   time.Time
	Mtime   time.Time
	Ctime   time.Time
}

// IsDir reports whether the attributes describe a directory.
func (a Attr) IsDir() bool { return a.Mode&syscall.S_IFMT == syscall.S_IFDIR }

func dirAttr(ino Ino) Attr {
	return Attr{
		Ino:     ino,
		Mode:    syscall.S_IFDIR | 0o755,
		Nlink:   2,
		Size:    0,
		Blocks:  0,
		Blksize: 512,
		Atime:   epoch,
		Mtime:   epoch,
		Ctime:   epoch,
	}
}

func fileAttr(ino Ino) Attr {
	return Attr{
		Ino:     ino,
		Mode:    syscall.S_IFREG | 0o644,
		Nlink:   1,
		Size:    uint64(len(helloContent)),
		Blocks:  1,
		Blksize: 512,
		Atime:   epoch,
		Mtime:   epoch,
		Ctime:   epoch,
	}
}

// dirName returns the name of subdirectory num: a fixed prefix plus
// the zero-padded decimal number ("pit007"). Numbers past the padding
// width simply grow wider.
func dirName(num uint64) string {
	return fmt.Sprintf("%s%03d", dirNamePrefix, num)
}

// parseDirName inverts dirName. It reports false for anything that is
// not the prefix followed by decimal digits; range checking against
// the tree shape is the caller's job.
func parseDirName(name string) (uint64, bool) {
	digits, found := strings.CutPrefix(name, dirNamePrefix)
	if !found || digits == "" {
		return 0, false
	}
	num, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// DirEntry is one row of a directory listing. NextOffset is the
// resumption token to pass to Readdir to continue after this entry;
// it is stable for the lifetime of the mount because the tree shape
// never changes.
type DirEntry struct {
	Ino        Ino
	NextOffset int
	Mode       uint32
	Name       string
}

// subdirIno maps the ordinal subdirectory number num (1..NumDirs, as
// it appears in the directory's name) to its identifier. Directory
// number 1 is taken by the mount root, so subdirectory num lives at
// directory number num+1.
func (t *Tarpit) subdirIno(num uint64) (Ino, bool) {
	if num < 1 || num > t.numDirs {
		return 0, false
	}
	ino, err := EncodeDir(num + 1)
	if err != nil {
		return 0, false
	}
	return ino, true
}

// validDir reports whether a decoded directory number is addressable
// under the configured shape: 1 is the root, 2..NumDirs+1 are the
// subdirectories.
func (t *Tarpit) validDir(dir uint64) bool {
	return dir >= 1 && dir <= t.numDirs+1
}

// rootEntries builds the full listing of the mount root: self, parent
// (also the root — it has no parent), then every subdirectory in
// ascending numeric order.
func (t *Tarpit) rootEntries() []DirEntry {
	entries := make([]DirEntry, 0, 2+t.numDirs)
	entries = append(entries,
		DirEntry{Ino: RootIno, Mode: syscall.S_IFDIR, Name: "."},
		DirEntry{Ino: RootIno, Mode: syscall.S_IFDIR, Name: ".."},
	)
	for num := uint64(1); num <= t.numDirs; num++ {
		ino, _ := t.subdirIno(num)
		entries = append(entries, DirEntry{
			Ino:  ino,
			Mode: syscall.S_IFDIR,
			Name: dirName(num),
		})
	}
	return numberEntries(entries)
}

// subdirEntries builds the full listing of a subdirectory: self,
// parent (the root), and the single hello.txt.
func (t *Tarpit) subdirEntries(dir uint64) []DirEntry {
	self, _ := EncodeDir(dir)
	file, _ := EncodeFile(dir, helloFileNumber)
	return numberEntries([]DirEntry{
		{Ino: self, Mode: syscall.S_IFDIR, Name: "."},
		{Ino: RootIno, Mode: syscall.S_IFDIR, Name: ".."},
		{Ino: file, Mode: syscall.S_IFREG, Name: helloName},
	})
}

// numberEntries fills in each entry's resumption token: the index of
// the entry that follows it in the full listing.
func numberEntries(entries []DirEntry) []DirEntry {
	for i := range entries {
		entries[i].NextOffset = i + 1
	}
	return entries
}
