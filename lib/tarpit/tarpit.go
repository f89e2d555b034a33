// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tarpit

import (
	"errors"
	"fmt"
	"time"

	"github.com/bureau-foundation/tarpit/lib/clock"
)

// AttrTTL is how long a caller may cache any returned entry or
// attribute before re-querying. The tree never changes after mount,
// so the window only bounds kernel re-query traffic.
const AttrTTL = 1 * time.Second

const (
	// MaxDirs is the largest configurable directory count. Directory
	// numbers occupy 32 bits, with 0 reserved and 1 taken by the
	// mount root.
	MaxDirs = maxDirNumber - 1

	// MaxFiles is the largest configurable files-per-directory count.
	MaxFiles = maxFileNumber
)

// Per-request failures, mapped to POSIX errors at the protocol
// boundary. Every error is terminal for its request; nothing retries.
var (
	// ErrNotFound reports a name or identifier that does not resolve
	// under the configured tree shape.
	ErrNotFound = errors.New("no such entry")

	// ErrIsDirectory reports a read against a directory identifier.
	ErrIsDirectory = errors.New("is a directory")

	// ErrNotDirectory reports a listing against a file identifier.
	ErrNotDirectory = errors.New("not a directory")
)

// Config fixes the tree shape and listing delay for the lifetime of a
// mount. All fields are immutable after New.
type Config struct {
	// NumDirs is the number of subdirectories under the root.
	// Must not exceed MaxDirs.
	NumDirs uint64

	// NumFiles is the number of files per directory. Validated and
	// used as the upper validity bound for file identifiers, but the
	// listing exposes a single hello.txt regardless. Must not exceed
	// MaxFiles.
	NumFiles uint64

	// Delay is slept once per directory listing before any entries
	// are returned. Zero disables the tarpit behavior.
	Delay time.Duration

	// Clock provides the sleep. If nil, defaults to clock.Real().
	Clock clock.Clock
}

// Filesystem is the capability surface the protocol layer drives: the
// four read-only operations, each independently computable from the
// immutable configuration.
type Filesystem interface {
	// Lookup resolves a child name under a parent directory
	// identifier.
	Lookup(parent Ino, name string) (Attr, error)

	// Getattr returns the attributes of any identifier.
	Getattr(ino Ino) (Attr, error)

	// Read returns the file content from offset to the end. An
	// offset past the end yields an empty slice, not an error.
	Read(ino Ino, offset int64) ([]byte, error)

	// Readdir lists a directory starting at a resumption offset
	// previously obtained from DirEntry.NextOffset (0 for the
	// beginning). The configured delay is applied once per call.
	Readdir(ino Ino, offset int) ([]DirEntry, error)
}

// Tarpit implements Filesystem. It holds only the construction-time
// configuration, so all methods are safe for concurrent use; the only
// side effect anywhere is the Readdir sleep, which blocks just the
// calling goroutine.
type Tarpit struct {
	numDirs  uint64
	numFiles uint64
	delay    time.Duration
	clock    clock.Clock
}

var _ Filesystem = (*Tarpit)(nil)

// New validates the configuration and returns a Tarpit. Counts beyond
// the 32-bit identifier space fail here so an unaddressable tree can
// never mount.
func New(cfg Config) (*Tarpit, error) {
	if cfg.NumDirs > MaxDirs {
		return nil, fmt.Errorf("dirs %d exceeds the maximum of %d", cfg.NumDirs, uint64(MaxDirs))
	}
	if cfg.NumFiles > MaxFiles {
		return nil, fmt.Errorf("files per dir %d exceeds the maximum of %d", cfg.NumFiles, uint64(MaxFiles))
	}
	if cfg.Delay < 0 {
		return nil, fmt.Errorf("delay %v is negative", cfg.Delay)
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	return &Tarpit{
		numDirs:  cfg.NumDirs,
		numFiles: cfg.NumFiles,
		delay:    cfg.Delay,
		clock:    cfg.Clock,
	}, nil
}

// Lookup resolves name under parent. Under the root, names resolve
// through the pitNNN naming scheme; under a subdirectory, only
// hello.txt exists. Everything else — unknown names, file parents,
// out-of-range directories — is ErrNotFound.
func (t *Tarpit) Lookup(parent Ino, name string) (Attr, error) {
	node, err := Decode(parent)
	if err != nil || !node.IsDir() {
		return Attr{}, ErrNotFound
	}

	if node.Dir == 1 {
		num, ok := parseDirName(name)
		if !ok {
			return Attr{}, ErrNotFound
		}
		ino, ok := t.subdirIno(num)
		if !ok {
			return Attr{}, ErrNotFound
		}
		return dirAttr(ino), nil
	}

	if !t.validDir(node.Dir) {
		return Attr{}, ErrNotFound
	}
	if name != helloName {
		return Attr{}, ErrNotFound
	}
	ino, err := EncodeFile(node.Dir, helloFileNumber)
	if err != nil {
		return Attr{}, ErrNotFound
	}
	return fileAttr(ino), nil
}

// Getattr returns the attributes for any identifier inside the
// configured shape.
func (t *Tarpit) Getattr(ino Ino) (Attr, error) {
	node, err := Decode(ino)
	if err != nil {
		return Attr{}, ErrNotFound
	}
	if node.IsDir() {
		if !t.validDir(node.Dir) {
			return Attr{}, ErrNotFound
		}
		return dirAttr(ino), nil
	}
	// A file is valid only if its parent directory independently is.
	// The exposed hello.txt is always addressable; beyond that the
	// configured file count bounds validity.
	if !t.validDir(node.Dir) {
		return Attr{}, ErrNotFound
	}
	if node.File != helloFileNumber && node.File > t.numFiles {
		return Attr{}, ErrNotFound
	}
	return fileAttr(ino), nil
}

// Read returns the fixed content from offset to the end. Reading a
// directory is ErrIsDirectory; a file number other than the exposed
// one is ErrNotFound.
func (t *Tarpit) Read(ino Ino, offset int64) ([]byte, error) {
	node, err := Decode(ino)
	if err != nil {
		return nil, ErrNotFound
	}
	if node.IsDir() {
		return nil, ErrIsDirectory
	}
	if node.File != helloFileNumber {
		return nil, ErrNotFound
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= int64(len(helloContent)) {
		return []byte{}, nil
	}
	return []byte(helloContent[offset:]), nil
}

// Readdir builds the full listing for a directory, sleeps for the
// configured delay, and returns the entries from offset onward. Each
// entry carries the offset of its successor, so a caller can page
// through arbitrarily large listings across calls.
func (t *Tarpit) Readdir(ino Ino, offset int) ([]DirEntry, error) {
	node, err := Decode(ino)
	if err != nil {
		return nil, ErrNotFound
	}
	if !node.IsDir() {
		return nil, ErrNotDirectory
	}

	var entries []DirEntry
	switch {
	case node.Dir == 1:
		entries = t.rootEntries()
	case t.validDir(node.Dir):
		entries = t.subdirEntries(node.Dir)
	default:
		return nil, ErrNotFound
	}

	// The tarpit. Blocks only this request's goroutine.
	t.clock.Sleep(t.delay)

	if offset < 0 {
		offset = 0
	}
	if offset >= len(entries) {
		return nil, nil
	}
	return entries[offset:], nil
}
