// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fuse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"github.com/bureau-foundation/tarpit/lib/tarpit"
	gofuse "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// Options configures the FUSE mount.
type Options struct {
	// Mountpoint is the directory where the filesystem is mounted.
	Mountpoint string

	// Filesystem answers the four read-only operations. Required.
	Filesystem tarpit.Filesystem

	// FsName is the filesystem name shown in mount tables. If empty,
	// "tarpit" is used.
	FsName string

	// AllowOther permits other users (including root) to access the
	// mount. Requires user_allow_other in /etc/fuse.conf. Set this
	// when the crawler traffic arrives under a different UID.
	AllowOther bool

	// Logger receives diagnostic messages. If nil, a no-op logger
	// is used.
	Logger *slog.Logger

	// owner is reported as the Uid/Gid of every node. Filled in by
	// Mount from the mounting process.
	owner fuse.Owner
}

// Mount mounts the tarpit filesystem read-only at the configured
// mountpoint. The caller must call Unmount on the returned Server
// when done. The mountpoint directory is created if it does not exist.
func Mount(options Options) (*fuse.Server, error) {
	if options.Mountpoint == "" {
		return nil, fmt.Errorf("mountpoint is required")
	}
	if options.Filesystem == nil {
		return nil, fmt.Errorf("filesystem is required")
	}

	if options.FsName == "" {
		options.FsName = "tarpit"
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
	}
	options.owner = fuse.Owner{
		Uid: uint32(os.Getuid()),
		Gid: uint32(os.Getgid()),
	}

	// Ensure the mountpoint exists.
	if err := os.MkdirAll(options.Mountpoint, 0o755); err != nil {
		return nil, fmt.Errorf("creating mountpoint %s: %w", options.Mountpoint, err)
	}

	root := &node{options: &options, ino: tarpit.RootIno}

	entryTimeout := tarpit.AttrTTL
	attrTimeout := tarpit.AttrTTL
	negativeTimeout := tarpit.AttrTTL

	server, err := gofuse.Mount(options.Mountpoint, root, &gofuse.Options{
		EntryTimeout: &entryTimeout,
		AttrTimeout:  &attrTimeout,
		// The tree shape is fixed, so missing names stay missing;
		// cache negative lookups as long as positive ones.
		NegativeTimeout: &negativeTimeout,
		MountOptions: fuse.MountOptions{
			FsName:     options.FsName,
			Name:       "tarpit",
			AllowOther: options.AllowOther,
			Options:    []string{"ro"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("mounting FUSE filesystem at %s: %w", options.Mountpoint, err)
	}

	options.Logger.Info("tarpit filesystem mounted",
		"mountpoint", options.Mountpoint,
		"fs_name", options.FsName,
	)
	return server, nil
}

// node bridges one identifier to the kernel. It holds nothing beyond
// the identifier and the shared options; every operation delegates to
// the Filesystem, so the kernel-visible inode numbers are exactly the
// codec's identifiers.
type node struct {
	gofuse.Inode
	options *Options
	ino     tarpit.Ino
}

var _ gofuse.InodeEmbedder = (*node)(nil)
var _ gofuse.NodeLookuper = (*node)(nil)
var _ gofuse.NodeGetattrer = (*node)(nil)
var _ gofuse.NodeOpener = (*node)(nil)
var _ gofuse.NodeReader = (*node)(nil)
var _ gofuse.NodeReaddirer = (*node)(nil)

func (n *node) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*gofuse.Inode, syscall.Errno) {
	n.options.Logger.Debug("lookup", "parent", uint64(n.ino), "name", name)

	attr, err := n.options.Filesystem.Lookup(n.ino, name)
	if err != nil {
		return nil, errnoFor(err)
	}

	child := n.NewInode(ctx, &node{options: n.options, ino: attr.Ino}, gofuse.StableAttr{
		Mode: attr.Mode & syscall.S_IFMT,
		Ino:  uint64(attr.Ino),
	})
	fillAttr(&out.Attr, attr, n.options.owner)
	return child, 0
}

func (n *node) Getattr(ctx context.Context, f gofuse.FileHandle, out *fuse.AttrOut) syscall.Errno {
	attr, err := n.options.Filesystem.Getattr(n.ino)
	if err != nil {
		return errnoFor(err)
	}
	fillAttr(&out.Attr, attr, n.options.owner)
	return 0
}

func (n *node) Open(ctx context.Context, flags uint32) (gofuse.FileHandle, uint32, syscall.Errno) {
	// Reject anything that isn't a read.
	if flags&(syscall.O_WRONLY|syscall.O_RDWR) != 0 {
		return nil, 0, syscall.EROFS
	}

	// Enable the kernel page cache. Content is immutable, so the
	// cache is always valid.
	return nil, fuse.FOPEN_KEEP_CACHE, 0
}

func (n *node) Read(ctx context.Context, f gofuse.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	data, err := n.options.Filesystem.Read(n.ino, off)
	if err != nil {
		return nil, errnoFor(err)
	}
	copied := copy(dest, data)
	return fuse.ReadResultData(dest[:copied]), 0
}

func (n *node) Readdir(ctx context.Context) (gofuse.DirStream, syscall.Errno) {
	listing, err := n.options.Filesystem.Readdir(n.ino, 0)
	if err != nil {
		return nil, errnoFor(err)
	}

	entries := make([]fuse.DirEntry, 0, len(listing))
	for _, entry := range listing {
		entries = append(entries, fuse.DirEntry{
			Ino:  uint64(entry.Ino),
			Mode: entry.Mode,
			Name: entry.Name,
		})
	}
	return &sliceDirStream{entries: entries}, 0
}

// fillAttr copies computed attributes into the kernel reply shape.
func fillAttr(out *fuse.Attr, attr tarpit.Attr, owner fuse.Owner) {
	out.Ino = uint64(attr.Ino)
	out.Mode = attr.Mode
	out.Nlink = attr.Nlink
	out.Size = attr.Size
	out.Blocks = attr.Blocks
	out.Blksize = attr.Blksize
	out.SetTimes(&attr.Atime, &attr.Mtime, &attr.Ctime)
	out.Owner = owner
}

// errnoFor maps the filesystem's error taxonomy to POSIX errors.
func errnoFor(err error) syscall.Errno {
	switch {
	case errors.Is(err, tarpit.ErrNotFound):
		return syscall.ENOENT
	case errors.Is(err, tarpit.ErrIsDirectory):
		return syscall.EISDIR
	case errors.Is(err, tarpit.ErrNotDirectory):
		return syscall.ENOTDIR
	default:
		return syscall.EIO
	}
}

// sliceDirStream implements fs.DirStream from a slice of entries.
type sliceDirStream struct {
	entries []fuse.DirEntry
	index   int
}

func (s *sliceDirStream) HasNext() bool {
	return s.index < len(s.entries)
}

func (s *sliceDirStream) Next() (fuse.DirEntry, syscall.Errno) {
	if s.index >= len(s.entries) {
		return fuse.DirEntry{}, syscall.EINVAL
	}
	entry := s.entries[s.index]
	s.index++
	return entry, 0
}

func (s *sliceDirStream) Close() {}
