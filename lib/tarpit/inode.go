// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tarpit

import "fmt"

// Ino is a 64-bit filesystem identifier. The low 32 bits hold a
// directory number; the high 32 bits hold a file number within that
// directory, with 0 meaning the identifier denotes the directory
// itself. Directory number 0 is reserved and never valid, so Ino 0 is
// not a legal identifier.
type Ino uint64

// RootIno is the identifier of the mount root (directory number 1,
// file number 0). The kernel always addresses the root as node 1, so
// the codec's root identifier and the protocol's agree by construction.
const RootIno Ino = 1

const (
	// maxDirNumber and maxFileNumber bound the two 32-bit halves of
	// an identifier.
	maxDirNumber  = 1<<32 - 1
	maxFileNumber = 1<<32 - 1
)

// Node is a decoded identifier: either a directory (File == 0) or a
// file within a directory (File > 0). Decoding is purely structural;
// whether the numbers fall inside the configured tree shape is the
// Tarpit's concern, not the codec's.
type Node struct {
	// Dir is the directory number from the low 32 bits.
	Dir uint64

	// File is the file number from the high 32 bits. Zero means the
	// identifier names the directory itself.
	File uint64
}

// IsDir reports whether the decoded identifier denotes a directory.
func (n Node) IsDir() bool { return n.File == 0 }

// EncodeDir returns the identifier for a directory number.
func EncodeDir(dir uint64) (Ino, error) {
	if dir == 0 {
		return 0, fmt.Errorf("directory number 0 is reserved")
	}
	if dir > maxDirNumber {
		return 0, fmt.Errorf("directory number %d exceeds the 32-bit inode space", dir)
	}
	return Ino(dir), nil
}

// EncodeFile returns the identifier for a file number within the given
// directory number.
func EncodeFile(dir, file uint64) (Ino, error) {
	parent, err := EncodeDir(dir)
	if err != nil {
		return 0, err
	}
	if file == 0 {
		return 0, fmt.Errorf("file number 0 is reserved for the directory itself")
	}
	if file > maxFileNumber {
		return 0, fmt.Errorf("file number %d exceeds the 32-bit inode space", file)
	}
	return Ino(file)<<32 | parent, nil
}

// Decode splits an identifier into its directory and file numbers. A
// zero directory number cannot be produced by EncodeDir or EncodeFile,
// so it indicates a malformed request from the protocol layer; it is
// reported as an error rather than a panic so a bad request cannot
// take down the mount.
func Decode(ino Ino) (Node, error) {
	node := Node{
		Dir:  uint64(ino) & maxDirNumber,
		File: uint64(ino) >> 32,
	}
	if node.Dir == 0 {
		return Node{}, fmt.Errorf("identifier %#x has directory number 0", uint64(ino))
	}
	return node, nil
}
