// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tarpit implements a read-only synthetic filesystem designed
// to waste a crawler's time. The tree is a flat set of directories
// (pit001, pit002, ...), each holding a single hello.txt, with no
// backing storage: every inode number, name, attribute, and byte of
// content is computed on demand from three configuration scalars
// (directory count, file count, listing delay).
//
// Inode numbers are self-describing. The low 32 bits of an identifier
// name a directory (1 is the mount root); the high 32 bits name a file
// within that directory, with 0 meaning "the directory itself". No
// inode table exists anywhere — validity is checked arithmetically
// against the configured tree shape, so the tree scales to billions of
// entries at zero memory cost.
//
// Directory listings sleep for the configured delay before returning.
// The sleep blocks only the goroutine serving that one request;
// everything else is pure computation over immutable configuration,
// so Tarpit is safe for concurrent use without locking.
//
// The FUSE wiring lives in the fuse subpackage; this package has no
// protocol dependencies and is fully testable in-process.
package tarpit
