// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package main implements tarpitfs — a read-only synthetic FUSE
// filesystem that presents an arbitrarily large tree of directories,
// each containing one hello.txt, with a configurable delay on every
// directory listing. It exists to waste the time of automated
// crawlers that walk mounted filesystems, at no storage cost to the
// host.
//
// The tree shape and delay are fixed at mount time from flags or an
// optional YAML config file; the filesystem itself keeps no state of
// any kind. Unmount with SIGINT/SIGTERM or fusermount -u.
package main
