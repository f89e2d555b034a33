// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tarpit/lib/config"
	"github.com/bureau-foundation/tarpit/lib/tarpit"
	tarpitfuse "github.com/bureau-foundation/tarpit/lib/tarpit/fuse"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		dirs        uint64
		filesPerDir uint64
		slowdownMS  uint64
		fsName      string
		allowOther  bool
		configPath  string
		logLevel    string
	)

	flagSet := pflag.NewFlagSet("tarpitfs", pflag.ContinueOnError)
	flagSet.Uint64Var(&dirs, "dirs", 1000, "number of directories")
	flagSet.Uint64Var(&filesPerDir, "files-per-dir", 1000, "number of files per directory")
	flagSet.Uint64Var(&slowdownMS, "slowdown-ms", 0, "delay applied to every directory listing, in milliseconds")
	flagSet.StringVar(&fsName, "fs-name", "tarpit", "filesystem name shown in mount tables")
	flagSet.BoolVar(&allowOther, "allow-other", false, "permit other users (including root) to access the mount")
	flagSet.StringVar(&configPath, "config", "", "path to YAML config file (flags override file values)")
	flagSet.StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	args := flagSet.Args()
	if len(args) != 1 {
		printHelp(flagSet)
		return fmt.Errorf("exactly one mountpoint argument is required")
	}
	mountpoint := args[0]

	// File values apply only where the flag was left at its default.
	if configPath != "" {
		file, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if file.Dirs != nil && !flagSet.Changed("dirs") {
			dirs = *file.Dirs
		}
		if file.FilesPerDir != nil && !flagSet.Changed("files-per-dir") {
			filesPerDir = *file.FilesPerDir
		}
		if file.SlowdownMS != nil && !flagSet.Changed("slowdown-ms") {
			slowdownMS = *file.SlowdownMS
		}
		if file.FsName != nil && !flagSet.Changed("fs-name") {
			fsName = *file.FsName
		}
		if file.AllowOther != nil && !flagSet.Changed("allow-other") {
			allowOther = *file.AllowOther
		}
	}

	level, err := parseLogLevel(logLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	filesystem, err := tarpit.New(tarpit.Config{
		NumDirs:  dirs,
		NumFiles: filesPerDir,
		Delay:    time.Duration(slowdownMS) * time.Millisecond,
	})
	if err != nil {
		return err
	}

	server, err := tarpitfuse.Mount(tarpitfuse.Options{
		Mountpoint: mountpoint,
		Filesystem: filesystem,
		FsName:     fsName,
		AllowOther: allowOther,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	logger.Info("serving",
		"mountpoint", mountpoint,
		"dirs", dirs,
		"files_per_dir", filesPerDir,
		"slowdown_ms", slowdownMS,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The server exits on its own if the filesystem is unmounted
	// externally (fusermount -u).
	done := make(chan struct{})
	go func() {
		server.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		logger.Info("signal received, unmounting")
		if err := server.Unmount(); err != nil {
			return fmt.Errorf("unmounting %s: %w", mountpoint, err)
		}
		<-done
	case <-done:
		logger.Info("filesystem unmounted externally")
	}
	return nil
}

func parseLogLevel(name string) (slog.Level, error) {
	switch name {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `tarpitfs — a crawler tarpit as a filesystem.

Mounts a read-only synthetic tree of directories, each containing one
hello.txt, with a configurable delay on every directory listing. All
metadata and content are computed on demand; nothing is stored.

Usage:
  tarpitfs [flags] <mountpoint>

Flags:
%s
Unmount with Ctrl-C, SIGTERM, or fusermount -u <mountpoint>.
`, flagSet.FlagUsages())
}
