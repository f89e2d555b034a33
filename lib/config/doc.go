// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the optional tarpit configuration file.
//
// Configuration comes from a single YAML file passed explicitly via
// the --config flag. There are no fallbacks and no automatic
// discovery; flags set on the command line always win over file
// values. This keeps the effective configuration deterministic and
// auditable.
package config
