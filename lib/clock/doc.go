// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction so the
// deliberate listing delay can be tested without real sleeps.
//
// Production code accepts a Clock instead of calling time.Now or
// time.Sleep directly. Real() provides standard library behavior;
// Fake() provides a deterministic clock whose Sleep returns
// immediately while recording the requested duration and advancing
// the fake time, so tests can assert exactly how much latency a code
// path injected.
package clock
