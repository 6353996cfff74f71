// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package version carries the build version, overridden at link time with
// -ldflags "-X github.com/staranto/seqctl/internal/version.Version=...".
package version

var Version = "0.1.0-dev"
