// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package export writes rendered command output to a local file or an S3
// object, as selected by the --export destination.
package export
