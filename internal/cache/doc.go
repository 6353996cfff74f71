// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cache provides the in-memory memo used by sequence evaluators to
// avoid recomputing terms. A Memo only ever grows; it is never persisted.
package cache
