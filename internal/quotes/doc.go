// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package quotes is a small model-view-controller console that serves quotes
// from an in-memory list and lets the user append new ones.
//
// A Model holds the quotes. A View does the talking to the user, either line
// by line through TerminalView or full screen through RunTUI. A Controller
// ties the two together and loops until the user types q, quit or exit, input
// runs out, or its context is cancelled.
package quotes
