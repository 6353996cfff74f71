// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package driller resolves attr paths such as attributes.value or
// items[1].name against a single JSON:API resource object.
package driller
