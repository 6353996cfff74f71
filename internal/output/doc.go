// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output filters, transforms, sorts and renders JSON:API result sets
// as text tables, JSON, YAML or the raw document.
package output
