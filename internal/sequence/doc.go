// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package sequence evaluates terms of linear recurrences such as the
// Fibonacci numbers. An Evaluator owns a cache.Memo so repeated or
// overlapping requests only compute each index once. Values are
// arbitrary precision.
//
// Recurrences come from the built-in set or from an HCL definitions file:
//
//	sequence "padovan" {
//	  description  = "Padovan numbers"
//	  seeds        = [1, 1, 1]
//	  coefficients = [0, 1, 1]
//	}
package sequence
