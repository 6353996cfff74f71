// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"

	"github.com/staranto/seqctl/internal/config"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	StartingDir string
}

// Command returns the subcommand named on the command line, or "" when the
// first argument is a flag.
func (m Meta) Command() string {
	if len(m.Args) > 1 && len(m.Args[1]) > 0 && m.Args[1][0] != '-' {
		return m.Args[1]
	}
	return ""
}
