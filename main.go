// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/seqctl/internal/command"
	"github.com/staranto/seqctl/internal/config"
	mylog "github.com/staranto/seqctl/internal/log"
	"github.com/staranto/seqctl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		log.WithError(err).Debug("command failed")
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// mangleArguments expands an argument set. "seqctl seq @small" replaces
// @small with the config list seq.small, split on whitespace. Without an @set
// the seq.defaults list is inserted right after the command, so anything the
// user types still wins.
func mangleArguments(args []string) []string {
	// A leading flag means there is no command to namespace a set under.
	if len(args) < 2 || strings.HasPrefix(args[1], "-") {
		return args
	}

	// We know the first two args are going to be the executable and command.
	preamble := make([]string, 2)
	copy(preamble, args[:2])

	// Short-circuit for --help/-h. If help is requested, just keep the preamble
	// and add --help flag.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return append(preamble, "--help")
		}
	}

	rest := make([]string, 0, len(args)-2)
	set := "defaults"
	explicit := false
	for _, a := range args[2:] {
		if !explicit && strings.HasPrefix(a, "@") && len(a) > 1 {
			set = a[1:]
			explicit = true
			continue
		}
		rest = append(rest, a)
	}

	setArgs, err := config.GetStringSlice(args[1] + "." + set)
	if err != nil && explicit {
		log.Warnf("argument set %s.%s not found in config", args[1], set)
	}

	var expanded []string
	for _, arg := range setArgs {
		expanded = append(expanded, strings.Fields(arg)...)
	}

	args = append(append(preamble, expanded...), rest...)
	log.Debugf("set=%s, args=%v", set, args)
	return args
}
