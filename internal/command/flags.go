// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// Flags are built fresh for every command. cli keeps parse state in the flag
// itself, so sharing one between commands leaks values across runs.

func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the schema",
		HideDefault: true,
	}
}

func newTLDRFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

func newCommasFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "commas",
		Usage:       "group the digits of values with commas",
		HideDefault: true,
	}
}

// NewGlobalFlags constructs the common output flags. params[0] is the command
// namespace and params[1] the config file their defaults are read from.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	path := ""
	if len(params) == 2 {
		path = params[1]
	}

	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"color", altsrc.StringSourcer(path)),
				yaml.YAML("color", altsrc.StringSourcer(path)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"output", altsrc.StringSourcer(path)),
				yaml.YAML("output", altsrc.StringSourcer(path)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"sort", altsrc.StringSourcer(path)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"titles", altsrc.StringSourcer(path)),
				yaml.YAML("titles", altsrc.StringSourcer(path)),
			),
			Value: false,
		},
	}

	return
}

// NewSequenceFlag constructs the --sequence flag, defaulting to fibonacci
// unless the config names another for the command.
func NewSequenceFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "sequence",
		Aliases: []string{"q"},
		Usage:   "name of the sequence to evaluate",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("SEQCTL_SEQUENCE"),
		),
		Value: "fibonacci",
		Validator: func(value string) error {
			return FlagValidators(value, JammedFlagValidator)
		},
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewDefsFlag constructs the --defs flag naming an HCL or JSON definitions
// file.
func NewDefsFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:      "defs",
		Usage:     "file of additional sequence definitions",
		TakesFile: true,
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("SEQCTL_DEFS"),
		),
		Validator: func(value string) error {
			return FlagValidators(value, JammedFlagValidator)
		},
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewExportFlags constructs --export and the AWS settings used when the
// destination is an S3 object.
func NewExportFlags(params ...string) []cli.Flag {
	region := &cli.StringFlag{
		Name:  "aws-region",
		Usage: "AWS region for s3:// exports",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("AWS_REGION"),
			cli.EnvVar("AWS_DEFAULT_REGION"),
		),
	}
	endpoint := &cli.StringFlag{
		Name:  "s3-endpoint",
		Usage: "alternate S3 endpoint, such as a local MinIO",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("SEQCTL_S3_ENDPOINT"),
		),
	}

	// These live under the export key rather than the command's.
	if len(params) == 2 {
		region.Sources.Chain = append(region.Sources.Chain,
			yaml.YAML("export.region", altsrc.StringSourcer(params[1])))
		endpoint.Sources.Chain = append(endpoint.Sources.Chain,
			yaml.YAML("export.endpoint", altsrc.StringSourcer(params[1])))
	}

	return []cli.Flag{
		&cli.StringFlag{
			Name:    "export",
			Aliases: []string{"x"},
			Usage:   "also write output to a file, file:// or s3:// destination",
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, ExportValidator)
			},
		},
		&cli.StringFlag{
			Name:  "aws-profile",
			Usage: "AWS shared config profile for s3:// exports",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AWS_PROFILE"),
			),
		},
		region,
		endpoint,
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// pathHas checks if the given executable is on the PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
