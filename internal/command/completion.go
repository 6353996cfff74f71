// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/seqctl/internal/meta"
)

const bashCompletionScript = `# bash completion for seqctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_seqctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "eval seq sequences quotes completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --schema --tldr"

    case "$cmd" in
        eval)
            local opts="--sequence -q --defs --commas --time -T --examples --tldr"
            ;;
        seq)
            local opts="$common --sequence -q --defs --commas --from --to --export -x --aws-profile --aws-region --s3-endpoint"
            ;;
        sequences)
            local opts="$common --defs"
            ;;
        quotes)
            local opts="--tui --seed --tldr"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            return 0
            ;;
        --sequence|-q)
            COMPREPLY=( $(compgen -W "fibonacci lucas pell jacobsthal tribonacci" -- "$cur") )
            return 0
            ;;
        --defs|--export|-x)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _seqctl seqctl
`

const zshCompletionScript = `#compdef seqctl

_seqctl() {
  local -a cmds
  cmds=(
    'eval:evaluate terms of a sequence'
    'seq:table of sequence terms'
    'sequences:list known sequences'
    'quotes:browse and add quotes'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--schema[dump schema]'
  '--tldr[show tldr page]'
  )

  local -a sequence
  sequence=(
  '(-q --sequence)'{-q,--sequence}'[sequence name]:name:(fibonacci lucas pell jacobsthal tribonacci)'
  '--defs[definitions file]:file:_files'
  '--commas[group digits with commas]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'seqctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    eval)
      _arguments -C \
        $sequence \
        '(-T --time)'{-T,--time}'[report computation time]' \
        '--examples[show examples]' \
        '--tldr[show tldr page]' \
        '*:index:'
      ;;
    seq)
      _arguments -C \
        $common \
        $sequence \
        '--from[first index]:index' \
        '--to[last index]:index' \
        '(-x --export)'{-x,--export}'[export destination]:destination:_files' \
        '--aws-profile[AWS profile]:profile' \
        '--aws-region[AWS region]:region' \
        '--s3-endpoint[S3 endpoint]:url'
      ;;
    sequences)
      _arguments -C \
        $common \
        '--defs[definitions file]:file:_files'
      ;;
    quotes)
      _arguments -C \
        '--tui[full screen interface]' \
        '--seed[random seed]:seed' \
        '--tldr[show tldr page]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _seqctl seqctl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}

	w := writer(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	case "":
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(w, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(w, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: seqctl completion [bash|zsh]")
		}
	default:
		return fmt.Errorf("unsupported shell %q, want bash or zsh", shell)
	}
	return nil
}

func CompletionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "seqctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
