// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/sshcfg/sshcfg/internal/meta"
)

const bashCompletionScript = `# bash completion for sshcfg
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_sshcfg()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "lookup hosts diff args watch completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --file -F --output -o --padding --query -q --sort -s --titles -t --tldr"

    case "$cmd" in
        lookup)
            local opts="$common"
            ;;
        hosts)
            local opts="$common --filter -f --long -l"
            ;;
        diff)
            local opts="$common --diff-filter"
            ;;
        args)
            local opts="$common"
            ;;
        watch)
            local opts="$common"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--file" || "$prev" == "-F" ]]; then
        COMPREPLY=( $(compgen -f -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Otherwise offer configured host patterns for the HOST positional
    COMPREPLY=( $(compgen -W "$(sshcfg hosts -o raw 2>/dev/null)" -- "$cur") )
    return 0
}

complete -F _sshcfg sshcfg
`

const zshCompletionScript = `#compdef sshcfg

_sshcfg() {
  local -a cmds
  cmds=(
    'lookup:resolve the effective settings for a host'
    'hosts:list configured host patterns'
    'diff:compare the resolved settings of two hosts'
    'args:print the equivalent ssh command line for a host'
    'watch:re-resolve a host whenever the config file changes'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-F --file)'{-F,--file}'[ssh config file]:file:_files'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '--padding[extra table padding]:padding'
  '(-q --query)'{-q,--query}'[gjson path to extract]:query'
  '(-s --sort)'{-s,--sort}'[sort columns]:columns'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'sshcfg commands' cmds
    return
  fi

  local -a hosts
  hosts=( ${(f)"$(sshcfg hosts -o raw 2>/dev/null)"} )

  case $words[2] in
    lookup|args|watch)
      _arguments -C \
        $common \
        "1:host:(${hosts[@]})"
      ;;
    hosts)
      _arguments -C \
        $common \
        '(-f --filter)'{-f,--filter}'[filters to apply]:filters' \
        '(-l --long)'{-l,--long}'[resolve each host]'
      ;;
    diff)
      _arguments -C \
        $common \
        '--diff-filter[keywords to exclude from the diff]:keywords' \
        "1:host:(${hosts[@]})" \
        "2:host:(${hosts[@]})"
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _sshcfg sshcfg sshcfg
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(os.Stdout, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(os.Stdout, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: sshcfg completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "sshcfg completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
