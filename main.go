// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sshcfg/sshcfg/internal/command"
	"github.com/sshcfg/sshcfg/internal/config"
	"github.com/sshcfg/sshcfg/internal/log"
	"github.com/sshcfg/sshcfg/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	switch {
	case len(args) > 1 && args[1] == "completion":
		// Short-circuit completion: pass args directly.
		return args
	default:
		args = processSetOnly(args)
		log.Debugf("args after set processing: args=%v", args)

		args = deduplicateFlags(args)
		log.Debugf("args after dedup: args=%v", args)

		return args
	}
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly handles the @set logic for all commands, expanding set arguments at the @set position.
func processSetOnly(args []string) []string {
	// Look for an explicit @set argument starting from index 2.
	idx := 2
	set := "defaults"
	removeIdx := -1
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") {
			set = a[1:]
			removeIdx = idx + i
			break
		}
	}
	if removeIdx != -1 {
		// Remove the @set argument and expand its entries at that position.
		args = append(args[:removeIdx], args[removeIdx+1:]...)
		args = injectConfigSet(args, args[1]+"."+set, removeIdx)
	}
	return args
}

// injectConfigSet expands the named config set into individual arguments and
// splices them in at insertIdx.
func injectConfigSet(args []string, key string, insertIdx int) []string {
	entries, _ := config.GetStringSlice(key)
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	return append(args[:insertIdx], append(expanded, args[insertIdx:]...)...)
}

// deduplicateFlags keeps only the last occurrence of a repeated flag so that
// args injected from a config set can be overridden on the command line.
// Positional arguments are never touched.
func deduplicateFlags(args []string) []string {
	if len(args) == 0 {
		return args
	}

	// Group args into units: a positional, a --flag=value token, or a flag
	// plus its value token.
	type unit struct {
		tokens []string
		key    string
	}

	var units []unit
	for i := 0; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") {
			units = append(units, unit{tokens: []string{a}})
			continue
		}

		key, _, hasEq := strings.Cut(a, "=")
		tokens := []string{a}
		if !hasEq && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			tokens = append(tokens, args[i+1])
			i++
		}
		units = append(units, unit{tokens: tokens, key: key})
	}

	// Keep only the last occurrence of each flag key.
	result := make([]string, 0, len(args))
	for i, u := range units {
		if u.key != "" {
			dup := false
			for _, later := range units[i+1:] {
				if later.key == u.key {
					dup = true
					break
				}
			}
			if dup {
				continue
			}
		}
		result = append(result, u.tokens...)
	}

	return result
}
