// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/sshcfg/sshcfg/internal/meta"
	"github.com/sshcfg/sshcfg/internal/output"
)

// lookupCommandAction is the action handler for the "lookup" subcommand. It
// resolves the effective settings for the host given as the first positional
// argument and emits them in the selected format.
func lookupCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("Executing action for %v", meta.Args[1:])

	host, err := hostArg(cmd)
	if err != nil {
		return err
	}

	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	header := fmt.Sprintf("\n%s resolved from %s", host, path)
	if info, err := os.Stat(path); err == nil {
		header += fmt.Sprintf(" (modified %s)", humanize.Time(info.ModTime()))
	}
	header += ":"
	cmd.Metadata["header"] = header

	output.Spit(cfg.Lookup(host), cmd, nil)

	return nil
}

// lookupCommandBuilder constructs the cli.Command for "lookup", wiring
// metadata, flags, and action handlers.
func lookupCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "lookup",
		Usage:     "resolve the effective settings for a host",
		UsageText: "sshcfg lookup HOST [options]",
		Flags: []cli.Flag{
			NewFileFlag("lookup", meta.Config.Source),
		},
		Action: lookupCommandAction,
		Meta:   meta,
	}).Build()
}
