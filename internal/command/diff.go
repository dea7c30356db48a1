// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/sshcfg/sshcfg/internal/differ"
	"github.com/sshcfg/sshcfg/internal/meta"
)

// diffCommandAction is the action handler for the "diff" subcommand. It
// resolves the settings of two hosts and renders what differs between them.
// With fewer than two positional arguments an interactive picker is shown.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("Executing action for %v", meta.Args[1:])

	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	hosts := cmd.Args().Slice()
	if len(hosts) < 2 {
		hosts = differ.SelectHosts(cfg.Hostnames())
		if len(hosts) != 2 {
			return fmt.Errorf("two hosts are required")
		}
	}

	docs := make([][]byte, 2)
	for i, host := range hosts[:2] {
		docs[i], err = json.Marshal(cfg.Lookup(host))
		if err != nil {
			return fmt.Errorf("failed to marshal settings for %s: %w", host, err)
		}
	}

	return differ.Diff(ctx, cmd, docs)
}

// diffCommandBuilder constructs the cli.Command for "diff", wiring metadata,
// flags, and action handlers.
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "diff",
		Usage:     "compare the resolved settings of two hosts",
		UsageText: "sshcfg diff [HOST HOST] [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "diff-filter",
				Usage: "comma-separated list of keywords to exclude from the diff",
				Value: "hostname",
			},
			NewFileFlag("diff", meta.Config.Source),
		},
		Action: diffCommandAction,
		Meta:   meta,
	}).Build()
}
