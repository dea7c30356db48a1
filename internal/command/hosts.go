// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/sshcfg/sshcfg/internal/filters"
	"github.com/sshcfg/sshcfg/internal/meta"
	"github.com/sshcfg/sshcfg/internal/output"
)

// hostsColumns is the column order for the --long listing.
var hostsColumns = []string{"host", "hostname", "user", "port"}

// hostsCommandAction is the action handler for the "hosts" subcommand. It
// lists the literal host patterns configured in the config file. With --long
// each pattern is also resolved so the listing shows where a connection would
// actually land.
func hostsCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("Executing action for %v", meta.Args[1:])

	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	header := "\nHosts configured in " + path
	if cmd.Bool("long") {
		header += " (resolved)"
	}
	header += ":"
	cmd.Metadata["header"] = header

	var dataset []map[string]interface{}
	for _, host := range cfg.Hostnames() {
		row := map[string]interface{}{"host": host}
		if cmd.Bool("long") {
			settings := cfg.Lookup(host)
			row["hostname"] = settings["hostname"]
			row["user"] = settings["user"]
			row["port"] = settings["port"]
		}
		dataset = append(dataset, row)
	}

	// Filter out the rows we don't want before rendering.
	if spec := cmd.String("filter"); spec != "" {
		dataset = filters.FilterDataset(dataset, spec)
	}

	columns := hostsColumns[:1]
	if cmd.Bool("long") {
		columns = hostsColumns
	}

	output.SpitDataset(dataset, columns, cmd, nil)

	return nil
}

// hostsCommandBuilder constructs the cli.Command for "hosts", wiring
// metadata, flags, and action handlers.
func hostsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "hosts",
		Usage:     "list configured host patterns",
		UsageText: "sshcfg hosts [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "comma-separated list of filters to apply to results",
			},
			&cli.BoolFlag{
				Name:    "long",
				Aliases: []string{"l"},
				Usage:   "resolve each host and show hostname, user and port",
			},
			NewFileFlag("hosts", meta.Config.Source),
		},
		Action: hostsCommandAction,
		Meta:   meta,
	}).Build()
}
