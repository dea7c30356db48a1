// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/kballard/go-shellquote"
	"github.com/urfave/cli/v3"

	"github.com/sshcfg/sshcfg/internal/meta"
)

// buildArgv converts resolved settings into an ssh command line for the
// given host. Only settings with a direct ssh flag equivalent are included,
// anything else still takes effect when ssh reads the same config file.
func buildArgv(host string, settings map[string]interface{}) []string {
	argv := []string{"ssh"}

	if user, ok := settings["user"].(string); ok && user != "" {
		argv = append(argv, "-l", user)
	}

	if port, ok := settings["port"].(string); ok && port != "" && port != "22" {
		argv = append(argv, "-p", port)
	}

	switch family, _ := settings["addressfamily"].(string); family {
	case "inet":
		argv = append(argv, "-4")
	case "inet6":
		argv = append(argv, "-6")
	}

	if files, ok := settings["identityfile"].([]string); ok {
		for _, f := range files {
			argv = append(argv, "-i", f)
		}
	}

	if proxy, ok := settings["proxycommand"].(string); ok && proxy != "" {
		argv = append(argv, "-o", "ProxyCommand="+proxy)
	}

	target := host
	if hostname, ok := settings["hostname"].(string); ok && hostname != "" {
		target = hostname
	}

	return append(argv, target)
}

// argsCommandAction is the action handler for the "args" subcommand. It
// prints the ssh command line equivalent to the resolved settings, quoted
// for copy-paste into a shell.
func argsCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("Executing action for %v", meta.Args[1:])

	host, err := hostArg(cmd)
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	argv := buildArgv(host, cfg.Lookup(host))

	if cmd.String("output") == "json" {
		jsonBytes, err := json.Marshal(argv)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(jsonBytes))
		return nil
	}

	fmt.Fprintln(os.Stdout, shellquote.Join(argv...))
	return nil
}

// argsCommandBuilder constructs the cli.Command for "args", wiring metadata,
// flags, and action handlers.
func argsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "args",
		Usage:     "print the equivalent ssh command line for a host",
		UsageText: "sshcfg args HOST [options]",
		Flags: []cli.Flag{
			NewFileFlag("args", meta.Config.Source),
		},
		Action: argsCommandAction,
		Meta:   meta,
	}).Build()
}
