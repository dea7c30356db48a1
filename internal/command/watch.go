// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/sshcfg/sshcfg/internal/meta"
	"github.com/sshcfg/sshcfg/internal/output"
	"github.com/sshcfg/sshcfg/internal/sshconf"
	"github.com/sshcfg/sshcfg/internal/util"
)

// watchCommandAction is the action handler for the "watch" subcommand. It
// resolves a host, then keeps watching the config file and re-emits the
// resolution whenever the file content changes. Interrupt to stop.
func watchCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("Executing action for %v", meta.Args[1:])

	host, err := hostArg(cmd)
	if err != nil {
		return err
	}

	path, err := util.ResolveConfigPath(cmd.String("file"))
	if err != nil {
		return fmt.Errorf("no usable ssh config file: %w", err)
	}

	mgr, err := sshconf.NewManager(path, sshconf.SystemEnvironment())
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	defer mgr.Close()

	emit := func() {
		output.Spit(mgr.Lookup(host), cmd, nil)
	}

	mgr.SetOnReload(func() {
		fmt.Fprintf(os.Stdout, "%s changed\n", path)
		emit()
	})

	emit()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	return nil
}

// watchCommandBuilder constructs the cli.Command for "watch", wiring
// metadata, flags, and action handlers.
func watchCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "watch",
		Usage:     "re-resolve a host whenever the config file changes",
		UsageText: "sshcfg watch HOST [options]",
		Flags: []cli.Flag{
			NewFileFlag("watch", meta.Config.Source),
		},
		Action: watchCommandAction,
		Meta:   meta,
	}).Build()
}
