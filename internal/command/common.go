// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/sshcfg/sshcfg/internal/sshconf"
	"github.com/sshcfg/sshcfg/internal/util"
)

// loadConfig resolves the ssh config file path from the --file flag and
// parses it. The resolved path is returned alongside the parsed config so
// commands can reference it in headers and messages.
func loadConfig(cmd *cli.Command) (*sshconf.Config, string, error) {
	path, err := util.ResolveConfigPath(cmd.String("file"))
	if err != nil {
		return nil, "", fmt.Errorf("no usable ssh config file: %w", err)
	}

	log.Debugf("resolving against %s", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := sshconf.Parse(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, path, nil
}

// hostArg returns the required host positional argument.
func hostArg(cmd *cli.Command) (string, error) {
	host := cmd.Args().First()
	if host == "" {
		return "", fmt.Errorf("a host argument is required")
	}
	return host, nil
}
