// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
)

// systemConfigPath is the fallback client config consulted when the user has
// none of their own.
const systemConfigPath = "/etc/ssh/ssh_config"

// ResolveConfigPath decides which ssh client config file to read. An explicit
// path wins outright (and must exist). Otherwise the SSHCFG_FILE environment
// variable is honored, then ~/.ssh/config, then the system-wide file. It
// returns an error when no candidate exists or the winner is a directory.
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		return checkFile(explicit)
	}

	if p := os.Getenv("SSHCFG_FILE"); p != "" {
		return checkFile(p)
	}

	if home, err := os.UserHomeDir(); err == nil {
		user := filepath.Join(home, ".ssh", "config")
		if _, err := checkFile(user); err == nil {
			return user, nil
		}
	}

	return checkFile(systemConfigPath)
}

// checkFile verifies path exists and is a regular file.
func checkFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", os.ErrInvalid
	}
	return path, nil
}
