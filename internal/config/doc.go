// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for sshcfg's own user
// configuration (not the ssh client config being resolved). The configuration
// is expected to be a YAML document located in the user's configuration
// directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/sshcfg.yaml or $HOME/.config/sshcfg.yaml
//   - Windows: %APPDATA%/sshcfg/sshcfg.yaml
//
// Actual resolution relies on os.UserConfigDir which follows platform
// conventions.
package config
