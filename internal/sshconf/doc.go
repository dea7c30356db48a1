// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package sshconf parses OpenSSH-style client configuration and resolves the
// effective settings for a host alias. A Config is built once from a text
// stream and is read-only afterwards; Lookup cascades the Host blocks in file
// order, merging single-valued keywords first-match-wins and accumulating
// multi-valued keywords such as identityfile. The post-processing pass handles
// %h/%p/%l/%r token interpolation, tilde expansion and the "ProxyCommand none"
// suppression rule.
//
// The package never touches the network or the filesystem on behalf of the
// caller. The one exception is the lazy local-FQDN computation backing %l,
// which is routed through an Environment so tests can substitute a fixed
// value.
package sshconf
