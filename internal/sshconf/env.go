// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sshconf

import (
	"context"
	"net"
	"os"
	"os/user"
	"strings"
	"time"

	"github.com/apex/log"
)

// Environment supplies the caller-side facts the resolver needs: the home
// directory for tilde expansion, the local username for %r fallback, and the
// local-FQDN computation backing %l. It exists as an explicit collaborator,
// not package state, so tests can pin deterministic values.
type Environment struct {
	HomeDir  string
	Username string

	// FQDN returns the local machine's fully-qualified hostname. family is
	// the AddressFamily setting in effect ("inet", "inet6", or "" / "all").
	// Implementations must not fail; on any resolution problem they fall back
	// to the bare machine hostname.
	FQDN func(family string) string
}

// SystemEnvironment builds an Environment from the current process. Values
// that cannot be determined are left empty rather than failing, since most
// lookups never touch them.
func SystemEnvironment() *Environment {
	env := &Environment{FQDN: localFQDN}

	if home, err := os.UserHomeDir(); err == nil {
		env.HomeDir = home
	}
	if u, err := user.Current(); err == nil {
		env.Username = u.Username
	}

	return env
}

// localFQDN is the default %l implementation. It resolves the machine
// hostname to an address of the requested family and asks the resolver for
// that address's canonical name. Every failure path degrades to the bare
// hostname; this function is only ever reached when a value actually
// references %l.
func localFQDN(family string) string {
	host, err := os.Hostname()
	if err != nil {
		log.Debugf("hostname lookup failed: %v", err)
		return "localhost"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	network := "ip"
	switch family {
	case "inet":
		network = "ip4"
	case "inet6":
		network = "ip6"
	}

	addrs, err := net.DefaultResolver.LookupIP(ctx, network, host)
	if err != nil || len(addrs) == 0 {
		log.Debugf("address lookup for %q failed: %v", host, err)
		return host
	}

	names, err := net.DefaultResolver.LookupAddr(ctx, addrs[0].String())
	if err != nil || len(names) == 0 {
		log.Debugf("reverse lookup for %q failed: %v", addrs[0], err)
		return host
	}

	return strings.TrimSuffix(names[0], ".")
}
