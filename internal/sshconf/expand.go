// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sshconf

import "strings"

// defaultPort is substituted for %p when no port was resolved.
const defaultPort = "22"

// expandVariables is the post-processing pass over a resolved mapping:
// hostname defaulting, tilde expansion, and per-key token interpolation.
// Only proxycommand and identityfile carry path/token semantics; every other
// value is passed through verbatim.
func (c *Config) expandVariables(ret map[string]any, hostname string) {
	if h, ok := ret["hostname"].(string); ok {
		ret["hostname"] = strings.ReplaceAll(h, "%h", hostname)
	} else {
		ret["hostname"] = hostname
	}
	resolvedHost := ret["hostname"].(string)

	port := defaultPort
	if p, ok := ret["port"].(string); ok {
		port = p
	}

	remoteUser := c.env.Username
	if u, ok := ret["user"].(string); ok {
		remoteUser = u
	}

	// %l is the only interpolation that costs a name-resolution call, so it
	// is deferred until a value actually references it and computed at most
	// once per Lookup.
	fqdn := &lazyFQDN{env: c.env, family: addressFamily(ret)}

	if pc, ok := ret["proxycommand"].(string); ok {
		pc = expandCommandTilde(pc, c.env.HomeDir)
		pc = strings.ReplaceAll(pc, "%h", resolvedHost)
		pc = strings.ReplaceAll(pc, "%p", port)
		pc = strings.ReplaceAll(pc, "%r", remoteUser)
		if strings.Contains(pc, "%l") {
			pc = strings.ReplaceAll(pc, "%l", fqdn.get())
		}
		ret["proxycommand"] = pc
	}

	if files, ok := ret["identityfile"].([]string); ok {
		for i, f := range files {
			f = expandLeadingTilde(f, c.env.HomeDir)
			f = strings.ReplaceAll(f, "%d", c.env.HomeDir)
			f = strings.ReplaceAll(f, "%h", resolvedHost)
			if strings.Contains(f, "%l") {
				f = strings.ReplaceAll(f, "%l", fqdn.get())
			}
			files[i] = f
		}
	}
}

// addressFamily extracts a non-"all" AddressFamily constraint, normalized to
// lower case. Empty means unconstrained.
func addressFamily(ret map[string]any) string {
	af, _ := ret["addressfamily"].(string)
	af = strings.ToLower(af)
	if af == "all" {
		return ""
	}
	return af
}

// expandLeadingTilde expands a "~" at the start of a single path.
func expandLeadingTilde(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return home + path[1:]
	}
	return path
}

// expandCommandTilde expands tildes in the path-looking arguments of a
// command line (e.g. the file after -F), leaving the spacing between
// arguments untouched.
func expandCommandTilde(command, home string) string {
	parts := strings.Split(command, " ")
	for i, part := range parts {
		parts[i] = expandLeadingTilde(part, home)
	}
	return strings.Join(parts, " ")
}

// lazyFQDN memoizes one local-FQDN computation for the duration of a Lookup.
type lazyFQDN struct {
	env    *Environment
	family string

	done  bool
	value string
}

func (l *lazyFQDN) get() string {
	if !l.done {
		if l.env.FQDN != nil {
			l.value = l.env.FQDN(l.family)
		}
		l.done = true
	}
	return l.value
}
