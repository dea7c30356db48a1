// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sshconf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// multiValued is the merge-policy table: keywords listed here accumulate
// across matching blocks instead of being overwritten. Everything else is
// single-valued, first matching block wins.
var multiValued = map[string]bool{
	"identityfile":  true,
	"localforward":  true,
	"remoteforward": true,
}

// block is one Host directive plus the settings lines that follow it. An
// empty pattern list marks the implicit pre-Host block, which matches every
// hostname and sits first in file order. settings values are string, or
// []string for multi-valued keywords.
type block struct {
	patterns []Pattern
	settings map[string]any
}

// Config is an immutable, parsed client configuration. Build one with Parse
// and query it with Lookup any number of times.
type Config struct {
	blocks []*block
	env    *Environment
}

// Parse consumes the full stream and returns the parsed Config, using the
// process's own home directory, username and resolver for post-processing.
func Parse(r io.Reader) (*Config, error) {
	return ParseWithEnv(r, SystemEnvironment())
}

// ParseWithEnv is Parse with an explicit Environment, for callers (and
// tests) that need deterministic tilde expansion and %l values.
func ParseWithEnv(r io.Reader, env *Environment) (*Config, error) {
	cfg := &Config{env: env}
	current := &block{settings: map[string]any{}}

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++

		key, value, ok := splitLine(scanner.Text())
		if !ok {
			continue
		}

		if key == "host" {
			patterns, err := parsePatterns(value)
			if err != nil {
				var pe *ParseError
				if errors.As(err, &pe) {
					pe.Line = lineno
				}
				return nil, err
			}
			cfg.blocks = append(cfg.blocks, current)
			current = &block{patterns: patterns, settings: map[string]any{}}
			continue
		}

		value = stripValueQuotes(value)
		if multiValued[key] {
			existing, _ := current.settings[key].([]string)
			current.settings[key] = append(existing, value)
		} else {
			// Duplicated single-valued keyword within one block: last wins.
			current.settings[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read config stream: %w", err)
	}
	cfg.blocks = append(cfg.blocks, current)

	return cfg, nil
}

// Lookup resolves the effective settings for one host alias. Values are
// lower-cased keyword to string, or []string for multi-valued keywords.
// Absent keywords are absent from the map, never present with a placeholder.
// Each call is independent and the returned map is the caller's to mutate.
func (c *Config) Lookup(hostname string) map[string]any {
	ret := map[string]any{}

	// Explicit suppression via "ProxyCommand none": the first matching block
	// asking for no proxy blanks the key for good, so broader blocks later in
	// the file cannot leak a real command back in.
	suppressed := false

	for _, b := range c.blocks {
		if !matchPatterns(b.patterns, hostname) {
			continue
		}
		for key, value := range b.settings {
			if multiValued[key] {
				existing, _ := ret[key].([]string)
				ret[key] = append(existing, value.([]string)...)
				continue
			}
			if _, present := ret[key]; present {
				continue
			}
			if key == "proxycommand" {
				if suppressed {
					continue
				}
				if strings.EqualFold(value.(string), "none") {
					suppressed = true
					continue
				}
			}
			ret[key] = value
		}
	}

	c.expandVariables(ret, hostname)

	return ret
}

// Hostnames returns the distinct literal pattern strings across all explicit
// Host blocks, sorted, with quote and negation markers stripped. The
// implicit pre-Host block is not reported. Intended for completion and
// diagnostics; Lookup does not use it.
func (c *Config) Hostnames() []string {
	seen := map[string]bool{}
	for _, b := range c.blocks {
		for _, p := range b.patterns {
			seen[p.Glob] = true
		}
	}

	hosts := make([]string, 0, len(seen))
	for h := range seen {
		hosts = append(hosts, h)
	}
	sort.Strings(hosts)
	return hosts
}
