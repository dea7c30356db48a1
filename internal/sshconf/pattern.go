// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sshconf

import (
	"regexp"
	"strings"
)

// Pattern is one entry of a Host directive's pattern list. Glob is the
// literal pattern text with the quote and negation markers already stripped.
type Pattern struct {
	Negated bool
	Glob    string

	re *regexp.Regexp
}

// Match reports whether the glob matches the whole hostname,
// case-insensitively. "*" matches any run of characters and "?" exactly one.
func (p Pattern) Match(hostname string) bool {
	return p.re.MatchString(hostname)
}

// globRegexp compiles a glob into an anchored, case-insensitive regexp.
func globRegexp(glob string) *regexp.Regexp {
	var sb strings.Builder
	sb.WriteString(`(?i)^`)
	for _, r := range glob {
		switch r {
		case '*':
			sb.WriteString(`.*`)
		case '?':
			sb.WriteString(`.`)
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString(`$`)
	return regexp.MustCompile(sb.String())
}

// parsePatterns splits the value of a Host directive into its ordered
// pattern list. Tokens are separated by whitespace; a token is either bare or
// wrapped in a matching pair of double quotes (which may contain spaces). A
// leading "!" negates the token and is consumed before quote handling. An
// unterminated quote fails with a ParseError.
func parsePatterns(value string) ([]Pattern, error) {
	var patterns []Pattern

	i := 0
	for i < len(value) {
		c := value[i]
		if c == ' ' || c == '\t' {
			i++
			continue
		}

		negated := false
		if c == '!' {
			negated = true
			i++
			if i >= len(value) {
				break
			}
			c = value[i]
		}

		var text string
		if c == '"' {
			end := strings.IndexByte(value[i+1:], '"')
			if end < 0 {
				return nil, &ParseError{Text: value, Reason: "unterminated quote in host pattern"}
			}
			text = value[i+1 : i+1+end]
			i += end + 2
		} else {
			end := i
			for end < len(value) && value[end] != ' ' && value[end] != '\t' && value[end] != '"' {
				end++
			}
			text = value[i:end]
			i = end
		}

		patterns = append(patterns, Pattern{
			Negated: negated,
			Glob:    text,
			re:      globRegexp(text),
		})
	}

	return patterns, nil
}

// matchPatterns applies a block's pattern list to a hostname: at least one
// non-negated pattern must match and no negated pattern may match. A list of
// only negated patterns can never match. The empty list is the implicit
// pre-Host block and matches everything.
func matchPatterns(patterns []Pattern, hostname string) bool {
	if len(patterns) == 0 {
		return true
	}

	matched := false
	for _, p := range patterns {
		if !p.Match(hostname) {
			continue
		}
		if p.Negated {
			return false
		}
		matched = true
	}
	return matched
}
