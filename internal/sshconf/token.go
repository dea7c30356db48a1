// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sshconf

import (
	"regexp"
	"strings"
)

// settingRegex splits one config line into a keyword and the rest of the
// line. The separator is either a single "=" (with optional surrounding
// whitespace) or a run of whitespace; everything after it is the value,
// verbatim. Only the first "=" can act as the separator, so
// "ProxyCommand=foo bar=biz" yields "foo bar=biz".
var settingRegex = regexp.MustCompile(`^(\w+)(?:\s*=\s*|\s+)(.*)$`)

// splitLine breaks a physical line into its lower-cased keyword and raw
// value. ok is false for blank lines and "#" comments. Lines carrying only a
// keyword (no separator, no value) are tolerated and produce an empty value.
func splitLine(line string) (key, value string, ok bool) {
	// Trimming handles CRLF endings and the leading tabs/spaces the format
	// allows before keywords. Interior whitespace is preserved.
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}

	m := settingRegex.FindStringSubmatch(line)
	if m == nil {
		// Best effort: a bare keyword with nothing after it.
		return strings.ToLower(line), "", true
	}

	return strings.ToLower(m[1]), strings.TrimSpace(m[2]), true
}

// stripValueQuotes removes the outer quotes from a fully double-quoted
// value, e.g. `"test rsa key"` becomes `test rsa key`. Partial quoting is
// left alone.
func stripValueQuotes(value string) string {
	if len(value) > 1 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		return value[1 : len(value)-1]
	}
	return value
}
