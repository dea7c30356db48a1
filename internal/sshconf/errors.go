// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sshconf

import "fmt"

// ParseError is the one fatal parse condition: a malformed Host pattern list.
// No partial Config is returned alongside it. Line is 1-based and filled in
// by Parse; the pattern-level parser only knows the offending text.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Text)
}
