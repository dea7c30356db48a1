// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters provides filtering capabilities for host listings.
//
// The package parses filter expressions to select subsets of hosts based on
// their resolved settings. Filters are specified as key-operator-target
// expressions and can be combined using a configurable delimiter (default:
// comma).
//
// Operators include:
//
//   - = : exact match (supports negation with !=)
//   - ^ : prefix match (supports negation with !^)
//   - ~ : case-insensitive match (supports negation with !~)
//   - < : less than
//   - > : greater than
//   - @ : contains (supports negation with !@)
//   - / : regex match (supports negation with !/)
//
// Examples:
//
//   - "user=robey" : matches hosts that resolve to user "robey"
//   - "hostname^web" : matches hosts whose hostname starts with "web"
//   - "port=2222" : matches hosts on port 2222
//   - "hostname!@internal" : matches hosts whose hostname does not contain "internal"
//   - "identityfile@~/.ssh/id_rsa" : matches hosts that would offer that key
//
// Filter Parsing:
//
// The BuildFilters function parses a comma-delimited (or custom-delimited)
// filter specification string. Invalid specifications (unsupported operands
// or malformed expressions) are logged as warnings and skipped, allowing
// partial filter sets to be processed.
//
// Filter Application:
//
// The FilterDataset function filters a list of candidate rows, keeping only
// those that match all provided filter expressions.
package filters
