// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Diff compares the resolved settings of two hosts. Both docs are JSON
// marshaled settings maps.
func Diff(ctx context.Context, cmd *cli.Command, docs [][]byte) error {
	log.Debugf(">> differ()")

	if len(docs[0]) == 0 || len(docs[1]) == 0 {
		return nil
	}

	log.Debugf("len(docs): %d %d", len(docs[0]), len(docs[1]))

	differ := gojsondiff.New()

	delta, err := differ.Compare(docs[0], docs[1])
	if err != nil {
		return fmt.Errorf("failed to compare settings: %w", err)
	}

	if delta.Modified() {
		var jdoc map[string]interface{}
		if err := json.Unmarshal(docs[0], &jdoc); err != nil {
			return fmt.Errorf("failed to unmarshal settings: %w", err)
		}

		// Keywords the user doesn't care to see flagged, typically hostname
		// itself which differs for any two hosts anyway.
		filter := cmd.String("diff-filter")

		for key := range strings.SplitSeq(filter, ",") {
			if key != "" {
				delete(jdoc, key)
			}
		}

		config := formatter.AsciiFormatterConfig{
			ShowArrayIndex: false,
			Coloring:       cmd.Bool("color"),
		}

		formatter := formatter.NewAsciiFormatter(jdoc, config)
		diffString, err := formatter.Format(delta)
		if err != nil {
			return err
		}

		fmt.Fprintln(os.Stdout, diffString)
		return nil
	}

	fmt.Fprintln(os.Stdout, "The resolved settings are identical.")
	return nil
}
