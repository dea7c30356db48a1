// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	return nil
}

// OutputValidator accepts the renderings Spit knows how to emit. raw is the
// flat keyword/value form suitable for shell consumption.
func OutputValidator(value any) error {
	validOutputFlagValues := []string{"text", "json", "raw", "yaml"}
	s, ok := value.(string)
	if !ok || !slices.Contains(validOutputFlagValues, s) {
		return fmt.Errorf("output format must be one of %v", validOutputFlagValues)
	}
	return nil
}
