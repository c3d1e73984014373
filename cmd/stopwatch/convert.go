package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/tsatke/stopwatch"
)

func newFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "format MILLISECONDS...",
		Short:   "Print milliseconds the way the stopwatch displays them",
		Example: "  stopwatch format 61234   # 01:01.234",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				n, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return errors.Wrapf(err, "format %q", arg)
				}
				if n < 0 {
					return errors.Newf("format %q: negative duration", arg)
				}
				fmt.Fprintln(cmd.OutOrStdout(), stopwatch.FormatDuration(time.Duration(n)*time.Millisecond))
			}
			return nil
		},
	}
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "parse MM:SS.mmm...",
		Short:   "Print the milliseconds of a displayed stopwatch time",
		Example: "  stopwatch parse 01:01.234   # 61234",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				d, err := stopwatch.ParseDuration(arg)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), d.Milliseconds())
			}
			return nil
		},
	}
}
