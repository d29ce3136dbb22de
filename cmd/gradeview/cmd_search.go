package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "search QUERY",
		Short:   "Autocomplete a course by subject and number",
		Example: "  gradeview search \"CS 17\"\n  gradeview search MAT",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, root)
			if err != nil {
				return err
			}
			defer a.Close()

			ds, err := loadDataset(ctx, a)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			options := ds.Index().Search(strings.Join(args, " "))
			if len(options) == 0 {
				fmt.Fprintln(out, "No matches. Search by subject and number, e.g. CS 173 or MATH 2")
				return nil
			}
			for _, option := range options {
				fmt.Fprintln(out, option)
			}
			return nil
		},
	}
}
