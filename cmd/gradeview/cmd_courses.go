package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/i-am-zach/uiuc-grade-stats/internal/dataset"
	"github.com/i-am-zach/uiuc-grade-stats/internal/grades"
)

func newCoursesCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Manage the list of courses you are tracking",
	}
	cmd.AddCommand(newCoursesListCmd(root))
	cmd.AddCommand(newCoursesAddCmd(root))
	cmd.AddCommand(newCoursesRemoveCmd(root))
	cmd.AddCommand(newCoursesClearCmd(root))
	return cmd
}

func newCoursesListCmd(root *rootOptions) *cobra.Command {
	var withTitles bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, root)
			if err != nil {
				return err
			}
			defer a.Close()

			refs := a.Store.List()
			out := cmd.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(out, "No courses selected. Add one with 'gradeview courses add CS 173'.")
				return nil
			}

			var ds *dataset.Dataset
			if withTitles {
				if ds, err = loadDataset(ctx, a); err != nil {
					return err
				}
			}
			for _, ref := range refs {
				if ds == nil {
					fmt.Fprintln(out, ref.ShortName())
					continue
				}
				fmt.Fprintf(out, "%s\t%s\n", ref.ShortName(), grades.NewCourseFromRef(ds, ref).Title)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withTitles, "titles", false, "Load the dataset and print course titles")
	return cmd
}

func newCoursesAddCmd(root *rootOptions) *cobra.Command {
	var skipCheck bool

	cmd := &cobra.Command{
		Use:   "add SUBJECT NUMBER",
		Short: "Track a course",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseCourseArgs(args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := openApp(ctx, root)
			if err != nil {
				return err
			}
			defer a.Close()

			if !skipCheck {
				ds, err := loadDataset(ctx, a)
				if err != nil {
					return err
				}
				if !ds.Index().Contains(ref) {
					return fmt.Errorf("no grade data for %s", ref.ShortName())
				}
			}

			added, err := a.Store.Add(ctx, ref)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !added {
				fmt.Fprintf(out, "%s is already selected\n", ref.ShortName())
				return nil
			}
			fmt.Fprintf(out, "Added %s\n", ref.ShortName())
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipCheck, "no-check", false, "Do not check the course against the dataset")
	return cmd
}

func newCoursesRemoveCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove SUBJECT NUMBER",
		Short: "Stop tracking a course",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseCourseArgs(args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := openApp(ctx, root)
			if err != nil {
				return err
			}
			defer a.Close()

			removed, err := a.Store.Remove(ctx, ref)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !removed {
				fmt.Fprintf(out, "%s is not selected\n", ref.ShortName())
				return nil
			}
			fmt.Fprintf(out, "Removed %s\n", ref.ShortName())
			return nil
		},
	}
}

func newCoursesClearCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Stop tracking every course",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, root)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Store.Clear(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared selected courses")
			return nil
		},
	}
}
