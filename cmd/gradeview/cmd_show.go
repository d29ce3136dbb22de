package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/i-am-zach/uiuc-grade-stats/internal/grades"
)

type showOptions struct {
	years      []string
	instructor string
	json       bool
}

func newShowCmd(root *rootOptions) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show SUBJECT NUMBER",
		Short: "Show the grade distribution of a course",
		Example: "  gradeview show CS 173\n" +
			"  gradeview show CS 173 --years 2019,2020 --instructor \"Smith, John\"",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, root, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&opts.years, "years", nil, "Years to include (default: every year with data)")
	f.StringVar(&opts.instructor, "instructor", grades.AllInstructors, "Instructor to include, or All")
	f.BoolVar(&opts.json, "json", false, "Print the full summary as JSON")
	return cmd
}

func runShow(cmd *cobra.Command, root *rootOptions, opts *showOptions, args []string) error {
	ref, err := parseCourseArgs(args)
	if err != nil {
		return err
	}
	years, err := parseYearList(opts.years)
	if err != nil {
		return err
	}

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

	course := grades.NewCourseFromRef(ds, ref)
	if !course.Known() {
		return fmt.Errorf("no grade data for %s", ref.ShortName())
	}
	if len(years) == 0 {
		years = course.Years()
	}

	summary := course.Summarize(grades.NewFilter(years, opts.instructor))

	out := cmd.OutOrStdout()
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	printSummary(out, summary, course.Instructors(years))
	return nil
}

func printSummary(out io.Writer, s grades.Summary, instructors []string) {
	fmt.Fprintf(out, "%s: %s\n", s.Course.ShortName(), s.Title)
	fmt.Fprintf(out, "Years:       %v\n", s.Years)
	fmt.Fprintf(out, "Instructor:  %s\n", s.Instructor)
	fmt.Fprintf(out, "Taught by:   %d instructor(s)\n", len(instructors))
	fmt.Fprintf(out, "Students:    %d\n", s.N)
	if s.N == 0 {
		fmt.Fprintln(out, "No students match these filters.")
		return
	}

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "GRADE\tGPA\tCOUNT\tPERCENT")
	for i, gpa := range grades.GPAScale {
		grade, _ := grades.GPAToGrade(gpa)
		fmt.Fprintf(w, "%s\t%s\t%d\t%.1f%%\n", grade, gpa, s.ByGPA[i], percent(s.ByGPA[i], s.N))
	}
	w.Flush()

	fmt.Fprintln(out)
	for _, bucket := range s.Sunburst.Buckets {
		fmt.Fprintf(out, "%s: %d (%.1f%%)\n", bucket.Label, bucket.Count, percent(bucket.Count, s.N))
	}
}
