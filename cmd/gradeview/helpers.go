package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/i-am-zach/uiuc-grade-stats/internal/app"
	"github.com/i-am-zach/uiuc-grade-stats/internal/config"
	"github.com/i-am-zach/uiuc-grade-stats/internal/dataset"
	"github.com/i-am-zach/uiuc-grade-stats/internal/types"
)

func openApp(ctx context.Context, opts *rootOptions) (*app.App, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.New(ctx, cfg)
}

// loadDataset blocks on the one-time fetch; the CLI has nothing to show
// without it.
func loadDataset(ctx context.Context, a *app.App) (*dataset.Dataset, error) {
	ds, err := a.Data.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// parseCourseArgs accepts "CS 173" as one or two arguments.
func parseCourseArgs(args []string) (types.CourseRef, error) {
	if len(args) == 1 {
		args = strings.Fields(args[0])
	}
	if len(args) != 2 {
		return types.CourseRef{}, fmt.Errorf("expected SUBJECT NUMBER, e.g. CS 173")
	}

	subject := types.NormalizeSubject(args[0])
	if subject == "" {
		return types.CourseRef{}, fmt.Errorf("subject is required")
	}
	number, err := types.ParseCourseNumber(args[1])
	if err != nil {
		return types.CourseRef{}, err
	}
	return types.CourseRef{Subject: subject, Number: number}, nil
}

func parseYearList(values []string) ([]int, error) {
	var years []int
	for _, raw := range values {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			year, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid year %q", part)
			}
			years = append(years, year)
		}
	}
	return years, nil
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
