// Package dataset loads the grade-distribution table and indexes it by
// course.
package dataset

import (
	"sort"

	"github.com/i-am-zach/uiuc-grade-stats/internal/types"
)

// Dataset is the parsed grade-distribution table. It is immutable once
// built, so any number of goroutines may read it.
type Dataset struct {
	rows     []types.GradeRow
	byCourse map[types.CourseRef][]types.GradeRow
	index    *CourseIndex
}

// New indexes rows. The slice is owned by the Dataset afterwards.
func New(rows []types.GradeRow) *Dataset {
	ds := &Dataset{
		rows:     rows,
		byCourse: make(map[types.CourseRef][]types.GradeRow),
	}
	for _, row := range rows {
		key := row.Key()
		ds.byCourse[key] = append(ds.byCourse[key], row)
	}
	ds.index = BuildCourseIndex(ds)
	return ds
}

func (d *Dataset) Len() int {
	return len(d.rows)
}

// Rows returns every row in file order. Callers must not modify it.
func (d *Dataset) Rows() []types.GradeRow {
	return d.rows
}

// Candidates returns the rows of one course in file order.
func (d *Dataset) Candidates(subject string, number types.CourseNumber) []types.GradeRow {
	return d.byCourse[types.CourseRef{Subject: subject, Number: number}]
}

// Index is the subject -> course numbers index built at construction.
func (d *Dataset) Index() *CourseIndex {
	return d.index
}

// Years lists the distinct years a course has rows for, ascending.
func (d *Dataset) Years(subject string, number types.CourseNumber) []int {
	seen := make(map[int]struct{})
	years := []int{}
	for _, row := range d.Candidates(subject, number) {
		if _, ok := seen[row.Year]; ok {
			continue
		}
		seen[row.Year] = struct{}{}
		years = append(years, row.Year)
	}
	sort.Ints(years)
	return years
}
