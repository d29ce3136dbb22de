package grades

import (
	"github.com/i-am-zach/uiuc-grade-stats/internal/dataset"
	"github.com/i-am-zach/uiuc-grade-stats/internal/types"
)

// AllInstructors disables instructor filtering.
const AllInstructors = "All"

// Filter narrows a course's rows to a set of years and optionally one
// instructor.
type Filter struct {
	Years      []int
	Instructor string
}

// NewFilter builds a filter over years. An empty instructor means AllInstructors.
func NewFilter(years []int, instructor string) Filter {
	if instructor == "" {
		instructor = AllInstructors
	}
	return Filter{Years: years, Instructor: instructor}
}

func (f Filter) matchesYear(year int) bool {
	for _, y := range f.Years {
		if y == year {
			return true
		}
	}
	return false
}

func (f Filter) matchesInstructor(instructor string) bool {
	return f.Instructor == AllInstructors || f.Instructor == instructor
}

// Match reports whether row passes the year and instructor filters.
func (f Filter) Match(row types.GradeRow) bool {
	return f.matchesYear(row.Year) && f.matchesInstructor(row.Instructor)
}

// FilterRows selects the rows for (subject, number) whose year is in
// f.Years and whose instructor matches. Subject and number must match
// exactly. No match yields an empty, non-nil slice.
func FilterRows(ds *dataset.Dataset, subject string, number types.CourseNumber, f Filter) []types.GradeRow {
	out := []types.GradeRow{}
	if ds == nil {
		return out
	}
	for _, row := range ds.Candidates(subject, number) {
		if f.Match(row) {
			out = append(out, row)
		}
	}
	return out
}

// ListInstructors returns the distinct, non-empty instructors in rows in
// order of first appearance. Callers that offer a choice prepend
// AllInstructors themselves.
func ListInstructors(rows []types.GradeRow) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, row := range rows {
		if row.Instructor == "" {
			continue
		}
		if _, ok := seen[row.Instructor]; ok {
			continue
		}
		seen[row.Instructor] = struct{}{}
		out = append(out, row.Instructor)
	}
	return out
}
