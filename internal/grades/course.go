package grades

import (
	"github.com/i-am-zach/uiuc-grade-stats/internal/dataset"
	"github.com/i-am-zach/uiuc-grade-stats/internal/types"
)

// Course is a read-only view of one course over a dataset. It is built per
// request and never mutated; its title is resolved once from the first
// matching row and is empty when the dataset has no such course.
type Course struct {
	Subject string
	Number  types.CourseNumber
	Title   string

	data *dataset.Dataset
}

func NewCourse(ds *dataset.Dataset, subject string, number types.CourseNumber) *Course {
	c := &Course{Subject: subject, Number: number, data: ds}
	if ds != nil {
		if rows := ds.Candidates(subject, number); len(rows) > 0 {
			c.Title = rows[0].CourseTitle
		}
	}
	return c
}

// NewCourseFromRef builds a course from a persisted reference.
func NewCourseFromRef(ds *dataset.Dataset, ref types.CourseRef) *Course {
	return NewCourse(ds, ref.Subject, ref.Number)
}

func (c *Course) Ref() types.CourseRef {
	return types.CourseRef{Subject: c.Subject, Number: c.Number}
}

func (c *Course) ShortName() string {
	return c.Ref().ShortName()
}

// Equals compares course identity only.
func (c *Course) Equals(ref types.CourseRef) bool {
	return c.Subject == ref.Subject && c.Number == ref.Number
}

// Known reports whether the dataset has any rows for the course.
func (c *Course) Known() bool {
	return c.data != nil && len(c.data.Candidates(c.Subject, c.Number)) > 0
}

// Years lists the years the course has data for, ascending.
func (c *Course) Years() []int {
	if c.data == nil {
		return []int{}
	}
	return c.data.Years(c.Subject, c.Number)
}

// Rows returns the fitted rows for f.
func (c *Course) Rows(f Filter) []types.GradeRow {
	return FilterRows(c.data, c.Subject, c.Number, f)
}

// Instructors lists who taught the course in years, ignoring any
// instructor filter.
func (c *Course) Instructors(years []int) []string {
	return ListInstructors(c.Rows(NewFilter(years, AllInstructors)))
}

func (c *Course) AggregateByGrade(f Filter) ByGrade {
	return AggregateByGrade(c.Rows(f))
}

func (c *Course) AggregateByGPA(f Filter) ByGPA {
	return AggregateByGPA(c.Rows(f))
}

// N is the total enrollment under f.
func (c *Course) N(f Filter) int {
	return TotalEnrollment(c.Rows(f))
}

func (c *Course) Sunburst(f Filter) Sunburst {
	return NewSunburst(c.AggregateByGrade(f))
}

func (c *Course) BarChart(f Filter) BarChart {
	return NewBarChart(c.AggregateByGPA(f))
}

// Summary is every view of a course under one filter, computed from a single
// scan of the fitted rows.
type Summary struct {
	Course     types.CourseRef `json:"course"`
	Title      string          `json:"title"`
	Years      []int           `json:"years"`
	Instructor string          `json:"instructor"`
	N          int             `json:"n"`
	ByGrade    ByGrade         `json:"by_grade"`
	ByGPA      ByGPA           `json:"by_gpa"`
	Sunburst   Sunburst        `json:"sunburst"`
	Plotly     PlotlySunburst  `json:"sunburst_plotly"`
	BarChart   BarChart        `json:"bar_chart"`
}

func (c *Course) Summarize(f Filter) Summary {
	byGrade := c.AggregateByGrade(f)
	byGPA := byGrade.ByGPA()
	sunburst := NewSunburst(byGrade)
	return Summary{
		Course:     c.Ref(),
		Title:      c.Title,
		Years:      f.Years,
		Instructor: f.Instructor,
		N:          byGrade.Total(),
		ByGrade:    byGrade,
		ByGPA:      byGPA,
		Sunburst:   sunburst,
		Plotly:     sunburst.Plotly(),
		BarChart:   NewBarChart(byGPA),
	}
}
