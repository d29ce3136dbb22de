// Package grades is the grade aggregation engine. It reduces grade
// distribution rows for one course, under year and instructor filters, into
// zero-filled histograms keyed by letter grade or GPA, a two-level sunburst
// tree and chart-ready series.
package grades

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidGrade = errors.New("grade is not in the letter-grade vocabulary")
	ErrUnknownGPA   = errors.New("gpa is not in the canonical gpa table")
)

// Grade is a letter grade from the fixed vocabulary.
type Grade string

// Vocabulary is the fixed, ordered set of letter grades. Every aggregate is
// indexed by position in this array.
var Vocabulary = [NumGrades]Grade{
	"A+", "A", "A-",
	"B+", "B", "B-",
	"C+", "C", "C-",
	"D+", "D", "D-",
	"F",
}

const (
	NumGrades = 13
	NumGPAs   = 12
)

// GPA is a grade point value in hundredths, so 3.67 is GPA(367). Keeping the
// value fixed-point means 3.33 reached through different paths is always the
// same key.
type GPA int

// GPAFromFloat rounds a float to two decimal places.
func GPAFromFloat(f float64) GPA {
	return GPA(math.Round(f * 100))
}

// ParseGPA parses "3.67", "4" or "0.0" into a GPA.
func ParseGPA(value string) (GPA, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid gpa %q", value)
	}
	return GPAFromFloat(f), nil
}

func (g GPA) Float() float64 {
	return float64(g) / 100
}

func (g GPA) String() string {
	sign := ""
	v := int(g)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalText keeps the two-decimal form when a GPA is used as a JSON key.
func (g GPA) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *GPA) UnmarshalText(text []byte) error {
	parsed, err := ParseGPA(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// gradeGPA runs parallel to Vocabulary.
var gradeGPA = [NumGrades]GPA{
	400, 400, 367,
	333, 300, 267,
	233, 200, 167,
	133, 100, 67,
	0,
}

// GPAScale lists the distinct GPA values, highest first. A+ and A share 4.00,
// so there are twelve entries. 0.33 is not a GPA.
var GPAScale = [NumGPAs]GPA{400, 367, 333, 300, 267, 233, 200, 167, 133, 100, 67, 0}

// canonicalGrades runs parallel to GPAScale; 4.00 resolves to "A".
var canonicalGrades = [NumGPAs]Grade{"A", "A-", "B+", "B", "B-", "C+", "C", "C-", "D+", "D", "D-", "F"}

// gpaSlot maps a grade's vocabulary index to its GPAScale index.
var gpaSlot = [NumGrades]int{0, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}

// GradeIndex returns the vocabulary position of grade.
func GradeIndex(grade string) (int, error) {
	for i, g := range Vocabulary {
		if string(g) == grade {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrInvalidGrade, grade)
}

// GradeToGPA converts a letter grade to its GPA.
func GradeToGPA(grade string) (GPA, error) {
	i, err := GradeIndex(grade)
	if err != nil {
		return 0, err
	}
	return gradeGPA[i], nil
}

// GPAToGrade returns the canonical letter grade for a GPA. Both A+ and A
// convert to 4.00, which converts back to "A".
func GPAToGrade(gpa GPA) (Grade, error) {
	i := gpaIndex(gpa)
	if i < 0 {
		return "", fmt.Errorf("%w: %s", ErrUnknownGPA, gpa)
	}
	return canonicalGrades[i], nil
}

func gpaIndex(gpa GPA) int {
	for i, v := range GPAScale {
		if v == gpa {
			return i
		}
	}
	return -1
}

// Bucket returns the grade-class bucket a grade belongs to, e.g. "Bs" for "B-".
func (g Grade) Bucket() string {
	if g == "" {
		return ""
	}
	return string(g[0]) + "s"
}

// GPA is the grade's point value. It panics for grades outside the
// vocabulary; use GradeToGPA for unvalidated input.
func (g Grade) GPA() GPA {
	gpa, err := GradeToGPA(string(g))
	if err != nil {
		panic(err)
	}
	return gpa
}
