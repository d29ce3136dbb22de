package grades

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/i-am-zach/uiuc-grade-stats/internal/types"
)

// ByGrade holds one count per letter grade, indexed by Vocabulary position.
// Every grade is always present; missing data is a zero.
type ByGrade [NumGrades]int

// ByGPA holds one count per GPA value, indexed by GPAScale position.
type ByGPA [NumGPAs]int

// AggregateByGrade sums every row's count for every grade.
func AggregateByGrade(rows []types.GradeRow) ByGrade {
	var out ByGrade
	for _, row := range rows {
		counts := row.Counts()
		for i := range out {
			out[i] += counts[i]
		}
	}
	return out
}

// AggregateByGPA sums grade counts that share a GPA. A+ and A both land on 4.00.
func AggregateByGPA(rows []types.GradeRow) ByGPA {
	return AggregateByGrade(rows).ByGPA()
}

// TotalEnrollment is the number of letter grades awarded across rows.
func TotalEnrollment(rows []types.GradeRow) int {
	return AggregateByGrade(rows).Total()
}

// Get returns the count for grade, or zero for a grade outside the vocabulary.
func (a ByGrade) Get(grade Grade) int {
	i, err := GradeIndex(string(grade))
	if err != nil {
		return 0
	}
	return a[i]
}

func (a ByGrade) Total() int {
	total := 0
	for _, n := range a {
		total += n
	}
	return total
}

// ByGPA re-keys the grade histogram by GPA.
func (a ByGrade) ByGPA() ByGPA {
	var out ByGPA
	for i, n := range a {
		out[gpaSlot[i]] += n
	}
	return out
}

// MarshalJSON writes an object in vocabulary order: {"A+":0,"A":10,...}.
func (a ByGrade) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range Vocabulary {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(string(g)))
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(a[i]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (a *ByGrade) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out ByGrade
	for key, n := range raw {
		i, err := GradeIndex(key)
		if err != nil {
			return err
		}
		out[i] = n
	}
	*a = out
	return nil
}

// Get returns the count for gpa, or zero for a GPA outside the table.
func (a ByGPA) Get(gpa GPA) int {
	i := gpaIndex(gpa)
	if i < 0 {
		return 0
	}
	return a[i]
}

func (a ByGPA) Total() int {
	total := 0
	for _, n := range a {
		total += n
	}
	return total
}

// MarshalJSON writes an object keyed by two-decimal GPA, highest first:
// {"4.00":10,"3.67":0,...}.
func (a ByGPA) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, gpa := range GPAScale {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(gpa.String()))
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(a[i]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (a *ByGPA) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out ByGPA
	for key, n := range raw {
		gpa, err := ParseGPA(key)
		if err != nil {
			return err
		}
		i := gpaIndex(gpa)
		if i < 0 {
			return ErrUnknownGPA
		}
		out[i] = n
	}
	*a = out
	return nil
}
