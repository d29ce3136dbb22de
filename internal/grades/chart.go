package grades

import "fmt"

type rgb struct{ r, g, b float64 }

var (
	gradientStart = rgb{0xff, 0x80, 0x00}
	gradientEnd   = rgb{0x00, 0x00, 0xff}
)

// gradeColors is a linear gradient from orange (A+) to blue (F).
var gradeColors = func() [NumGrades]string {
	var out [NumGrades]string
	steps := float64(NumGrades - 1)
	for i := range out {
		t := float64(i) / steps
		out[i] = hexColor(rgb{
			r: gradientStart.r + (gradientEnd.r-gradientStart.r)*t,
			g: gradientStart.g + (gradientEnd.g-gradientStart.g)*t,
			b: gradientStart.b + (gradientEnd.b-gradientStart.b)*t,
		})
	}
	return out
}()

func hexColor(c rgb) string {
	return fmt.Sprintf("#%02x%02x%02x", int(c.r+0.5), int(c.g+0.5), int(c.b+0.5))
}

// GradeColor returns the chart colour for a grade.
func GradeColor(grade Grade) (string, error) {
	i, err := GradeIndex(string(grade))
	if err != nil {
		return "", err
	}
	return gradeColors[i], nil
}

// GPAColor returns the colour of the canonical grade for gpa.
func GPAColor(gpa GPA) (string, error) {
	grade, err := GPAToGrade(gpa)
	if err != nil {
		return "", err
	}
	return GradeColor(grade)
}

// BarChart is a GPA histogram ready for plotting: X ascending, one colour
// per bar.
type BarChart struct {
	X     []GPA    `json:"x"`
	Y     []int    `json:"y"`
	Color []string `json:"color"`
}

// NewBarChart lays out agg from 0.00 up to 4.00.
func NewBarChart(agg ByGPA) BarChart {
	chart := BarChart{
		X:     make([]GPA, 0, NumGPAs),
		Y:     make([]int, 0, NumGPAs),
		Color: make([]string, 0, NumGPAs),
	}
	for i := NumGPAs - 1; i >= 0; i-- {
		gpa := GPAScale[i]
		chart.X = append(chart.X, gpa)
		chart.Y = append(chart.Y, agg[i])
		chart.Color = append(chart.Color, gradeColors[indexOfGrade(canonicalGrades[i])])
	}
	return chart
}

func indexOfGrade(g Grade) int {
	i, _ := GradeIndex(string(g))
	return i
}
