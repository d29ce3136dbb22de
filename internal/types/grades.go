package types

// GradeRow represents one course offering in the grade-distribution dataset:
// a single (subject, number, year, term, instructor) tuple with one count
// per letter grade.
//
// CSV Structure (uiuc-gpa-dataset.csv):
//   - Year,Term,YearTerm,Subject,Number,Course Title,Sched Type,A+,A,...,F,W,Primary Instructor
//
// Columns not listed here are ignored when the dataset is parsed. Counts are
// taken as-is; the dataset is not validated or corrected.
type GradeRow struct {
	Year        int          `csv:"Year" json:"year"`
	Term        string       `csv:"Term" json:"term,omitempty"`
	YearTerm    string       `csv:"YearTerm" json:"year_term,omitempty"`
	Subject     string       `csv:"Subject" json:"subject"`
	Number      CourseNumber `csv:"Number" json:"number"`
	CourseTitle string       `csv:"Course Title" json:"course_title"`
	SchedType   string       `csv:"Sched Type" json:"sched_type,omitempty"`
	Instructor  string       `csv:"Primary Instructor" json:"instructor"`

	APlus  int `csv:"A+" json:"A+"`
	A      int `csv:"A" json:"A"`
	AMinus int `csv:"A-" json:"A-"`
	BPlus  int `csv:"B+" json:"B+"`
	B      int `csv:"B" json:"B"`
	BMinus int `csv:"B-" json:"B-"`
	CPlus  int `csv:"C+" json:"C+"`
	C      int `csv:"C" json:"C"`
	CMinus int `csv:"C-" json:"C-"`
	DPlus  int `csv:"D+" json:"D+"`
	D      int `csv:"D" json:"D"`
	DMinus int `csv:"D-" json:"D-"`
	F      int `csv:"F" json:"F"`

	// W counts withdrawals. It is carried through parsing but never aggregated.
	W int `csv:"W" json:"W"`
}

// Counts returns the thirteen letter-grade counts in vocabulary order,
// A+ first and F last.
func (r GradeRow) Counts() [13]int {
	return [13]int{
		r.APlus, r.A, r.AMinus,
		r.BPlus, r.B, r.BMinus,
		r.CPlus, r.C, r.CMinus,
		r.DPlus, r.D, r.DMinus,
		r.F,
	}
}

// Key returns the course identity the row belongs to.
func (r GradeRow) Key() CourseRef {
	return CourseRef{Subject: r.Subject, Number: r.Number}
}
