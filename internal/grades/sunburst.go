package grades

// Buckets are the grade classes of the sunburst, in display order.
var Buckets = [5]string{"As", "Bs", "Cs", "Ds", "Fs"}

// SunburstLeaf is one letter grade under its bucket.
type SunburstLeaf struct {
	Grade Grade `json:"grade"`
	Count int   `json:"count"`
}

// SunburstBucket is a grade class such as "Bs" holding B+, B and B-.
type SunburstBucket struct {
	Label  string         `json:"label"`
	Count  int            `json:"count"`
	Grades []SunburstLeaf `json:"grades"`
}

// Sunburst is the two-level breakdown: root, five buckets, and the grades
// inside each bucket. Every node's count is the sum of its children.
type Sunburst struct {
	Total   int              `json:"total"`
	Buckets []SunburstBucket `json:"buckets"`
}

// PlotlySunburst is the flat labels/parents/values form used by sunburst
// chart libraries. Leaves come first, then the buckets with an empty parent.
type PlotlySunburst struct {
	Labels  []string `json:"labels"`
	Parents []string `json:"parents"`
	Values  []int    `json:"values"`
}

// NewSunburst groups a grade histogram by the first letter of each grade.
func NewSunburst(agg ByGrade) Sunburst {
	buckets := make([]SunburstBucket, len(Buckets))
	slot := make(map[string]int, len(Buckets))
	for i, label := range Buckets {
		buckets[i] = SunburstBucket{Label: label, Grades: []SunburstLeaf{}}
		slot[label] = i
	}

	total := 0
	for i, grade := range Vocabulary {
		b := &buckets[slot[grade.Bucket()]]
		b.Count += agg[i]
		b.Grades = append(b.Grades, SunburstLeaf{Grade: grade, Count: agg[i]})
		total += agg[i]
	}

	return Sunburst{Total: total, Buckets: buckets}
}

// Bucket returns the bucket with label, or false if there is none.
func (s Sunburst) Bucket(label string) (SunburstBucket, bool) {
	for _, b := range s.Buckets {
		if b.Label == label {
			return b, true
		}
	}
	return SunburstBucket{}, false
}

// Plotly flattens the tree.
func (s Sunburst) Plotly() PlotlySunburst {
	var p PlotlySunburst
	for _, b := range s.Buckets {
		for _, leaf := range b.Grades {
			p.Labels = append(p.Labels, string(leaf.Grade))
			p.Parents = append(p.Parents, b.Label)
			p.Values = append(p.Values, leaf.Count)
		}
	}
	for _, b := range s.Buckets {
		p.Labels = append(p.Labels, b.Label)
		p.Parents = append(p.Parents, "")
		p.Values = append(p.Values, b.Count)
	}
	return p
}
