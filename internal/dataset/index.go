package dataset

import (
	"strings"

	"github.com/i-am-zach/uiuc-grade-stats/internal/types"
)

// maxSubjectMatches caps a bare subject search; a short prefix like "M"
// matching dozens of subjects returns nothing.
const maxSubjectMatches = 10

// CourseIndex maps each subject to its distinct course numbers. Subjects and
// numbers keep the order in which they first appear in the dataset.
type CourseIndex struct {
	subjects []string
	numbers  map[string][]types.CourseNumber
	seen     map[types.CourseRef]struct{}
}

// BuildCourseIndex scans every row once.
func BuildCourseIndex(ds *Dataset) *CourseIndex {
	idx := &CourseIndex{
		numbers: make(map[string][]types.CourseNumber),
		seen:    make(map[types.CourseRef]struct{}),
	}
	if ds == nil {
		return idx
	}
	for _, row := range ds.rows {
		idx.add(row.Subject, row.Number)
	}
	return idx
}

func (idx *CourseIndex) add(subject string, number types.CourseNumber) {
	key := types.CourseRef{Subject: subject, Number: number}
	if _, ok := idx.seen[key]; ok {
		return
	}
	idx.seen[key] = struct{}{}
	if _, ok := idx.numbers[subject]; !ok {
		idx.subjects = append(idx.subjects, subject)
	}
	idx.numbers[subject] = append(idx.numbers[subject], number)
}

// Subjects returns every subject in first-appearance order.
func (idx *CourseIndex) Subjects() []string {
	out := make([]string, len(idx.subjects))
	copy(out, idx.subjects)
	return out
}

// Numbers returns the course numbers of subject, or nil if it is unknown.
func (idx *CourseIndex) Numbers(subject string) []types.CourseNumber {
	nums, ok := idx.numbers[subject]
	if !ok {
		return nil
	}
	out := make([]types.CourseNumber, len(nums))
	copy(out, nums)
	return out
}

// Contains reports whether the course appears in the dataset.
func (idx *CourseIndex) Contains(ref types.CourseRef) bool {
	_, ok := idx.seen[ref]
	return ok
}

// Search returns "SUBJ NUM" options for a partially typed course:
//
//	"MAT"     every course of every subject starting with MAT
//	"CS "     every CS course
//	"CS 17"   CS courses whose number starts with 17
//
// Matching is on subject and number only, never on titles.
func (idx *CourseIndex) Search(query string) []string {
	words := strings.Split(strings.TrimLeft(query, " "), " ")
	out := []string{}

	switch {
	case len(words) >= 3:
		return out
	case len(words) == 2:
		subject := types.NormalizeSubject(words[0])
		partial := strings.TrimSpace(words[1])
		for _, num := range idx.numbers[subject] {
			if strings.HasPrefix(num.String(), partial) {
				out = append(out, types.CourseRef{Subject: subject, Number: num}.ShortName())
			}
		}
		return out
	}

	partial := types.NormalizeSubject(words[0])
	if partial == "" {
		return out
	}

	var matches []string
	for _, subject := range idx.subjects {
		if strings.HasPrefix(subject, partial) {
			matches = append(matches, subject)
		}
	}
	if len(matches) > maxSubjectMatches {
		return out
	}
	for _, subject := range matches {
		for _, num := range idx.numbers[subject] {
			out = append(out, types.CourseRef{Subject: subject, Number: num}.ShortName())
		}
	}
	return out
}
