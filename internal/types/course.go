package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type CourseNumber int

// Need to do this because some exports code the number as a string ("173")
// and some as a float ("173.0")
func ParseCourseNumber(value string) (CourseNumber, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("course number is empty")
	}

	if n, err := strconv.Atoi(value); err == nil {
		return CourseNumber(n), nil
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("course number must be an integer, got: %q", value)
	}
	return CourseNumber(int(f)), nil
}

// UnmarshalJSON accepts both 173 and "173".
func (n *CourseNumber) UnmarshalJSON(data []byte) error {
	var num int
	if err := json.Unmarshal(data, &num); err == nil {
		*n = CourseNumber(num)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		parsed, err := ParseCourseNumber(str)
		if err != nil {
			return err
		}
		*n = parsed
		return nil
	}

	return fmt.Errorf("course number must be a string or number, got: %s", string(data))
}

// UnmarshalCSV lets gocsv decode the Number column.
func (n *CourseNumber) UnmarshalCSV(value string) error {
	parsed, err := ParseCourseNumber(value)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

func (n CourseNumber) String() string {
	return strconv.Itoa(int(n))
}

// CourseRef identifies a course by subject and number. It is the only course
// data that is persisted for the "my courses" list.
//
// Persisted form: {"subject": "CS", "number": 173}
type CourseRef struct {
	Subject string       `json:"subject" firestore:"subject"`
	Number  CourseNumber `json:"number" firestore:"number"`
}

// ShortName renders the course as shown in search results, e.g. "CS 173".
func (c CourseRef) ShortName() string {
	return c.Subject + " " + c.Number.String()
}

// NormalizeSubject upper-cases and trims a subject code as typed by a user.
func NormalizeSubject(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
