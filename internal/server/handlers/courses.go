package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/i-am-zach/uiuc-grade-stats/internal/grades"
	"github.com/i-am-zach/uiuc-grade-stats/internal/types"
)

// GetSubjects lists every subject in dataset order.
func (h *Handler) GetSubjects(c *gin.Context) {
	ds, ok := h.datasetOrRespond(c)
	if !ok {
		return
	}

	subjects := ds.Index().Subjects()
	c.JSON(http.StatusOK, gin.H{
		"count":    len(subjects),
		"subjects": subjects,
	})
}

// GetSubjectCourses lists the course numbers of one subject.
func (h *Handler) GetSubjectCourses(c *gin.Context) {
	subject := types.NormalizeSubject(c.Param("subject"))
	if subject == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subject is required"})
		return
	}

	ds, ok := h.datasetOrRespond(c)
	if !ok {
		return
	}

	numbers := ds.Index().Numbers(subject)
	if numbers == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown subject " + subject})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subject": subject,
		"count":   len(numbers),
		"numbers": numbers,
	})
}

// SearchCourses autocompletes a partially typed course such as "CS 17".
func (h *Handler) SearchCourses(c *gin.Context) {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query parameter 'q' is required"})
		return
	}

	ds, ok := h.datasetOrRespond(c)
	if !ok {
		return
	}

	var options []string
	if cached, found := h.searchCache.Get(query); found {
		options = cached.([]string)
		h.countSearch("hit")
	} else {
		options = ds.Index().Search(query)
		h.searchCache.Set(query, options, cache.DefaultExpiration)
		h.countSearch("miss")
	}

	body := gin.H{
		"query":   query,
		"count":   len(options),
		"options": options,
	}
	if len(options) == 0 {
		body["hint"] = "Search by subject and number, e.g. CS 173 or MATH 2"
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handler) countSearch(result string) {
	if h.metrics != nil {
		h.metrics.SearchCache.WithLabelValues(result).Inc()
	}
}

// GetCourse describes a course: title, years with data and instructors.
func (h *Handler) GetCourse(c *gin.Context) {
	ref, ok := parseCourseOrRespond(c)
	if !ok {
		return
	}

	ds, ok := h.datasetOrRespond(c)
	if !ok {
		return
	}

	course := grades.NewCourseFromRef(ds, ref)
	if !course.Known() {
		c.JSON(http.StatusNotFound, gin.H{"error": "no grade data for " + ref.ShortName()})
		return
	}

	years := course.Years()
	c.JSON(http.StatusOK, gin.H{
		"course":      ref,
		"short_name":  course.ShortName(),
		"title":       course.Title,
		"years":       years,
		"instructors": course.Instructors(years),
		"selected":    h.store.Contains(ref),
	})
}

// GetCourseGrades returns every aggregate view for a course under the
// years and instructor filters. An empty selection is a valid, all-zero
// result.
func (h *Handler) GetCourseGrades(c *gin.Context) {
	ref, ok := parseCourseOrRespond(c)
	if !ok {
		return
	}

	ds, ok := h.datasetOrRespond(c)
	if !ok {
		return
	}

	course := grades.NewCourseFromRef(ds, ref)
	years, ok := parseYearsOrRespond(c, course)
	if !ok {
		return
	}

	summary := course.Summarize(grades.NewFilter(years, instructorParam(c)))
	h.countAggregation("grades")

	c.JSON(http.StatusOK, summary)
}

// GetCourseInstructors lists instructors for the requested years, with the
// "All" choice first.
func (h *Handler) GetCourseInstructors(c *gin.Context) {
	ref, ok := parseCourseOrRespond(c)
	if !ok {
		return
	}

	ds, ok := h.datasetOrRespond(c)
	if !ok {
		return
	}

	course := grades.NewCourseFromRef(ds, ref)
	years, ok := parseYearsOrRespond(c, course)
	if !ok {
		return
	}

	instructors := course.Instructors(years)
	h.countAggregation("instructors")

	c.JSON(http.StatusOK, gin.H{
		"course":      ref,
		"years":       years,
		"count":       len(instructors),
		"instructors": instructors,
		"options":     append([]string{grades.AllInstructors}, instructors...),
	})
}
