package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/i-am-zach/uiuc-grade-stats/internal/dataset"
	"github.com/i-am-zach/uiuc-grade-stats/internal/grades"
	"github.com/i-am-zach/uiuc-grade-stats/internal/types"
)

type myCourse struct {
	types.CourseRef
	ShortName string `json:"short_name"`
	Title     string `json:"title,omitempty"`
}

// GetMyCourses lists the selected courses. Titles are filled in once the
// dataset has loaded.
func (h *Handler) GetMyCourses(c *gin.Context) {
	refs := h.store.List()
	ds, state, _ := h.data.Get()

	courses := make([]myCourse, 0, len(refs))
	for _, ref := range refs {
		entry := myCourse{CourseRef: ref, ShortName: ref.ShortName()}
		if state == dataset.StateReady {
			entry.Title = grades.NewCourseFromRef(ds, ref).Title
		}
		courses = append(courses, entry)
	}

	h.observeSelections(len(refs))
	c.JSON(http.StatusOK, gin.H{
		"count":   len(courses),
		"courses": courses,
		"dataset": state.String(),
	})
}

// AddMyCourse selects a course from a {"subject": "CS", "number": 173} body.
func (h *Handler) AddMyCourse(c *gin.Context) {
	var req types.CourseRef
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.Subject = types.NormalizeSubject(req.Subject)
	if req.Subject == "" || req.Number <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subject and a positive number are required"})
		return
	}

	if ds, state, _ := h.data.Get(); state == dataset.StateReady && !ds.Index().Contains(req) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no grade data for " + req.ShortName()})
		return
	}

	added, err := h.store.Add(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save course"})
		return
	}

	h.observeSelections(len(h.store.List()))
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"course": req,
		"added":  added,
	})
}

// RemoveMyCourse unselects a course.
func (h *Handler) RemoveMyCourse(c *gin.Context) {
	ref, ok := parseCourseOrRespond(c)
	if !ok {
		return
	}

	removed, err := h.store.Remove(c.Request.Context(), ref)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save course list"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": ref.ShortName() + " is not selected"})
		return
	}

	h.observeSelections(len(h.store.List()))
	c.JSON(http.StatusOK, gin.H{
		"course":  ref,
		"removed": true,
	})
}

// ClearMyCourses empties the selection.
func (h *Handler) ClearMyCourses(c *gin.Context) {
	if err := h.store.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear course list"})
		return
	}

	h.observeSelections(0)
	c.JSON(http.StatusOK, gin.H{"count": 0})
}

func (h *Handler) observeSelections(n int) {
	if h.metrics != nil {
		h.metrics.Selections.Set(float64(n))
	}
}
