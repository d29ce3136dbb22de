package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/i-am-zach/uiuc-grade-stats/internal/dataset"
	"github.com/i-am-zach/uiuc-grade-stats/internal/grades"
	"github.com/i-am-zach/uiuc-grade-stats/internal/metrics"
	"github.com/i-am-zach/uiuc-grade-stats/internal/selection"
	"github.com/i-am-zach/uiuc-grade-stats/internal/types"
)

type Handler struct {
	data        *dataset.Provider
	store       *selection.Store
	searchCache *cache.Cache
	metrics     *metrics.Metrics
}

func New(data *dataset.Provider, store *selection.Store, m *metrics.Metrics, searchCacheTTL time.Duration) *Handler {
	return &Handler{
		data:        data,
		store:       store,
		searchCache: cache.New(searchCacheTTL, 2*searchCacheTTL),
		metrics:     m,
	}
}

// Health responds with a heartbeat and the dataset state.
func (h *Handler) Health(c *gin.Context) {
	_, state, err := h.data.Get()

	body := gin.H{
		"status":  "healthy",
		"message": "grade stats API is running",
		"dataset": state.String(),
	}
	if state == dataset.StateFailed && err != nil {
		body["dataset_error"] = err.Error()
	}
	c.JSON(http.StatusOK, body)
}

// datasetOrRespond returns the loaded dataset or writes 503 while it is
// loading and 502 once the load failed.
func (h *Handler) datasetOrRespond(c *gin.Context) (*dataset.Dataset, bool) {
	ds, state, err := h.data.Get()
	switch state {
	case dataset.StateReady:
		return ds, true
	case dataset.StateFailed:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.Header("Retry-After", "2")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": dataset.ErrNotLoaded.Error()})
	}
	return nil, false
}

func parseCourseParams(c *gin.Context) (types.CourseRef, error) {
	subject := types.NormalizeSubject(c.Param("subject"))
	if subject == "" {
		return types.CourseRef{}, fmt.Errorf("subject is required")
	}

	number, err := types.ParseCourseNumber(c.Param("number"))
	if err != nil {
		return types.CourseRef{}, err
	}

	return types.CourseRef{Subject: subject, Number: number}, nil
}

func parseCourseOrRespond(c *gin.Context) (types.CourseRef, bool) {
	ref, err := parseCourseParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return types.CourseRef{}, false
	}
	return ref, true
}

// parseYears reads ?years=2019,2020 (or repeated years params). No years
// means every year the course has data for.
func parseYears(c *gin.Context, course *grades.Course) ([]int, error) {
	var years []int
	seen := make(map[int]struct{})

	for _, raw := range c.QueryArray("years") {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			year, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("years must be comma-separated integers, got %q", part)
			}
			if _, ok := seen[year]; ok {
				continue
			}
			seen[year] = struct{}{}
			years = append(years, year)
		}
	}

	if len(years) == 0 {
		return course.Years(), nil
	}
	sort.Ints(years)
	return years, nil
}

func parseYearsOrRespond(c *gin.Context, course *grades.Course) ([]int, bool) {
	years, err := parseYears(c, course)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return years, true
}

func instructorParam(c *gin.Context) string {
	instructor := strings.TrimSpace(c.Query("instructor"))
	if instructor == "" || strings.EqualFold(instructor, grades.AllInstructors) {
		return grades.AllInstructors
	}
	return instructor
}

func (h *Handler) countAggregation(view string) {
	if h.metrics != nil {
		h.metrics.Aggregations.WithLabelValues(view).Inc()
	}
}
