package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i-am-zach/uiuc-grade-stats/internal/dataset"
	"github.com/i-am-zach/uiuc-grade-stats/internal/metrics"
	"github.com/i-am-zach/uiuc-grade-stats/internal/selection"
	"github.com/i-am-zach/uiuc-grade-stats/internal/server/middleware"
	"github.com/i-am-zach/uiuc-grade-stats/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testRows() []types.GradeRow {
	return []types.GradeRow{
		{Subject: "CS", Number: 173, Year: 2019, Instructor: "Smith", CourseTitle: "Discrete Structures", A: 10, B: 5},
		{Subject: "CS", Number: 173, Year: 2020, Instructor: "Jones", CourseTitle: "Discrete Structures", C: 20},
		{Subject: "CS", Number: 225, Year: 2020, Instructor: "Evans", CourseTitle: "Data Structures", APlus: 4},
		{Subject: "MATH", Number: 286, Year: 2018, CourseTitle: "Differential Equations", F: 2},
	}
}

type testServer struct {
	handler http.Handler
	store   *selection.Store
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T, provider *dataset.Provider, opts ...func(*Options)) *testServer {
	t.Helper()
	store, err := selection.Open(context.Background(), selection.NewFileKV(t.TempDir()), "courses")
	require.NoError(t, err)

	o := Options{RateLimit: 1000, RateWindow: time.Minute, SearchCacheTTL: time.Minute}
	for _, opt := range opts {
		opt(&o)
	}

	m := metrics.New()
	handler, _ := NewHandler(provider, store, m, o)
	return &testServer{handler: handler, store: store, metrics: m}
}

func readyServer(t *testing.T) *testServer {
	return newTestServer(t, dataset.NewStaticProvider(dataset.New(testRows())))
}

func (s *testServer) do(t *testing.T, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	s := readyServer(t)

	rec := s.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "ready", body["dataset"])
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRequestIDIsPropagated(t *testing.T) {
	s := readyServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
}

func TestCourseGradesScenario(t *testing.T) {
	s := readyServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/courses/cs/173/grades?years=2019,2020&instructor=All", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, "Discrete Structures", body["title"])
	assert.Equal(t, float64(35), body["n"])

	byGrade := body["by_grade"].(map[string]any)
	assert.Len(t, byGrade, 13)
	assert.Equal(t, float64(10), byGrade["A"])
	assert.Equal(t, float64(5), byGrade["B"])
	assert.Equal(t, float64(20), byGrade["C"])
	assert.Equal(t, float64(0), byGrade["F"])

	byGPA := body["by_gpa"].(map[string]any)
	assert.Len(t, byGPA, 12)
	assert.Equal(t, float64(10), byGPA["4.00"])
	assert.Equal(t, float64(5), byGPA["3.00"])
	assert.Equal(t, float64(20), byGPA["2.00"])

	sunburst := body["sunburst"].(map[string]any)
	assert.Equal(t, float64(35), sunburst["total"])
}

func TestCourseGradesDefaultsToAllYears(t *testing.T) {
	s := readyServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/courses/CS/173/grades", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, []any{float64(2019), float64(2020)}, body["years"])
	assert.Equal(t, float64(35), body["n"])
}

func TestCourseGradesInstructorFilter(t *testing.T) {
	s := readyServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/courses/CS/173/grades?years=2019&years=2020&instructor=Smith", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(15), decode(t, rec)["n"])
}

func TestCourseGradesUnknownYearIsEmpty(t *testing.T) {
	s := readyServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/courses/CS/173/grades?years=1999", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(0), body["n"])
	assert.Len(t, body["by_grade"].(map[string]any), 13)
}

func TestCourseGradesBadParams(t *testing.T) {
	s := readyServer(t)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/v1/courses/CS/abc/grades", "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/v1/courses/CS/173/grades?years=twenty", "").Code)
}

func TestGetCourse(t *testing.T) {
	s := readyServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/courses/CS/173", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "CS 173", body["short_name"])
	assert.Equal(t, []any{"Smith", "Jones"}, body["instructors"])
	assert.Equal(t, false, body["selected"])

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/v1/courses/CS/999", "").Code)
}

func TestGetCourseInstructors(t *testing.T) {
	s := readyServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/courses/CS/173/instructors?years=2020", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, []any{"Jones"}, body["instructors"])
	assert.Equal(t, []any{"All", "Jones"}, body["options"])
}

func TestSubjectsAndSearch(t *testing.T) {
	s := readyServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/subjects", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"CS", "MATH"}, decode(t, rec)["subjects"])

	rec = s.do(t, http.MethodGet, "/api/v1/subjects/cs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{float64(173), float64(225)}, decode(t, rec)["numbers"])

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/v1/subjects/ECE", "").Code)

	for i := 0; i < 2; i++ {
		rec = s.do(t, http.MethodGet, "/api/v1/search?q=CS+17", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []any{"CS 173"}, decode(t, rec)["options"])
	}

	rec = s.do(t, http.MethodGet, "/api/v1/search?q=ZZZ", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode(t, rec), "hint")

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/v1/search", "").Code)
}

func TestDatasetLoading(t *testing.T) {
	s := newTestServer(t, dataset.NewProvider(&blockingSource{}, nil))

	rec := s.do(t, http.MethodGet, "/api/v1/courses/CS/173/grades", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, dataset.ErrNotLoaded.Error(), decode(t, rec)["error"])

	rec = s.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, "loading", decode(t, rec)["dataset"])

	rec = s.do(t, http.MethodGet, "/api/v1/my-courses", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDatasetFailed(t *testing.T) {
	provider := dataset.NewProvider(&failingSource{}, nil)
	_, err := provider.Load(context.Background())
	require.Error(t, err)

	s := newTestServer(t, provider)

	rec := s.do(t, http.MethodGet, "/api/v1/subjects", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "connection refused")

	rec = s.do(t, http.MethodGet, "/health", "")
	body := decode(t, rec)
	assert.Equal(t, "failed", body["dataset"])
	assert.Contains(t, body["dataset_error"], "connection refused")
}

func TestMyCoursesLifecycle(t *testing.T) {
	s := readyServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/my-courses", `{"subject":"cs","number":173}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/my-courses", `{"subject":"CS","number":"173"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["added"])

	rec = s.do(t, http.MethodPost, "/api/v1/my-courses", `{"subject":"MATH","number":286}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/my-courses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(2), body["count"])
	first := body["courses"].([]any)[0].(map[string]any)
	assert.Equal(t, "CS", first["subject"])
	assert.Equal(t, float64(173), first["number"])
	assert.Equal(t, "Discrete Structures", first["title"])

	rec = s.do(t, http.MethodDelete, "/api/v1/my-courses/CS/173", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/v1/my-courses/CS/173", "").Code)
	assert.Equal(t, []types.CourseRef{{Subject: "MATH", Number: 286}}, s.store.List())

	rec = s.do(t, http.MethodDelete, "/api/v1/my-courses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, s.store.List())
}

func TestAddMyCourseValidation(t *testing.T) {
	s := readyServer(t)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/v1/my-courses", `{"subject":""}`).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/v1/my-courses", `not json`).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/api/v1/my-courses", `{"subject":"CS","number":999}`).Code)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, dataset.NewStaticProvider(dataset.New(testRows())), func(o *Options) {
		o.RateLimit = 2
	})

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/subjects", "").Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/subjects", "").Code)

	rec := s.do(t, http.MethodGet, "/api/v1/subjects", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := readyServer(t)
	s.do(t, http.MethodGet, "/api/v1/courses/CS/173/grades", "")

	rec := s.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `gradeview_aggregations_total{view="grades"} 1`)
	assert.Contains(t, rec.Body.String(), `route="/api/v1/courses/:subject/:number/grades"`)
}

type blockingSource struct{}

func (blockingSource) Open(ctx context.Context) (io.ReadCloser, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingSource) String() string { return "blocking" }

type failingSource struct{}

func (failingSource) Open(context.Context) (io.ReadCloser, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func (failingSource) String() string { return "failing" }
