package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/i-am-zach/uiuc-grade-stats/internal/metrics"
	"github.com/i-am-zach/uiuc-grade-stats/internal/server/handlers"
	"github.com/i-am-zach/uiuc-grade-stats/internal/server/middleware"
)

// New wires handlers and middleware into an HTTP router.
func New(handler *handlers.Handler, mw *middleware.Manager, m *metrics.Metrics) http.Handler {
	router := gin.Default()
	router.Use(mw.RequestID(), mw.Metrics())

	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(mw.RateLimit())
	{
		subjects := v1.Group("/subjects")
		{
			subjects.GET("", handler.GetSubjects)
			subjects.GET("/:subject", handler.GetSubjectCourses)
		}

		v1.GET("/search", handler.SearchCourses)

		courses := v1.Group("/courses/:subject/:number")
		{
			courses.GET("", handler.GetCourse)
			courses.GET("/grades", handler.GetCourseGrades)
			courses.GET("/instructors", handler.GetCourseInstructors)
		}

		myCourses := v1.Group("/my-courses")
		{
			myCourses.GET("", handler.GetMyCourses)
			myCourses.POST("", handler.AddMyCourse)
			myCourses.DELETE("", handler.ClearMyCourses)
			myCourses.DELETE("/:subject/:number", handler.RemoveMyCourse)
		}
	}

	return router
}
