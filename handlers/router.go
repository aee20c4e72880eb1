package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the API on api.
func RegisterRoutes(api *gin.RouterGroup, h *APIHandler) {
	api.GET("/ping", PingHandler)

	// Session and preferences
	api.GET("/session", h.GetSession)
	api.POST("/session", h.Login)
	api.DELETE("/session", h.Logout)
	api.GET("/preferences", h.GetPreferences)
	api.PUT("/preferences", h.UpdatePreferences)

	// Student routes
	api.GET("/students", h.ListStudents)
	api.POST("/students", h.AddStudent)
	api.GET("/students/:id", h.GetStudent)
	api.PUT("/students/:id", h.UpdateStudent)
	api.DELETE("/students/:id", h.DeleteStudent)

	// Teacher routes
	api.GET("/teachers", h.ListTeachers)
	api.GET("/teachers/subjects", h.TeacherSubjects)
	api.POST("/teachers", h.AddTeacher)
	api.PUT("/teachers/:id", h.UpdateTeacher)
	api.DELETE("/teachers/:id", h.DeleteTeacher)

	// Grade routes
	api.GET("/grades", h.ListGrades)
	api.GET("/grades/subjects", h.GradeSubjects)
	api.POST("/grades", h.AddGrade)
	api.PUT("/grades/:id", h.UpdateGrade)
	api.DELETE("/grades/:id", h.DeleteGrade)

	// Attendance routes
	api.GET("/attendance", h.ListAttendance)
	api.GET("/attendance/sheet", h.AttendanceSheet)
	api.PUT("/attendance", h.SaveAttendance)

	// Dashboard, charts and reports
	api.GET("/dashboard", h.Dashboard)
	api.GET("/charts/classes", h.ClassChart)
	api.GET("/charts/grades", h.GradeChart)
	api.GET("/charts/attendance", h.AttendanceChart)
	api.GET("/charts/subjects", h.SubjectChart)
	api.GET("/reports/:kind", h.Report)

	// Import route
	api.POST("/import/students", h.ImportStudents)
}
