package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"school-dashboard-go/access"
	"school-dashboard-go/models"
	"school-dashboard-go/query"
	"school-dashboard-go/reports"
	"school-dashboard-go/store"
	"school-dashboard-go/validate"
)

// APIHandler holds the dependencies for API handlers.
type APIHandler struct {
	Store     *store.Store
	TrendDays int
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(s *store.Store, trendDays int) *APIHandler {
	return &APIHandler{
		Store:     s,
		TrendDays: trendDays,
	}
}

// respondError maps store errors to a status code. msg is used for
// unexpected failures, which are also logged.
func respondError(c *gin.Context, err error, msg string) {
	var verrs validate.Errors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
	case errors.Is(err, store.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrUnknownStudent):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, access.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		log.Printf("Error in %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id: " + c.Param("id")})
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return false
	}
	return true
}

// classParam reads ?class=, accepting the stored label or its English name.
// An empty value means every class.
func classParam(c *gin.Context) (models.ClassLabel, bool) {
	raw := c.Query("class")
	if raw == "" {
		return "", true
	}
	class, ok := models.ParseClassLabel(raw)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validate.Errors{{Field: "class", Message: validate.MsgFillFields}}})
		return "", false
	}
	return class, true
}

// --- Student Handlers ---

// ListStudents handles GET /api/students
func (h *APIHandler) ListStudents(c *gin.Context) {
	var f query.StudentFilter
	if !bindQuery(c, &f) {
		return
	}
	if f.Class != "" {
		class, ok := classParam(c)
		if !ok {
			return
		}
		f.Class = class
	}
	c.JSON(http.StatusOK, h.Store.ListStudents(f))
}

// GetStudent handles GET /api/students/:id
func (h *APIHandler) GetStudent(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	st, err := h.Store.GetStudent(models.StudentID(id))
	if err != nil {
		respondError(c, err, "Failed to retrieve student")
		return
	}
	c.JSON(http.StatusOK, st)
}

// AddStudent handles POST /api/students
func (h *APIHandler) AddStudent(c *gin.Context) {
	var in store.StudentInput
	if !bindJSON(c, &in) {
		return
	}
	st, err := h.Store.AddStudent(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to add student")
		return
	}
	c.JSON(http.StatusCreated, st)
}

// UpdateStudent handles PUT /api/students/:id
func (h *APIHandler) UpdateStudent(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in store.StudentInput
	if !bindJSON(c, &in) {
		return
	}
	st, err := h.Store.UpdateStudent(c.Request.Context(), models.StudentID(id), in)
	if err != nil {
		respondError(c, err, "Failed to update student")
		return
	}
	c.JSON(http.StatusOK, st)
}

// DeleteStudent handles DELETE /api/students/:id. Grades and attendance
// of the student go with it.
func (h *APIHandler) DeleteStudent(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Store.DeleteStudent(c.Request.Context(), models.StudentID(id)); err != nil {
		respondError(c, err, "Failed to delete student")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Teacher Handlers ---

// ListTeachers handles GET /api/teachers
func (h *APIHandler) ListTeachers(c *gin.Context) {
	var f query.TeacherFilter
	if !bindQuery(c, &f) {
		return
	}
	c.JSON(http.StatusOK, h.Store.ListTeachers(f))
}

// TeacherSubjects handles GET /api/teachers/subjects
func (h *APIHandler) TeacherSubjects(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.TeacherSubjects())
}

// AddTeacher handles POST /api/teachers
func (h *APIHandler) AddTeacher(c *gin.Context) {
	var in store.TeacherInput
	if !bindJSON(c, &in) {
		return
	}
	t, err := h.Store.AddTeacher(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to add teacher")
		return
	}
	c.JSON(http.StatusCreated, t)
}

// UpdateTeacher handles PUT /api/teachers/:id
func (h *APIHandler) UpdateTeacher(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in store.TeacherInput
	if !bindJSON(c, &in) {
		return
	}
	t, err := h.Store.UpdateTeacher(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err, "Failed to update teacher")
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTeacher handles DELETE /api/teachers/:id
func (h *APIHandler) DeleteTeacher(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Store.DeleteTeacher(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete teacher")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Grade Handlers ---

// ListGrades handles GET /api/grades
func (h *APIHandler) ListGrades(c *gin.Context) {
	var f query.GradeFilter
	if !bindQuery(c, &f) {
		return
	}
	c.JSON(http.StatusOK, h.Store.ListGrades(f))
}

// GradeSubjects handles GET /api/grades/subjects
func (h *APIHandler) GradeSubjects(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.GradeSubjects())
}

// AddGrade handles POST /api/grades
func (h *APIHandler) AddGrade(c *gin.Context) {
	var in store.GradeInput
	if !bindJSON(c, &in) {
		return
	}
	g, err := h.Store.AddGrade(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to add grade")
		return
	}
	c.JSON(http.StatusCreated, g)
}

// UpdateGrade handles PUT /api/grades/:id
func (h *APIHandler) UpdateGrade(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in store.GradeUpdate
	if !bindJSON(c, &in) {
		return
	}
	g, err := h.Store.UpdateGrade(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err, "Failed to update grade")
		return
	}
	c.JSON(http.StatusOK, g)
}

// DeleteGrade handles DELETE /api/grades/:id
func (h *APIHandler) DeleteGrade(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Store.DeleteGrade(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete grade")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Attendance Handlers ---

// ListAttendance handles GET /api/attendance
func (h *APIHandler) ListAttendance(c *gin.Context) {
	var f query.AttendanceFilter
	if !bindQuery(c, &f) {
		return
	}
	if f.Class != "" {
		class, ok := classParam(c)
		if !ok {
			return
		}
		f.Class = class
	}
	c.JSON(http.StatusOK, h.Store.ListAttendance(f))
}

// AttendanceSheet handles GET /api/attendance/sheet?class=&date=
func (h *APIHandler) AttendanceSheet(c *gin.Context) {
	class, ok := classParam(c)
	if !ok {
		return
	}
	date := models.Date(c.Query("date"))
	if date == "" {
		date = models.DateOf(h.Store.Now())
	}
	rows, err := h.Store.AttendanceSheet(class, date)
	if err != nil {
		respondError(c, err, "Failed to build attendance sheet")
		return
	}
	c.JSON(http.StatusOK, gin.H{"class": class, "date": date, "students": rows})
}

// SaveAttendance handles PUT /api/attendance
func (h *APIHandler) SaveAttendance(c *gin.Context) {
	var in store.AttendanceInput
	if !bindJSON(c, &in) {
		return
	}
	if class, ok := models.ParseClassLabel(string(in.Class)); ok {
		in.Class = class
	}
	records, err := h.Store.SaveAttendance(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to save attendance")
		return
	}
	c.JSON(http.StatusOK, records)
}

// --- Import Handler ---

// ImportStudents handles POST /api/import/students
func (h *APIHandler) ImportStudents(c *gin.Context) {
	// Get file from form data
	file, header, err := c.Request.FormFile("file") // "file" is the name attribute in the form
	if err != nil {
		log.Printf("Error getting form file: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error retrieving uploaded file: " + err.Error()})
		return
	}
	defer file.Close()

	log.Printf("Received file upload: %s", header.Filename)

	res, err := reports.ImportStudents(c.Request.Context(), file, h.Store)
	if err != nil {
		log.Printf("Error importing students from file %s: %v", header.Filename, err)
		if errors.Is(err, reports.ErrBadWorkbook) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to import students: " + err.Error()})
			return
		}
		respondError(c, err, "Failed to import students")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Import successful",
		"importedCount": res.Imported,
		"skipped":       res.Skipped,
	})
}

// --- Ping Handler ---
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Pong!"})
}
