package handlers

import (
	"bytes"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"school-dashboard-go/models"
	"school-dashboard-go/query"
	"school-dashboard-go/reports"
	"school-dashboard-go/stats"
	"school-dashboard-go/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// --- Session Handlers ---

type loginRequest struct {
	Role     models.Role `json:"role"`
	Username string      `json:"username"`
	Password string      `json:"password"`
}

// GetSession handles GET /api/session
func (h *APIHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": h.Store.CurrentUser()})
}

// Login handles POST /api/session
func (h *APIHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Store.Login(c.Request.Context(), req.Role, req.Username, req.Password)
	if err != nil {
		respondError(c, err, "Failed to sign in")
		return
	}
	log.Printf("Signed in %s as %s", u.Username, u.Role)
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// Logout handles DELETE /api/session
func (h *APIHandler) Logout(c *gin.Context) {
	if err := h.Store.Logout(c.Request.Context()); err != nil {
		respondError(c, err, "Failed to sign out")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPreferences handles GET /api/preferences
func (h *APIHandler) GetPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Preferences())
}

// UpdatePreferences handles PUT /api/preferences
func (h *APIHandler) UpdatePreferences(c *gin.Context) {
	var in store.PreferencesInput
	if !bindJSON(c, &in) {
		return
	}
	prefs, err := h.Store.UpdatePreferences(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to save preferences")
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// --- Dashboard Handlers ---

// language is ?lang= when given, otherwise the saved preference.
func (h *APIHandler) language(c *gin.Context) models.Language {
	if l := c.Query("lang"); l != "" {
		return models.ParseLanguage(l)
	}
	return h.Store.Preferences().Language
}

// Dashboard handles GET /api/dashboard
func (h *APIHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, stats.Dashboard(h.Store.State()))
}

// ClassChart handles GET /api/charts/classes
func (h *APIHandler) ClassChart(c *gin.Context) {
	st := h.Store.State()
	c.JSON(http.StatusOK, stats.ClassDistribution(st.Students, h.language(c)))
}

// GradeChart handles GET /api/charts/grades?class=
func (h *APIHandler) GradeChart(c *gin.Context) {
	class, ok := classParam(c)
	if !ok {
		return
	}
	st := h.Store.State()
	c.JSON(http.StatusOK, stats.GradeDistribution(st.Grades, st.Students, class, h.language(c)))
}

// AttendanceChart handles GET /api/charts/attendance?days=
func (h *APIHandler) AttendanceChart(c *gin.Context) {
	days := h.TrendDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > stats.MaxTrendDays {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid days: " + raw})
			return
		}
		days = n
	}
	st := h.Store.State()
	c.JSON(http.StatusOK, stats.AttendanceTrend(st.Attendance, len(st.Students), h.Store.Now(), days, h.language(c)))
}

// SubjectChart handles GET /api/charts/subjects
func (h *APIHandler) SubjectChart(c *gin.Context) {
	c.JSON(http.StatusOK, stats.TopSubjects(h.Store.State().Grades, stats.TopSubjectsLimit))
}

// --- Report Handlers ---

// Report handles GET /api/reports/:kind?class=. The workbook is sent as an
// attachment; ?format=json returns the table instead. The students report
// lists the same roster as GET /api/students.
func (h *APIHandler) Report(c *gin.Context) {
	kind, err := reports.ParseKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	class, ok := classParam(c)
	if !ok {
		return
	}

	st := h.Store.State()
	if kind == reports.KindStudents {
		st.Students = h.Store.ListStudents(query.StudentFilter{})
	}
	r := reports.Build(kind, st, class, h.language(c))

	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, r)
		return
	}

	var buf bytes.Buffer
	if err := r.WriteXLSX(&buf); err != nil {
		log.Printf("Error writing %s report: %v", kind, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+string(kind)+`-report.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
