package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studylane/student-registry-api/internal/models"
)

func newExportRouter(svc *studentServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewExportHandler(svc, "Student Roster")
	r := gin.New()
	r.GET("/students/export", h.Export)
	return r
}

func TestExportHandlerCSV(t *testing.T) {
	svc := &studentServiceMock{listResp: []models.StudentDetail{
		{
			Student: models.Student{ID: "s1", Name: "佐藤太郎", KanaName: "サトウタロウ", Email: "taro@example.com", Area: "東京", Age: 18, Sex: "男性"},
			Courses: []models.StudentCourse{{ID: "c1", StudentID: "s1", CourseID: "101"}},
		},
	}}
	r := newExportRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/students/export?format=csv", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "students-")
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[1], "佐藤太郎")
}

func TestExportHandlerPDF(t *testing.T) {
	svc := &studentServiceMock{listResp: []models.StudentDetail{}}
	r := newExportRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/students/export?format=pdf", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestExportHandlerUnknownFormat(t *testing.T) {
	svc := &studentServiceMock{}
	r := newExportRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/students/export?format=xml", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
