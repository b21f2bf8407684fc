package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studylane/student-registry-api/internal/models"
	"github.com/studylane/student-registry-api/internal/service"
	appErrors "github.com/studylane/student-registry-api/pkg/errors"
	"github.com/studylane/student-registry-api/pkg/response"
)

type studentServiceMock struct {
	listResp     []models.StudentDetail
	listErr      error
	getResp      *models.StudentDetail
	getErr       error
	searchResp   []models.StudentDetail
	searchErr    error
	registerResp *models.StudentDetail
	registerErr  error
	updateErr    error

	lastCriteria models.StudentSearchCriteria
	lastRegister service.RegisterStudentRequest
	lastUpdateID string
}

func (m *studentServiceMock) List(ctx context.Context) ([]models.StudentDetail, error) {
	return m.listResp, m.listErr
}

func (m *studentServiceMock) Get(ctx context.Context, id string) (*models.StudentDetail, error) {
	return m.getResp, m.getErr
}

func (m *studentServiceMock) Search(ctx context.Context, criteria models.StudentSearchCriteria) ([]models.StudentDetail, error) {
	m.lastCriteria = criteria
	return m.searchResp, m.searchErr
}

func (m *studentServiceMock) Register(ctx context.Context, req service.RegisterStudentRequest) (*models.StudentDetail, error) {
	m.lastRegister = req
	return m.registerResp, m.registerErr
}

func (m *studentServiceMock) Update(ctx context.Context, id string, req service.UpdateStudentRequest) error {
	m.lastUpdateID = id
	return m.updateErr
}

func newStudentRouter(svc *studentServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewStudentHandler(svc)
	r := gin.New()
	r.GET("/students", h.List)
	r.POST("/students", h.Register)
	r.POST("/students/search", h.Search)
	r.GET("/students/:id", h.Get)
	r.PUT("/students/:id", h.Update)
	return r
}

func TestStudentHandlerList(t *testing.T) {
	svc := &studentServiceMock{listResp: []models.StudentDetail{{Student: models.Student{ID: "s1"}}}}
	r := newStudentRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/students", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotNil(t, envelope.Data)
	assert.Nil(t, envelope.Error)
}

func TestStudentHandlerGetNotFound(t *testing.T) {
	svc := &studentServiceMock{getErr: appErrors.Clone(appErrors.ErrNotFound, "student missing not found")}
	r := newStudentRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/students/missing", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrNotFound.Code, envelope.Error.Code)
}

func TestStudentHandlerSearchPassesCriteria(t *testing.T) {
	svc := &studentServiceMock{searchResp: []models.StudentDetail{}}
	r := newStudentRouter(svc)

	body := bytes.NewBufferString(`{"course_name":"Java","status":"受講中"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/students/search", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Java", svc.lastCriteria.CourseName)
	assert.Equal(t, models.CourseStatusInProgress, svc.lastCriteria.Status)
}

func TestStudentHandlerSearchRejectsMalformedBody(t *testing.T) {
	svc := &studentServiceMock{}
	r := newStudentRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/students/search", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStudentHandlerRegister(t *testing.T) {
	svc := &studentServiceMock{registerResp: &models.StudentDetail{Student: models.Student{ID: "s1"}}}
	r := newStudentRouter(svc)

	payload := map[string]interface{}{
		"name":      "佐藤太郎",
		"kana_name": "サトウタロウ",
		"nickname":  "タロちゃん",
		"email":     "taro.sato@example.com",
		"area":      "東京",
		"age":       18,
		"sex":       "男性",
		"courses":   []map[string]string{{"course_id": "101", "course_name": "Java入門"}},
		"statuses":  []map[string]string{{"course_id": "101", "status": "仮申込"}},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/students", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "101", svc.lastRegister.Courses[0].CourseID)
}

func TestStudentHandlerRegisterConsistencyFailure(t *testing.T) {
	svc := &studentServiceMock{registerErr: appErrors.Clone(appErrors.ErrCourseSetMismatch, "")}
	r := newStudentRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/students", bytes.NewBufferString(`{"courses":[],"statuses":[]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrCourseSetMismatch.Code, envelope.Error.Code)
}

func TestStudentHandlerUpdate(t *testing.T) {
	svc := &studentServiceMock{}
	r := newStudentRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/students/s1", bytes.NewBufferString(`{"name":"佐藤太郎"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "s1", svc.lastUpdateID)
}
