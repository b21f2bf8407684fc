package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studylane/student-registry-api/internal/models"
	"github.com/studylane/student-registry-api/internal/service"
	appErrors "github.com/studylane/student-registry-api/pkg/errors"
	"github.com/studylane/student-registry-api/pkg/response"
)

type studentService interface {
	List(ctx context.Context) ([]models.StudentDetail, error)
	Get(ctx context.Context, id string) (*models.StudentDetail, error)
	Search(ctx context.Context, criteria models.StudentSearchCriteria) ([]models.StudentDetail, error)
	Register(ctx context.Context, req service.RegisterStudentRequest) (*models.StudentDetail, error)
	Update(ctx context.Context, id string, req service.UpdateStudentRequest) error
}

// StudentHandler exposes student detail endpoints.
type StudentHandler struct {
	students studentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// List godoc
// @Summary List all student details
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	details, err := h.students.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details)
}

// Get godoc
// @Summary Get one student detail
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	detail, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}

// Search godoc
// @Summary Search student details by criteria
// @Tags Students
// @Accept json
// @Produce json
// @Param criteria body models.StudentSearchCriteria true "Search criteria, all fields optional"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students/search [post]
func (h *StudentHandler) Search(c *gin.Context) {
	var criteria models.StudentSearchCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid criteria payload"))
		return
	}
	details, err := h.students.Search(c.Request.Context(), criteria)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details)
}

// Register godoc
// @Summary Register a student with courses and statuses
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.RegisterStudentRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Register(c *gin.Context) {
	var req service.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	detail, err := h.students.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, detail)
}

// Update godoc
// @Summary Update a student detail
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.UpdateStudentRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	var req service.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.students.Update(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"updated": true})
}
