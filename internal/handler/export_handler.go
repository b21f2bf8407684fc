package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studylane/student-registry-api/internal/models"
	appErrors "github.com/studylane/student-registry-api/pkg/errors"
	"github.com/studylane/student-registry-api/pkg/export"
	"github.com/studylane/student-registry-api/pkg/response"
)

// ExportHandler renders the student roster as CSV or PDF.
type ExportHandler struct {
	students studentService
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	title    string
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(students studentService, title string) *ExportHandler {
	return &ExportHandler{
		students: students,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		title:    title,
	}
}

// Export godoc
// @Summary Export the student roster
// @Tags Students
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /students/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	details, err := h.students.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	dataset := rosterDataset(details)

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		payload, err := h.csv.Render(dataset)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=students-%s.csv", time.Now().UTC().Format("20060102")))
		c.Data(http.StatusOK, "text/csv", payload)
	case "pdf":
		payload, err := h.pdf.Render(dataset, h.title)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=students-%s.pdf", time.Now().UTC().Format("20060102")))
		c.Data(http.StatusOK, "application/pdf", payload)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
	}
}

func rosterDataset(details []models.StudentDetail) export.Dataset {
	headers := []string{"ID", "Name", "Kana", "Email", "Area", "Age", "Sex", "Courses", "Deleted"}
	rows := make([]map[string]string, 0, len(details))
	for _, detail := range details {
		rows = append(rows, map[string]string{
			"ID":      detail.Student.ID,
			"Name":    detail.Student.Name,
			"Kana":    detail.Student.KanaName,
			"Email":   detail.Student.Email,
			"Area":    detail.Student.Area,
			"Age":     strconv.Itoa(detail.Student.Age),
			"Sex":     detail.Student.Sex,
			"Courses": strconv.Itoa(len(detail.Courses)),
			"Deleted": strconv.FormatBool(detail.Student.IsDeleted),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
