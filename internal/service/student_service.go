package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studylane/student-registry-api/internal/models"
	appErrors "github.com/studylane/student-registry-api/pkg/errors"
)

type studentRepository interface {
	FindAll(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	FindAllCourses(ctx context.Context) ([]models.StudentCourse, error)
	FindCoursesByStudent(ctx context.Context, studentID string) ([]models.StudentCourse, error)
	FindAllStatuses(ctx context.Context) ([]models.CourseStatus, error)
	FindStatusesByStudent(ctx context.Context, studentID string) ([]models.CourseStatus, error)
	SearchWithCriteria(ctx context.Context, criteria models.StudentSearchCriteria) ([]models.Student, error)
	InsertStudent(ctx context.Context, student *models.Student) error
	InsertCourse(ctx context.Context, course *models.StudentCourse) error
	InsertStatus(ctx context.Context, status *models.CourseStatus) error
	UpdateStudent(ctx context.Context, student *models.Student) error
	UpdateCourse(ctx context.Context, course *models.StudentCourse) error
	UpdateStatus(ctx context.Context, status *models.CourseStatus) error
	Transact(ctx context.Context, fn func(ctx context.Context) error) error
}

// RegisterCourseEntry is one course in a registration payload. The caller
// supplies the catalog course id and display name only; linkage fields and
// dates are assigned during registration.
type RegisterCourseEntry struct {
	CourseID   string `json:"course_id" validate:"required"`
	CourseName string `json:"course_name" validate:"required"`
}

// RegisterStatusEntry is one application status in a registration payload.
type RegisterStatusEntry struct {
	CourseID string                   `json:"course_id" validate:"required"`
	Status   models.CourseStatusValue `json:"status" validate:"required,oneof=仮申込 本申込 受講中 受講終了"`
}

// RegisterStudentRequest holds payload for registering a student with its
// courses and statuses.
type RegisterStudentRequest struct {
	Name     string                `json:"name" validate:"required"`
	KanaName string                `json:"kana_name" validate:"required"`
	Nickname string                `json:"nickname" validate:"required"`
	Email    string                `json:"email" validate:"required,email"`
	Area     string                `json:"area" validate:"required"`
	Age      int                   `json:"age" validate:"gte=0,lte=150"`
	Sex      string                `json:"sex" validate:"required,oneof=男性 女性 その他"`
	Remark   string                `json:"remark"`
	Courses  []RegisterCourseEntry `json:"courses" validate:"required,min=1,dive"`
	Statuses []RegisterStatusEntry `json:"statuses" validate:"required,dive"`
}

// UpdateCourseEntry is one already-persisted course in an update payload.
type UpdateCourseEntry struct {
	ID         string    `json:"id" validate:"required"`
	CourseID   string    `json:"course_id" validate:"required"`
	CourseName string    `json:"course_name" validate:"required"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

// UpdateStatusEntry is one already-persisted status in an update payload.
type UpdateStatusEntry struct {
	ID       string                   `json:"id" validate:"required"`
	CourseID string                   `json:"course_id" validate:"required"`
	Status   models.CourseStatusValue `json:"status" validate:"required,oneof=仮申込 本申込 受講中 受講終了"`
}

// UpdateStudentRequest holds payload for updating a student detail. The
// caller is trusted to supply only entries that already exist and belong
// together; no cross-list consistency check runs on update. Logical
// deletion is expressed through IsDeleted.
type UpdateStudentRequest struct {
	Name      string              `json:"name" validate:"required"`
	KanaName  string              `json:"kana_name" validate:"required"`
	Nickname  string              `json:"nickname" validate:"required"`
	Email     string              `json:"email" validate:"required,email"`
	Area      string              `json:"area" validate:"required"`
	Age       int                 `json:"age" validate:"gte=0,lte=150"`
	Sex       string              `json:"sex" validate:"required,oneof=男性 女性 その他"`
	Remark    string              `json:"remark"`
	IsDeleted bool                `json:"is_deleted"`
	Courses   []UpdateCourseEntry `json:"courses" validate:"dive"`
	Statuses  []UpdateStatusEntry `json:"statuses" validate:"dive"`
}

// StudentService handles student detail use-cases: listing, lookup,
// criteria search, registration and update.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, metrics: metrics, logger: logger}
}

func (s *StudentService) observeQuery(label string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveDBQuery(label, time.Since(start))
	}
}

// List returns every student detail, unfiltered.
func (s *StudentService) List(ctx context.Context) ([]models.StudentDetail, error) {
	start := time.Now()
	students, err := s.repo.FindAll(ctx)
	s.observeQuery("students_list", start)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	courses, err := s.repo.FindAllCourses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list student courses")
	}
	statuses, err := s.repo.FindAllStatuses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course statuses")
	}
	return AssembleDetails(students, courses, statuses), nil
}

// Get returns the detail for one student. The student row is checked
// first; courses and statuses are only fetched when it exists.
func (s *StudentService) Get(ctx context.Context, id string) (*models.StudentDetail, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %s not found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	courses, err := s.repo.FindCoursesByStudent(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student courses")
	}
	statuses, err := s.repo.FindStatusesByStudent(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course statuses")
	}
	if courses == nil {
		courses = []models.StudentCourse{}
	}
	if statuses == nil {
		statuses = []models.CourseStatus{}
	}
	return &models.StudentDetail{Student: *student, Courses: courses, Statuses: statuses}, nil
}

// Search returns the details matching the criteria. Identity and
// demographic fields are pushed down to the repository query; course name
// and status narrow the joined lists in memory before assembly. A student
// that survives the student-level filter but has no course left after the
// course name filter is still returned, with an empty course list.
func (s *StudentService) Search(ctx context.Context, criteria models.StudentSearchCriteria) ([]models.StudentDetail, error) {
	if err := s.validator.Struct(criteria); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid search criteria")
	}
	start := time.Now()
	students, err := s.repo.SearchWithCriteria(ctx, criteria)
	s.observeQuery("students_search", start)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search students")
	}
	courses, err := s.repo.FindAllCourses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list student courses")
	}
	statuses, err := s.repo.FindAllStatuses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course statuses")
	}
	courses = filterCoursesByName(courses, criteria.CourseName)
	statuses = filterStatusesByValue(statuses, criteria.Status)
	return AssembleDetails(students, courses, statuses), nil
}

// Register persists a new student with its courses and statuses in one
// transaction. The course list must not repeat a course id, and the course
// id sets of both lists must be exactly equal; both checks run before any
// write. Linkage fields and the one-year course period are assigned here,
// never taken from the caller.
func (s *StudentService) Register(ctx context.Context, req RegisterStudentRequest) (*models.StudentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}
	if err := checkCourseConsistency(req.Courses, req.Statuses); err != nil {
		return nil, err
	}

	statusByCourse := make(map[string]RegisterStatusEntry, len(req.Statuses))
	for _, entry := range req.Statuses {
		statusByCourse[entry.CourseID] = entry
	}

	student := models.Student{
		Name:     req.Name,
		KanaName: req.KanaName,
		Nickname: req.Nickname,
		Email:    req.Email,
		Area:     req.Area,
		Age:      req.Age,
		Sex:      req.Sex,
		Remark:   req.Remark,
	}

	detail := &models.StudentDetail{
		Courses:  make([]models.StudentCourse, 0, len(req.Courses)),
		Statuses: make([]models.CourseStatus, 0, len(req.Statuses)),
	}

	txStart := time.Now()
	err := s.repo.Transact(ctx, func(ctx context.Context) error {
		if err := s.repo.InsertStudent(ctx, &student); err != nil {
			return err
		}

		now := time.Now().UTC()
		startDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		for _, entry := range req.Courses {
			course := models.StudentCourse{
				StudentID:  student.ID,
				CourseID:   entry.CourseID,
				CourseName: entry.CourseName,
				StartDate:  startDate,
				EndDate:    startDate.AddDate(1, 0, 0),
			}
			if err := s.repo.InsertCourse(ctx, &course); err != nil {
				return err
			}
			detail.Courses = append(detail.Courses, course)

			// CourseID is re-affirmed from the matched course, not
			// taken from the status payload.
			status := models.CourseStatus{
				StudentID: student.ID,
				CourseID:  course.CourseID,
				Status:    statusByCourse[entry.CourseID].Status,
			}
			if err := s.repo.InsertStatus(ctx, &status); err != nil {
				return err
			}
			detail.Statuses = append(detail.Statuses, status)
		}
		return nil
	})
	s.observeQuery("students_register", txStart)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to register student")
	}

	detail.Student = student
	s.logger.Info("student registered", zap.String("student_id", student.ID), zap.Int("courses", len(detail.Courses)))
	return detail, nil
}

// Update persists the student row as given, including any change to the
// logical deletion flag, then each course and status by their own ids, all
// in one transaction.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid update payload")
	}

	student := models.Student{
		ID:        id,
		Name:      req.Name,
		KanaName:  req.KanaName,
		Nickname:  req.Nickname,
		Email:     req.Email,
		Area:      req.Area,
		Age:       req.Age,
		Sex:       req.Sex,
		Remark:    req.Remark,
		IsDeleted: req.IsDeleted,
	}

	txStart := time.Now()
	err := s.repo.Transact(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateStudent(ctx, &student); err != nil {
			return err
		}
		for _, entry := range req.Courses {
			course := models.StudentCourse{
				ID:         entry.ID,
				StudentID:  id,
				CourseID:   entry.CourseID,
				CourseName: entry.CourseName,
				StartDate:  entry.StartDate,
				EndDate:    entry.EndDate,
			}
			if err := s.repo.UpdateCourse(ctx, &course); err != nil {
				return err
			}
		}
		for _, entry := range req.Statuses {
			status := models.CourseStatus{
				ID:        entry.ID,
				StudentID: id,
				CourseID:  entry.CourseID,
				Status:    entry.Status,
			}
			if err := s.repo.UpdateStatus(ctx, &status); err != nil {
				return err
			}
		}
		return nil
	})
	s.observeQuery("students_update", txStart)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return nil
}

// checkCourseConsistency enforces the registration preconditions: no
// repeated course id within the course list, and exact set equality
// between the course ids of both lists.
func checkCourseConsistency(courses []RegisterCourseEntry, statuses []RegisterStatusEntry) error {
	courseIDs := make(map[string]struct{}, len(courses))
	for _, entry := range courses {
		if _, ok := courseIDs[entry.CourseID]; ok {
			return appErrors.Clone(appErrors.ErrDuplicateCourse, fmt.Sprintf("course id %s appears more than once", entry.CourseID))
		}
		courseIDs[entry.CourseID] = struct{}{}
	}

	statusIDs := make(map[string]struct{}, len(statuses))
	for _, entry := range statuses {
		statusIDs[entry.CourseID] = struct{}{}
	}

	missingStatuses := setDifference(courseIDs, statusIDs)
	missingCourses := setDifference(statusIDs, courseIDs)
	if len(missingStatuses) > 0 || len(missingCourses) > 0 {
		return appErrors.Clone(appErrors.ErrCourseSetMismatch, fmt.Sprintf(
			"course ids without status: %v, status course ids without course: %v",
			missingStatuses, missingCourses))
	}
	return nil
}

func setDifference(left, right map[string]struct{}) []string {
	diff := []string{}
	for id := range left {
		if _, ok := right[id]; !ok {
			diff = append(diff, id)
		}
	}
	sort.Strings(diff)
	return diff
}
