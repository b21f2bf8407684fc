package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/studylane/student-registry-api/internal/models"
)

type txContextKey struct{}

// StudentRepository manages persistence for students, their courses and
// course application statuses.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Transact runs fn within a single database transaction. Write operations
// invoked with the context passed to fn join that transaction.
func (r *StudentRepository) Transact(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(context.WithValue(ctx, txContextKey{}, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// exec resolves the executor for the call: the transaction carried by the
// context when inside Transact, the pooled connection otherwise.
func (r *StudentRepository) exec(ctx context.Context) sqlx.ExtContext {
	if tx, ok := ctx.Value(txContextKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return r.db
}

const studentColumns = "id, name, kana_name, nickname, email, area, age, sex, remark, is_deleted"

// FindAll returns every student row.
func (r *StudentRepository) FindAll(ctx context.Context) ([]models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students ORDER BY id", studentColumns)
	students := []models.Student{}
	if err := sqlx.SelectContext(ctx, r.exec(ctx), &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches one student by ID. Returns sql.ErrNoRows when absent.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students WHERE id = $1", studentColumns)
	var student models.Student
	if err := sqlx.GetContext(ctx, r.exec(ctx), &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// SearchWithCriteria returns students matching the identity and demographic
// criteria fields. Course and status criteria are not applied here; they
// narrow the joined lists in memory after the fetch.
func (r *StudentRepository) SearchWithCriteria(ctx context.Context, criteria models.StudentSearchCriteria) ([]models.Student, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if criteria.ID != "" {
		conditions = append(conditions, fmt.Sprintf("id = $%d", len(args)+1))
		args = append(args, criteria.ID)
	}
	if criteria.Name != "" {
		conditions = append(conditions, fmt.Sprintf("name LIKE $%d", len(args)+1))
		args = append(args, "%"+criteria.Name+"%")
	}
	if criteria.KanaName != "" {
		conditions = append(conditions, fmt.Sprintf("kana_name LIKE $%d", len(args)+1))
		args = append(args, "%"+criteria.KanaName+"%")
	}
	if criteria.Nickname != "" {
		conditions = append(conditions, fmt.Sprintf("nickname LIKE $%d", len(args)+1))
		args = append(args, "%"+criteria.Nickname+"%")
	}
	if criteria.Area != "" {
		conditions = append(conditions, fmt.Sprintf("area = $%d", len(args)+1))
		args = append(args, criteria.Area)
	}
	if criteria.AgeMin != nil {
		conditions = append(conditions, fmt.Sprintf("age >= $%d", len(args)+1))
		args = append(args, *criteria.AgeMin)
	}
	if criteria.AgeMax != nil {
		conditions = append(conditions, fmt.Sprintf("age <= $%d", len(args)+1))
		args = append(args, *criteria.AgeMax)
	}
	if criteria.Sex != "" {
		conditions = append(conditions, fmt.Sprintf("sex = $%d", len(args)+1))
		args = append(args, criteria.Sex)
	}
	if criteria.IsDeleted != nil {
		conditions = append(conditions, fmt.Sprintf("is_deleted = $%d", len(args)+1))
		args = append(args, *criteria.IsDeleted)
	}

	query := fmt.Sprintf("SELECT %s FROM students WHERE %s ORDER BY id",
		studentColumns, strings.Join(conditions, " AND "))

	students := []models.Student{}
	if err := sqlx.SelectContext(ctx, r.exec(ctx), &students, query, args...); err != nil {
		return nil, fmt.Errorf("search students: %w", err)
	}
	return students, nil
}

const courseColumns = "id, student_id, course_id, course_name, start_date, end_date"

// FindAllCourses returns every student course row.
func (r *StudentRepository) FindAllCourses(ctx context.Context) ([]models.StudentCourse, error) {
	query := fmt.Sprintf("SELECT %s FROM student_courses ORDER BY id", courseColumns)
	courses := []models.StudentCourse{}
	if err := sqlx.SelectContext(ctx, r.exec(ctx), &courses, query); err != nil {
		return nil, fmt.Errorf("list student courses: %w", err)
	}
	return courses, nil
}

// FindCoursesByStudent returns the courses linked to one student.
func (r *StudentRepository) FindCoursesByStudent(ctx context.Context, studentID string) ([]models.StudentCourse, error) {
	query := fmt.Sprintf("SELECT %s FROM student_courses WHERE student_id = $1 ORDER BY id", courseColumns)
	courses := []models.StudentCourse{}
	if err := sqlx.SelectContext(ctx, r.exec(ctx), &courses, query, studentID); err != nil {
		return nil, fmt.Errorf("list courses by student: %w", err)
	}
	return courses, nil
}

const statusColumns = "id, student_id, course_id, status"

// FindAllStatuses returns every course status row.
func (r *StudentRepository) FindAllStatuses(ctx context.Context) ([]models.CourseStatus, error) {
	query := fmt.Sprintf("SELECT %s FROM course_statuses ORDER BY id", statusColumns)
	statuses := []models.CourseStatus{}
	if err := sqlx.SelectContext(ctx, r.exec(ctx), &statuses, query); err != nil {
		return nil, fmt.Errorf("list course statuses: %w", err)
	}
	return statuses, nil
}

// FindStatusesByStudent returns the course statuses linked to one student.
func (r *StudentRepository) FindStatusesByStudent(ctx context.Context, studentID string) ([]models.CourseStatus, error) {
	query := fmt.Sprintf("SELECT %s FROM course_statuses WHERE student_id = $1 ORDER BY id", statusColumns)
	statuses := []models.CourseStatus{}
	if err := sqlx.SelectContext(ctx, r.exec(ctx), &statuses, query, studentID); err != nil {
		return nil, fmt.Errorf("list statuses by student: %w", err)
	}
	return statuses, nil
}

// InsertStudent inserts a new student row, assigning its ID.
func (r *StudentRepository) InsertStudent(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	const query = `INSERT INTO students (id, name, kana_name, nickname, email, area, age, sex, remark, is_deleted)
        VALUES (:id, :name, :kana_name, :nickname, :email, :area, :age, :sex, :remark, :is_deleted)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(ctx), query, student); err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

// InsertCourse inserts a new student course row, assigning its ID.
func (r *StudentRepository) InsertCourse(ctx context.Context, course *models.StudentCourse) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	const query = `INSERT INTO student_courses (id, student_id, course_id, course_name, start_date, end_date)
        VALUES (:id, :student_id, :course_id, :course_name, :start_date, :end_date)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(ctx), query, course); err != nil {
		return fmt.Errorf("insert student course: %w", err)
	}
	return nil
}

// InsertStatus inserts a new course status row, assigning its ID.
func (r *StudentRepository) InsertStatus(ctx context.Context, status *models.CourseStatus) error {
	if status.ID == "" {
		status.ID = uuid.NewString()
	}
	const query = `INSERT INTO course_statuses (id, student_id, course_id, status)
        VALUES (:id, :student_id, :course_id, :status)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(ctx), query, status); err != nil {
		return fmt.Errorf("insert course status: %w", err)
	}
	return nil
}

// UpdateStudent modifies an existing student, including the logical
// deletion flag.
func (r *StudentRepository) UpdateStudent(ctx context.Context, student *models.Student) error {
	const query = `UPDATE students SET name = :name, kana_name = :kana_name, nickname = :nickname,
        email = :email, area = :area, age = :age, sex = :sex, remark = :remark, is_deleted = :is_deleted
        WHERE id = :id`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(ctx), query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// UpdateCourse modifies an existing student course by its own ID.
func (r *StudentRepository) UpdateCourse(ctx context.Context, course *models.StudentCourse) error {
	const query = `UPDATE student_courses SET course_id = :course_id, course_name = :course_name,
        start_date = :start_date, end_date = :end_date WHERE id = :id`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(ctx), query, course); err != nil {
		return fmt.Errorf("update student course: %w", err)
	}
	return nil
}

// UpdateStatus modifies an existing course status by its own ID.
func (r *StudentRepository) UpdateStatus(ctx context.Context, status *models.CourseStatus) error {
	const query = `UPDATE course_statuses SET status = :status WHERE id = :id`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(ctx), query, status); err != nil {
		return fmt.Errorf("update course status: %w", err)
	}
	return nil
}
