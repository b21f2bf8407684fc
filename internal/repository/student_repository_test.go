package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studylane/student-registry-api/internal/models"
)

func newStudentMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func studentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "kana_name", "nickname", "email", "area", "age", "sex", "remark", "is_deleted"}).
		AddRow("s1", "佐藤太郎", "サトウタロウ", "タロちゃん", "taro.sato@example.com", "東京", 18, "男性", "", false)
}

func TestStudentRepositoryFindAll(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, kana_name, nickname, email, area, age, sex, remark, is_deleted FROM students ORDER BY id")).
		WillReturnRows(studentRows())

	students, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "佐藤太郎", students[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByIDAbsent(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("SELECT .* FROM students WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), "missing")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositorySearchWithCriteria(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	ageMin := 18
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, kana_name, nickname, email, area, age, sex, remark, is_deleted FROM students WHERE 1=1 AND name LIKE $1 AND area = $2 AND age >= $3 ORDER BY id")).
		WithArgs("%佐藤%", "東京", 18).
		WillReturnRows(studentRows())

	students, err := repo.SearchWithCriteria(context.Background(), models.StudentSearchCriteria{
		Name:   "佐藤",
		Area:   "東京",
		AgeMin: &ageMin,
	})
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositorySearchWithEmptyCriteria(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, kana_name, nickname, email, area, age, sex, remark, is_deleted FROM students WHERE 1=1 ORDER BY id")).
		WillReturnRows(studentRows())

	students, err := repo.SearchWithCriteria(context.Background(), models.StudentSearchCriteria{})
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryInsertStudentAssignsID(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("INSERT INTO students").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	student := &models.Student{Name: "佐藤太郎", KanaName: "サトウタロウ", Nickname: "タロちゃん", Email: "taro.sato@example.com", Area: "東京", Age: 18, Sex: "男性"}
	err := repo.InsertStudent(context.Background(), student)
	require.NoError(t, err)
	assert.NotEmpty(t, student.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryTransactCommits(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO students").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO student_courses").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.Transact(context.Background(), func(ctx context.Context) error {
		student := &models.Student{Name: "佐藤太郎", KanaName: "サトウタロウ", Nickname: "タロ", Email: "taro@example.com", Area: "東京", Age: 18, Sex: "男性"}
		if err := repo.InsertStudent(ctx, student); err != nil {
			return err
		}
		course := &models.StudentCourse{StudentID: student.ID, CourseID: "101", CourseName: "Java入門", StartDate: time.Now(), EndDate: time.Now().AddDate(1, 0, 0)}
		return repo.InsertCourse(ctx, course)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryTransactRollsBackOnError(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := repo.Transact(context.Background(), func(ctx context.Context) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("UPDATE course_statuses SET status").
		WithArgs(string(models.CourseStatusCompleted), "t1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), &models.CourseStatus{ID: "t1", Status: models.CourseStatusCompleted})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
