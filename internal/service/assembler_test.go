package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studylane/student-registry-api/internal/models"
)

func TestAssembleDetailsJoinsCoursesAndStatuses(t *testing.T) {
	students := []models.Student{
		{ID: "s1", Name: "佐藤太郎"},
		{ID: "s2", Name: "鈴木花子"},
	}
	courses := []models.StudentCourse{
		{ID: "c1", StudentID: "s1", CourseID: "101", CourseName: "Java入門"},
		{ID: "c2", StudentID: "s2", CourseID: "102", CourseName: "Python基礎"},
		{ID: "c3", StudentID: "s1", CourseID: "103", CourseName: "AWS初級"},
	}
	statuses := []models.CourseStatus{
		{ID: "t1", StudentID: "s1", CourseID: "101", Status: models.CourseStatusInProgress},
		{ID: "t2", StudentID: "s2", CourseID: "102", Status: models.CourseStatusProvisional},
		{ID: "t3", StudentID: "s1", CourseID: "103", Status: models.CourseStatusConfirmed},
	}

	details := AssembleDetails(students, courses, statuses)
	require.Len(t, details, 2)

	assert.Equal(t, "s1", details[0].Student.ID)
	require.Len(t, details[0].Courses, 2)
	assert.Equal(t, "c1", details[0].Courses[0].ID)
	assert.Equal(t, "c3", details[0].Courses[1].ID)
	require.Len(t, details[0].Statuses, 2)
	assert.Equal(t, "t1", details[0].Statuses[0].ID)
	assert.Equal(t, "t3", details[0].Statuses[1].ID)

	assert.Equal(t, "s2", details[1].Student.ID)
	require.Len(t, details[1].Courses, 1)
	assert.Equal(t, "c2", details[1].Courses[0].ID)
	require.Len(t, details[1].Statuses, 1)
	assert.Equal(t, "t2", details[1].Statuses[0].ID)
}

func TestAssembleDetailsPreservesStudentOrder(t *testing.T) {
	students := []models.Student{{ID: "s3"}, {ID: "s1"}, {ID: "s2"}}

	details := AssembleDetails(students, nil, nil)
	require.Len(t, details, 3)
	assert.Equal(t, "s3", details[0].Student.ID)
	assert.Equal(t, "s1", details[1].Student.ID)
	assert.Equal(t, "s2", details[2].Student.ID)
}

func TestAssembleDetailsDropsOrphanRows(t *testing.T) {
	students := []models.Student{{ID: "s1"}}
	courses := []models.StudentCourse{
		{ID: "c1", StudentID: "s1", CourseID: "101"},
		{ID: "c2", StudentID: "ghost", CourseID: "102"},
	}
	statuses := []models.CourseStatus{
		{ID: "t1", StudentID: "s1", CourseID: "101"},
		{ID: "t2", StudentID: "ghost", CourseID: "102"},
		// student matches but the course id has no course for s1
		{ID: "t3", StudentID: "s1", CourseID: "999"},
	}

	details := AssembleDetails(students, courses, statuses)
	require.Len(t, details, 1)
	require.Len(t, details[0].Courses, 1)
	assert.Equal(t, "c1", details[0].Courses[0].ID)
	require.Len(t, details[0].Statuses, 1)
	assert.Equal(t, "t1", details[0].Statuses[0].ID)
}

func TestAssembleDetailsReturnsEmptySlicesNotNil(t *testing.T) {
	details := AssembleDetails([]models.Student{{ID: "s1"}}, nil, nil)
	require.Len(t, details, 1)
	assert.NotNil(t, details[0].Courses)
	assert.NotNil(t, details[0].Statuses)
	assert.Empty(t, details[0].Courses)
	assert.Empty(t, details[0].Statuses)
}
