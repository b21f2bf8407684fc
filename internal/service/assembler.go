package service

import (
	"github.com/studylane/student-registry-api/internal/models"
)

// AssembleDetails joins flat student, course and status lists into one
// StudentDetail per student, preserving student input order.
//
// Courses are matched on StudentID and keep their relative input order.
// Statuses are matched on StudentID and must additionally reference a
// CourseID present among that student's matched courses. Rows whose foreign
// keys match no student, or whose course id has no corresponding course for
// that student, are silently excluded from every aggregate.
func AssembleDetails(students []models.Student, courses []models.StudentCourse, statuses []models.CourseStatus) []models.StudentDetail {
	details := make([]models.StudentDetail, 0, len(students))
	for _, student := range students {
		matchedCourses := make([]models.StudentCourse, 0)
		courseIDs := make(map[string]struct{})
		for _, course := range courses {
			if course.StudentID == student.ID {
				matchedCourses = append(matchedCourses, course)
				courseIDs[course.CourseID] = struct{}{}
			}
		}

		matchedStatuses := make([]models.CourseStatus, 0)
		for _, status := range statuses {
			if status.StudentID != student.ID {
				continue
			}
			if _, ok := courseIDs[status.CourseID]; !ok {
				continue
			}
			matchedStatuses = append(matchedStatuses, status)
		}

		details = append(details, models.StudentDetail{
			Student:  student,
			Courses:  matchedCourses,
			Statuses: matchedStatuses,
		})
	}
	return details
}
