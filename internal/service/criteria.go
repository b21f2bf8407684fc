package service

import (
	"strings"

	"github.com/studylane/student-registry-api/internal/models"
)

// filterCoursesByName narrows courses to those whose name contains the
// given fragment as a case-sensitive substring. An empty fragment keeps
// every course.
func filterCoursesByName(courses []models.StudentCourse, fragment string) []models.StudentCourse {
	if fragment == "" {
		return courses
	}
	filtered := make([]models.StudentCourse, 0, len(courses))
	for _, course := range courses {
		if strings.Contains(course.CourseName, fragment) {
			filtered = append(filtered, course)
		}
	}
	return filtered
}

// filterStatusesByValue narrows statuses to those exactly equal to the
// given value. An empty value keeps every status.
func filterStatusesByValue(statuses []models.CourseStatus, value models.CourseStatusValue) []models.CourseStatus {
	if value == "" {
		return statuses
	}
	filtered := make([]models.CourseStatus, 0, len(statuses))
	for _, status := range statuses {
		if status.Status == value {
			filtered = append(filtered, status)
		}
	}
	return filtered
}
