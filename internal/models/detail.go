package models

// StudentDetail is the in-memory aggregate of one student with the courses
// and statuses joined to it. It is rebuilt on every read or write and never
// cached; Courses and Statuses are empty slices, not nil, when nothing
// matches.
type StudentDetail struct {
	Student  Student         `json:"student"`
	Courses  []StudentCourse `json:"courses"`
	Statuses []CourseStatus  `json:"statuses"`
}
