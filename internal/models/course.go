package models

import "time"

// CourseStatusValue enumerates the application states of a course enrollment.
type CourseStatusValue string

const (
	CourseStatusProvisional CourseStatusValue = "仮申込"
	CourseStatusConfirmed   CourseStatusValue = "本申込"
	CourseStatusInProgress  CourseStatusValue = "受講中"
	CourseStatusCompleted   CourseStatusValue = "受講終了"
)

// StudentCourse links a student to a catalog course. StudentID is assigned
// exactly once at registration; EndDate is always StartDate plus one
// calendar year, computed at registration and never supplied by callers
// for new records.
type StudentCourse struct {
	ID         string    `db:"id" json:"id"`
	StudentID  string    `db:"student_id" json:"student_id"`
	CourseID   string    `db:"course_id" json:"course_id"`
	CourseName string    `db:"course_name" json:"course_name"`
	StartDate  time.Time `db:"start_date" json:"start_date"`
	EndDate    time.Time `db:"end_date" json:"end_date"`
}

// CourseStatus tracks the application status of one enrolled course. Its
// CourseID must reference a course also present in the student's course
// list at registration time.
type CourseStatus struct {
	ID        string            `db:"id" json:"id"`
	StudentID string            `db:"student_id" json:"student_id"`
	CourseID  string            `db:"course_id" json:"course_id"`
	Status    CourseStatusValue `db:"status" json:"status"`
}
