package models

// Student represents a learner registered in the system. Deletion is
// logical: IsDeleted is flipped via an ordinary update, rows are never
// removed physically.
type Student struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	KanaName  string `db:"kana_name" json:"kana_name"`
	Nickname  string `db:"nickname" json:"nickname"`
	Email     string `db:"email" json:"email"`
	Area      string `db:"area" json:"area"`
	Age       int    `db:"age" json:"age"`
	Sex       string `db:"sex" json:"sex"`
	Remark    string `db:"remark" json:"remark"`
	IsDeleted bool   `db:"is_deleted" json:"is_deleted"`
}

// StudentSearchCriteria narrows a student search. Every field is optional;
// a zero value (empty string, nil pointer) means the field is not part of
// the filter. Identity and demographic fields are pushed down to the query,
// CourseName and Status narrow the joined lists in memory.
type StudentSearchCriteria struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	KanaName   string            `json:"kana_name"`
	Nickname   string            `json:"nickname"`
	Area       string            `json:"area"`
	AgeMin     *int              `json:"age_min" validate:"omitempty,gte=0,lte=150"`
	AgeMax     *int              `json:"age_max" validate:"omitempty,gte=0,lte=150"`
	Sex        string            `json:"sex" validate:"omitempty,oneof=男性 女性 その他"`
	CourseName string            `json:"course_name"`
	Status     CourseStatusValue `json:"status" validate:"omitempty,oneof=仮申込 本申込 受講中 受講終了"`
	IsDeleted  *bool             `json:"is_deleted"`
}

// IsEmpty reports whether no filter field is set, which makes the search
// equivalent to an unconditional full listing.
func (c StudentSearchCriteria) IsEmpty() bool {
	return c.ID == "" && c.Name == "" && c.KanaName == "" && c.Nickname == "" &&
		c.Area == "" && c.AgeMin == nil && c.AgeMax == nil && c.Sex == "" &&
		c.CourseName == "" && c.Status == "" && c.IsDeleted == nil
}
