package models

import "github.com/learnflow/backend/internal/store"

// Canonical curriculum item field names in the record store.
const (
	CurriculumFieldTitle    = "title_c"
	CurriculumFieldURL      = "url_c"
	CurriculumFieldDuration = "duration_c"
	CurriculumFieldOrder    = "order_c"
	CurriculumFieldCourseID = "course_id_c"
)

// DefaultCurriculumDuration is assumed when a draft carries no usable
// duration, in seconds.
const DefaultCurriculumDuration = 600

// CurriculumItem is a single video entry of a course. Exactly one course owns
// any given item; the course id never changes after creation.
type CurriculumItem struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Duration int    `json:"duration"`
	Order    int    `json:"order"`
	CourseID int    `json:"courseId"`
}

// CurriculumFields is the projection requested for curriculum reads.
var CurriculumFields = []string{
	store.FieldName,
	CurriculumFieldTitle,
	CurriculumFieldURL,
	CurriculumFieldDuration,
	CurriculumFieldOrder,
	CurriculumFieldCourseID,
}

// CurriculumItemFromFields converts a store record into a CurriculumItem.
func CurriculumItemFromFields(f store.Fields) CurriculumItem {
	return CurriculumItem{
		ID:       fieldInt(f, store.FieldID),
		Title:    fieldString(f, CurriculumFieldTitle),
		URL:      fieldString(f, CurriculumFieldURL),
		Duration: fieldInt(f, CurriculumFieldDuration),
		Order:    fieldInt(f, CurriculumFieldOrder),
		CourseID: fieldInt(f, CurriculumFieldCourseID),
	}
}
