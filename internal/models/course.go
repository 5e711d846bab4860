// Package models holds the typed entities of the platform and the
// normalization boundary between legacy attribute names and the canonical
// suffixed store fields.
package models

import "github.com/learnflow/backend/internal/store"

// Canonical course field names in the record store.
const (
	CourseFieldTitle        = "title_c"
	CourseFieldDescription  = "description_c"
	CourseFieldThumbnailURL = "thumbnail_url_c"
	CourseFieldType         = "type_c"
	CourseFieldAllowedRoles = "allowed_roles_c"
	CourseFieldIsPinned     = "is_pinned_c"
	CourseFieldCreatedAt    = "created_at_c"
)

// DefaultCourseThumbnailURL is the stock image used when a course draft
// carries no thumbnail.
const DefaultCourseThumbnailURL = "https://images.unsplash.com/photo-1516321318423-f06f85e504b3?ixlib=rb-4.0.3&auto=format&fit=crop&w=1200&q=80"

// CourseType distinguishes the two course offerings.
type CourseType string

const (
	CourseTypeMembership CourseType = "membership"
	CourseTypeMaster     CourseType = "master"
)

// Role tags a course or blog can be restricted to. Stored as a
// comma-delimited string, exposed as a collection.
const (
	RoleFree   = "free"
	RoleMember = "member"
	RoleMaster = "master"
	RoleBoth   = "both"
	RoleAdmin  = "admin"
)

// Course is the aggregate root. Curriculum is not persisted on the course
// record; it is joined in from curriculum items at read time.
type Course struct {
	ID           int              `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	ThumbnailURL string           `json:"thumbnailUrl"`
	Type         CourseType       `json:"type"`
	AllowedRoles []string         `json:"allowedRoles"`
	IsPinned     bool             `json:"isPinned"`
	CreatedAt    string           `json:"createdAt"`
	Curriculum   []CurriculumItem `json:"curriculum"`
}

// CourseFields is the projection requested for course reads.
var CourseFields = []string{
	store.FieldName,
	CourseFieldTitle,
	CourseFieldDescription,
	CourseFieldThumbnailURL,
	CourseFieldType,
	CourseFieldAllowedRoles,
	CourseFieldIsPinned,
	CourseFieldCreatedAt,
	store.FieldTags,
}

// CourseFromFields converts a store record into a Course. The curriculum is
// left empty; callers attach it separately.
func CourseFromFields(f store.Fields) Course {
	return Course{
		ID:           fieldInt(f, store.FieldID),
		Title:        fieldString(f, CourseFieldTitle),
		Description:  fieldString(f, CourseFieldDescription),
		ThumbnailURL: fieldString(f, CourseFieldThumbnailURL),
		Type:         CourseType(fieldString(f, CourseFieldType)),
		AllowedRoles: SplitRoles(fieldString(f, CourseFieldAllowedRoles)),
		IsPinned:     fieldBool(f, CourseFieldIsPinned),
		CreatedAt:    fieldString(f, CourseFieldCreatedAt),
		Curriculum:   []CurriculumItem{},
	}
}
