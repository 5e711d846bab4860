package models

import "github.com/learnflow/backend/internal/store"

// Canonical testimonial field names in the record store.
const (
	TestimonialFieldUserID    = "user_id_c"
	TestimonialFieldContent   = "content_c"
	TestimonialFieldIsPinned  = "is_pinned_c"
	TestimonialFieldIsHidden  = "is_hidden_c"
	TestimonialFieldCreatedAt = "created_at_c"
)

// Testimonial is a member review shown on the testimonials page. The user id
// is loosely typed upstream (numeric id or a session tag), so it stays a
// string here.
type Testimonial struct {
	ID        int    `json:"id"`
	UserID    string `json:"userId"`
	Content   string `json:"content"`
	IsPinned  bool   `json:"isPinned"`
	IsHidden  bool   `json:"isHidden"`
	CreatedAt string `json:"createdAt"`
}

// TestimonialFields is the projection requested for testimonial reads.
var TestimonialFields = []string{
	store.FieldName,
	TestimonialFieldUserID,
	TestimonialFieldContent,
	TestimonialFieldIsPinned,
	TestimonialFieldIsHidden,
	TestimonialFieldCreatedAt,
	store.FieldTags,
}

// TestimonialFromFields converts a store record into a Testimonial.
func TestimonialFromFields(f store.Fields) Testimonial {
	return Testimonial{
		ID:        fieldInt(f, store.FieldID),
		UserID:    fieldString(f, TestimonialFieldUserID),
		Content:   fieldString(f, TestimonialFieldContent),
		IsPinned:  fieldBool(f, TestimonialFieldIsPinned),
		IsHidden:  fieldBool(f, TestimonialFieldIsHidden),
		CreatedAt: fieldString(f, TestimonialFieldCreatedAt),
	}
}
