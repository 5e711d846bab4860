// Package store defines the record-store contract the repositories are built
// on, together with its hosted, MySQL and in-memory implementations.
package store

import (
	"context"
	"errors"
)

// Entity names and shared field names as they appear on the wire.
const (
	EntityCourse         = "course_c"
	EntityCurriculumItem = "curriculum_item_c"
	EntityBlog           = "blog_c"
	EntityTestimonial    = "testimonial_c"
	EntityUser           = "user_c"

	FieldID   = "Id"
	FieldName = "Name"
	FieldTags = "Tags"
)

// Operator for equality filters. The store supports no other comparison here.
const OperatorEqualTo = "EqualTo"

// ErrNotFound is returned by GetByID when the store has no record with the
// requested id. Implementations wrap it with the store's own message.
var ErrNotFound = errors.New("record not found")

// Fields is a raw record as the store sees it: field name to value.
type Fields map[string]any

// Filter restricts a List call to records whose field matches one of Values.
type Filter struct {
	Field    string
	Operator string
	Values   []any
}

// Sort orders List results by a single field.
type Sort struct {
	Field string
	Desc  bool
}

// Query describes a List call: projected fields, equality filters and sort.
type Query struct {
	Fields  []string
	Where   []Filter
	OrderBy []Sort
}

// Result reports the outcome of one record inside a batch call. Batch calls
// return one Result per input record; a record can fail while the call as a
// whole succeeds.
type Result struct {
	Success bool
	Data    Fields
	Message string
}

// Client is the record-store contract. A non-nil error means the whole call
// failed; per-record failures inside an otherwise successful batch are
// reported through Result.
type Client interface {
	// List retrieves all records of an entity matching the query.
	List(ctx context.Context, entity string, q Query) ([]Fields, error)
	// GetByID retrieves a single record, wrapping ErrNotFound when the store
	// reports no such record.
	GetByID(ctx context.Context, entity string, id int, fields []string) (Fields, error)
	// Create inserts the given records in one batch.
	Create(ctx context.Context, entity string, records []Fields) ([]Result, error)
	// Update patches the given records in one batch. Each record must carry
	// an Id field; only the fields present on a record are changed.
	Update(ctx context.Context, entity string, records []Fields) ([]Result, error)
	// Delete removes the records with the given ids in one batch.
	Delete(ctx context.Context, entity string, ids []int) ([]Result, error)
}
