package models

import (
	"os"
	"strings"
	"testing"

	"github.com/learnflow/backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// migrationColumns parses the CREATE TABLE statements of the up migration
// into a table name to column set map.
func migrationColumns(t *testing.T) map[string]map[string]bool {
	t.Helper()
	raw, err := os.ReadFile("../../migrations/000001_create_content_tables.up.sql")
	require.NoError(t, err)

	tables := make(map[string]map[string]bool)
	var current map[string]bool
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "CREATE TABLE"):
			parts := strings.Fields(strings.TrimSuffix(line, " ("))
			current = make(map[string]bool)
			tables[parts[len(parts)-1]] = current
		case current == nil || line == "":
		case strings.HasPrefix(line, ")"):
			current = nil
		case strings.HasPrefix(line, "INDEX") || strings.HasPrefix(line, "UNIQUE") || strings.HasPrefix(line, "PRIMARY"):
		default:
			current[strings.Fields(line)[0]] = true
		}
	}
	return tables
}

// schemaColumn mirrors how the MySQL driver maps wire field names onto
// columns: the store-managed fields get plain names, everything else is
// used as-is.
func schemaColumn(field string) string {
	switch field {
	case store.FieldID:
		return "id"
	case store.FieldName:
		return "name"
	case store.FieldTags:
		return "tags"
	}
	return field
}

// Every projected field must exist as a column under the MySQL driver, or
// each read of that entity fails with an unknown-column error.
func TestReadProjectionsMatchMigration(t *testing.T) {
	tables := migrationColumns(t)

	tests := []struct {
		entity string
		fields []string
	}{
		{store.EntityCourse, CourseFields},
		{store.EntityCurriculumItem, CurriculumFields},
		{store.EntityBlog, BlogFields},
		{store.EntityTestimonial, TestimonialFields},
		{store.EntityUser, UserFields},
	}

	for _, tt := range tests {
		t.Run(tt.entity, func(t *testing.T) {
			columns := tables[tt.entity]
			require.NotEmpty(t, columns, "migration creates no table %s", tt.entity)
			for _, field := range tt.fields {
				assert.Contains(t, columns, schemaColumn(field),
					"projected field %s has no column on %s", field, tt.entity)
			}
		})
	}
}

// Every field a normalized draft writes must exist as a column, or each
// insert of that entity fails per record.
func TestNormalizedDraftsMatchMigration(t *testing.T) {
	tables := migrationColumns(t)

	drafts := map[string]store.Fields{
		store.EntityCourse:         NormalizeCourseDraft(store.Fields{"title": "Go Basics"}),
		store.EntityCurriculumItem: NormalizeCurriculumDraft(store.Fields{"title": "Intro", "url": "https://videos/1"}, 0, 1),
		store.EntityBlog:           NormalizeBlogDraft(store.Fields{"title": "Release notes"}),
		store.EntityTestimonial:    NormalizeTestimonialDraft(store.Fields{"content": "Great course"}),
		store.EntityUser:           NormalizeUserDraft(store.Fields{"email": "member@example.com"}),
	}

	for entity, draft := range drafts {
		t.Run(entity, func(t *testing.T) {
			columns := tables[entity]
			require.NotEmpty(t, columns, "migration creates no table %s", entity)
			for field := range draft {
				assert.Contains(t, columns, schemaColumn(field),
					"draft field %s has no column on %s", field, entity)
			}
		})
	}
}
