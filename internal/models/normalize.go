package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/learnflow/backend/internal/store"
)

// Drafts coming from callers may use either the canonical suffixed field
// names or the legacy unsuffixed ones. The Normalize* functions map a draft
// onto one canonical record before anything is written; the *Patch functions
// do the same for sparse updates, including only the fields the caller
// explicitly provided. The canonical name wins when a draft carries both.

// SplitRoles turns the stored comma-delimited role string into a collection.
func SplitRoles(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	roles := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			roles = append(roles, part)
		}
	}
	return roles
}

// JoinRoles serializes a role collection for storage.
func JoinRoles(roles []string) string {
	return strings.Join(roles, ",")
}

// NormalizeCourseDraft builds the canonical record for a course insert,
// applying the draft defaults: stock thumbnail, free role, creation time.
func NormalizeCourseDraft(draft store.Fields) store.Fields {
	title := draftString(draft, CourseFieldTitle, "title")
	thumbnail := draftString(draft, CourseFieldThumbnailURL, "thumbnailUrl")
	if thumbnail == "" {
		thumbnail = DefaultCourseThumbnailURL
	}
	roles := draftRoles(draft, CourseFieldAllowedRoles, "allowedRoles")
	if len(roles) == 0 {
		roles = []string{RoleFree}
	}
	createdAt := draftString(draft, CourseFieldCreatedAt)
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}
	name := draftString(draft, store.FieldName)
	if name == "" {
		name = title
	}

	return store.Fields{
		store.FieldName:         name,
		CourseFieldTitle:        title,
		CourseFieldDescription:  draftString(draft, CourseFieldDescription, "description"),
		CourseFieldThumbnailURL: thumbnail,
		CourseFieldType:         draftString(draft, CourseFieldType, "type"),
		CourseFieldAllowedRoles: JoinRoles(roles),
		CourseFieldIsPinned:     draftBool(draft, CourseFieldIsPinned, "isPinned"),
		CourseFieldCreatedAt:    createdAt,
		store.FieldTags:         draftString(draft, store.FieldTags),
	}
}

// CoursePatch builds a sparse canonical patch from the fields explicitly
// present on the draft. Fields the caller omitted stay untouched in storage.
func CoursePatch(draft store.Fields) store.Fields {
	patch := store.Fields{}
	patchString(patch, draft, store.FieldName, store.FieldName)
	patchString(patch, draft, CourseFieldTitle, CourseFieldTitle, "title")
	patchString(patch, draft, CourseFieldDescription, CourseFieldDescription, "description")
	patchString(patch, draft, CourseFieldThumbnailURL, CourseFieldThumbnailURL, "thumbnailUrl")
	patchString(patch, draft, CourseFieldType, CourseFieldType, "type")
	patchRoles(patch, draft, CourseFieldAllowedRoles, CourseFieldAllowedRoles, "allowedRoles")
	patchBool(patch, draft, CourseFieldIsPinned, CourseFieldIsPinned, "isPinned")
	patchString(patch, draft, CourseFieldCreatedAt, CourseFieldCreatedAt)
	patchString(patch, draft, store.FieldTags, store.FieldTags)
	return patch
}

// NormalizeCurriculumDraft builds the canonical record for one curriculum
// item. The item's position in the input supplies the default order, and the
// parent id always comes from the caller, never from the draft.
func NormalizeCurriculumDraft(draft store.Fields, index, courseID int) store.Fields {
	title := draftString(draft, CurriculumFieldTitle, "title")
	name := draftString(draft, store.FieldName)
	if name == "" {
		name = title
	}
	if name == "" {
		name = fmt.Sprintf("Video %d", index+1)
	}
	duration, ok := draftInt(draft, CurriculumFieldDuration, "duration")
	if !ok {
		duration = DefaultCurriculumDuration
	}
	order, ok := draftInt(draft, CurriculumFieldOrder, "order")
	if !ok {
		order = index + 1
	}

	return store.Fields{
		store.FieldName:         name,
		CurriculumFieldTitle:    title,
		CurriculumFieldURL:      draftString(draft, CurriculumFieldURL, "url"),
		CurriculumFieldDuration: duration,
		CurriculumFieldOrder:    order,
		CurriculumFieldCourseID: courseID,
	}
}

// CurriculumDraftComplete reports whether a draft carries both a title and a
// url, under either naming scheme. Incomplete drafts are not persisted.
func CurriculumDraftComplete(draft store.Fields) bool {
	return draftString(draft, CurriculumFieldTitle, "title") != "" &&
		draftString(draft, CurriculumFieldURL, "url") != ""
}

// NormalizeBlogDraft builds the canonical record for a blog insert.
func NormalizeBlogDraft(draft store.Fields) store.Fields {
	title := draftString(draft, BlogFieldTitle, "title")
	name := draftString(draft, store.FieldName)
	if name == "" {
		name = title
	}
	roles := draftRoles(draft, BlogFieldAllowedRoles, "allowedRoles")
	if len(roles) == 0 {
		roles = []string{RoleFree}
	}
	publishedAt := draftString(draft, BlogFieldPublishedAt, "publishedAt")
	if publishedAt == "" {
		publishedAt = time.Now().UTC().Format(time.RFC3339)
	}

	return store.Fields{
		store.FieldName:       name,
		BlogFieldTitle:        title,
		BlogFieldContent:      draftString(draft, BlogFieldContent, "content"),
		BlogFieldThumbnailURL: draftString(draft, BlogFieldThumbnailURL, "thumbnailUrl"),
		BlogFieldAllowedRoles: JoinRoles(roles),
		BlogFieldPublishedAt:  publishedAt,
		store.FieldTags:       draftString(draft, store.FieldTags),
	}
}

// BlogPatch builds a sparse canonical patch for a blog update.
func BlogPatch(draft store.Fields) store.Fields {
	patch := store.Fields{}
	patchString(patch, draft, store.FieldName, store.FieldName)
	patchString(patch, draft, BlogFieldTitle, BlogFieldTitle, "title")
	patchString(patch, draft, BlogFieldContent, BlogFieldContent, "content")
	patchString(patch, draft, BlogFieldThumbnailURL, BlogFieldThumbnailURL, "thumbnailUrl")
	patchRoles(patch, draft, BlogFieldAllowedRoles, BlogFieldAllowedRoles, "allowedRoles")
	patchString(patch, draft, BlogFieldPublishedAt, BlogFieldPublishedAt, "publishedAt")
	patchString(patch, draft, store.FieldTags, store.FieldTags)
	return patch
}

// NormalizeTestimonialDraft builds the canonical record for a testimonial
// insert. The record name falls back to a content prefix.
func NormalizeTestimonialDraft(draft store.Fields) store.Fields {
	content := draftString(draft, TestimonialFieldContent, "content")
	name := draftString(draft, store.FieldName)
	if name == "" && content != "" {
		name = content
		if len(name) > 50 {
			name = name[:50]
		}
	}
	if name == "" {
		name = "Testimonial"
	}
	userID := draftString(draft, TestimonialFieldUserID, "userId")
	if userID == "" {
		userID = "current-user"
	}
	createdAt := draftString(draft, TestimonialFieldCreatedAt)
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}

	return store.Fields{
		store.FieldName:           name,
		TestimonialFieldUserID:    userID,
		TestimonialFieldContent:   content,
		TestimonialFieldIsPinned:  draftBool(draft, TestimonialFieldIsPinned, "isPinned"),
		TestimonialFieldIsHidden:  draftBool(draft, TestimonialFieldIsHidden, "isHidden"),
		TestimonialFieldCreatedAt: createdAt,
		store.FieldTags:           draftString(draft, store.FieldTags),
	}
}

// TestimonialPatch builds a sparse canonical patch for a testimonial update.
func TestimonialPatch(draft store.Fields) store.Fields {
	patch := store.Fields{}
	patchString(patch, draft, store.FieldName, store.FieldName)
	patchString(patch, draft, TestimonialFieldUserID, TestimonialFieldUserID, "userId")
	patchString(patch, draft, TestimonialFieldContent, TestimonialFieldContent, "content")
	patchBool(patch, draft, TestimonialFieldIsPinned, TestimonialFieldIsPinned, "isPinned")
	patchBool(patch, draft, TestimonialFieldIsHidden, TestimonialFieldIsHidden, "isHidden")
	patchString(patch, draft, TestimonialFieldCreatedAt, TestimonialFieldCreatedAt)
	patchString(patch, draft, store.FieldTags, store.FieldTags)
	return patch
}

// NormalizeUserDraft builds the canonical record for a user insert.
func NormalizeUserDraft(draft store.Fields) store.Fields {
	email := draftString(draft, UserFieldEmail, "email")
	name := draftString(draft, store.FieldName, "name")
	if name == "" {
		name = email
	}
	role := draftString(draft, UserFieldRole, "role")
	if role == "" {
		role = RoleFree
	}
	createdAt := draftString(draft, UserFieldCreatedAt)
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}

	return store.Fields{
		store.FieldName:    name,
		UserFieldEmail:     email,
		UserFieldRole:      role,
		UserFieldCreatedAt: createdAt,
		store.FieldTags:    draftString(draft, store.FieldTags),
	}
}

// UserPatch builds a sparse canonical patch for a user update.
func UserPatch(draft store.Fields) store.Fields {
	patch := store.Fields{}
	patchString(patch, draft, store.FieldName, store.FieldName, "name")
	patchString(patch, draft, UserFieldEmail, UserFieldEmail, "email")
	patchString(patch, draft, UserFieldRole, UserFieldRole, "role")
	patchString(patch, draft, UserFieldCreatedAt, UserFieldCreatedAt)
	patchString(patch, draft, store.FieldTags, store.FieldTags)
	return patch
}

// --- value coercion ---
//
// Draft and record values arrive loosely typed: a JSON body yields float64
// numbers and []any slices, the in-memory store returns native Go values.

// fieldString reads a string off a stored record.
func fieldString(f store.Fields, key string) string {
	switch v := f[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// fieldInt reads an integer off a stored record.
func fieldInt(f store.Fields, key string) int {
	n, _ := toInt(f[key])
	return n
}

// fieldBool reads a boolean off a stored record.
func fieldBool(f store.Fields, key string) bool {
	return toBool(f[key])
}

// draftString returns the first non-empty string among the given keys.
func draftString(draft store.Fields, keys ...string) string {
	for _, key := range keys {
		if v, ok := draft[key]; ok {
			if s := toString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// draftInt returns the first usable integer among the given keys.
func draftInt(draft store.Fields, keys ...string) (int, bool) {
	for _, key := range keys {
		if v, ok := draft[key]; ok {
			if n, ok := toInt(v); ok {
				return n, true
			}
		}
	}
	return 0, false
}

// draftBool returns the first boolean-like value among the given keys.
func draftBool(draft store.Fields, keys ...string) bool {
	for _, key := range keys {
		if v, ok := draft[key]; ok {
			return toBool(v)
		}
	}
	return false
}

// draftRoles returns the first usable role collection among the given keys.
func draftRoles(draft store.Fields, keys ...string) []string {
	for _, key := range keys {
		v, ok := draft[key]
		if !ok {
			continue
		}
		if roles := toRoles(v); len(roles) > 0 {
			return roles
		}
	}
	return nil
}

// patchString copies the first present key of the draft into the patch under
// the canonical field name.
func patchString(patch, draft store.Fields, field string, keys ...string) {
	for _, key := range keys {
		if v, ok := draft[key]; ok {
			patch[field] = toString(v)
			return
		}
	}
}

// patchBool copies the first present boolean key of the draft into the patch.
func patchBool(patch, draft store.Fields, field string, keys ...string) {
	for _, key := range keys {
		if v, ok := draft[key]; ok {
			patch[field] = toBool(v)
			return
		}
	}
}

// patchRoles copies the first present role key of the draft into the patch,
// serialized to the stored string form. An empty collection clears the field.
func patchRoles(patch, draft store.Fields, field string, keys ...string) {
	for _, key := range keys {
		if v, ok := draft[key]; ok {
			patch[field] = JoinRoles(toRoles(v))
			return
		}
	}
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	default:
		return fmt.Sprint(s)
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true" || b == "1"
	case int:
		return b != 0
	case int64:
		return b != 0
	case float64:
		return b != 0
	default:
		return false
	}
}

func toRoles(v any) []string {
	switch roles := v.(type) {
	case []string:
		return roles
	case []any:
		out := make([]string, 0, len(roles))
		for _, role := range roles {
			if s := toString(role); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		return SplitRoles(roles)
	default:
		return nil
	}
}
