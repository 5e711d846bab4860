package models

import "github.com/learnflow/backend/internal/store"

// Canonical blog field names in the record store.
const (
	BlogFieldTitle        = "title_c"
	BlogFieldContent      = "content_c"
	BlogFieldThumbnailURL = "thumbnail_url_c"
	BlogFieldAllowedRoles = "allowed_roles_c"
	BlogFieldPublishedAt  = "published_at_c"
)

// Blog is a single post on the insights page.
type Blog struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	ThumbnailURL string   `json:"thumbnailUrl"`
	AllowedRoles []string `json:"allowedRoles"`
	PublishedAt  string   `json:"publishedAt"`
}

// BlogFields is the projection requested for blog reads.
var BlogFields = []string{
	store.FieldName,
	BlogFieldTitle,
	BlogFieldContent,
	BlogFieldThumbnailURL,
	BlogFieldAllowedRoles,
	BlogFieldPublishedAt,
	store.FieldTags,
}

// BlogFromFields converts a store record into a Blog.
func BlogFromFields(f store.Fields) Blog {
	return Blog{
		ID:           fieldInt(f, store.FieldID),
		Title:        fieldString(f, BlogFieldTitle),
		Content:      fieldString(f, BlogFieldContent),
		ThumbnailURL: fieldString(f, BlogFieldThumbnailURL),
		AllowedRoles: SplitRoles(fieldString(f, BlogFieldAllowedRoles)),
		PublishedAt:  fieldString(f, BlogFieldPublishedAt),
	}
}
