package models

import "github.com/learnflow/backend/internal/store"

// Canonical user field names in the record store.
const (
	UserFieldEmail     = "email_c"
	UserFieldRole      = "role_c"
	UserFieldCreatedAt = "created_at_c"
)

// User is a platform account. Role checks in the UI are cosmetic; this layer
// stores the role tag without enforcing anything.
type User struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// UserFields is the projection requested for user reads.
var UserFields = []string{
	store.FieldName,
	UserFieldEmail,
	UserFieldRole,
	UserFieldCreatedAt,
	store.FieldTags,
}

// UserFromFields converts a store record into a User.
func UserFromFields(f store.Fields) User {
	return User{
		ID:        fieldInt(f, store.FieldID),
		Name:      fieldString(f, store.FieldName),
		Email:     fieldString(f, UserFieldEmail),
		Role:      fieldString(f, UserFieldRole),
		CreatedAt: fieldString(f, UserFieldCreatedAt),
	}
}
