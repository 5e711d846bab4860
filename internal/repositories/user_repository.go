package repositories

import (
	"context"
	"fmt"

	"github.com/learnflow/backend/internal/models"
	"github.com/learnflow/backend/internal/store"
	"go.uber.org/zap"
)

type userRepository struct {
	client store.Client
	logger *zap.Logger
}

// NewUserRepository creates a new user repository.
func NewUserRepository(client store.Client, logger *zap.Logger) *userRepository {
	return &userRepository{client: client, logger: logger}
}

// GetAll retrieves every user record.
func (r *userRepository) GetAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.client.List(ctx, store.EntityUser, store.Query{Fields: models.UserFields})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	users := make([]models.User, len(rows))
	for i, row := range rows {
		users[i] = models.UserFromFields(row)
	}
	return users, nil
}

// GetByID retrieves one user. A missing row surfaces store.ErrNotFound.
func (r *userRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	row, err := r.client.GetByID(ctx, store.EntityUser, id, models.UserFields)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}

	user := models.UserFromFields(row)
	return &user, nil
}

// GetByEmail retrieves the first user whose email matches. A missing user
// surfaces store.ErrNotFound.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	rows, err := r.client.List(ctx, store.EntityUser, store.Query{
		Fields: models.UserFields,
		Where: []store.Filter{
			{Field: models.UserFieldEmail, Operator: store.OperatorEqualTo, Values: []any{email}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("user with email %q: %w", email, store.ErrNotFound)
	}

	user := models.UserFromFields(rows[0])
	return &user, nil
}

// Create inserts a new user from a draft in either legacy or canonical field
// names.
func (r *userRepository) Create(ctx context.Context, draft store.Fields) (*models.User, error) {
	record := models.NormalizeUserDraft(draft)

	results, err := r.client.Create(ctx, store.EntityUser, []store.Fields{record})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	created, ok := firstSuccess(results)
	if !ok {
		return nil, fmt.Errorf("user was not created: %s", failureMessages(results))
	}

	user := models.UserFromFields(created.Data)
	return &user, nil
}

// Update patches only the fields explicitly present on the draft.
func (r *userRepository) Update(ctx context.Context, id int, draft store.Fields) (*models.User, error) {
	patch := models.UserPatch(draft)
	patch[store.FieldID] = id

	results, err := r.client.Update(ctx, store.EntityUser, []store.Fields{patch})
	if err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	updated, ok := firstSuccess(results)
	if !ok {
		return nil, fmt.Errorf("user %d was not updated: %s", id, failureMessages(results))
	}

	user := models.UserFromFields(updated.Data)
	user.ID = id
	return &user, nil
}

// Delete removes one user and reports whether the row was deleted.
func (r *userRepository) Delete(ctx context.Context, id int) (bool, error) {
	results, err := r.client.Delete(ctx, store.EntityUser, []int{id})
	if err != nil {
		return false, fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	if !anySuccess(results) {
		r.logger.Error("user was not deleted",
			zap.Int("user_id", id),
			zap.String("message", failureMessages(results)),
		)
		return false, nil
	}
	return true, nil
}
