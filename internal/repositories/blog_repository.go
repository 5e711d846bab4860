package repositories

import (
	"context"
	"fmt"

	"github.com/learnflow/backend/internal/models"
	"github.com/learnflow/backend/internal/store"
	"go.uber.org/zap"
)

type blogRepository struct {
	client store.Client
	logger *zap.Logger
}

// NewBlogRepository creates a new blog repository.
func NewBlogRepository(client store.Client, logger *zap.Logger) *blogRepository {
	return &blogRepository{client: client, logger: logger}
}

// GetAll retrieves every blog post.
func (r *blogRepository) GetAll(ctx context.Context) ([]models.Blog, error) {
	rows, err := r.client.List(ctx, store.EntityBlog, store.Query{Fields: models.BlogFields})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blogs: %w", err)
	}

	blogs := make([]models.Blog, len(rows))
	for i, row := range rows {
		blogs[i] = models.BlogFromFields(row)
	}
	return blogs, nil
}

// GetByID retrieves one blog post. A missing post surfaces store.ErrNotFound.
func (r *blogRepository) GetByID(ctx context.Context, id int) (*models.Blog, error) {
	row, err := r.client.GetByID(ctx, store.EntityBlog, id, models.BlogFields)
	if err != nil {
		return nil, fmt.Errorf("failed to get blog %d: %w", id, err)
	}

	blog := models.BlogFromFields(row)
	return &blog, nil
}

// Create inserts a new blog post from a draft in either legacy or canonical
// field names.
func (r *blogRepository) Create(ctx context.Context, draft store.Fields) (*models.Blog, error) {
	record := models.NormalizeBlogDraft(draft)

	results, err := r.client.Create(ctx, store.EntityBlog, []store.Fields{record})
	if err != nil {
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}
	created, ok := firstSuccess(results)
	if !ok {
		return nil, fmt.Errorf("blog was not created: %s", failureMessages(results))
	}

	blog := models.BlogFromFields(created.Data)
	return &blog, nil
}

// Update patches only the fields explicitly present on the draft.
func (r *blogRepository) Update(ctx context.Context, id int, draft store.Fields) (*models.Blog, error) {
	patch := models.BlogPatch(draft)
	patch[store.FieldID] = id

	results, err := r.client.Update(ctx, store.EntityBlog, []store.Fields{patch})
	if err != nil {
		return nil, fmt.Errorf("failed to update blog %d: %w", id, err)
	}
	updated, ok := firstSuccess(results)
	if !ok {
		return nil, fmt.Errorf("blog %d was not updated: %s", id, failureMessages(results))
	}

	blog := models.BlogFromFields(updated.Data)
	blog.ID = id
	return &blog, nil
}

// Delete removes one blog post and reports whether the row was deleted.
func (r *blogRepository) Delete(ctx context.Context, id int) (bool, error) {
	results, err := r.client.Delete(ctx, store.EntityBlog, []int{id})
	if err != nil {
		return false, fmt.Errorf("failed to delete blog %d: %w", id, err)
	}
	if !anySuccess(results) {
		r.logger.Error("blog was not deleted",
			zap.Int("blog_id", id),
			zap.String("message", failureMessages(results)),
		)
		return false, nil
	}
	return true, nil
}
