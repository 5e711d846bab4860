package repositories

import (
	"context"
	"fmt"

	"github.com/learnflow/backend/internal/models"
	"github.com/learnflow/backend/internal/store"
	"go.uber.org/zap"
)

type testimonialRepository struct {
	client store.Client
	logger *zap.Logger
}

// NewTestimonialRepository creates a new testimonial repository.
func NewTestimonialRepository(client store.Client, logger *zap.Logger) *testimonialRepository {
	return &testimonialRepository{client: client, logger: logger}
}

// GetAll retrieves every testimonial, hidden ones included. Filtering hidden
// entries is up to the caller.
func (r *testimonialRepository) GetAll(ctx context.Context) ([]models.Testimonial, error) {
	rows, err := r.client.List(ctx, store.EntityTestimonial, store.Query{Fields: models.TestimonialFields})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch testimonials: %w", err)
	}

	testimonials := make([]models.Testimonial, len(rows))
	for i, row := range rows {
		testimonials[i] = models.TestimonialFromFields(row)
	}
	return testimonials, nil
}

// GetByID retrieves one testimonial. A missing row surfaces store.ErrNotFound.
func (r *testimonialRepository) GetByID(ctx context.Context, id int) (*models.Testimonial, error) {
	row, err := r.client.GetByID(ctx, store.EntityTestimonial, id, models.TestimonialFields)
	if err != nil {
		return nil, fmt.Errorf("failed to get testimonial %d: %w", id, err)
	}

	testimonial := models.TestimonialFromFields(row)
	return &testimonial, nil
}

// Create inserts a new testimonial from a draft in either legacy or
// canonical field names.
func (r *testimonialRepository) Create(ctx context.Context, draft store.Fields) (*models.Testimonial, error) {
	record := models.NormalizeTestimonialDraft(draft)

	results, err := r.client.Create(ctx, store.EntityTestimonial, []store.Fields{record})
	if err != nil {
		return nil, fmt.Errorf("failed to create testimonial: %w", err)
	}
	created, ok := firstSuccess(results)
	if !ok {
		return nil, fmt.Errorf("testimonial was not created: %s", failureMessages(results))
	}

	testimonial := models.TestimonialFromFields(created.Data)
	return &testimonial, nil
}

// Update patches only the fields explicitly present on the draft.
func (r *testimonialRepository) Update(ctx context.Context, id int, draft store.Fields) (*models.Testimonial, error) {
	patch := models.TestimonialPatch(draft)
	patch[store.FieldID] = id

	results, err := r.client.Update(ctx, store.EntityTestimonial, []store.Fields{patch})
	if err != nil {
		return nil, fmt.Errorf("failed to update testimonial %d: %w", id, err)
	}
	updated, ok := firstSuccess(results)
	if !ok {
		return nil, fmt.Errorf("testimonial %d was not updated: %s", id, failureMessages(results))
	}

	testimonial := models.TestimonialFromFields(updated.Data)
	testimonial.ID = id
	return &testimonial, nil
}

// Delete removes one testimonial and reports whether the row was deleted.
func (r *testimonialRepository) Delete(ctx context.Context, id int) (bool, error) {
	results, err := r.client.Delete(ctx, store.EntityTestimonial, []int{id})
	if err != nil {
		return false, fmt.Errorf("failed to delete testimonial %d: %w", id, err)
	}
	if !anySuccess(results) {
		r.logger.Error("testimonial was not deleted",
			zap.Int("testimonial_id", id),
			zap.String("message", failureMessages(results)),
		)
		return false, nil
	}
	return true, nil
}
