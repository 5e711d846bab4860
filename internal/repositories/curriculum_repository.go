// Package repositories implements data access for the platform entities on
// top of the record-store client.
package repositories

import (
	"context"

	"github.com/learnflow/backend/internal/models"
	"github.com/learnflow/backend/internal/store"
	"go.uber.org/zap"
)

// BatchFailure describes one record of a batch write that the store rejected.
type BatchFailure struct {
	Index   int
	Message string
}

// CurriculumBatch is the outcome of a curriculum batch write: the items that
// made it into the store plus per-record failures. Callers that only need
// today's succeed-with-partial-data behavior use Items and ignore Failures.
type CurriculumBatch struct {
	Items    []models.CurriculumItem
	Failures []BatchFailure
}

// curriculumRepository owns curriculum item rows. It is the only component
// that mutates them; courses always go through it for their child collection.
type curriculumRepository struct {
	client store.Client
	logger *zap.Logger
}

// NewCurriculumRepository creates a new curriculum repository.
func NewCurriculumRepository(client store.Client, logger *zap.Logger) *curriculumRepository {
	return &curriculumRepository{
		client: client,
		logger: logger,
	}
}

// GetByCourseID retrieves all curriculum items of a course in ascending
// order. Store failures are logged and degrade to an empty slice; callers
// cannot tell an empty curriculum from a failed fetch.
func (r *curriculumRepository) GetByCourseID(ctx context.Context, courseID int) []models.CurriculumItem {
	q := store.Query{
		Fields: models.CurriculumFields,
		Where: []store.Filter{
			{Field: models.CurriculumFieldCourseID, Operator: store.OperatorEqualTo, Values: []any{courseID}},
		},
		OrderBy: []store.Sort{
			{Field: models.CurriculumFieldOrder},
		},
	}

	rows, err := r.client.List(ctx, store.EntityCurriculumItem, q)
	if err != nil {
		r.logger.Error("failed to fetch curriculum for course",
			zap.Int("course_id", courseID),
			zap.Error(err),
		)
		return []models.CurriculumItem{}
	}

	items := make([]models.CurriculumItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.CurriculumItemFromFields(row))
	}
	return items
}

// CreateMultiple inserts the given item drafts for a course in one batch.
// Each draft is normalized first: duration defaults to 600 seconds, order to
// the 1-based input position, and the course id always comes from the
// courseID argument. Rejected records are reported through the batch result
// and logged, never escalated to an error.
func (r *curriculumRepository) CreateMultiple(ctx context.Context, courseID int, drafts []store.Fields) CurriculumBatch {
	batch := CurriculumBatch{Items: []models.CurriculumItem{}}
	if len(drafts) == 0 {
		return batch
	}

	records := make([]store.Fields, len(drafts))
	for i, draft := range drafts {
		records[i] = models.NormalizeCurriculumDraft(draft, i, courseID)
	}

	results, err := r.client.Create(ctx, store.EntityCurriculumItem, records)
	if err != nil {
		r.logger.Error("failed to create curriculum for course",
			zap.Int("course_id", courseID),
			zap.Error(err),
		)
		for i := range drafts {
			batch.Failures = append(batch.Failures, BatchFailure{Index: i, Message: err.Error()})
		}
		return batch
	}

	for i, result := range results {
		if result.Success {
			batch.Items = append(batch.Items, models.CurriculumItemFromFields(result.Data))
			continue
		}
		batch.Failures = append(batch.Failures, BatchFailure{Index: i, Message: result.Message})
	}

	if len(batch.Failures) > 0 {
		r.logger.Error("some curriculum items were not created",
			zap.Int("course_id", courseID),
			zap.Int("failed", len(batch.Failures)),
		)
	}
	return batch
}

// ReplaceForCourse swaps the whole curriculum of a course: delete everything,
// then recreate from the drafts. The two steps are not atomic; if the create
// fails after a successful delete the course is left with no curriculum.
func (r *curriculumRepository) ReplaceForCourse(ctx context.Context, courseID int, drafts []store.Fields) CurriculumBatch {
	if ok := r.DeleteByCourseID(ctx, courseID); !ok {
		r.logger.Error("failed to clear curriculum before replace",
			zap.Int("course_id", courseID),
		)
	}
	return r.CreateMultiple(ctx, courseID, drafts)
}

// DeleteByCourseID removes every curriculum item of a course in one batch.
// Trivially succeeds when the course has none. Returns false on store
// failure, never an error.
func (r *curriculumRepository) DeleteByCourseID(ctx context.Context, courseID int) bool {
	existing := r.GetByCourseID(ctx, courseID)
	if len(existing) == 0 {
		return true
	}

	ids := make([]int, len(existing))
	for i, item := range existing {
		ids[i] = item.ID
	}

	results, err := r.client.Delete(ctx, store.EntityCurriculumItem, ids)
	if err != nil {
		r.logger.Error("failed to delete curriculum for course",
			zap.Int("course_id", courseID),
			zap.Error(err),
		)
		return false
	}

	for i, result := range results {
		if !result.Success {
			r.logger.Error("curriculum item was not deleted",
				zap.Int("course_id", courseID),
				zap.Int("item_id", ids[i]),
				zap.String("message", result.Message),
			)
		}
	}
	return true
}
