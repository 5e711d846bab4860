package repositories

import (
	"context"
	"fmt"

	"github.com/learnflow/backend/internal/models"
	"github.com/learnflow/backend/internal/store"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CurriculumStore defines the curriculum operations the course repository
// fans out to for its child collection.
type CurriculumStore interface {
	// GetByCourseID retrieves all curriculum items of a course in ascending
	// order. Fetch failures degrade to an empty slice.
	GetByCourseID(ctx context.Context, courseID int) []models.CurriculumItem
	// CreateMultiple inserts item drafts for a course and reports the
	// successful items plus per-record failures.
	CreateMultiple(ctx context.Context, courseID int, drafts []store.Fields) CurriculumBatch
	// ReplaceForCourse swaps the whole curriculum of a course for the drafts.
	ReplaceForCourse(ctx context.Context, courseID int, drafts []store.Fields) CurriculumBatch
	// DeleteByCourseID removes every curriculum item of a course.
	DeleteByCourseID(ctx context.Context, courseID int) bool
}

// courseRepository owns course rows and composes the curriculum into every
// course it returns. It is also the normalization point between legacy and
// canonical field names for course drafts.
type courseRepository struct {
	client      store.Client
	curriculum  CurriculumStore
	logger      *zap.Logger
	fanOutLimit int
}

// NewCourseRepository creates a new course repository.
//
// "fanOutLimit" bounds how many curriculum fetches GetAll runs at once;
// 0 means one concurrent fetch per course, however many there are.
func NewCourseRepository(client store.Client, curriculum CurriculumStore, logger *zap.Logger, fanOutLimit int) *courseRepository {
	return &courseRepository{
		client:      client,
		curriculum:  curriculum,
		logger:      logger,
		fanOutLimit: fanOutLimit,
	}
}

// GetAll retrieves every course with its curriculum attached. The per-course
// curriculum fetches run concurrently; a failed fetch leaves that one course
// with an empty curriculum and never fails the listing.
func (r *courseRepository) GetAll(ctx context.Context) ([]models.Course, error) {
	rows, err := r.client.List(ctx, store.EntityCourse, store.Query{Fields: models.CourseFields})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch courses: %w", err)
	}

	courses := make([]models.Course, len(rows))
	g := new(errgroup.Group)
	if r.fanOutLimit > 0 {
		g.SetLimit(r.fanOutLimit)
	}
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			course := models.CourseFromFields(row)
			course.Curriculum = r.curriculum.GetByCourseID(ctx, course.ID)
			courses[i] = course
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return courses, nil
}

// GetByID retrieves one course with its curriculum attached. A missing
// course surfaces store.ErrNotFound with the store's message; a failed
// curriculum fetch yields an empty curriculum on an otherwise valid course.
func (r *courseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	row, err := r.client.GetByID(ctx, store.EntityCourse, id, models.CourseFields)
	if err != nil {
		return nil, fmt.Errorf("failed to get course %d: %w", id, err)
	}

	course := models.CourseFromFields(row)
	course.Curriculum = r.curriculum.GetByCourseID(ctx, id)
	return &course, nil
}

// Create inserts a new course and then its curriculum drafts. Only drafts
// carrying both a title and a url are persisted. A failed curriculum insert
// is logged; the course row stays and comes back with whatever subset made
// it into the store.
func (r *courseRepository) Create(ctx context.Context, draft store.Fields) (*models.Course, error) {
	record := models.NormalizeCourseDraft(draft)

	results, err := r.client.Create(ctx, store.EntityCourse, []store.Fields{record})
	if err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	created, ok := firstSuccess(results)
	if !ok {
		return nil, fmt.Errorf("course was not created: %s", failureMessages(results))
	}

	course := models.CourseFromFields(created.Data)

	drafts := curriculumDrafts(draft)
	if len(drafts) > 0 {
		batch := r.curriculum.CreateMultiple(ctx, course.ID, drafts)
		r.logCurriculumFailures(course.ID, batch)
		course.Curriculum = batch.Items
	}

	return &course, nil
}

// Update patches only the fields explicitly present on the draft. When the
// draft carries a curriculum key (even an empty one) the whole curriculum
// is replaced; when it is absent the current curriculum is re-fetched for
// the response and left untouched in storage.
func (r *courseRepository) Update(ctx context.Context, id int, draft store.Fields) (*models.Course, error) {
	patch := models.CoursePatch(draft)
	patch[store.FieldID] = id

	results, err := r.client.Update(ctx, store.EntityCourse, []store.Fields{patch})
	if err != nil {
		return nil, fmt.Errorf("failed to update course %d: %w", id, err)
	}
	updated, ok := firstSuccess(results)
	if !ok {
		return nil, fmt.Errorf("course %d was not updated: %s", id, failureMessages(results))
	}

	course := models.CourseFromFields(updated.Data)
	course.ID = id

	if drafts, provided := curriculumProvided(draft); provided {
		batch := r.curriculum.ReplaceForCourse(ctx, id, drafts)
		r.logCurriculumFailures(id, batch)
		course.Curriculum = batch.Items
	} else {
		course.Curriculum = r.curriculum.GetByCourseID(ctx, id)
	}

	return &course, nil
}

// Delete removes the course's curriculum first, best effort, then the course
// row itself. The returned flag reflects the course row only; a failed
// curriculum delete is logged and does not stop the course delete.
func (r *courseRepository) Delete(ctx context.Context, id int) (bool, error) {
	if ok := r.curriculum.DeleteByCourseID(ctx, id); !ok {
		r.logger.Error("failed to delete curriculum for course", zap.Int("course_id", id))
	}

	results, err := r.client.Delete(ctx, store.EntityCourse, []int{id})
	if err != nil {
		return false, fmt.Errorf("failed to delete course %d: %w", id, err)
	}
	if !anySuccess(results) {
		r.logger.Error("course was not deleted",
			zap.Int("course_id", id),
			zap.String("message", failureMessages(results)),
		)
		return false, nil
	}
	return true, nil
}

func (r *courseRepository) logCurriculumFailures(courseID int, batch CurriculumBatch) {
	for _, failure := range batch.Failures {
		r.logger.Error("curriculum item rejected",
			zap.Int("course_id", courseID),
			zap.Int("index", failure.Index),
			zap.String("message", failure.Message),
		)
	}
}

// curriculumDrafts extracts the curriculum drafts from a course draft,
// keeping only items that carry both a title and a url.
func curriculumDrafts(draft store.Fields) []store.Fields {
	raw, ok := draft["curriculum"]
	if !ok {
		return nil
	}
	complete := make([]store.Fields, 0)
	for _, item := range toDrafts(raw) {
		if models.CurriculumDraftComplete(item) {
			complete = append(complete, item)
		}
	}
	return complete
}

// curriculumProvided reports whether the draft explicitly carries a
// curriculum key, and returns its drafts unfiltered. An empty sequence is an
// explicit instruction to clear the curriculum.
func curriculumProvided(draft store.Fields) ([]store.Fields, bool) {
	raw, ok := draft["curriculum"]
	if !ok {
		return nil, false
	}
	return toDrafts(raw), true
}

func toDrafts(raw any) []store.Fields {
	switch items := raw.(type) {
	case []store.Fields:
		return items
	case []map[string]any:
		drafts := make([]store.Fields, len(items))
		for i, item := range items {
			drafts[i] = store.Fields(item)
		}
		return drafts
	case []any:
		drafts := make([]store.Fields, 0, len(items))
		for _, item := range items {
			if m, ok := item.(map[string]any); ok {
				drafts = append(drafts, store.Fields(m))
			}
		}
		return drafts
	default:
		return nil
	}
}
