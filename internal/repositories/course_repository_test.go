package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/learnflow/backend/internal/models"
	"github.com/learnflow/backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupCourseRepository(t *testing.T) (*courseRepository, store.Client) {
	t.Helper()
	client := store.NewMemoryClient()
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)
	curriculum := NewCurriculumRepository(client, logger)
	return NewCourseRepository(client, curriculum, logger, 4), client
}

func TestCourseRepository_CreateWithCurriculum(t *testing.T) {
	repo, _ := setupCourseRepository(t)

	course, err := repo.Create(context.Background(), store.Fields{
		"title":        "Go Basics",
		"type":         "membership",
		"allowedRoles": []any{"member", "master"},
		"curriculum": []any{
			map[string]any{"title": "Intro", "url": "https://v.example/1"},
			map[string]any{"title": "no url, skipped"},
			map[string]any{"title": "Setup", "url": "https://v.example/2"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Go Basics", course.Title)
	assert.Equal(t, []string{"member", "master"}, course.AllowedRoles)

	require.Len(t, course.Curriculum, 2, "incomplete drafts are not persisted")
	assert.Equal(t, "Intro", course.Curriculum[0].Title)
	assert.Equal(t, 1, course.Curriculum[0].Order)
	assert.Equal(t, "Setup", course.Curriculum[1].Title)
	assert.Equal(t, 2, course.Curriculum[1].Order)
	assert.Equal(t, models.DefaultCurriculumDuration, course.Curriculum[0].Duration)
}

func TestCourseRepository_CreateWithoutCurriculum(t *testing.T) {
	repo, _ := setupCourseRepository(t)

	course, err := repo.Create(context.Background(), store.Fields{"title": "Theory only"})

	require.NoError(t, err)
	assert.NotNil(t, course.Curriculum)
	assert.Empty(t, course.Curriculum)
	assert.Equal(t, models.DefaultCourseThumbnailURL, course.ThumbnailURL)
	assert.Equal(t, []string{"free"}, course.AllowedRoles)
}

func TestCourseRepository_GetByID(t *testing.T) {
	repo, _ := setupCourseRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, store.Fields{
		"title": "Go Basics",
		"curriculum": []any{
			map[string]any{"title": "Intro", "url": "https://v.example/1"},
		},
	})
	require.NoError(t, err)

	course, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go Basics", course.Title)
	require.Len(t, course.Curriculum, 1)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCourseRepository_GetAll(t *testing.T) {
	repo, _ := setupCourseRepository(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, store.Fields{
			"title": fmt.Sprintf("Course %d", i+1),
			"curriculum": []any{
				map[string]any{"title": "Intro", "url": "https://v.example/1"},
				map[string]any{"title": "Setup", "url": "https://v.example/2"},
			},
		})
		require.NoError(t, err)
	}

	courses, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 3)
	for _, course := range courses {
		require.Len(t, course.Curriculum, 2)
		assert.Equal(t, 1, course.Curriculum[0].Order)
		assert.Equal(t, 2, course.Curriculum[1].Order)
		assert.Equal(t, course.ID, course.Curriculum[0].CourseID)
	}

	// Listing is read-only; a second call sees the same data.
	again, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, courses, again)
}

func TestCourseRepository_GetAll_IsolatesCurriculumFailures(t *testing.T) {
	mem := store.NewMemoryClient()
	var brokenCourseID int
	client := &stubClient{
		Client: mem,
		listFunc: func(ctx context.Context, entity string, q store.Query) ([]store.Fields, error) {
			if entity == store.EntityCurriculumItem && len(q.Where) > 0 {
				if id, ok := q.Where[0].Values[0].(int); ok && id == brokenCourseID {
					return nil, errors.New("store unavailable")
				}
			}
			return mem.List(ctx, entity, q)
		},
	}
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)
	curriculum := NewCurriculumRepository(client, logger)
	repo := NewCourseRepository(client, curriculum, logger, 4)
	ctx := context.Background()

	var ids []int
	for i := 0; i < 10; i++ {
		course, err := repo.Create(ctx, store.Fields{
			"title": fmt.Sprintf("Course %d", i+1),
			"curriculum": []any{
				map[string]any{"title": "Intro", "url": "https://v.example/1"},
			},
		})
		require.NoError(t, err)
		ids = append(ids, course.ID)
	}
	brokenCourseID = ids[6]

	courses, err := repo.GetAll(ctx)
	require.NoError(t, err, "one bad curriculum fetch never fails the listing")
	require.Len(t, courses, 10)

	for _, course := range courses {
		if course.ID == brokenCourseID {
			assert.Empty(t, course.Curriculum)
			continue
		}
		assert.Len(t, course.Curriculum, 1)
	}
}

func TestCourseRepository_UpdateWithoutCurriculumKey(t *testing.T) {
	repo, _ := setupCourseRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, store.Fields{
		"title": "Go Basics",
		"curriculum": []any{
			map[string]any{"title": "Intro", "url": "https://v.example/1"},
			map[string]any{"title": "Setup", "url": "https://v.example/2"},
		},
	})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, store.Fields{"title": "Go Fundamentals"})

	require.NoError(t, err)
	assert.Equal(t, "Go Fundamentals", updated.Title)
	assert.Len(t, updated.Curriculum, 2, "curriculum stays untouched when the key is absent")
	assert.Equal(t, created.Curriculum[0].ID, updated.Curriculum[0].ID)
}

func TestCourseRepository_UpdateReplacesCurriculum(t *testing.T) {
	repo, _ := setupCourseRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, store.Fields{
		"title": "Go Basics",
		"curriculum": []any{
			map[string]any{"title": "Old", "url": "https://v.example/old"},
		},
	})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, store.Fields{
		"curriculum": []any{
			map[string]any{"title": "New 1", "url": "https://v.example/new1"},
			map[string]any{"title": "New 2", "url": "https://v.example/new2"},
		},
	})

	require.NoError(t, err)
	require.Len(t, updated.Curriculum, 2)
	assert.Equal(t, "New 1", updated.Curriculum[0].Title)
	assert.Equal(t, 1, updated.Curriculum[0].Order)
	assert.Equal(t, 2, updated.Curriculum[1].Order)
	assert.NotEqual(t, created.Curriculum[0].ID, updated.Curriculum[0].ID, "replace recreates rows")
}

func TestCourseRepository_UpdateEmptyCurriculumClears(t *testing.T) {
	repo, _ := setupCourseRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, store.Fields{
		"title": "Go Basics",
		"curriculum": []any{
			map[string]any{"title": "Old", "url": "https://v.example/old"},
		},
	})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, store.Fields{"curriculum": []any{}})

	require.NoError(t, err)
	assert.Empty(t, updated.Curriculum, "an explicit empty curriculum clears storage")

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.Curriculum)
}

func TestCourseRepository_Delete(t *testing.T) {
	repo, client := setupCourseRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, store.Fields{
		"title": "Go Basics",
		"curriculum": []any{
			map[string]any{"title": "Intro", "url": "https://v.example/1"},
		},
	})
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	rows, err := client.List(ctx, store.EntityCurriculumItem, store.Query{})
	require.NoError(t, err)
	assert.Empty(t, rows, "curriculum rows go with the course")
}

func TestCourseRepository_DeleteMissingCourse(t *testing.T) {
	repo, _ := setupCourseRepository(t)

	deleted, err := repo.Delete(context.Background(), 999)

	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCourseRepository_RolesRoundTrip(t *testing.T) {
	repo, _ := setupCourseRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, store.Fields{
		"title":        "Members only",
		"allowedRoles": []any{"member", "master"},
	})
	require.NoError(t, err)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"member", "master"}, fetched.AllowedRoles)
}
