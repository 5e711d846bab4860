package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClient_CreateAssignsIDs(t *testing.T) {
	client := NewMemoryClient()

	results, err := client.Create(context.Background(), EntityCourse, []Fields{
		{"title_c": "Go Basics"},
		{"title_c": "Advanced Go"},
	})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.True(t, results[1].Success)
	assert.Equal(t, 1, results[0].Data[FieldID])
	assert.Equal(t, 2, results[1].Data[FieldID])
}

func TestMemoryClient_GetByID(t *testing.T) {
	client := NewMemoryClient()
	_, err := client.Create(context.Background(), EntityCourse, []Fields{{"title_c": "Go Basics"}})
	require.NoError(t, err)

	tests := []struct {
		name    string
		id      int
		wantErr error
	}{
		{
			name: "existing record",
			id:   1,
		},
		{
			name:    "missing record",
			id:      42,
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := client.GetByID(context.Background(), EntityCourse, tt.id, []string{"title_c"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, record)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Go Basics", record["title_c"])
		})
	}
}

func TestMemoryClient_ListFiltersAndSorts(t *testing.T) {
	client := NewMemoryClient()
	_, err := client.Create(context.Background(), EntityCurriculumItem, []Fields{
		{"title_c": "Third", "order_c": 3, "course_id_c": 1},
		{"title_c": "First", "order_c": 1, "course_id_c": 1},
		{"title_c": "Other course", "order_c": 1, "course_id_c": 2},
		{"title_c": "Second", "order_c": 2, "course_id_c": 1},
	})
	require.NoError(t, err)

	rows, err := client.List(context.Background(), EntityCurriculumItem, Query{
		Where: []Filter{
			{Field: "course_id_c", Operator: OperatorEqualTo, Values: []any{1}},
		},
		OrderBy: []Sort{
			{Field: "order_c"},
		},
	})

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "First", rows[0]["title_c"])
	assert.Equal(t, "Second", rows[1]["title_c"])
	assert.Equal(t, "Third", rows[2]["title_c"])
}

func TestMemoryClient_ListSortDescending(t *testing.T) {
	client := NewMemoryClient()
	_, err := client.Create(context.Background(), EntityBlog, []Fields{
		{"title_c": "older", "published_at_c": "2024-01-01"},
		{"title_c": "newer", "published_at_c": "2025-06-15"},
	})
	require.NoError(t, err)

	rows, err := client.List(context.Background(), EntityBlog, Query{
		OrderBy: []Sort{{Field: "published_at_c", Desc: true}},
	})

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "newer", rows[0]["title_c"])
}

func TestMemoryClient_UpdateMergesFields(t *testing.T) {
	client := NewMemoryClient()
	_, err := client.Create(context.Background(), EntityCourse, []Fields{
		{"title_c": "Go Basics", "description_c": "intro"},
	})
	require.NoError(t, err)

	results, err := client.Update(context.Background(), EntityCourse, []Fields{
		{FieldID: 1, "title_c": "Go Fundamentals"},
		{FieldID: 99, "title_c": "ghost"},
	})

	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[0].Success)
	assert.Equal(t, "Go Fundamentals", results[0].Data["title_c"])
	assert.Equal(t, "intro", results[0].Data["description_c"], "untouched field survives the patch")

	assert.False(t, results[1].Success)
	assert.NotEmpty(t, results[1].Message)
}

func TestMemoryClient_UpdateNeverChangesID(t *testing.T) {
	client := NewMemoryClient()
	_, err := client.Create(context.Background(), EntityCourse, []Fields{{"title_c": "Go Basics"}})
	require.NoError(t, err)

	results, err := client.Update(context.Background(), EntityCourse, []Fields{
		{FieldID: 1, "title_c": "renamed"},
	})
	require.NoError(t, err)
	require.True(t, results[0].Success)
	assert.Equal(t, 1, results[0].Data[FieldID])
}

func TestMemoryClient_DeletePerRecordResults(t *testing.T) {
	client := NewMemoryClient()
	_, err := client.Create(context.Background(), EntityCourse, []Fields{
		{"title_c": "one"},
		{"title_c": "two"},
	})
	require.NoError(t, err)

	results, err := client.Delete(context.Background(), EntityCourse, []int{1, 42, 2})

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.True(t, results[2].Success)

	rows, err := client.List(context.Background(), EntityCourse, Query{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMemoryClient_ListReturnsCopies(t *testing.T) {
	client := NewMemoryClient()
	_, err := client.Create(context.Background(), EntityCourse, []Fields{{"title_c": "Go Basics"}})
	require.NoError(t, err)

	rows, err := client.List(context.Background(), EntityCourse, Query{})
	require.NoError(t, err)
	rows[0]["title_c"] = "mutated"

	again, err := client.List(context.Background(), EntityCourse, Query{})
	require.NoError(t, err)
	assert.Equal(t, "Go Basics", again[0]["title_c"])
}
