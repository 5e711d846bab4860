package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestClient creates a mysql store client with a mock database
func setupTestClient(t *testing.T) (*mysqlClient, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	client := NewMySQLClient(db)

	cleanup := func() {
		db.Close()
	}

	return client, mock, cleanup
}

func TestMySQLClient_List(t *testing.T) {
	tests := []struct {
		name          string
		query         Query
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name:  "defaults to id order",
			query: Query{Fields: []string{"title_c"}},
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "title_c"}).
					AddRow(1, "Go Basics").
					AddRow(2, "Advanced Go")
				mock.ExpectQuery(regexp.QuoteMeta("SELECT `id`, `title_c` FROM `course_c`  ORDER BY `id`")).
					WillReturnRows(rows)
			},
			expectedCount: 2,
		},
		{
			name: "equality filter and explicit order",
			query: Query{
				Fields: []string{"title_c", "order_c"},
				Where: []Filter{
					{Field: "course_id_c", Operator: OperatorEqualTo, Values: []any{7}},
				},
				OrderBy: []Sort{{Field: "order_c"}},
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "title_c", "order_c"}).
					AddRow(3, "Intro", 1)
				mock.ExpectQuery(regexp.QuoteMeta("SELECT `id`, `title_c`, `order_c` FROM `course_c` WHERE `course_id_c` = ? ORDER BY `order_c` ASC")).
					WithArgs(7).
					WillReturnRows(rows)
			},
			expectedCount: 1,
		},
		{
			name: "unsupported operator",
			query: Query{
				Where: []Filter{
					{Field: "title_c", Operator: "Contains", Values: []any{"go"}},
				},
			},
			setupMock:     func(mock sqlmock.Sqlmock) {},
			expectedError: true,
		},
		{
			name:  "query error",
			query: Query{Fields: []string{"title_c"}},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection lost"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mock, cleanup := setupTestClient(t)
			defer cleanup()

			tt.setupMock(mock)

			rows, err := client.List(context.Background(), EntityCourse, tt.query)
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Len(t, rows, tt.expectedCount)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMySQLClient_GetByID(t *testing.T) {
	tests := []struct {
		name        string
		id          int
		setupMock   func(sqlmock.Sqlmock)
		wantErr     error
		expectTitle string
	}{
		{
			name: "found",
			id:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "title_c"}).AddRow(1, "Go Basics")
				mock.ExpectQuery(regexp.QuoteMeta("SELECT `id`, `title_c` FROM `course_c` WHERE `id` = ? LIMIT 1")).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectTitle: "Go Basics",
		},
		{
			name: "not found",
			id:   42,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT `id`, `title_c` FROM `course_c` WHERE `id` = ? LIMIT 1")).
					WithArgs(42).
					WillReturnRows(sqlmock.NewRows([]string{"id", "title_c"}))
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mock, cleanup := setupTestClient(t)
			defer cleanup()

			tt.setupMock(mock)

			record, err := client.GetByID(context.Background(), EntityCourse, tt.id, []string{"title_c"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectTitle, record["title_c"])
				assert.EqualValues(t, 1, record[FieldID])
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMySQLClient_Create(t *testing.T) {
	client, mock, cleanup := setupTestClient(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `course_c` (`name`, `title_c`) VALUES (?, ?)")).
		WithArgs("Go Basics", "Go Basics").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `course_c` (`title_c`) VALUES (?)")).
		WithArgs("Broken").
		WillReturnError(errors.New("column mismatch"))

	results, err := client.Create(context.Background(), EntityCourse, []Fields{
		{FieldName: "Go Basics", "title_c": "Go Basics"},
		{"title_c": "Broken"},
	})

	require.NoError(t, err, "per-record failures must not fail the batch")
	require.Len(t, results, 2)

	assert.True(t, results[0].Success)
	assert.Equal(t, 5, results[0].Data[FieldID])
	assert.Equal(t, "Go Basics", results[0].Data["title_c"])

	assert.False(t, results[1].Success)
	assert.Contains(t, results[1].Message, "column mismatch")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLClient_Update(t *testing.T) {
	client, mock, cleanup := setupTestClient(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `course_c` SET `title_c` = ? WHERE `id` = ?")).
		WithArgs("Renamed", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	rows := sqlmock.NewRows([]string{"id", "title_c", "description_c"}).
		AddRow(3, "Renamed", "unchanged")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `course_c` WHERE `id` = ? LIMIT 1")).
		WithArgs(3).
		WillReturnRows(rows)

	results, err := client.Update(context.Background(), EntityCourse, []Fields{
		{FieldID: 3, "title_c": "Renamed"},
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	require.True(t, results[0].Success)
	assert.Equal(t, "Renamed", results[0].Data["title_c"])
	assert.Equal(t, "unchanged", results[0].Data["description_c"], "full record comes back, not just the patch")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLClient_UpdateEmptyPatch(t *testing.T) {
	client, mock, cleanup := setupTestClient(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "title_c", "description_c"}).
		AddRow(5, "Go Basics", "stored row intact")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `course_c` WHERE `id` = ? LIMIT 1")).
		WithArgs(5).
		WillReturnRows(rows)

	results, err := client.Update(context.Background(), EntityCourse, []Fields{
		{FieldID: 5},
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	require.True(t, results[0].Success)
	assert.Equal(t, "Go Basics", results[0].Data["title_c"], "id-only patch still returns the stored record")
	assert.Equal(t, "stored row intact", results[0].Data["description_c"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLClient_UpdateMissingID(t *testing.T) {
	client, mock, cleanup := setupTestClient(t)
	defer cleanup()

	results, err := client.Update(context.Background(), EntityCourse, []Fields{
		{"title_c": "no id"},
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Message, "missing an Id")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLClient_Delete(t *testing.T) {
	client, mock, cleanup := setupTestClient(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `course_c` WHERE `id` = ?")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `course_c` WHERE `id` = ?")).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	results, err := client.Delete(context.Background(), EntityCourse, []int{1, 42})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Contains(t, results[1].Message, "does not exist")

	assert.NoError(t, mock.ExpectationsWereMet())
}
