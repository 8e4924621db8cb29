package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

type mockDB struct {
	mock.Mock
}

func (m *mockDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	called := m.Called(ctx, sql, args)
	return called.Get(0).(pgconn.CommandTag), called.Error(1)
}

func (m *mockDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	called := m.Called(ctx, sql, args)
	rows, _ := called.Get(0).(pgx.Rows)
	return rows, called.Error(1)
}

func (m *mockDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return m.Called(ctx, sql, args).Get(0).(pgx.Row)
}

// fakeRows serves fixed row values to pgx.CollectRows.
type fakeRows struct {
	data   [][]any
	pos    int
	err    error
	closed bool
}

func (r *fakeRows) Close() { r.closed = true }
func (r *fakeRows) Err() error { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Conn() *pgx.Conn { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Values() ([]any, error) { return r.data[r.pos-1], nil }

func (r *fakeRows) RawValues() [][]byte { return make([][]byte, len(r.data[r.pos-1])) }

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.pos-1]
	if len(dest) != len(row) {
		return errors.New("column count mismatch")
	}
	for i, v := range row {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

type pgErrRow struct{ code string }

func (r pgErrRow) Scan(...any) error { return &pgconn.PgError{Code: r.code} }

func TestPostgresRepository_DeleteMissing(t *testing.T) {
	db := new(mockDB)
	repo := NewPostgresRepository(db)
	db.On("Exec", mock.Anything, mock.Anything, []any{int64(9)}).Return(pgconn.NewCommandTag("DELETE 0"), nil)

	err := repo.DeleteQuestion(context.Background(), 9)
	assert.ErrorIs(t, err, trivia.ErrNotFound)
	db.AssertExpectations(t)
}

func TestPostgresRepository_DeleteExisting(t *testing.T) {
	db := new(mockDB)
	repo := NewPostgresRepository(db)
	db.On("Exec", mock.Anything, mock.Anything, []any{int64(3)}).Return(pgconn.NewCommandTag("DELETE 1"), nil)

	assert.NoError(t, repo.DeleteQuestion(context.Background(), 3))
	db.AssertExpectations(t)
}

func TestPostgresRepository_GetCategoryNoRows(t *testing.T) {
	db := new(mockDB)
	repo := NewPostgresRepository(db)
	db.On("QueryRow", mock.Anything, mock.Anything, []any{int64(5)}).Return(errRow{err: pgx.ErrNoRows})

	_, err := repo.GetCategory(context.Background(), 5)
	assert.ErrorIs(t, err, trivia.ErrNotFound)
}

func TestPostgresRepository_CreateForeignKeyViolation(t *testing.T) {
	db := new(mockDB)
	repo := NewPostgresRepository(db)
	db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).Return(pgErrRow{code: pgForeignKeyViolation})

	_, err := repo.CreateQuestion(context.Background(), trivia.NewQuestion{Question: "Q", Answer: "A", Category: 77, Difficulty: 2})
	assert.ErrorIs(t, err, trivia.ErrValidation)
}

func TestPostgresRepository_CreateValidatesBeforeQuery(t *testing.T) {
	db := new(mockDB)
	repo := NewPostgresRepository(db)

	_, err := repo.CreateQuestion(context.Background(), trivia.NewQuestion{Question: "Q", Category: 1, Difficulty: 2})
	assert.ErrorIs(t, err, trivia.ErrValidation)
	db.AssertNotCalled(t, "QueryRow", mock.Anything, mock.Anything, mock.Anything)
}

func TestPostgresRepository_ListQuestions(t *testing.T) {
	db := new(mockDB)
	repo := NewPostgresRepository(db)
	rows := &fakeRows{data: [][]any{
		{int64(1), "What is the heaviest organ in the human body?", "The Liver", int64(1), 4},
		{int64(4), "Who discovered penicillin?", "Alexander Fleming", int64(1), 3},
	}}
	db.On("Query", mock.Anything, mock.Anything, mock.Anything).Return(rows, nil)

	questions, err := repo.ListQuestions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []trivia.Question{
		{ID: 1, Question: "What is the heaviest organ in the human body?", Answer: "The Liver", Category: 1, Difficulty: 4},
		{ID: 4, Question: "Who discovered penicillin?", Answer: "Alexander Fleming", Category: 1, Difficulty: 3},
	}, questions)
	assert.True(t, rows.closed)
	db.AssertExpectations(t)
}

func TestPostgresRepository_ListCategories(t *testing.T) {
	db := new(mockDB)
	repo := NewPostgresRepository(db)
	rows := &fakeRows{data: [][]any{{int64(1), "Science"}, {int64(2), "Art"}}}
	db.On("Query", mock.Anything, mock.Anything, mock.Anything).Return(rows, nil)

	categories, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []trivia.Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}}, categories)
}

func TestPostgresRepository_ListEmptyAndFailures(t *testing.T) {
	db := new(mockDB)
	repo := NewPostgresRepository(db)
	db.On("Query", mock.Anything, mock.Anything, mock.Anything).Return(&fakeRows{}, nil).Once()

	questions, err := repo.ListQuestions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, questions)

	db.On("Query", mock.Anything, mock.Anything, mock.Anything).Return(&fakeRows{err: errors.New("conn reset")}, nil).Once()
	_, err = repo.ListQuestions(context.Background())
	assert.ErrorContains(t, err, "scan questions")

	db.On("Query", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()
	_, err = repo.ListCategories(context.Background())
	assert.ErrorContains(t, err, "query categories")
}
