package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

func openTestSQLite(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "trivia.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	require.NoError(t, repo.UpsertCategory(context.Background(), trivia.Category{ID: 1, Type: "Science"}))
	require.NoError(t, repo.UpsertCategory(context.Background(), trivia.Category{ID: 4, Type: "History"}))
	return repo
}

func TestSQLiteRepository_CreateListDelete(t *testing.T) {
	ctx := context.Background()
	repo := openTestSQLite(t)

	created, err := repo.CreateQuestion(ctx, trivia.NewQuestion{Question: "What boxer's original name is Cassius Clay?", Answer: "Muhammad Ali", Category: 4, Difficulty: 1})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	all, err := repo.ListQuestions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []trivia.Question{created}, all)

	require.NoError(t, repo.DeleteQuestion(ctx, created.ID))
	assert.ErrorIs(t, repo.DeleteQuestion(ctx, created.ID), trivia.ErrNotFound)

	all, err = repo.ListQuestions(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSQLiteRepository_ForeignKey(t *testing.T) {
	repo := openTestSQLite(t)

	_, err := repo.CreateQuestion(context.Background(), trivia.NewQuestion{Question: "Q", Answer: "A", Category: 42, Difficulty: 1})
	assert.ErrorIs(t, err, trivia.ErrValidation)
}

func TestSQLiteRepository_Categories(t *testing.T) {
	ctx := context.Background()
	repo := openTestSQLite(t)

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []trivia.Category{{ID: 1, Type: "Science"}, {ID: 4, Type: "History"}}, categories)

	require.NoError(t, repo.UpsertCategory(ctx, trivia.Category{ID: 4, Type: "World History"}))
	got, err := repo.GetCategory(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "World History", got.Type)

	_, err = repo.GetCategory(ctx, 2)
	assert.ErrorIs(t, err, trivia.ErrNotFound)
}
