package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

const pgForeignKeyViolation = "23503"

// DBTX is the subset of pgx used by PostgresRepository. *pgxpool.Pool,
// *pgx.Conn and pgx.Tx all satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository reads and writes trivia data in Postgres. Natural order is
// ascending id.
type PostgresRepository struct {
	db DBTX
}

var _ trivia.Repository = (*PostgresRepository)(nil)

func NewPostgresRepository(db DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListQuestions(ctx context.Context) ([]trivia.Question, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, question, answer, category, difficulty
		FROM questions
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	questions, err := pgx.CollectRows(rows, pgx.RowToStructByPos[trivia.Question])
	if err != nil {
		return nil, fmt.Errorf("scan questions: %w", err)
	}
	return questions, nil
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]trivia.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, type FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	categories, err := pgx.CollectRows(rows, pgx.RowToStructByPos[trivia.Category])
	if err != nil {
		return nil, fmt.Errorf("scan categories: %w", err)
	}
	return categories, nil
}

func (r *PostgresRepository) GetCategory(ctx context.Context, id int64) (trivia.Category, error) {
	var c trivia.Category
	err := r.db.QueryRow(ctx, `SELECT id, type FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trivia.Category{}, fmt.Errorf("%w: category %d", trivia.ErrNotFound, id)
		}
		return trivia.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) CreateQuestion(ctx context.Context, in trivia.NewQuestion) (trivia.Question, error) {
	if err := in.Validate(); err != nil {
		return trivia.Question{}, err
	}
	q := trivia.Question{
		Question:   in.Question,
		Answer:     in.Answer,
		Category:   in.Category,
		Difficulty: in.Difficulty,
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO questions (question, answer, category, difficulty)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, in.Question, in.Answer, in.Category, in.Difficulty).Scan(&q.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return trivia.Question{}, fmt.Errorf("%w: category %d does not exist", trivia.ErrValidation, in.Category)
		}
		return trivia.Question{}, fmt.Errorf("insert question: %w", err)
	}
	return q, nil
}

func (r *PostgresRepository) DeleteQuestion(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: question %d", trivia.ErrNotFound, id)
	}
	return nil
}
