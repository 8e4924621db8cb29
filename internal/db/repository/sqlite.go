package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// SQLiteRepository stores trivia data in a single SQLite file, for local runs
// without Postgres.
type SQLiteRepository struct {
	db *sql.DB
}

var _ trivia.Repository = (*SQLiteRepository)(nil)

// OpenSQLite opens (or creates) the database at path and ensures the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	repo := &SQLiteRepository{db: db}
	if err := repo.createTables(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			type TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			category INTEGER NOT NULL REFERENCES categories(id),
			difficulty INTEGER NOT NULL CHECK (difficulty > 0)
		)`,
	}
	for _, query := range queries {
		if _, err := r.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	return nil
}

// Close releases the underlying database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Ping checks the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) ListQuestions(ctx context.Context) ([]trivia.Question, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, question, answer, category, difficulty FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []trivia.Question
	for rows.Next() {
		var q trivia.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return questions, nil
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]trivia.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, type FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []trivia.Category
	for rows.Next() {
		var c trivia.Category
		if err := rows.Scan(&c.ID, &c.Type); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

func (r *SQLiteRepository) GetCategory(ctx context.Context, id int64) (trivia.Category, error) {
	var c trivia.Category
	err := r.db.QueryRowContext(ctx, `SELECT id, type FROM categories WHERE id = ?`, id).Scan(&c.ID, &c.Type)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return trivia.Category{}, fmt.Errorf("%w: category %d", trivia.ErrNotFound, id)
		}
		return trivia.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) CreateQuestion(ctx context.Context, in trivia.NewQuestion) (trivia.Question, error) {
	if err := in.Validate(); err != nil {
		return trivia.Question{}, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO questions (question, answer, category, difficulty) VALUES (?, ?, ?, ?)`,
		in.Question, in.Answer, in.Category, in.Difficulty,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
			return trivia.Question{}, fmt.Errorf("%w: category %d does not exist", trivia.ErrValidation, in.Category)
		}
		return trivia.Question{}, fmt.Errorf("insert question: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return trivia.Question{}, fmt.Errorf("read question id: %w", err)
	}
	return trivia.Question{
		ID:         id,
		Question:   in.Question,
		Answer:     in.Answer,
		Category:   in.Category,
		Difficulty: in.Difficulty,
	}, nil
}

func (r *SQLiteRepository) DeleteQuestion(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: question %d", trivia.ErrNotFound, id)
	}
	return nil
}

// UpsertCategory inserts or relabels a category with a caller-chosen id.
func (r *SQLiteRepository) UpsertCategory(ctx context.Context, c trivia.Category) error {
	if c.ID <= 0 || c.Type == "" {
		return fmt.Errorf("%w: category needs a positive id and a type", trivia.ErrValidation)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, type) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET type = excluded.type`,
		c.ID, c.Type,
	)
	if err != nil {
		return fmt.Errorf("upsert category: %w", err)
	}
	return nil
}
