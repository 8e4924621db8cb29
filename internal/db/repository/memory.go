package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// MemoryRepository keeps categories and questions in process. Question ids come
// from a counter that only grows, so deleted ids are never handed out again.
type MemoryRepository struct {
	mu         sync.RWMutex
	categories []trivia.Category
	questions  []trivia.Question
	lastID     int64
}

var _ trivia.Repository = (*MemoryRepository)(nil)

// NewMemoryRepository constructs an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// ListQuestions returns questions in insertion order.
func (r *MemoryRepository) ListQuestions(_ context.Context) ([]trivia.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]trivia.Question, len(r.questions))
	copy(out, r.questions)
	return out, nil
}

// ListCategories returns categories in insertion order.
func (r *MemoryRepository) ListCategories(_ context.Context) ([]trivia.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]trivia.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

func (r *MemoryRepository) GetCategory(_ context.Context, id int64) (trivia.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return trivia.Category{}, fmt.Errorf("%w: category %d", trivia.ErrNotFound, id)
}

// CreateQuestion appends a question, rejecting unknown categories the way a
// foreign key would.
func (r *MemoryRepository) CreateQuestion(_ context.Context, in trivia.NewQuestion) (trivia.Question, error) {
	if err := in.Validate(); err != nil {
		return trivia.Question{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hasCategory(in.Category) {
		return trivia.Question{}, fmt.Errorf("%w: category %d does not exist", trivia.ErrValidation, in.Category)
	}
	r.lastID++
	q := trivia.Question{
		ID:         r.lastID,
		Question:   in.Question,
		Answer:     in.Answer,
		Category:   in.Category,
		Difficulty: in.Difficulty,
	}
	r.questions = append(r.questions, q)
	return q, nil
}

func (r *MemoryRepository) DeleteQuestion(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, q := range r.questions {
		if q.ID == id {
			r.questions = append(r.questions[:i], r.questions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: question %d", trivia.ErrNotFound, id)
}

// UpsertCategory inserts or relabels a category with a caller-chosen id.
func (r *MemoryRepository) UpsertCategory(_ context.Context, c trivia.Category) error {
	if c.ID <= 0 || c.Type == "" {
		return fmt.Errorf("%w: category needs a positive id and a type", trivia.ErrValidation)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.categories {
		if r.categories[i].ID == c.ID {
			r.categories[i].Type = c.Type
			return nil
		}
	}
	r.categories = append(r.categories, c)
	return nil
}

func (r *MemoryRepository) hasCategory(id int64) bool {
	for _, c := range r.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
