package trivia

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	mu         sync.Mutex
	categories []Category
	questions  []Question
	lastID     int64
}

func newFakeRepo(categories ...Category) *fakeRepo {
	return &fakeRepo{categories: categories}
}

func (f *fakeRepo) add(category int64, text string) Question {
	q, err := f.CreateQuestion(context.Background(), NewQuestion{
		Question: text, Answer: "answer to " + text, Category: category, Difficulty: 1,
	})
	if err != nil {
		panic(err)
	}
	return q
}

func (f *fakeRepo) ListQuestions(context.Context) ([]Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Question(nil), f.questions...), nil
}

func (f *fakeRepo) ListCategories(context.Context) ([]Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Category(nil), f.categories...), nil
}

func (f *fakeRepo) GetCategory(_ context.Context, id int64) (Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("%w: category %d", ErrNotFound, id)
}

func (f *fakeRepo) CreateQuestion(_ context.Context, in NewQuestion) (Question, error) {
	if err := in.Validate(); err != nil {
		return Question{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastID++
	q := Question{ID: f.lastID, Question: in.Question, Answer: in.Answer, Category: in.Category, Difficulty: in.Difficulty}
	f.questions = append(f.questions, q)
	return q, nil
}

func (f *fakeRepo) DeleteQuestion(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, q := range f.questions {
		if q.ID == id {
			f.questions = append(f.questions[:i], f.questions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: question %d", ErrNotFound, id)
}

// mockRepo lets tests inject store failures.
type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) ListQuestions(ctx context.Context) ([]Question, error) {
	args := m.Called(ctx)
	qs, _ := args.Get(0).([]Question)
	return qs, args.Error(1)
}

func (m *mockRepo) ListCategories(ctx context.Context) ([]Category, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]Category)
	return cs, args.Error(1)
}

func (m *mockRepo) GetCategory(ctx context.Context, id int64) (Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Category), args.Error(1)
}

func (m *mockRepo) CreateQuestion(ctx context.Context, in NewQuestion) (Question, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(Question), args.Error(1)
}

func (m *mockRepo) DeleteQuestion(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// fixedRand always returns the same index and records the bounds it saw.
type fixedRand struct {
	index int
	seen  []int
}

func (r *fixedRand) IntN(n int) int {
	r.seen = append(r.seen, n)
	return r.index
}

func numbered(n int) []Question {
	out := make([]Question, n)
	for i := range out {
		out[i] = Question{ID: int64(i + 1), Question: fmt.Sprintf("question %d", i+1), Category: int64(i%3 + 1), Difficulty: 1}
	}
	return out
}
