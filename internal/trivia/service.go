package trivia

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Repository is the persistence contract the service reads and writes through.
// Listings are returned in the store's natural order.
type Repository interface {
	ListQuestions(ctx context.Context) ([]Question, error)
	ListCategories(ctx context.Context) ([]Category, error)
	// GetCategory returns ErrNotFound when no category has the id.
	GetCategory(ctx context.Context, id int64) (Category, error)
	// CreateQuestion returns ErrValidation when a required field is missing.
	CreateQuestion(ctx context.Context, q NewQuestion) (Question, error)
	// DeleteQuestion returns ErrNotFound when no question has the id.
	DeleteQuestion(ctx context.Context, id int64) error
}

// Service implements question browsing, search, category listing and quiz play
// on top of a Repository.
type Service struct {
	repo     Repository
	selector *Selector
	logger   zerolog.Logger
}

type ServiceOptions struct {
	// Random overrides the quiz selector's random source.
	Random RandomSource
}

func NewService(repo Repository, logger zerolog.Logger, opts ServiceOptions) *Service {
	return &Service{
		repo:     repo,
		selector: NewSelector(opts.Random),
		logger:   logger.With().Str("component", "trivia_service").Logger(),
	}
}

// Categories lists every category.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// ListQuestions returns one page of all questions together with the total count
// and the category list. The page number is checked before the store is read.
func (s *Service) ListQuestions(ctx context.Context, page int) (QuestionPage, error) {
	if err := ValidatePage(page); err != nil {
		return QuestionPage{}, err
	}
	all, err := s.repo.ListQuestions(ctx)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list questions: %w", err)
	}
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list categories: %w", err)
	}
	window, err := Paginate(all, page)
	if err != nil {
		return QuestionPage{}, err
	}
	return QuestionPage{
		Questions:      window,
		TotalQuestions: len(all),
		Categories:     categories,
	}, nil
}

// SearchQuestions finds questions whose text contains term, case-insensitively.
func (s *Service) SearchQuestions(ctx context.Context, term string) (SearchResult, error) {
	if term == "" {
		return SearchResult{}, fmt.Errorf("%w: search term is required", ErrInvalidArgument)
	}
	all, err := s.repo.ListQuestions(ctx)
	if err != nil {
		return SearchResult{}, fmt.Errorf("list questions: %w", err)
	}
	matches, err := Search(all, term)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Questions: matches, TotalQuestions: len(matches)}, nil
}

// QuestionsByCategory lists the questions of an existing category. An unknown
// category and a category without questions are both ErrNotFound.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID int64) (CategoryQuestions, error) {
	category, err := s.repo.GetCategory(ctx, categoryID)
	if err != nil {
		return CategoryQuestions{}, fmt.Errorf("get category %d: %w", categoryID, err)
	}
	all, err := s.repo.ListQuestions(ctx)
	if err != nil {
		return CategoryQuestions{}, fmt.Errorf("list questions: %w", err)
	}
	questions := FilterByCategory(all, categoryID)
	if len(questions) == 0 {
		return CategoryQuestions{}, fmt.Errorf("%w: category %d has no questions", ErrNotFound, categoryID)
	}
	return CategoryQuestions{
		Questions:       questions,
		TotalQuestions:  len(questions),
		CurrentCategory: category.Type,
	}, nil
}

// NextQuizQuestion picks a random question from the requested scope that is not
// among the previous questions. A nil question with a nil error means the pool
// is exhausted, which ends the quiz normally.
func (s *Service) NextQuizQuestion(ctx context.Context, req QuizRequest) (*Question, error) {
	if req.Category == nil {
		return nil, fmt.Errorf("%w: quiz_category is required", ErrInvalidArgument)
	}
	if req.PreviousQuestions == nil {
		return nil, fmt.Errorf("%w: previous_questions is required", ErrInvalidArgument)
	}
	all, err := s.repo.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	excluded := make(map[int64]struct{}, len(req.PreviousQuestions))
	for _, id := range req.PreviousQuestions {
		excluded[id] = struct{}{}
	}
	next := s.selector.Next(all, req.Category.ID, excluded)
	if next == nil {
		s.logger.Debug().
			Int64("category", req.Category.ID).
			Int("previous", len(req.PreviousQuestions)).
			Msg("quiz pool exhausted")
	}
	return next, nil
}

// CreateQuestion stores a new question after checking every field and that the
// referenced category exists.
func (s *Service) CreateQuestion(ctx context.Context, in NewQuestion) (Question, error) {
	if err := in.Validate(); err != nil {
		return Question{}, err
	}
	if _, err := s.repo.GetCategory(ctx, in.Category); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Question{}, fmt.Errorf("%w: category %d does not exist", ErrValidation, in.Category)
		}
		return Question{}, fmt.Errorf("get category %d: %w", in.Category, err)
	}
	created, err := s.repo.CreateQuestion(ctx, in)
	if err != nil {
		return Question{}, fmt.Errorf("create question: %w", err)
	}
	s.logger.Info().Int64("question_id", created.ID).Int64("category", created.Category).Msg("question created")
	return created, nil
}

// DeleteQuestion removes a question by id.
func (s *Service) DeleteQuestion(ctx context.Context, id int64) error {
	if id < 1 {
		return fmt.Errorf("%w: question %d", ErrNotFound, id)
	}
	if err := s.repo.DeleteQuestion(ctx, id); err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	s.logger.Info().Int64("question_id", id).Msg("question deleted")
	return nil
}
