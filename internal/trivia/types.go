package trivia

import (
	"fmt"
	"strings"
)

// AllCategories is the quiz scope sentinel selecting every question.
const AllCategories int64 = 0

// Question is a single trivia question as stored and served to clients.
type Question struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int64  `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Category groups questions under a display label.
type Category struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// NewQuestion carries client-submitted fields for question creation.
type NewQuestion struct {
	Question   string
	Answer     string
	Category   int64
	Difficulty int
}

// Validate reports the first missing or malformed field.
func (n NewQuestion) Validate() error {
	switch {
	case strings.TrimSpace(n.Question) == "":
		return fmt.Errorf("%w: question is required", ErrValidation)
	case strings.TrimSpace(n.Answer) == "":
		return fmt.Errorf("%w: answer is required", ErrValidation)
	case n.Category <= 0:
		return fmt.Errorf("%w: category is required", ErrValidation)
	case n.Difficulty < 1:
		return fmt.Errorf("%w: difficulty must be a positive integer", ErrValidation)
	}
	return nil
}

// QuestionPage is one page of the full question listing.
type QuestionPage struct {
	Questions       []Question
	TotalQuestions  int
	Categories      []Category
	CurrentCategory *string
}

// SearchResult holds questions matching a search term.
type SearchResult struct {
	Questions      []Question
	TotalQuestions int
}

// CategoryQuestions holds every question filed under one category.
type CategoryQuestions struct {
	Questions       []Question
	TotalQuestions  int
	CurrentCategory string
}

// QuizCategory identifies the quiz scope. ID 0 means all categories.
type QuizCategory struct {
	ID   int64
	Type string
}

// QuizRequest asks for the next unseen question in a scope.
// Both fields are required; a nil PreviousQuestions is treated as absent.
type QuizRequest struct {
	Category          *QuizCategory
	PreviousQuestions []int64
}
