package trivia

import (
	"fmt"
	"strings"
)

// Search returns questions whose text contains term, ignoring case. Answers are
// not searched. No matches is reported as ErrNotFound.
func Search(all []Question, term string) ([]Question, error) {
	if term == "" {
		return nil, fmt.Errorf("%w: search term is required", ErrInvalidArgument)
	}
	needle := strings.ToLower(term)
	var matches []Question
	for _, q := range all {
		if strings.Contains(strings.ToLower(q.Question), needle) {
			matches = append(matches, q)
		}
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no questions match %q", ErrNotFound, term)
	}
	return matches, nil
}

// FilterByCategory keeps questions filed under categoryID, in input order.
func FilterByCategory(all []Question, categoryID int64) []Question {
	var out []Question
	for _, q := range all {
		if q.Category == categoryID {
			out = append(out, q)
		}
	}
	return out
}
