package trivia

import "fmt"

const (
	// PageSize is the number of questions on one listing page.
	PageSize = 10
	// MaxPage is the hard ceiling on requested page numbers, independent of how
	// many questions exist.
	MaxPage = 10
)

// ValidatePage rejects page numbers outside 1..MaxPage.
func ValidatePage(page int) error {
	if page > MaxPage {
		return fmt.Errorf("%w: page %d exceeds maximum of %d", ErrOutOfRange, page, MaxPage)
	}
	if page < 1 {
		return fmt.Errorf("%w: page must be a positive integer, got %d", ErrInvalidArgument, page)
	}
	return nil
}

// Paginate returns the page-th window of PageSize questions. A window that starts
// past the end of all yields an empty slice.
func Paginate(all []Question, page int) ([]Question, error) {
	if err := ValidatePage(page); err != nil {
		return nil, err
	}
	start := (page - 1) * PageSize
	if start >= len(all) {
		return []Question{}, nil
	}
	end := min(start+PageSize, len(all))
	return all[start:end:end], nil
}
