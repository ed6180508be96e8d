package insights

import (
	"context"
	"errors"
)

// Classified failures of an extraction run. They are always returned
// wrapped; match them with errors.Is.
var (
	// ErrInvalidURLFormat means the input could not be normalized into an
	// absolute store URL. No request was issued.
	ErrInvalidURLFormat = errors.New("invalid url format")
	// ErrSiteUnreachable means the homepage could not be fetched or did
	// not answer with 200.
	ErrSiteUnreachable = errors.New("site unreachable")
	// ErrNoMeaningfulData means the homepage was reachable but neither the
	// product feed nor the homepage yielded any product.
	ErrNoMeaningfulData = errors.New("no meaningful data")
)

// Outcome returns the metrics label for an Aggregate result.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "complete"
	case errors.Is(err, ErrInvalidURLFormat):
		return "invalid_url"
	case errors.Is(err, ErrSiteUnreachable):
		return "unreachable"
	case errors.Is(err, ErrNoMeaningfulData):
		return "no_data"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}
