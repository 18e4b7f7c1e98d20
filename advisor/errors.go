package advisor

import (
	"errors"
	"fmt"
)

// ErrCatalogUnavailable wraps any failure to read or rebuild the catalog
// snapshot. It is the one hard failure in this package: everything else
// is reported through typed result values.
var ErrCatalogUnavailable = errors.New("course catalog unavailable")

// ErrUnparsable means the fallback extractor found no course code in the
// question. Callers fall back to general chat handling.
var ErrUnparsable = errors.New("no course code found in question")

type CourseNotFoundError struct {
	CourseId string
}

func (e *CourseNotFoundError) Error() string {
	return fmt.Sprintf("course %v not found in catalog", e.CourseId)
}
