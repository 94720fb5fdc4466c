package venue

import "errors"

// Catalog error kinds. Implementations wrap these so callers can match
// with errors.Is regardless of transport detail.
var (
	// ErrNotFound means the venue id is unknown to the catalog.
	ErrNotFound = errors.New("venue not found")

	// ErrConflict means the server rejected a booking because the slot was
	// taken between validation and submission.
	ErrConflict = errors.New("booking conflict")

	// ErrValidation means the catalog rejected the request payload.
	ErrValidation = errors.New("catalog rejected request")

	// ErrNetwork covers transport failures and server-side errors; the
	// operation may or may not have taken effect and the caller must
	// re-fetch before retrying.
	ErrNetwork = errors.New("catalog unreachable")
)
