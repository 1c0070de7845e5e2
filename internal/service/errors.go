package service

import "errors"

// Pipeline failure classes. Handlers map these to HTTP statuses with
// errors.Is; services wrap them with context via fmt.Errorf("...: %w", ...).
var (
	// ErrUnrecognizedDocument means the document text carried none of the
	// known submitter sentinels.
	ErrUnrecognizedDocument = errors.New("unrecognized document type")

	// ErrExtractionService is an upstream failure of the text-understanding
	// service during field extraction.
	ErrExtractionService = errors.New("extraction service failure")

	// ErrScoringService is an upstream failure of the vision-understanding
	// service during image-match scoring.
	ErrScoringService = errors.New("scoring service failure")

	// ErrMalformedResponse means a model reply violated the expected JSON
	// contract. There is never a fallback result.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrInvalidDate means a claim or capture date could not be parsed. A
	// consistency verdict must not default to valid on this error.
	ErrInvalidDate = errors.New("invalid date")
)
