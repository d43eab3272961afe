package question

import "errors"

var (
	// ErrNotFound reports an empty result or a missing entity.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidQuestion reports a create payload with missing fields.
	ErrInvalidQuestion = errors.New("question, answer, category and difficulty are required")
	// ErrUnknownCategory reports a create payload naming a category that does not exist.
	ErrUnknownCategory = errors.New("unknown category")
)
