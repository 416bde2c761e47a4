package domain

import "errors"

// Sentinel errors for the glossary domain. Use errors.Is() to check these.
var (
	// ErrTermNotFound indicates the requested glossary term does not exist.
	ErrTermNotFound = errors.New("glossary term not found")

	// ErrTermAlreadyExists indicates a term with the same name already exists.
	ErrTermAlreadyExists = errors.New("glossary term already exists")

	// ErrInvalidTerm indicates the term input violates domain constraints.
	ErrInvalidTerm = errors.New("invalid glossary term")

	// ErrStorageUnavailable indicates the backing store cannot be reached.
	// Callers should retry; the repository does not retry within a request.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
