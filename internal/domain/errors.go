package domain

import "errors"

var (
	// ErrExtractionProviderError signals an extraction provider failure.
	ErrExtractionProviderError = errors.New("extraction provider error")
	// ErrSearchBackendError signals a people-search backend failure.
	ErrSearchBackendError = errors.New("search backend error")
)
