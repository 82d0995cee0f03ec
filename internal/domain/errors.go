package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrRunNotFound          = errors.New("extraction run not found")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrMissingAPIKey        = errors.New("extractor API key is not configured")
	ErrNoStructuredResponse = errors.New("model did not return a structured response")
	ErrDocumentNotArchived  = errors.New("original document was not archived")
)
