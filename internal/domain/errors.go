package domain

import "errors"

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionMismatch     = errors.New("token does not match session")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrMalformedDocument   = errors.New("document could not be read")
	ErrNoPlaceholders      = errors.New("no placeholders found in document")
	ErrMissingAPIKey       = errors.New("model API key is not configured")
	ErrSessionIncomplete   = errors.New("session has unfilled placeholders")
	ErrModelCall           = errors.New("model call failed")
	ErrEmptyMessage        = errors.New("message is empty")
)
