package entity

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrFileTooLarge           = errors.New("file too large")
	ErrUnsupportedImage       = errors.New("unsupported image type")
	ErrEmptyMessage           = errors.New("message text is empty")
	ErrInvalidSignature       = errors.New("invalid or expired signature")
	ErrNotSynced              = errors.New("inbox is not synced yet")
)
