package errors

import "errors"

var (
	ErrInvalidCommand   = errors.New("invalid command")
	ErrInvalidTimestamp = errors.New("invalid timestamp format")
	ErrInvalidRange     = errors.New("invalid clip range")
	ErrDownloadFailed   = errors.New("download failed")
	ErrFileTooLarge     = errors.New("file too large")
	ErrDeliveryFailed   = errors.New("delivery failed")
)
