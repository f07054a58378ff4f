package domain

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid relay request")
	ErrDownloadFailed = errors.New("image download failed")
)
