package service

import "errors"

var (
	ErrInvalidURL  = errors.New("url must be an absolute http or https url")
	ErrIDExhausted = errors.New("could not allocate a free url id")
)
