package domain

import "errors"

var (
	ErrConfig            = errors.New("configuration error")
	ErrTransientProvider = errors.New("transient provider error")
	ErrAuth              = errors.New("provider rejected credentials")
	ErrParse             = errors.New("malformed provider response")
)

var (
	ErrValidation    = errors.New("validation error")
	ErrIrrecoverable = errors.New("record has neither id nor title")
)

var (
	ErrEventNotFound = errors.New("event not found")
)
