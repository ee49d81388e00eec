package content

import "errors"

var (
	ErrMissingLocale = errors.New("content: missing locale bundle")
	ErrInvalidBundle = errors.New("content: invalid bundle")
	ErrShapeMismatch = errors.New("content: bundles differ in shape")
)
