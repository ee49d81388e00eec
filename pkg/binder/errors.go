package binder

import "errors"

var (
	// ErrBinderNotApplicable tells the caller to skip this binder for the request.
	ErrBinderNotApplicable = errors.New("binder not applicable")
	ErrInvalidForm         = errors.New("invalid form data")
	ErrInvalidQuery        = errors.New("invalid query parameters")
)
