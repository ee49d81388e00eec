package navigation

import "errors"

var (
	ErrUnknownPage = errors.New("navigation: unknown page")
	ErrSuperseded  = errors.New("navigation: superseded by a newer navigation")
	ErrClosed      = errors.New("navigation: controller closed")
)
