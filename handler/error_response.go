package handler

import "net/http"

type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error { return e.err }

// Fail hands err to the error handler instead of rendering anything.
//
//	if !ok {
//		return handler.Fail(handler.ErrNotFound)
//	}
func Fail(err error) Response {
	return errorResponse{err: err}
}
