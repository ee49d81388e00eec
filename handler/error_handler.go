package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/velveproduce/site/pkg/logger"
	"github.com/velveproduce/site/pkg/requestid"
)

// ErrorPageParams feeds the full error page.
type ErrorPageParams struct {
	Message    string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorToastParams feeds the toast patched into Datastar pages.
type ErrorToastParams struct {
	Message   string
	Type      string // "error" or "warning"
	RequestID string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	ErrorPage  func(ErrorPageParams) templ.Component
	ErrorToast func(ErrorToastParams) templ.Component
	// Translate turns an HTTPError key into a message in the request
	// language. Without it the key is shown as is.
	Translate   func(ctx context.Context, key string) string
	ToastTarget string // default "#toast-container"
	ToastMode   datastar.ElementPatchMode
}

type errorInfo struct {
	status int
	key    string
	kind   string
	level  slog.Level
}

func classifyError(err error) errorInfo {
	info := errorInfo{status: http.StatusInternalServerError, key: ErrInternal.Key}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.status = httpErr.Code
		info.key = httpErr.Key
	}
	var vErr ValidationError
	if errors.As(err, &vErr) {
		info.status = http.StatusUnprocessableEntity
		info.key = "error.validation"
	}

	if info.status < http.StatusInternalServerError {
		info.kind = "warning"
		info.level = slog.LevelWarn
	} else {
		info.kind = "error"
		info.level = slog.LevelError
	}
	return info
}

// NewErrorHandler renders a full error page for regular requests and a toast
// for Datastar requests.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchAppend
	}
	if cfg.Translate == nil {
		cfg.Translate = func(_ context.Context, key string) string { return key }
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		w := ctx.ResponseWriter()
		reqID := requestid.FromContext(r.Context())
		info := classifyError(err)

		log.LogAttrs(r.Context(), info.level, "request error",
			logger.Error(err),
			logger.StatusCode(info.status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("datastar", IsDataStar(r)),
			logger.Component("error_handler"),
		)

		msg := cfg.Translate(r.Context(), info.key)

		if IsDataStar(r) {
			if cfg.ErrorToast == nil {
				return
			}
			toast := cfg.ErrorToast(ErrorToastParams{Message: msg, Type: info.kind, RequestID: reqID})
			if err := stream(w, r).PatchElementTempl(toast, WithTarget(cfg.ToastTarget), WithPatchMode(cfg.ToastMode)); err != nil {
				log.WarnContext(r.Context(), "failed to patch error toast", logger.Error(err))
			}
			return
		}

		if cfg.ErrorPage == nil {
			http.Error(w, msg, info.status)
			return
		}
		page := cfg.ErrorPage(ErrorPageParams{
			Message:    msg,
			StatusCode: info.status,
			RequestID:  reqID,
			RetryURL:   "/",
		})
		if err := TemplWithStatus(info.status, page).Render(w, r); err != nil {
			log.ErrorContext(r.Context(), "failed to render error page", logger.Error(err))
		}
	}
}
