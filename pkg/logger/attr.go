package logger

import (
	"log/slog"
	"time"
)

// Error returns an "error" attribute, or an empty one for nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component names the package or service emitting the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Handler names the HTTP handler.
func Handler(name string) slog.Attr {
	return slog.String("handler", name)
}

// RequestID returns an empty attribute for an empty id.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// VisitorID returns an empty attribute for an empty id.
func VisitorID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("visitor_id", id)
}

func Locale(l string) slog.Attr { return slog.String("locale", l) }

func Page(p string) slog.Attr { return slog.String("page", p) }

func Section(s string) slog.Attr { return slog.String("section", s) }

// Transition records a state change as "from -> to" under "transition".
func Transition(from, to, event string) slog.Attr {
	return slog.Group("transition",
		slog.String("from", from),
		slog.String("to", to),
		slog.String("event", event),
	)
}

func StatusCode(code int) slog.Attr { return slog.Int("status_code", code) }

func Duration(d time.Duration) slog.Attr { return slog.Duration("duration", d) }
