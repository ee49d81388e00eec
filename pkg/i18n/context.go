package i18n

import (
	"context"
)

type localeContextKey struct{}

// SetLocale stores the locale in the context.
func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// GetLocale returns the locale from the context, or an empty string.
func GetLocale(ctx context.Context) string {
	locale, _ := ctx.Value(localeContextKey{}).(string)
	return locale
}
