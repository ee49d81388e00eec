package i18n

import "errors"

var (
	ErrNoSupportedLanguages = errors.New("i18n: no supported languages")
	ErrNoMessageFiles       = errors.New("i18n: no message files found")
	ErrFailedToLoadMessages = errors.New("i18n: failed to load message file")
)
