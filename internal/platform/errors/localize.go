package errors

import (
	stderrors "errors"

	"github.com/louisbranch/demesne/internal/platform/errors/i18n"
)

// Localize renders a user-facing message for the error in the given locale.
// Non-domain errors localize as CodeUnknown.
func Localize(err error, locale string) string {
	code := CodeUnknown
	var metadata map[string]string

	var e *Error
	if stderrors.As(err, &e) {
		code = e.Code
		metadata = e.Metadata
	}

	return i18n.GetCatalog(locale).Format(string(code), metadata)
}
