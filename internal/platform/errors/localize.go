package errors

import (
	stderrors "errors"

	"github.com/louisbranch/cookieclicker/internal/platform/errors/i18n"
)

// Localize returns the user-facing message for err in locale. Errors outside
// this package render their own text.
func Localize(err error, locale string) string {
	if err == nil {
		return ""
	}
	var target *Error
	if !stderrors.As(err, &target) {
		return err.Error()
	}
	return i18n.GetCatalog(locale).Format(string(target.Code), target.Metadata)
}

// LocalizedStatus converts err into a gRPC status error with a localized
// message attached.
func LocalizedStatus(err error, locale string) error {
	var target *Error
	if !stderrors.As(err, &target) {
		return err
	}
	return target.ToGRPCStatus(locale, Localize(err, locale))
}
