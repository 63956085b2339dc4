package service

import (
	"database/sql"
	"errors"

	appErrors "github.com/utepsa-eventos/eventos-api/pkg/errors"
)

// notFoundOrInternal maps sql.ErrNoRows to a 404 and everything else to a
// wrapped internal error.
func notFoundOrInternal(err error, notFoundMsg, internalMsg string) *appErrors.Error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFoundMsg)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, internalMsg)
}
