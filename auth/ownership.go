package auth

import (
	"github.com/pkg/errors"

	apperrors "github.com/jrsteele09/go-boardgame-service/internal/errors"
)

// Authorize enforces that the authenticated subject matches a resource's
// recorded owner. It is applied inside every mutating operation on owned
// data: review update/delete, collection update/delete, account deletion.
// The returned ErrForbidden is distinct from ErrNotFound so call sites can
// tell "exists but not yours" from "does not exist".
func Authorize(subject, ownerID int64) error {
	if subject != ownerID {
		return errors.Wrapf(apperrors.ErrForbidden, "subject %d does not own resource of %d", subject, ownerID)
	}
	return nil
}
