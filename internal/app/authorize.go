package app

import "errors"

// ErrNotOwner is returned whenever the acting identity does not match the
// recorded owner of the resource being mutated.
var ErrNotOwner = errors.New("you are not authorized to modify this resource")

// assertOwner is the single ownership guard applied before every mutation.
// Existence must already be established; missing resources report NotFound
// before this check runs.
func assertOwner(resourceOwnerID, actingUserID uint) error {
	if resourceOwnerID != actingUserID {
		return ErrNotOwner
	}
	return nil
}
