package security

import (
	"errors"

	"storefront/api/internal/models"
)

var (
	// ErrUnauthenticated means no valid token accompanied the request.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means the caller's role is insufficient, or the
	// operation is refused outright.
	ErrForbidden = errors.New("forbidden")
)

// Authorize is the single authorization predicate consulted before every
// privileged operation. A caller passes when its role sits at or above
// required in the hierarchy guest < user < admin. It never mutates state.
func Authorize(role models.Role, required models.Role) error {
	if !role.Valid() || role == models.RoleGuest {
		return ErrUnauthenticated
	}
	if !role.AtLeast(required) {
		return ErrForbidden
	}
	return nil
}

// AuthorizeDelete layers the account-deletion rule on top of Authorize:
// administrator accounts can never be deleted, regardless of who asks.
// This rule is not derivable from the role ordering.
func AuthorizeDelete(caller models.Role, target models.User) error {
	if err := Authorize(caller, models.RoleAdmin); err != nil {
		return err
	}
	if target.Role == models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}
