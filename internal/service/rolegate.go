package service

import (
	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
)

// Authorize allows the actor when its role is in the allowed set.
func Authorize(actor *model.User, allowed ...model.Role) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	for _, r := range allowed {
		if actor.Role == r {
			return nil
		}
	}
	return ErrUnauthorized
}

// AuthorizeOwnerOrRole allows the resource owner to act even without one of the
// allowed roles.
func AuthorizeOwnerOrRole(actor *model.User, ownerID int64, allowed ...model.Role) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if actor.ID == ownerID {
		return nil
	}
	return Authorize(actor, allowed...)
}

// AuthorizeStatusToggle guards the account status-toggle path: only admins may
// toggle, and an admin account can never be deactivated by a different admin.
// Self-service actions on one's own account pass.
func AuthorizeStatusToggle(actor, target *model.User) error {
	if err := Authorize(actor, model.RoleAdmin); err != nil {
		return err
	}
	if target.Role == model.RoleAdmin && actor.ID != target.ID {
		return ErrUnauthorized
	}
	return nil
}
