package church

import "errors"

var (
	ErrChurchNotFound       = errors.New("church not found")
	ErrNotMember            = errors.New("not a member of this church")
	ErrMemberNotFound       = errors.New("member not found")
	ErrForbidden            = errors.New("forbidden")
	ErrNotOwner             = errors.New("not owner")
	ErrCannotRemoveOwner    = errors.New("cannot remove owner")
	ErrOwnerCannotLeave     = errors.New("owner cannot leave church")
	ErrOwnerRoleFixed       = errors.New("owner role cannot be changed")
	ErrInvalidRole          = errors.New("invalid role")
	ErrAlreadyMember        = errors.New("already a member")
	ErrSlugGenerationFailed = errors.New("church slug generation failed")
	ErrInviteNotFound       = errors.New("invite not found")
	ErrInviteExpired        = errors.New("invite expired")
	ErrInviteExhausted      = errors.New("invite exhausted")
)
