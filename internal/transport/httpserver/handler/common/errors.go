package common

import (
	"errors"
	"net/http"

	announcementdomain "church-app-go/internal/domain/announcement"
	attendancedomain "church-app-go/internal/domain/attendance"
	calendardomain "church-app-go/internal/domain/calendar"
	churchdomain "church-app-go/internal/domain/church"
	financedomain "church-app-go/internal/domain/finance"
	prayerdomain "church-app-go/internal/domain/prayer"
	rosterdomain "church-app-go/internal/domain/roster"
	scheduledomain "church-app-go/internal/domain/schedule"
	userdomain "church-app-go/internal/domain/user"
	"church-app-go/internal/domain/validation"
	"church-app-go/pkg/logger"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

var knownErrors = []errorMapping{
	{churchdomain.ErrForbidden, http.StatusForbidden, "forbidden"},
	{churchdomain.ErrNotOwner, http.StatusForbidden, "forbidden"},
	{churchdomain.ErrNotMember, http.StatusForbidden, "not_member"},
	{churchdomain.ErrChurchNotFound, http.StatusNotFound, "church_not_found"},
	{churchdomain.ErrMemberNotFound, http.StatusNotFound, "member_not_found"},
	{churchdomain.ErrCannotRemoveOwner, http.StatusConflict, "cannot_remove_owner"},
	{churchdomain.ErrOwnerCannotLeave, http.StatusConflict, "owner_cannot_leave"},
	{churchdomain.ErrOwnerRoleFixed, http.StatusConflict, "owner_role_fixed"},
	{churchdomain.ErrInvalidRole, http.StatusBadRequest, "invalid_role"},
	{churchdomain.ErrAlreadyMember, http.StatusConflict, "already_member"},
	{churchdomain.ErrSlugGenerationFailed, http.StatusConflict, "slug_taken"},
	{churchdomain.ErrInviteNotFound, http.StatusNotFound, "invite_not_found"},
	{churchdomain.ErrInviteExpired, http.StatusGone, "invite_expired"},
	{churchdomain.ErrInviteExhausted, http.StatusGone, "invite_exhausted"},
	{userdomain.ErrProfileNotFound, http.StatusNotFound, "profile_not_found"},
	{rosterdomain.ErrPersonNotFound, http.StatusNotFound, "person_not_found"},
	{attendancedomain.ErrAlreadyCheckedIn, http.StatusConflict, "already_checked_in"},
	{attendancedomain.ErrNotCheckedIn, http.StatusNotFound, "not_checked_in"},
	{announcementdomain.ErrAnnouncementNotFound, http.StatusNotFound, "announcement_not_found"},
	{announcementdomain.ErrCommentNotFound, http.StatusNotFound, "comment_not_found"},
	{prayerdomain.ErrPrayerNotFound, http.StatusNotFound, "prayer_not_found"},
	{prayerdomain.ErrCommentNotFound, http.StatusNotFound, "comment_not_found"},
	{financedomain.ErrOfferingNotFound, http.StatusNotFound, "offering_not_found"},
	{financedomain.ErrExpenseNotFound, http.StatusNotFound, "expense_not_found"},
	{calendardomain.ErrEventNotFound, http.StatusNotFound, "event_not_found"},
	{scheduledomain.ErrDutyNotFound, http.StatusNotFound, "schedule_not_found"},
}

// WriteServiceError maps a service error onto the response. Expected
// failures are logged as business errors, everything else as internal.
func WriteServiceError(w http.ResponseWriter, log logger.Logger, op string, err error, args ...any) {
	if verr, ok := validation.As(err); ok {
		log.BusinessError(op+": invalid request", err, args...)
		writeError(w, http.StatusBadRequest, "invalid_request", verr.Error())
		return
	}

	for _, known := range knownErrors {
		if errors.Is(err, known.err) {
			log.BusinessError(op+": "+known.code, err, args...)
			writeError(w, known.status, known.code, known.err.Error())
			return
		}
	}

	log.InternalError(op+": failed", err, args...)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
