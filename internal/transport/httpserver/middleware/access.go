package middleware

import (
	"context"
	"errors"
	"net/http"

	churchdomain "church-app-go/internal/domain/church"
	"church-app-go/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type AccessResolver interface {
	ResolveAccess(ctx context.Context, churchID, userID string) (churchdomain.Access, error)
}

// ChurchAccess resolves the caller's standing in the {churchID} route
// parameter once and stores it in the request context.
func ChurchAccess(resolver AccessResolver, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				unauthorized(w)
				return
			}
			churchID := chi.URLParam(r, "churchID")

			access, err := resolver.ResolveAccess(r.Context(), churchID, userID)
			if err != nil {
				switch {
				case errors.Is(err, churchdomain.ErrChurchNotFound):
					writeError(w, http.StatusNotFound, "church_not_found", "church not found")
				case errors.Is(err, churchdomain.ErrNotMember):
					log.BusinessError("access: not a member", err, "user_id", userID, "church_id", churchID)
					writeError(w, http.StatusForbidden, "not_member", "not a member of this church")
				default:
					log.InternalError("access: resolve failed", err, "user_id", userID, "church_id", churchID)
					writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAccess(r.Context(), access)))
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return requireAccess(churchdomain.Access.IsAdmin, next)
}

// RequireAttendanceTaker admits admins and teachers.
func RequireAttendanceTaker(next http.Handler) http.Handler {
	return requireAccess(churchdomain.Access.CanTakeAttendance, next)
}

func requireAccess(allowed func(churchdomain.Access) bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		access, ok := AccessFromContext(r.Context())
		if !ok || !allowed(access) {
			writeError(w, http.StatusForbidden, "forbidden", "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithAccess(ctx context.Context, access churchdomain.Access) context.Context {
	return context.WithValue(ctx, accessKey, access)
}

func AccessFromContext(ctx context.Context) (churchdomain.Access, bool) {
	access, ok := ctx.Value(accessKey).(churchdomain.Access)
	if !ok || access.ChurchID == "" {
		return churchdomain.Access{}, false
	}
	return access, true
}
