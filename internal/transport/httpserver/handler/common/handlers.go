package common

import (
	"net/http"

	"church-app-go/internal/config"
	authdomain "church-app-go/internal/domain/auth"
	churchdomain "church-app-go/internal/domain/church"
	userdomain "church-app-go/internal/domain/user"
	versedomain "church-app-go/internal/domain/verse"
	"church-app-go/internal/transport/httpserver/middleware"
	"church-app-go/pkg/logger"
)

type Handlers struct {
	Auth     *authdomain.Service
	Users    *userdomain.Service
	Churches *churchdomain.Service
	Verses   *versedomain.Service
	cfg      config.Config
	log      logger.Logger
}

func New(cfg config.Config, auth *authdomain.Service, users *userdomain.Service, churches *churchdomain.Service, verses *versedomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Auth:     auth,
		Users:    users,
		Churches: churches,
		Verses:   verses,
		cfg:      cfg,
		log:      log,
	}
}

// CurrentUser writes a 401 when the request carries no authenticated user.
func CurrentUser(w http.ResponseWriter, r *http.Request) (middleware.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return middleware.User{}, false
	}
	return user, true
}

// CurrentAccess returns the church access resolved by middleware.ChurchAccess.
func CurrentAccess(w http.ResponseWriter, r *http.Request) (churchdomain.Access, bool) {
	access, ok := middleware.AccessFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "not_member", "not a member of this church")
		return churchdomain.Access{}, false
	}
	return access, true
}
