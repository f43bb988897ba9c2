package app

import (
	"net/http"

	"church-app-go/internal/config"
	announcementdomain "church-app-go/internal/domain/announcement"
	attendancedomain "church-app-go/internal/domain/attendance"
	authdomain "church-app-go/internal/domain/auth"
	calendardomain "church-app-go/internal/domain/calendar"
	churchdomain "church-app-go/internal/domain/church"
	financedomain "church-app-go/internal/domain/finance"
	prayerdomain "church-app-go/internal/domain/prayer"
	rosterdomain "church-app-go/internal/domain/roster"
	scheduledomain "church-app-go/internal/domain/schedule"
	userdomain "church-app-go/internal/domain/user"
	versedomain "church-app-go/internal/domain/verse"
	"church-app-go/internal/integrations/gemini"
	"church-app-go/internal/integrations/kakao"
	"church-app-go/internal/integrations/storage"
	announcementrepo "church-app-go/internal/repository/postgres/announcement"
	attendancerepo "church-app-go/internal/repository/postgres/attendance"
	authrepo "church-app-go/internal/repository/postgres/auth"
	calendarrepo "church-app-go/internal/repository/postgres/calendar"
	churchrepo "church-app-go/internal/repository/postgres/church"
	financerepo "church-app-go/internal/repository/postgres/finance"
	prayerrepo "church-app-go/internal/repository/postgres/prayer"
	rosterrepo "church-app-go/internal/repository/postgres/roster"
	schedulerepo "church-app-go/internal/repository/postgres/schedule"
	userrepo "church-app-go/internal/repository/postgres/user"
	"church-app-go/internal/transport/httpserver"
	"church-app-go/internal/transport/httpserver/handler"
	calendarhandler "church-app-go/internal/transport/httpserver/handler/calendar"
	"church-app-go/internal/transport/httpserver/handler/common"
	communityhandler "church-app-go/internal/transport/httpserver/handler/community"
	financehandler "church-app-go/internal/transport/httpserver/handler/finance"
	rosterhandler "church-app-go/internal/transport/httpserver/handler/roster"
	authmw "church-app-go/internal/transport/httpserver/middleware"
	"church-app-go/pkg/logger"
	"gorm.io/gorm"
)

// Services holds every domain service built on one database connection.
type Services struct {
	Users         *userdomain.Service
	Auth          *authdomain.Service
	Churches      *churchdomain.Service
	Persons       *rosterdomain.Service
	Attendance    *attendancedomain.Service
	Announcements *announcementdomain.Service
	Prayers       *prayerdomain.Service
	Finance       *financedomain.Service
	Events        *calendardomain.Service
	Schedules     *scheduledomain.Service
	Verses        *versedomain.Service
	Photos        *storage.PhotoStore
}

// NewServices wires repositories and integrations. cache and recorder may be
// nil.
func NewServices(cfg config.Config, dbConn *gorm.DB, cache versedomain.Cache, recorder attendancedomain.Recorder, log logger.Logger) *Services {
	users := userdomain.NewService(userrepo.NewPostgres(dbConn))
	persons := rosterdomain.NewService(rosterrepo.NewPostgres(dbConn))

	var generator versedomain.Generator
	if cfg.Verse.GeminiAPIKey != "" {
		generator = gemini.New(cfg.Verse)
	} else {
		log.Warn("verse: GEMINI_API_KEY not set, using static verses")
	}

	sessions := authdomain.NewSessions(cfg.Session.Secret, cfg.Session.TTL, cfg.Session.Issuer)
	if !sessions.Enabled() {
		log.Warn("auth: SESSION_SECRET missing or too short, app sessions disabled")
	}

	photos := storage.NewPhotoStore(cfg.Supabase)
	if !photos.Enabled() {
		log.Warn("storage: supabase storage not configured, photo upload disabled")
	}

	return &Services{
		Users:    users,
		Auth:     authdomain.NewService(authrepo.NewPostgres(dbConn), sessions, users, kakao.New(cfg.Kakao)),
		Churches: churchdomain.NewService(churchrepo.NewPostgres(dbConn)),
		Persons:  persons,
		Attendance: attendancedomain.NewService(attendancerepo.NewPostgres(dbConn), persons).
			WithLocation(cfg.Location()).
			WithRecorder(recorder),
		Announcements: announcementdomain.NewService(announcementrepo.NewPostgres(dbConn)),
		Prayers:       prayerdomain.NewService(prayerrepo.NewPostgres(dbConn), persons),
		Finance:       financedomain.NewService(financerepo.NewPostgres(dbConn), persons),
		Events:        calendardomain.NewService(calendarrepo.NewPostgres(dbConn)),
		Schedules:     scheduledomain.NewService(schedulerepo.NewPostgres(dbConn), persons),
		Verses: versedomain.NewService(generator, cache, cfg.Verse.CacheTTL, log).
			WithLocation(cfg.Location()),
		Photos: photos,
	}
}

// Router mounts the HTTP API on top of the services. obs may be nil.
func (s *Services) Router(cfg config.Config, obs httpserver.Observability, log logger.Logger) http.Handler {
	handlers := handler.New(
		common.New(cfg, s.Auth, s.Users, s.Churches, s.Verses, log),
		rosterhandler.New(s.Persons, s.Attendance, s.Photos, log),
		communityhandler.New(s.Announcements, s.Prayers, log),
		financehandler.New(s.Finance, log),
		calendarhandler.New(s.Events, s.Schedules, log),
	)
	auth := authmw.NewAuth(cfg.Supabase, s.Auth, s.Users, log)
	return httpserver.NewRouter(cfg, handlers, auth, s.Churches, obs, log)
}
