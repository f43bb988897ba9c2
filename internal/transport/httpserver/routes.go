package httpserver

import (
	"net/http"
	"time"

	"church-app-go/internal/config"
	"church-app-go/internal/transport/httpserver/handler"
	authmw "church-app-go/internal/transport/httpserver/middleware"
	"church-app-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Observability is the optional request instrumentation mounted on the
// router. A nil value disables /metrics.
type Observability interface {
	Middleware(next http.Handler) http.Handler
	Handler() http.Handler
}

func NewRouter(cfg config.Config, handlers *handler.Handlers, auth *authmw.Auth, access authmw.AccessResolver, obs Observability, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	if obs != nil {
		r.Use(obs.Middleware)
		r.Method(http.MethodGet, "/metrics", obs.Handler())
	}
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)
		r.Get("/verses/today", handlers.Common.TodayVerse)
		r.Get("/debug/env", handlers.Common.DebugEnv)

		r.Get("/auth/{provider}/login", handlers.Common.OAuthLogin)
		r.Get("/auth/{provider}/callback", handlers.Common.OAuthCallback)
		r.Post("/auth/{provider}/native", handlers.Common.NativeLogin)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.Common.AuthMe)
			r.Get("/profile", handlers.Common.GetProfile)
			r.Patch("/profile", handlers.Common.UpdateProfile)

			r.Get("/churches", handlers.Common.ListChurches)
			r.Post("/churches", handlers.Common.CreateChurch)
			r.Post("/invites/{token}/redeem", handlers.Common.RedeemInvite)

			r.Route("/churches/{churchID}", func(r chi.Router) {
				r.Use(authmw.ChurchAccess(access, log))
				churchRoutes(r, handlers)
			})
		})
	})

	return r
}

func churchRoutes(r chi.Router, handlers *handler.Handlers) {
	r.Get("/", handlers.Common.GetChurch)
	r.Post("/leave", handlers.Common.LeaveChurch)
	r.Get("/members", handlers.Common.ListMembers)

	r.Get("/persons", handlers.Roster.ListPersons)
	r.Get("/persons/{personID}", handlers.Roster.GetPerson)
	r.Get("/persons/{personID}/attendance", handlers.Roster.PersonAttendance)
	r.Get("/persons/{personID}/stats", handlers.Roster.PersonStats)

	r.Get("/attendance", handlers.Roster.DayBoard)
	r.Get("/attendance/stats", handlers.Roster.MonthlyStats)

	r.Get("/announcements", handlers.Community.ListAnnouncements)
	r.Get("/announcements/{announcementID}", handlers.Community.GetAnnouncement)
	r.Get("/announcements/{announcementID}/comments", handlers.Community.ListAnnouncementComments)
	r.Post("/announcements/{announcementID}/comments", handlers.Community.AddAnnouncementComment)
	r.Delete("/announcements/{announcementID}/comments/{commentID}", handlers.Community.DeleteAnnouncementComment)

	r.Get("/prayers", handlers.Community.ListPrayers)
	r.Post("/prayers", handlers.Community.CreatePrayer)
	r.Get("/prayers/{prayerID}", handlers.Community.GetPrayer)
	r.Patch("/prayers/{prayerID}", handlers.Community.UpdatePrayer)
	r.Delete("/prayers/{prayerID}", handlers.Community.DeletePrayer)
	r.Post("/prayers/{prayerID}/answer", handlers.Community.AnswerPrayer)
	r.Get("/prayers/{prayerID}/comments", handlers.Community.ListPrayerComments)
	r.Post("/prayers/{prayerID}/comments", handlers.Community.AddPrayerComment)
	r.Delete("/prayers/{prayerID}/comments/{commentID}", handlers.Community.DeletePrayerComment)

	r.Get("/events", handlers.Calendar.ListEvents)
	r.Get("/events/{eventID}", handlers.Calendar.GetEvent)
	r.Get("/schedules", handlers.Calendar.ListSchedules)

	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAttendanceTaker)

		r.Post("/attendance", handlers.Roster.CheckIn)
		r.Delete("/attendance/{personID}", handlers.Roster.CancelCheckIn)
	})

	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAdmin)

		r.Patch("/", handlers.Common.UpdateChurch)
		r.Delete("/", handlers.Common.DeleteChurch)
		r.Patch("/members/{userID}", handlers.Common.UpdateMemberRole)
		r.Delete("/members/{userID}", handlers.Common.RemoveMember)

		r.Get("/invites", handlers.Common.ListInvites)
		r.Post("/invites", handlers.Common.CreateInvite)
		r.Delete("/invites/{inviteID}", handlers.Common.RevokeInvite)

		r.Post("/persons", handlers.Roster.CreatePerson)
		r.Patch("/persons/{personID}", handlers.Roster.UpdatePerson)
		r.Delete("/persons/{personID}", handlers.Roster.DeletePerson)
		r.Post("/persons/{personID}/photo", handlers.Roster.UploadPhoto)

		r.Post("/announcements", handlers.Community.CreateAnnouncement)
		r.Patch("/announcements/{announcementID}", handlers.Community.UpdateAnnouncement)
		r.Delete("/announcements/{announcementID}", handlers.Community.DeleteAnnouncement)

		r.Get("/offerings", handlers.Finance.ListOfferings)
		r.Post("/offerings", handlers.Finance.CreateOffering)
		r.Put("/offerings/{offeringID}", handlers.Finance.UpdateOffering)
		r.Delete("/offerings/{offeringID}", handlers.Finance.DeleteOffering)
		r.Get("/expenses", handlers.Finance.ListExpenses)
		r.Post("/expenses", handlers.Finance.CreateExpense)
		r.Put("/expenses/{expenseID}", handlers.Finance.UpdateExpense)
		r.Delete("/expenses/{expenseID}", handlers.Finance.DeleteExpense)
		r.Get("/finance/summary", handlers.Finance.Summary)

		r.Post("/events", handlers.Calendar.CreateEvent)
		r.Put("/events/{eventID}", handlers.Calendar.UpdateEvent)
		r.Delete("/events/{eventID}", handlers.Calendar.DeleteEvent)

		r.Post("/schedules", handlers.Calendar.CreateSchedule)
		r.Put("/schedules/{scheduleID}", handlers.Calendar.UpdateSchedule)
		r.Patch("/schedules/{scheduleID}/status", handlers.Calendar.SetScheduleStatus)
		r.Delete("/schedules/{scheduleID}", handlers.Calendar.DeleteSchedule)
	})
}
