package calendar

import (
	"time"

	calendardomain "church-app-go/internal/domain/calendar"
	scheduledomain "church-app-go/internal/domain/schedule"
	"church-app-go/pkg/logger"
)

type Handlers struct {
	Events    *calendardomain.Service
	Schedules *scheduledomain.Service
	now       func() time.Time
	log       logger.Logger
}

func New(events *calendardomain.Service, schedules *scheduledomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Events:    events,
		Schedules: schedules,
		now:       time.Now,
		log:       log,
	}
}
