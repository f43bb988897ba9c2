package community

import (
	announcementdomain "church-app-go/internal/domain/announcement"
	prayerdomain "church-app-go/internal/domain/prayer"
	"church-app-go/pkg/logger"
)

type Handlers struct {
	Announcements *announcementdomain.Service
	Prayers       *prayerdomain.Service
	log           logger.Logger
}

func New(announcements *announcementdomain.Service, prayers *prayerdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Announcements: announcements,
		Prayers:       prayers,
		log:           log,
	}
}

type commentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}
