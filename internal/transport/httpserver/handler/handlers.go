package handler

import (
	"church-app-go/internal/transport/httpserver/handler/calendar"
	"church-app-go/internal/transport/httpserver/handler/common"
	"church-app-go/internal/transport/httpserver/handler/community"
	"church-app-go/internal/transport/httpserver/handler/finance"
	"church-app-go/internal/transport/httpserver/handler/roster"
)

type Handlers struct {
	Common    *common.Handlers
	Roster    *roster.Handlers
	Community *community.Handlers
	Finance   *finance.Handlers
	Calendar  *calendar.Handlers
}

func New(common *common.Handlers, roster *roster.Handlers, community *community.Handlers, finance *finance.Handlers, calendar *calendar.Handlers) *Handlers {
	return &Handlers{
		Common:    common,
		Roster:    roster,
		Community: community,
		Finance:   finance,
		Calendar:  calendar,
	}
}
