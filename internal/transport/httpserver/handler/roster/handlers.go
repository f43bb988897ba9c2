package roster

import (
	"context"
	"io"

	attendancedomain "church-app-go/internal/domain/attendance"
	rosterdomain "church-app-go/internal/domain/roster"
	"church-app-go/pkg/logger"
)

type PhotoUploader interface {
	UploadPersonPhoto(ctx context.Context, churchID, personID string, r io.Reader) (string, error)
}

type Handlers struct {
	Persons    *rosterdomain.Service
	Attendance *attendancedomain.Service
	photos     PhotoUploader
	log        logger.Logger
}

func New(persons *rosterdomain.Service, attendance *attendancedomain.Service, photos PhotoUploader, log logger.Logger) *Handlers {
	return &Handlers{
		Persons:    persons,
		Attendance: attendance,
		photos:     photos,
		log:        log,
	}
}
