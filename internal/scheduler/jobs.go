package scheduler

import (
	"context"

	"church-app-go/pkg/logger"
)

type InvitePurger interface {
	PurgeStaleInvites(ctx context.Context) (int64, error)
}

type VersePrewarmer interface {
	Prewarm(ctx context.Context) bool
}

func InviteCleanup(purger InvitePurger, log logger.Logger) Job {
	return func(ctx context.Context) error {
		removed, err := purger.PurgeStaleInvites(ctx)
		if err != nil {
			return err
		}
		if removed > 0 {
			log.Info("scheduler: stale invites removed", "count", removed)
		}
		return nil
	}
}

// VersePrewarm never fails; a generator outage leaves the static fallback in
// place for the day.
func VersePrewarm(verses VersePrewarmer, log logger.Logger) Job {
	return func(ctx context.Context) error {
		if !verses.Prewarm(ctx) {
			log.Warn("scheduler: verse prewarm fell back to static list")
		}
		return nil
	}
}
