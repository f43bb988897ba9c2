package verse

import (
	"context"
	"strings"
	"time"

	"church-app-go/pkg/logger"
)

// Generator produces a verse for a day, typically from a language model.
type Generator interface {
	Generate(ctx context.Context, day time.Time) (Verse, error)
}

type Service struct {
	generator Generator
	cache     Cache
	ttl       time.Duration
	log       logger.Logger
	now       func() time.Time
	loc       *time.Location
}

// NewService accepts a nil generator; the static list is used then.
func NewService(generator Generator, cache Cache, ttl time.Duration, log logger.Logger) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	return &Service{
		generator: generator,
		cache:     cache,
		ttl:       ttl,
		log:       log,
		now:       time.Now,
		loc:       time.UTC,
	}
}

func (s *Service) WithLocation(loc *time.Location) *Service {
	if loc != nil {
		s.loc = loc
	}
	return s
}

// Today never fails. Generator errors fall back to the static list and the
// fallback is not cached, so a later call can still reach the generator.
func (s *Service) Today(ctx context.Context) Verse {
	day := s.today()
	key := cacheKey(day)

	if cached, ok := s.cache.Get(ctx, key); ok {
		return *cached
	}

	verse, ok := s.generate(ctx, day)
	if !ok {
		return StaticFor(day)
	}
	s.cache.Set(ctx, key, verse, s.ttl)
	return verse
}

// Prewarm fills the cache for the current day ahead of the first request.
func (s *Service) Prewarm(ctx context.Context) bool {
	day := s.today()
	key := cacheKey(day)
	if _, ok := s.cache.Get(ctx, key); ok {
		return true
	}

	verse, ok := s.generate(ctx, day)
	if !ok {
		return false
	}
	s.cache.Set(ctx, key, verse, s.ttl)
	return true
}

func (s *Service) generate(ctx context.Context, day time.Time) (Verse, bool) {
	if s.generator == nil {
		return Verse{}, false
	}

	verse, err := s.generator.Generate(ctx, day)
	if err != nil {
		s.log.Warn("verse: generator failed, using static list", "err", err)
		return Verse{}, false
	}

	verse.Reference = strings.TrimSpace(verse.Reference)
	verse.Text = strings.TrimSpace(verse.Text)
	if verse.Reference == "" || verse.Text == "" {
		s.log.Warn("verse: generator returned an empty verse, using static list")
		return Verse{}, false
	}
	verse.Date = day.Format("2006-01-02")
	verse.Source = SourceGenerated
	return verse, true
}

func (s *Service) today() time.Time {
	y, m, d := s.now().In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
