package app

import (
	"context"
	"net/http"

	"church-app-go/internal/config"
	"church-app-go/internal/db"
	attendancedomain "church-app-go/internal/domain/attendance"
	versedomain "church-app-go/internal/domain/verse"
	"church-app-go/internal/observability/metrics"
	"church-app-go/internal/repository/inmemory"
	redisrepo "church-app-go/internal/repository/redis"
	"church-app-go/internal/scheduler"
	"church-app-go/internal/transport/httpserver"
	"church-app-go/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	redis      *goredis.Client
	scheduler  *scheduler.Scheduler
	log        logger.Logger
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: running migrations")
	if err := db.Migrate(dbConn, log); err != nil {
		closeDB(dbConn)
		return nil, err
	}

	var appMetrics *metrics.Metrics
	if cfg.MetricsEnabled {
		appMetrics = metrics.New(prometheus.NewRegistry(), cfg.Env)
	}

	redisClient, verseCache := newVerseCache(cfg, log)
	var recorder attendancedomain.Recorder
	if appMetrics != nil {
		recorder = appMetrics
	}

	log.Info("app: initializing services")
	services := NewServices(cfg, dbConn, verseCache, recorder, log)

	log.Info("app: initializing router")
	var obs httpserver.Observability
	if appMetrics != nil {
		obs = appMetrics
	}
	router := services.Router(cfg, obs, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	var jobs *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		jobs, err = newScheduler(cfg, services.Churches, services.Verses, appMetrics, log)
		if err != nil {
			closeDB(dbConn)
			return nil, err
		}
	}

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
		redis:      redisClient,
		scheduler:  jobs,
		log:        log,
	}, nil
}

// newVerseCache prefers Redis when REDIS_URL is set,
// falling back to a process-local cache.
func newVerseCache(cfg config.Config, log logger.Logger) (*goredis.Client, versedomain.Cache) {
	if cfg.Redis.URL == "" {
		return nil, inmemory.NewVerseCache()
	}
	client, err := redisrepo.NewClient(cfg.Redis.URL)
	if err != nil {
		log.Error("redis: invalid REDIS_URL, using in-memory verse cache", "err", err)
		return nil, inmemory.NewVerseCache()
	}
	log.Info("redis: verse cache enabled")
	return client, redisrepo.NewVerseCache(client, log)
}

func newScheduler(cfg config.Config, invites scheduler.InvitePurger, verses scheduler.VersePrewarmer, appMetrics *metrics.Metrics, log logger.Logger) (*scheduler.Scheduler, error) {
	var observer scheduler.Observer
	if appMetrics != nil {
		observer = appMetrics
	}
	jobs := scheduler.New(log, cfg.Location(), observer)
	if err := jobs.Add("invite_cleanup", cfg.Scheduler.InviteCleanupCron, scheduler.InviteCleanup(invites, log)); err != nil {
		return nil, err
	}
	if err := jobs.Add("verse_prewarm", cfg.Scheduler.VersePrewarmCron, scheduler.VersePrewarm(verses, log)); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

// StartBackground starts the cron jobs, if enabled.
func (a *App) StartBackground() {
	if a.scheduler == nil {
		return
	}
	a.scheduler.Start()
	a.log.Info("scheduler: started", "jobs", a.scheduler.Entries())
}

func (a *App) Close(ctx context.Context) error {
	if a.scheduler != nil {
		a.scheduler.Stop(ctx)
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("redis: close failed", "err", err)
		}
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func closeDB(conn *gorm.DB) {
	if sqlDB, err := conn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
