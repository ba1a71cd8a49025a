package app

import (
	"context"
	"net/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"tenf-admin-go/internal/cache"
	"tenf-admin-go/internal/config"
	"tenf-admin-go/internal/db"
	evaluationdomain "tenf-admin-go/internal/domain/evaluation"
	eventdomain "tenf-admin-go/internal/domain/event"
	memberdomain "tenf-admin-go/internal/domain/member"
	spotlightdomain "tenf-admin-go/internal/domain/spotlight"
	twitchdomain "tenf-admin-go/internal/domain/twitch"
	vipdomain "tenf-admin-go/internal/domain/vip"
	"tenf-admin-go/internal/repository/cached"
	evaluationrepo "tenf-admin-go/internal/repository/postgres/evaluation"
	eventrepo "tenf-admin-go/internal/repository/postgres/event"
	memberrepo "tenf-admin-go/internal/repository/postgres/member"
	spotlightrepo "tenf-admin-go/internal/repository/postgres/spotlight"
	twitchrepo "tenf-admin-go/internal/repository/postgres/twitch"
	viprepo "tenf-admin-go/internal/repository/postgres/vip"
	"tenf-admin-go/internal/transport/httpserver"
	"tenf-admin-go/internal/transport/httpserver/handler"
	"tenf-admin-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	redis      *redis.Client
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
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	log.Info("app: initializing cache")
	redisConn, err := cache.Dial(context.Background(), cfg.Redis)
	if err != nil {
		// The cache is strictly optional: an unreachable Redis must not
		// keep the back-office down.
		log.Warn("app: redis unavailable, running without cache", "err", err)
		redisConn = nil
	}
	cacheClient := cache.New(redisConn, cfg.Redis.KeyPrefix, log)
	if !cacheClient.Enabled() {
		log.Info("app: cache disabled, all reads hit the store")
	}

	members := memberdomain.NewService(
		cached.NewMemberRepository(memberrepo.NewPostgres(dbConn), cacheClient, cfg.Cache),
	)
	events := eventdomain.NewService(
		cached.NewEventRepository(eventrepo.NewPostgres(dbConn), cacheClient, cfg.Cache),
	)
	spotlights := spotlightdomain.NewService(spotlightrepo.NewPostgres(dbConn))
	evaluations := evaluationdomain.NewService(evaluationrepo.NewPostgres(dbConn))
	vips := vipdomain.NewService(viprepo.NewPostgres(dbConn), members)
	twitch := twitchdomain.NewService(twitchrepo.NewPostgres(dbConn), cfg.Twitch.EventSubSecret)

	handlers := handler.New(members, events, spotlights, evaluations, vips, twitch, log)

	log.Info("app: initializing http server")
	router := httpserver.NewRouter(cfg, handlers, log)
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
		redis:      redisConn,
		log:        log,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("app: redis close failed", "err", err)
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
