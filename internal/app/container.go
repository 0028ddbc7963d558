package app

import (
	"context"
	"errors"
	"log"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/database/migration"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/infrastructure/jobfeed"
	"jobboard/internal/infrastructure/persistence/postgres"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/repository"
	"jobboard/internal/scheduler"
	"jobboard/internal/usecase"
	"jobboard/internal/worker"
	"jobboard/internal/ws"
	"jobboard/migrations"
)

// Container owns every long-lived dependency of the server.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Users *postgres.UserRepository
	Cache *cache.Redis
	JWT   jwt.Service

	Pool      *worker.Pool
	Hub       *ws.Hub
	Relay     *ws.Relay
	Scheduler *scheduler.Scheduler

	Jobs          *usecase.Jobs
	Applications  *usecase.Applications
	Admin         *usecase.Admin
	Notifications *usecase.Notifications
	Profiles      *usecase.Profiles
	SavedJobs     *usecase.SavedJobs
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{Dir: cfg.App.MigrationsDir, FS: migrations.FS, Logger: logger}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	pgdb, err := postgres.NewPostgresDB(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	users, err := postgres.NewUserRepository(pgdb)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Users:  users,
		Cache:  cache.NewRedis(cfg.Redis, logger),
		JWT:    jwt.NewHMACService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiresIn),
		Pool:   worker.NewPool(cfg.Fanout.Workers, cfg.Fanout.QueueSize, logger),
		Hub:    ws.NewHub(logger),
		Relay:  ws.NewRelay(),
	}
	c.Relay.Attach(c.Hub)

	jobRepo := repository.NewPostgresJobRepository(db)
	profileRepo := repository.NewPostgresProfileRepository(db)
	appRepo := repository.NewPostgresApplicationRepository(db)
	savedRepo := repository.NewPostgresSavedJobRepository(db)
	noteRepo := repository.NewPostgresNotificationRepository(db)

	c.Notifications = usecase.NewNotificationUsecase(noteRepo, c.Relay, logger)
	fanout := usecase.NewCandidateFanout(profileRepo, c.Notifications, c.Pool, logger)

	c.Jobs = usecase.NewJobUsecase(jobRepo, profileRepo, fanout, c.Relay, c.Cache, cfg.Redis.SearchCacheTTL, logger)
	c.Applications = usecase.NewApplicationUsecase(appRepo, jobRepo, profileRepo, users, c.Notifications, logger)
	c.Admin = usecase.NewAdminUsecase(users, jobRepo, c.Notifications, c.Cache, logger)
	c.Profiles = usecase.NewProfileUsecase(profileRepo)
	c.SavedJobs = usecase.NewSavedJobUsecase(savedRepo, jobRepo)

	if cfg.JobFeed.Enabled {
		feed := jobfeed.NewAdzunaClient(jobfeed.AdzunaConfig{
			BaseURL: cfg.JobFeed.BaseURL,
			AppID:   cfg.JobFeed.AdzunaAppID,
			AppKey:  cfg.JobFeed.AdzunaAppKey,
			Country: cfg.JobFeed.AdzunaCountry,
			Query:   cfg.JobFeed.AdzunaQuery,
		}, logger)
		c.Scheduler = scheduler.New(cfg.JobFeed.Cron, feed, c.Jobs, c.Cache, cfg.JobFeed.AdzunaPages, logger)
	}

	return c, nil
}

// Start launches the background workers. They stop when ctx is cancelled.
func (c *Container) Start(ctx context.Context) error {
	c.Pool.Start(ctx)
	go c.Hub.Run(ctx)
	if c.Scheduler != nil {
		if err := c.Scheduler.Start(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	c.Relay.Detach()
	c.Pool.Close()

	var errs []error
	if c.Users != nil {
		errs = append(errs, c.Users.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
