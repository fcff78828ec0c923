package app

import (
	"context"
	"errors"
	"statuspage/config"
	middle "statuspage/internals/middleware"
	"statuspage/internals/modules/events"
	"statuspage/internals/modules/incident"
	"statuspage/internals/modules/organization"
	"statuspage/internals/modules/reconciler"
	"statuspage/internals/modules/service"
	"statuspage/internals/modules/team"
	"statuspage/internals/modules/timeline"
	"statuspage/internals/modules/user"
	"statuspage/internals/security"
	"statuspage/pkg/rabbitmq"
	"statuspage/pkg/redisstore"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type Container struct {
	DB          *pgxpool.Pool
	RedisClient *redisstore.Client
	AMQP        *amqp091.Connection
	Publisher   *rabbitmq.Publisher
	Consumer    *rabbitmq.Consumer
	Dispatcher  *events.Dispatcher
	Reconciler  *reconciler.Reconciler
	Logger      *zerolog.Logger
	Config      *config.Config

	authMW          *middle.AuthMiddleware
	userHandler     *user.Handler
	orgHandler      *organization.Handler
	publicHandler   *organization.PublicHandler
	serviceHandler  *service.Handler
	incidentHandler *incident.Handler
	teamHandler     *team.Handler
	timelineHandler *timeline.Handler
	eventHandler    *rabbitmq.EventHandler
}

func NewContainer(ctx context.Context, db *pgxpool.Pool, cfg *config.Config, logger *zerolog.Logger) (*Container, error) {
	redisClient, err := redisstore.New(cfg.Redis)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.NewConnection(ctx, cfg.RabbitMQ, logger)
	if err != nil {
		_ = redisClient.Close()
		return nil, err
	}
	if err := rabbitmq.SetupTopology(conn, cfg.RabbitMQ); err != nil {
		_ = conn.Close()
		_ = redisClient.Close()
		return nil, err
	}

	publisher, err := rabbitmq.NewPublisher(conn, cfg.RabbitMQ.ExchangeName, cfg.Events.PublishTimeout)
	if err != nil {
		_ = conn.Close()
		_ = redisClient.Close()
		return nil, err
	}
	consumer, err := rabbitmq.NewConsumer(conn, cfg.RabbitMQ.QueueName, cfg.RabbitMQ.Prefetch, cfg.RabbitMQ.WorkerCount, logger)
	if err != nil {
		_ = publisher.Close()
		_ = conn.Close()
		_ = redisClient.Close()
		return nil, err
	}

	dispatcher := events.NewDispatcher(cfg.Events.Workers, cfg.Events.BufferSize, cfg.Events.PublishTimeout, publisher, logger)

	tokenSvc, err := security.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, err
	}

	validator := validator.New()

	plans, err := organization.LoadCatalogue(nil)
	if err != nil {
		return nil, err
	}

	// repositories
	userRepo := user.NewRepository(db, logger)
	orgRepo := organization.NewRepository(db, logger)
	serviceRepo := service.NewRepository(db, logger)
	incidentRepo := incident.NewRepository(db, logger)
	teamRepo := team.NewRepository(db, logger)
	timelineRepo := timeline.NewRepository(db, logger)
	reconcilerRepo := reconciler.NewRepository(db, logger)

	// services
	userSvc := user.NewService(userRepo, tokenSvc, logger)
	orgSvc := organization.NewService(orgRepo, plans, dispatcher, logger)
	serviceMgr := service.NewManager(serviceRepo, dispatcher, logger)
	incidentSvc := incident.NewService(incidentRepo, serviceMgr, dispatcher, logger)
	teamSvc := team.NewService(teamRepo, logger)
	pages := organization.NewStatusPages(orgRepo, serviceMgr, incidentSvc, redisClient, organization.CacheTTL{
		Status:    cfg.Cache.StatusTTL,
		Directory: cfg.Cache.DirectoryTTL,
	}, logger)
	timelineSvc := timeline.NewService(pages, serviceMgr, timelineRepo, redisClient, timeline.Options{
		DefaultDays: cfg.Timeline.DefaultDays,
		MaxDays:     cfg.Timeline.MaxDays,
		CacheTTL:    cfg.Cache.StatusTTL,
	}, logger)

	rec := reconciler.New(ctx, cfg.Reconciler, reconcilerRepo, serviceMgr, logger)

	return &Container{
		DB:          db,
		RedisClient: redisClient,
		AMQP:        conn,
		Publisher:   publisher,
		Consumer:    consumer,
		Dispatcher:  dispatcher,
		Reconciler:  rec,
		Logger:      logger,
		Config:      cfg,

		authMW:          middle.NewAuthMiddleware(tokenSvc, userRepo),
		userHandler:     user.NewHandler(userSvc, validator),
		orgHandler:      organization.NewHandler(orgSvc, validator),
		publicHandler:   organization.NewPublicHandler(pages, cfg.Cache.StreamInterval, logger),
		serviceHandler:  service.NewHandler(serviceMgr, validator),
		incidentHandler: incident.NewHandler(incidentSvc, validator),
		teamHandler:     team.NewHandler(teamSvc, validator),
		timelineHandler: timeline.NewHandler(timelineSvc),
		eventHandler:    rabbitmq.NewEventHandler(redisClient, logger),
	}, nil
}

// Shutdown drains the event pipeline before closing connections.
func (c *Container) Shutdown(ctx context.Context) error {
	var errs []error

	if err := c.Dispatcher.Stop(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := c.Consumer.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := c.Publisher.Close(); err != nil {
		errs = append(errs, err)
	}
	if c.AMQP != nil && !c.AMQP.IsClosed() {
		if err := c.AMQP.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.RedisClient.Close(); err != nil {
		errs = append(errs, err)
	}
	if c.DB != nil {
		c.DB.Close()
	}
	return errors.Join(errs...)
}
