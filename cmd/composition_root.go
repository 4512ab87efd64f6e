package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	kitchenhttp "kitchen/internal/adapters/in/http"
	"kitchen/internal/adapters/in/keymap"
	"kitchen/internal/adapters/out/alert"
	"kitchen/internal/adapters/out/pgnotify"
	"kitchen/internal/adapters/out/postgres"
	"kitchen/internal/adapters/out/push"
	"kitchen/internal/core/application/kitchen"
	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/application/usecases/queries"
	"kitchen/internal/core/ports"
	"kitchen/internal/jobs"

	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
	"k8s.io/utils/clock"
)

// CompositionRoot owns every long lived component of one terminal process.
type CompositionRoot struct {
	logger      *slog.Logger
	gormDB      *gorm.DB
	amqpConn    *amqp.Connection
	uowFactory  *postgres.GormUnitOfWorkFactory
	coordinator *kitchen.Coordinator
	jobManager  *jobs.JobManager
	listener    *pgnotify.Listener
	server      *kitchenhttp.Server
}

// NewCompositionRoot connects to the store, migrates it and wires the
// terminal. Call Close when done.
func NewCompositionRoot(cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	dsn := postgres.DSN(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSslMode)

	gormDB, err := postgres.Open(dsn, logger)
	if err != nil {
		return nil, err
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	c := &CompositionRoot{
		logger:     logger,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
	}

	notifier, err := c.readyNotifier(cfg)
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}

	km, err := keymap.Load(cfg.KeyMapPath)
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}

	var alerter ports.Alerter
	if cfg.AlertRings > 0 {
		alerter = alert.NewBell(os.Stdout, cfg.AlertRings)
	}

	c.coordinator, err = kitchen.New(kitchen.Deps{
		Loader:     postgres.NewSnapshotter(gormDB),
		UnitOfWork: c.uowFactory,
		Notifier:   notifier,
		Alerter:    alerter,
		Clock:      clock.RealClock{},
		Logger:     logger,
	},
		kitchen.WithStation(cfg.Station),
		kitchen.WithKeyMap(km),
		kitchen.WithMutationTimeout(cfg.MutationTimeout),
		kitchen.WithCadenceListener(c.setTickInterval),
		kitchen.WithErrorHandler(func(err error) {
			logger.Warn("change reverted", "error", err)
		}),
	)
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}

	c.jobManager = jobs.NewJobManager(c.coordinator, cfg.ReconcileInterval, nil, logger)

	c.listener, err = pgnotify.NewListener(dsn, logger)
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}

	c.server = kitchenhttp.NewServer(c.handlers(), c.coordinator)

	return c, nil
}

func (c *CompositionRoot) readyNotifier(cfg Config) (ports.ReadyNotifier, error) {
	switch {
	case cfg.AMQPURL != "":
		conn, err := amqp.Dial(cfg.AMQPURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		c.amqpConn = conn
		return push.NewAMQPNotifier(conn, cfg.AMQPExchange)
	case cfg.PushURL != "":
		return push.NewHTTPNotifier(cfg.PushURL, nil)
	default:
		return push.NewNopNotifier(c.logger), nil
	}
}

func (c *CompositionRoot) handlers() kitchenhttp.Handlers {
	var orderUoW commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})

	return kitchenhttp.Handlers{
		CreateOrder:      commands.NewCreateOrderCommandHandler(orderUoW, clock.RealClock{}),
		TransitionOrder:  commands.NewTransitionOrderCommandHandler(c.coordinator),
		TransitionItem:   commands.NewTransitionItemCommandHandler(c.coordinator),
		PressKey:         commands.NewPressKeyCommandHandler(c.coordinator),
		TogglePreference: commands.NewTogglePreferenceCommandHandler(c.coordinator),
		GetBoard:         queries.NewGetBoardQueryHandler(c.coordinator),
		GetPrepTimeStats: queries.NewGetPrepTimeStatsQueryHandler(c.gormDB),
	}
}

// setTickInterval is the coordinator's cadence listener. The coordinator is
// built before the job manager, so early calls are dropped; the tick job
// reads the interval from the coordinator when it starts.
func (c *CompositionRoot) setTickInterval(d time.Duration) {
	if c.jobManager != nil {
		c.jobManager.SetTickInterval(d)
	}
}

func (c *CompositionRoot) Coordinator() *kitchen.Coordinator { return c.coordinator }
func (c *CompositionRoot) JobManager() *jobs.JobManager      { return c.jobManager }
func (c *CompositionRoot) Listener() *pgnotify.Listener      { return c.listener }
func (c *CompositionRoot) Server() *kitchenhttp.Server       { return c.server }

// Shutdown drains pending writes, then releases connections.
func (c *CompositionRoot) Shutdown(ctx context.Context) error {
	var drainErr error
	if c.coordinator != nil {
		drainErr = c.coordinator.Close(ctx)
	}
	return errors.Join(drainErr, c.Close())
}

// Close releases the broker and database connections.
func (c *CompositionRoot) Close() error {
	var errList []error
	if c.amqpConn != nil && !c.amqpConn.IsClosed() {
		errList = append(errList, c.amqpConn.Close())
	}
	if c.gormDB != nil {
		if sqlDB, err := c.gormDB.DB(); err == nil {
			errList = append(errList, sqlDB.Close())
		}
	}
	return errors.Join(errList...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
