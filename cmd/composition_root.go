package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpadapter "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/memorystore"
	"fooddelivery/internal/adapters/out/notification"
	"fooddelivery/internal/adapters/out/notification/kafkabus"
	"fooddelivery/internal/adapters/out/notification/wshub"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/redisstore"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot owns every long-lived dependency of the service and builds
// the use case handlers on top of them.
type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
	clock      commands.Clock

	sessions ports.SessionStore
	hub      *wshub.Hub
	notifier ports.Notifier
	registry *prometheus.Registry

	transactionIDs *services.TransactionIDGenerator
	simulationIDs  *services.TransactionIDGenerator
	paymentLinks   services.PaymentLinkBuilder
	policy         services.TransitionPolicy

	closers []func() error
}

// NewCompositionRoot connects the configured session store and notification
// channels. Close releases them.
func NewCompositionRoot(ctx context.Context, configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		configs:        configs,
		gormDB:         gormDB,
		uowFactory:     postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:         logger,
		clock:          time.Now,
		hub:            wshub.NewHub(logger),
		registry:       prometheus.NewRegistry(),
		transactionIDs: services.NewTransactionIDGenerator(services.TransactionPrefix, time.Now),
		simulationIDs:  services.NewTransactionIDGenerator(services.SimulationPrefix, time.Now),
		paymentLinks:   services.NewPaymentLinkBuilder(configs.MerchantVPA, configs.MerchantName),
		policy:         services.NewTransitionPolicy(),
	}
	c.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	sessions, err := c.newSessionStore(ctx)
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}
	c.sessions = sessions

	notifiers := []ports.Notifier{c.hub}
	if brokers := configs.KafkaBrokers(); len(brokers) > 0 {
		writer := kafkabus.NewWriter(brokers, configs.KafkaNotificationsTopic, logger)
		c.closers = append(c.closers, writer.Close)
		notifiers = append(notifiers, kafkabus.NewNotifier(writer))
	}
	c.notifier = notification.NewFanout(notifiers...)

	return c, nil
}

func (c *CompositionRoot) newSessionStore(ctx context.Context) (ports.SessionStore, error) {
	if c.configs.SessionStore != SessionStoreRedis {
		return memorystore.NewSessionStore(c.clock), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     c.configs.RedisAddr,
		Password: c.configs.RedisPassword,
		DB:       c.configs.RedisDB,
	})
	c.closers = append(c.closers, client.Close)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", c.configs.RedisAddr, err)
	}
	return redisstore.NewSessionStore(client, redisstore.DefaultRetention, c.clock), nil
}

// Close releases the session store and notification connections.
func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i]())
	}
	c.closers = nil
	return err
}

// Hub returns the WebSocket hub; its Run loop must be started by the caller.
func (c *CompositionRoot) Hub() *wshub.Hub {
	return c.hub
}

// Gatherer exposes the metrics registry for the /metrics endpoint.
func (c *CompositionRoot) Gatherer() prometheus.Gatherer {
	return c.registry
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreatePaymentCommandHandler() commands.CreatePaymentCommandHandler {
	return commands.NewCreatePaymentCommandHandler(c.orderUoWFactory(), c.transactionIDs, c.notifier, c.logger, c.clock)
}

func (c *CompositionRoot) CreatePayWithUPICommandHandler() commands.PayWithUPICommandHandler {
	return commands.NewPayWithUPICommandHandler(c.orderUoWFactory(), c.transactionIDs, c.notifier, c.logger, c.clock)
}

func (c *CompositionRoot) CreateStartPaymentSessionCommandHandler() commands.StartPaymentSessionCommandHandler {
	return commands.NewStartPaymentSessionCommandHandler(
		c.orderUoWFactory(), c.sessions, c.paymentLinks, c.configs.PaymentSessionTTL, c.clock)
}

func (c *CompositionRoot) CreateRequestUPICollectCommandHandler() commands.RequestUPICollectCommandHandler {
	return commands.NewRequestUPICollectCommandHandler(c.orderUoWFactory(), c.sessions, c.clock)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.orderUoWFactory(), c.sessions, c.logger, c.clock)
}

func (c *CompositionRoot) CreateSimulatePaymentCommandHandler() commands.SimulatePaymentCommandHandler {
	return commands.NewSimulatePaymentCommandHandler(c.orderUoWFactory(), c.sessions, c.simulationIDs, c.logger, c.clock)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.policy, c.notifier, c.logger, c.clock)
}

func (c *CompositionRoot) CreatePurgeExpiredSessionsCommandHandler() commands.PurgeExpiredSessionsCommandHandler {
	return commands.NewPurgeExpiredSessionsCommandHandler(c.sessions, c.clock)
}

func (c *CompositionRoot) CreateCheckPaymentStatusQueryHandler() queries.CheckPaymentStatusQueryHandler {
	return queries.NewCheckPaymentStatusQueryHandler(c.gormDB, c.sessions)
}

// CreateHTTPServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreatePayment:       c.CreateCreatePaymentCommandHandler(),
		PayWithUPI:          c.CreatePayWithUPICommandHandler(),
		StartPaymentSession: c.CreateStartPaymentSessionCommandHandler(),
		RequestUPICollect:   c.CreateRequestUPICollectCommandHandler(),
		ConfirmPayment:      c.CreateConfirmPaymentCommandHandler(),
		SimulatePayment:     c.CreateSimulatePaymentCommandHandler(),
		UpdateOrderStatus:   c.CreateUpdateOrderStatusCommandHandler(),
		CheckPaymentStatus:  c.CreateCheckPaymentStatusQueryHandler(),
	}, httpadapter.NewMetrics(c.registry), c.logger, c.configs.IsDevelopment())
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreatePurgeExpiredSessionsCommandHandler(), c.configs.SessionPurgeSchedule, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
