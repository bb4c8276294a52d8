package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/Mucamas-BookingService/internal/config"
	"github.com/m04kA/Mucamas-BookingService/internal/infra/notify"
	collaboratorRepo "github.com/m04kA/Mucamas-BookingService/internal/infra/storage/collaborator"
	"github.com/m04kA/Mucamas-BookingService/internal/infra/storage/memory"
	reservationRepo "github.com/m04kA/Mucamas-BookingService/internal/infra/storage/reservation"
	"github.com/m04kA/Mucamas-BookingService/internal/integrations/accountservice"
	"github.com/m04kA/Mucamas-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/Mucamas-BookingService/internal/integrations/notifications"
	"github.com/m04kA/Mucamas-BookingService/internal/service/directory"
	"github.com/m04kA/Mucamas-BookingService/internal/service/ledger"
	"github.com/m04kA/Mucamas-BookingService/internal/service/matcher"
	"github.com/m04kA/Mucamas-BookingService/internal/service/otp"
	bookService "github.com/m04kA/Mucamas-BookingService/internal/usecase/book_service"
	finishReservation "github.com/m04kA/Mucamas-BookingService/internal/usecase/finish_reservation"
	"github.com/m04kA/Mucamas-BookingService/pkg/auth"
	"github.com/m04kA/Mucamas-BookingService/pkg/broker"
	"github.com/m04kA/Mucamas-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Mucamas-BookingService/pkg/logger"
	"github.com/m04kA/Mucamas-BookingService/pkg/metrics"
	"github.com/m04kA/Mucamas-BookingService/pkg/mq"
	"github.com/m04kA/Mucamas-BookingService/pkg/obs"
	"github.com/m04kA/Mucamas-BookingService/pkg/txmanager"
)

// Container владеет всеми зависимостями процесса.
// Создается в main через New и освобождается через Close.
type Container struct {
	cfg *config.Config
	log *logger.Logger

	metrics *metrics.Metrics
	db      *sql.DB
	bus     *broker.Broker

	publisher      *mq.Publisher
	listener       *notify.Listener
	otp            *otp.Service
	shutdownTracer func(context.Context) error

	accounts  *accountservice.Client
	catalog   *catalogservice.Client
	directory *directory.Service
	ledger    *ledger.Service
	matcher   *matcher.Service
	booking   *bookService.UseCase
	finish    *finishReservation.UseCase
	tokens    *auth.Issuer

	stopMetrics chan struct{}
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	closeOnce   sync.Once
}

// New собирает сервис по конфигурации. При ошибке уже открытые ресурсы закрываются.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (_ *Container, err error) {
	runCtx, cancel := context.WithCancel(context.Background())
	c := &Container{
		cfg:         cfg,
		log:         log,
		bus:         broker.New(),
		stopMetrics: make(chan struct{}),
		cancel:      cancel,
		tokens:      auth.NewIssuer(cfg.Auth.JWTSecret),
	}
	defer func() {
		if err != nil {
			_ = c.Close(context.Background())
		}
	}()

	// Трассировка
	if cfg.Tracing.Enabled {
		shutdown, err := obs.InitTracer(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Version,
			cfg.Tracing.Environment, cfg.Tracing.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("init tracer: %w", err)
		}
		c.shutdownTracer = shutdown
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.Endpoint)
	}

	// Метрики
	if cfg.Metrics.Enabled {
		c.metrics = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	var (
		collaborators directory.CollaboratorRepository
		reservations  ledger.ReservationRepository
		txManager     finishReservation.TransactionManager
	)

	switch cfg.Database.Driver {
	case config.DriverMemory:
		collaborators = memory.NewCollaboratorStore()
		reservations = memory.NewReservationStore()
		txManager = memory.TxManager{}
		log.Warn("Using in-memory storage: data is lost on restart")

	default:
		wrappedDB, err := c.openDatabase(ctx)
		if err != nil {
			return nil, err
		}
		collaborators = collaboratorRepo.NewRepository(wrappedDB)
		reservations = reservationRepo.NewRepository(wrappedDB)
		txManager = txmanager.NewTransactionManager(wrappedDB)

		// Изменения, сделанные другими экземплярами, приходят через LISTEN/NOTIFY
		c.listener = notify.NewListener(cfg.Database.DSN(), cfg.Database.NotifyChannel, c.bus, log)
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			if err := c.listener.Run(runCtx); err != nil {
				log.Error("Notification listener stopped: %v", err)
			}
		}()
	}

	// Внешние интеграции
	c.accounts = accountservice.NewClient(
		cfg.AccountService.URL,
		time.Duration(cfg.AccountService.Timeout)*time.Second,
		log,
	)
	c.catalog = catalogservice.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (AccountService=%s, CatalogService=%s)",
		cfg.AccountService.URL, cfg.CatalogService.URL)

	// Без RabbitMQ уведомления только логируются
	var publisher notifications.MQPublisher
	if cfg.RabbitMQ.Enabled {
		c.publisher, err = mq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			return nil, fmt.Errorf("connect rabbitmq: %w", err)
		}
		publisher = c.publisher
		log.Info("RabbitMQ publisher connected, exchange=%s", cfg.RabbitMQ.Exchange)
	}
	notifier := notifications.NewClient(publisher, log)

	// Сервисы
	c.directory = directory.NewService(collaborators, log)
	c.ledger = ledger.NewService(reservations, c.bus, log)
	c.matcher = matcher.NewService(c.directory, c.ledger, log)
	c.otp = otp.NewService(otp.Config{
		CodeLength:    cfg.OTP.CodeLength,
		RatePerMinute: cfg.OTP.RatePerMinute,
		Burst:         cfg.OTP.Burst,
		SendTimeout:   time.Duration(cfg.OTP.SendTimeout) * time.Second,
		CodeTTL:       time.Duration(cfg.OTP.CodeTTLSeconds) * time.Second,
	}, notifier, log)

	// Use cases
	location, err := cfg.Booking.Location()
	if err != nil {
		return nil, fmt.Errorf("booking timezone: %w", err)
	}

	var bookingMetrics bookService.Metrics
	if c.metrics != nil {
		bookingMetrics = c.metrics
	}

	c.booking = bookService.NewUseCase(
		c.accounts,
		c.catalog,
		c.matcher,
		c.directory,
		c.ledger,
		notifier,
		bookingMetrics,
		bookService.Config{
			MaxClaimAttempts: cfg.Booking.MaxClaimAttempts,
			StepTimeout:      time.Duration(cfg.Booking.StepTimeout) * time.Second,
			Location:         location,
		},
		log,
	)
	c.finish = finishReservation.NewUseCase(c.ledger, c.directory, txManager, log)

	return c, nil
}

func (c *Container) openDatabase(ctx context.Context) (*dbmetrics.DB, error) {
	cfg := c.cfg.Database

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	c.db = db

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	c.log.Info("Successfully connected to database (host=%s, port=%d, db=%s)", cfg.Host, cfg.Port, cfg.DBName)

	if c.metrics != nil {
		c.log.Info("Database metrics collection started")
		return dbmetrics.WrapWithDefault(db, c.metrics, c.stopMetrics), nil
	}
	return dbmetrics.Wrap(db), nil
}

// Handler HTTP обработчик всех маршрутов сервиса
func (c *Container) Handler() http.Handler {
	return c.newRouter()
}

// Close останавливает фоновые задачи и закрывает соединения. Повторный вызов безопасен
func (c *Container) Close(ctx context.Context) error {
	var errs []error

	c.closeOnce.Do(func() {
		c.cancel()
		close(c.stopMetrics)

		if c.listener != nil {
			if err := c.listener.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close listener: %w", err))
			}
		}
		c.wg.Wait()

		// Дожидаемся отправки уже выданных кодов до закрытия RabbitMQ
		if c.otp != nil {
			c.otp.Wait()
		}

		if c.publisher != nil {
			if err := c.publisher.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close rabbitmq: %w", err))
			}
		}
		if c.db != nil {
			if err := c.db.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close database: %w", err))
			}
		}
		if c.shutdownTracer != nil {
			if err := c.shutdownTracer(ctx); err != nil {
				errs = append(errs, fmt.Errorf("shutdown tracer: %w", err))
			}
		}
	})

	return errors.Join(errs...)
}
