package book_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
	"github.com/m04kA/Mucamas-BookingService/internal/integrations/accountservice"
	"github.com/m04kA/Mucamas-BookingService/internal/integrations/catalogservice"
)

const tracerName = "github.com/m04kA/Mucamas-BookingService/internal/usecase/book_service"

// UseCase протокол бронирования: подбор, захват исполнителя, запись в журнал и fallback
type UseCase struct {
	accounts     AccountStore
	catalog      Catalog
	matcher      Matcher
	directory    Directory
	ledger       Ledger
	events       EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	tracer       trace.Tracer
	cfg          Config
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. events и metrics могут быть nil
func NewUseCase(
	accounts AccountStore,
	catalog Catalog,
	matcher Matcher,
	directory Directory,
	ledger Ledger,
	events EventPublisher,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.MaxClaimAttempts <= 0 {
		cfg.MaxClaimAttempts = domain.DefaultMaxClaimAttempts
	}
	if cfg.StepTimeout <= 0 {
		cfg.StepTimeout = domain.DefaultStepTimeoutSeconds * time.Second
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &UseCase{
		accounts:     accounts,
		catalog:      catalog,
		matcher:      matcher,
		directory:    directory,
		ledger:       ledger,
		events:       events,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		tracer:       otel.Tracer(tracerName),
		cfg:          cfg,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет бронирование.
// Ошибка возвращается только при некорректном запросе или сбое хранилища;
// отсутствие свободных исполнителей дает OutcomeSuggested или OutcomeUnassigned.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Outcome, error) {
	ctx, span := uc.tracer.Start(ctx, "BookService.Execute")
	defer span.End()

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookService: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("BookService: client=%s, service=%q, date=%s, time=%s-%s",
		req.ClientIDNumber, req.ServiceName, req.Date, req.StartTime, req.EndTime)

	// 1. Текущее время: окно в прошлом не бронируется
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now, uc.cfg.Location); err != nil {
		uc.logger.Warn("BookService: %v", err)
		return nil, err
	}
	if err := validateBookingTime(req.Date, req.StartTime, now, uc.cfg.Location); err != nil {
		uc.logger.Warn("BookService: %v", err)
		return nil, err
	}

	// 2. Клиент
	account, err := uc.resolveClient(ctx, req.ClientIDNumber)
	if err != nil {
		return nil, err
	}

	// 3. Снимок услуги из каталога
	service, err := uc.resolveService(ctx, req.ServiceName)
	if err != nil {
		return nil, err
	}

	// 4. Окно и черновик бронирования
	window, err := buildWindow(req, service)
	if err != nil {
		uc.logger.Warn("BookService: %v", err)
		return nil, err
	}

	reservationID := uc.ledger.NewID()
	draft := &domain.ReservationDraft{
		ID:            reservationID,
		ClientID:      account.ID,
		ServiceID:     service.ID,
		ServiceName:   service.Name,
		Price:         service.Price,
		Date:          window.Date,
		StartTime:     window.Start,
		EndTime:       window.End,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
	}

	span.SetAttributes(
		attribute.String("reservation.id", reservationID),
		attribute.String("reservation.date", window.Date),
	)

	// 5. MATCH -> CLAIM -> PERSIST
	outcome, err := uc.assign(ctx, draft, window)
	if err != nil {
		uc.metrics.RecordBookingOutcome("failed")
		span.RecordError(err)
		return nil, err
	}

	// 6. FALLBACK
	if outcome == nil {
		outcome, err = uc.fallback(ctx, draft, now)
		if err != nil {
			uc.metrics.RecordBookingOutcome("failed")
			span.RecordError(err)
			return nil, err
		}
	}

	span.SetAttributes(attribute.String("booking.outcome", string(outcome.Kind)))
	uc.metrics.RecordBookingOutcome(string(outcome.Kind))
	uc.publishOutcome(ctx, outcome, account.ID)

	uc.logger.Info("BookService: reservation=%s outcome=%s after %d claim attempt(s)",
		reservationID, outcome.Kind, outcome.ClaimAttempts)
	return outcome, nil
}

func (uc *UseCase) resolveClient(ctx context.Context, idNumber string) (*domain.Account, error) {
	stepCtx, cancel := context.WithTimeout(ctx, uc.cfg.StepTimeout)
	defer cancel()

	account, err := uc.accounts.FindByIDNumber(stepCtx, idNumber)
	if err != nil {
		if errors.Is(err, accountservice.ErrAccountNotFound) {
			uc.logger.Warn("BookService: account id_number=%s not found", idNumber)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("BookService: failed to resolve account id_number=%s: %v", idNumber, err)
		return nil, fmt.Errorf("%w: failed to resolve account: %v", ErrInternal, err)
	}

	if account.Role != domain.RoleClient {
		uc.logger.Warn("BookService: account id=%s has role %s", account.ID, account.Role)
		return nil, ErrNotClient
	}
	return account, nil
}

func (uc *UseCase) resolveService(ctx context.Context, name string) (*domain.ServiceDescriptor, error) {
	stepCtx, cancel := context.WithTimeout(ctx, uc.cfg.StepTimeout)
	defer cancel()

	service, err := uc.catalog.GetByName(stepCtx, name)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			uc.logger.Warn("BookService: service %q not found", name)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("BookService: failed to get service %q: %v", name, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.Active {
		uc.logger.Warn("BookService: service %q is not active", name)
		return nil, ErrServiceInactive
	}
	return service, nil
}

func (uc *UseCase) publishOutcome(ctx context.Context, outcome *Outcome, clientID string) {
	if uc.events == nil {
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.cfg.StepTimeout)
	defer cancel()

	if err := uc.events.PublishBookingOutcome(pubCtx, outcome.ReservationID, clientID, string(outcome.Kind)); err != nil {
		uc.logger.Warn("BookService: failed to publish outcome for client=%s: %v", clientID, err)
	}
}
