package book_service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

// assign выполняет цикл MATCH -> CLAIM -> PERSIST.
// Возвращает nil без ошибки, если нужно перейти к FALLBACK:
// кандидатов нет или попытки захвата исчерпаны.
func (uc *UseCase) assign(ctx context.Context, draft *domain.ReservationDraft, window domain.TimeWindow) (*Outcome, error) {
	eta, err := window.EndsAt(uc.cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	exclude := make(map[string]struct{})

	for attempt := 1; attempt <= uc.cfg.MaxClaimAttempts; attempt++ {
		// MATCH
		candidate, found, err := uc.match(ctx, window, exclude)
		if err != nil {
			uc.logger.Error("BookService: match failed for reservation=%s: %v", draft.ID, err)
			return nil, fmt.Errorf("%w: match: %v", ErrBookingFailed, err)
		}
		if !found {
			uc.logger.Info("BookService: no candidate for reservation=%s on attempt %d", draft.ID, attempt)
			return nil, nil
		}

		// CLAIM
		claimed, err := uc.claim(ctx, candidate, draft.ID, eta)
		if err != nil {
			// Исход захвата неизвестен: снимаем его условно по ID бронирования
			uc.logger.Error("BookService: claim of collaborator=%s failed: %v", candidate, err)
			uc.compensate(ctx, candidate, draft.ID)
			return nil, fmt.Errorf("%w: claim: %v", ErrBookingFailed, err)
		}
		if !claimed {
			uc.metrics.RecordClaimConflict()
			uc.logger.Warn("BookService: lost collaborator=%s to a concurrent booking, attempt %d/%d",
				candidate, attempt, uc.cfg.MaxClaimAttempts)
			exclude[candidate] = struct{}{}
			continue
		}

		// PERSIST
		if err := uc.persist(ctx, draft, candidate); err != nil {
			uc.logger.Error("BookService: persist of reservation=%s failed: %v", draft.ID, err)
			uc.compensate(ctx, candidate, draft.ID)
			return nil, fmt.Errorf("%w: persist: %v", ErrBookingFailed, err)
		}

		return &Outcome{
			Kind:          OutcomeAssigned,
			ReservationID: draft.ID,
			Reservation:   uc.readBack(ctx, draft.ID),
			ClaimAttempts: attempt,
		}, nil
	}

	uc.logger.Warn("BookService: claim attempts exhausted for reservation=%s", draft.ID)
	return nil, nil
}

func (uc *UseCase) match(ctx context.Context, window domain.TimeWindow, exclude map[string]struct{}) (string, bool, error) {
	stepCtx, span := uc.tracer.Start(ctx, "BookService.Match")
	defer span.End()

	stepCtx, cancel := context.WithTimeout(stepCtx, uc.cfg.StepTimeout)
	defer cancel()

	candidate, found, err := uc.matcher.FindCandidate(stepCtx, window, exclude)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", false, err
	}
	span.SetAttributes(attribute.Bool("match.found", found), attribute.Int("match.excluded", len(exclude)))
	return candidate, found, nil
}

func (uc *UseCase) claim(ctx context.Context, collaboratorID, reservationID string, eta time.Time) (bool, error) {
	stepCtx, span := uc.tracer.Start(ctx, "BookService.Claim")
	defer span.End()
	span.SetAttributes(attribute.String("collaborator.id", collaboratorID))

	stepCtx, cancel := context.WithTimeout(stepCtx, uc.cfg.StepTimeout)
	defer cancel()

	claimed, err := uc.directory.TryClaim(stepCtx, collaboratorID, reservationID, &eta)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	span.SetAttributes(attribute.Bool("claim.won", claimed))
	return claimed, nil
}

// persist записывает бронирование сразу с назначенным исполнителем.
// Одна вставка: при ошибке в журнале не остается записи без исполнителя.
func (uc *UseCase) persist(ctx context.Context, draft *domain.ReservationDraft, collaboratorID string) error {
	stepCtx, span := uc.tracer.Start(ctx, "BookService.Persist")
	defer span.End()

	stepCtx, cancel := context.WithTimeout(stepCtx, uc.cfg.StepTimeout)
	defer cancel()

	assigned := *draft
	assigned.CollaboratorID = &collaboratorID
	if _, err := uc.ledger.Create(stepCtx, &assigned); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

// compensate возвращает исполнителя в доступные, если он всё еще занят этим бронированием.
// Выполняется и после отмены контекста вызывающего.
func (uc *UseCase) compensate(ctx context.Context, collaboratorID, reservationID string) {
	compCtx, span := uc.tracer.Start(context.WithoutCancel(ctx), "BookService.Compensate")
	defer span.End()

	compCtx, cancel := context.WithTimeout(compCtx, uc.cfg.StepTimeout)
	defer cancel()

	released, err := uc.directory.ReleaseReservation(compCtx, collaboratorID, reservationID, uc.timeProvider.Now())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		uc.metrics.RecordCompensation(false)
		uc.logger.Error("BookService: compensation failed, collaborator=%s may stay bound to reservation=%s: %v",
			collaboratorID, reservationID, err)
		return
	}

	uc.metrics.RecordCompensation(true)
	if released {
		uc.logger.Info("BookService: collaborator=%s released after failed reservation=%s", collaboratorID, reservationID)
	}
}

// fallback предлагает ближайшее время или создает бронирование без исполнителя
func (uc *UseCase) fallback(ctx context.Context, draft *domain.ReservationDraft, now time.Time) (*Outcome, error) {
	stepCtx, span := uc.tracer.Start(ctx, "BookService.Fallback")
	defer span.End()

	findCtx, cancel := context.WithTimeout(stepCtx, uc.cfg.StepTimeout)
	availability, found, err := uc.matcher.FindNextAvailability(findCtx, now)
	cancel()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		uc.logger.Error("BookService: next availability lookup failed: %v", err)
		return nil, fmt.Errorf("%w: next availability: %v", ErrBookingFailed, err)
	}

	if found {
		uc.logger.Info("BookService: suggesting collaborator=%s at %s",
			availability.CollaboratorID, availability.EstimatedAvailableAt.Format(time.RFC3339))
		return &Outcome{Kind: OutcomeSuggested, Suggestion: availability}, nil
	}

	createCtx, cancel := context.WithTimeout(stepCtx, uc.cfg.StepTimeout)
	defer cancel()

	unassigned := *draft
	unassigned.CollaboratorID = nil
	id, err := uc.ledger.Create(createCtx, &unassigned)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		uc.logger.Error("BookService: failed to create unassigned reservation: %v", err)
		return nil, fmt.Errorf("%w: create unassigned reservation: %v", ErrBookingFailed, err)
	}

	return &Outcome{
		Kind:          OutcomeUnassigned,
		ReservationID: id,
		Reservation:   uc.readBack(ctx, id),
	}, nil
}

// readBack читает созданное бронирование для ответа; сбой чтения не отменяет бронирование
func (uc *UseCase) readBack(ctx context.Context, id string) *domain.Reservation {
	readCtx, cancel := context.WithTimeout(ctx, uc.cfg.StepTimeout)
	defer cancel()

	res, err := uc.ledger.Get(readCtx, id)
	if err != nil {
		uc.logger.Warn("BookService: reservation=%s created but could not be read back: %v", id, err)
		return nil
	}
	return res
}
