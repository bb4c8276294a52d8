package book_service

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
	"github.com/m04kA/Mucamas-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientIDNumber) == "" {
		return fmt.Errorf("%w: client id number is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ServiceName) == "" {
		return fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if !req.EndTime.IsZero() {
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
		}
	}

	if strings.TrimSpace(req.Address.Street) == "" {
		return fmt.Errorf("%w: address street is required", ErrInvalidInput)
	}

	if len(req.Address.Notes) > domain.MaxAddressNotesLength {
		return fmt.Errorf("%w: address notes exceed %d characters", ErrInvalidInput, domain.MaxAddressNotesLength)
	}

	return nil
}

// buildWindow определяет окно услуги. Если время окончания не задано,
// оно вычисляется по длительности услуги из каталога.
// Окна через полночь не поддерживаются.
func buildWindow(req *Request, service *domain.ServiceDescriptor) (domain.TimeWindow, error) {
	end := req.EndTime
	if end.IsZero() {
		if service.DurationMinutes <= 0 {
			return domain.TimeWindow{}, fmt.Errorf("%w: endTime is required for service without duration", ErrInvalidInput)
		}
		computed, err := req.StartTime.AddMinutes(service.DurationMinutes)
		if err != nil {
			return domain.TimeWindow{}, fmt.Errorf("%w: service window crosses midnight: %v", ErrInvalidInput, err)
		}
		end = computed
	}

	window := domain.TimeWindow{Date: req.Date, Start: req.StartTime, End: end}
	if err := window.Validate(); err != nil {
		return domain.TimeWindow{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return window, nil
}

// validateDate проверяет, что дата бронирования не в прошлом (по часовому поясу сервиса)
func validateDate(date string, now time.Time, loc *time.Location) error {
	bookingDate, err := time.ParseInLocation(domain.DateFormat, date, loc)
	if err != nil {
		return fmt.Errorf("%w: invalid date %q: expected YYYY-MM-DD", ErrInvalidInput, date)
	}

	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	if bookingDate.Before(today) {
		return fmt.Errorf("%w: %s", ErrInvalidDate, date)
	}
	return nil
}

// validateBookingTime проверяет, что окно на сегодня еще не началось.
// Захват с оценкой освобождения в прошлом исполнителя уже не вернет.
func validateBookingTime(date string, start types.TimeString, now time.Time, loc *time.Location) error {
	startsAt, err := start.On(date, loc)
	if err != nil {
		return fmt.Errorf("%w: invalid start %s %s: %v", ErrInvalidInput, date, start, err)
	}
	if !startsAt.After(now) {
		return fmt.Errorf("%w: starts at %s", ErrWindowStarted, startsAt.Format(time.RFC3339))
	}
	return nil
}
