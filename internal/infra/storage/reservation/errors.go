package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrStatusMismatch возвращается, когда условное обновление не применилось:
	// текущий статус отличается от ожидаемого
	ErrStatusMismatch = errors.New("reservation.repository: reservation status changed concurrently")

	// ErrDuplicateID возвращается при повторной вставке с тем же ID
	ErrDuplicateID = errors.New("reservation.repository: duplicate reservation id")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
