package app

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createBookingHandler "github.com/m04kA/Mucamas-BookingService/internal/api/handlers/create_booking"
	getClientReservationsHandler "github.com/m04kA/Mucamas-BookingService/internal/api/handlers/get_client_reservations"
	getNextAvailabilityHandler "github.com/m04kA/Mucamas-BookingService/internal/api/handlers/get_next_availability"
	getReservationHandler "github.com/m04kA/Mucamas-BookingService/internal/api/handlers/get_reservation"
	listServicesHandler "github.com/m04kA/Mucamas-BookingService/internal/api/handlers/list_services"
	registerCollaboratorHandler "github.com/m04kA/Mucamas-BookingService/internal/api/handlers/register_collaborator"
	requestOTPHandler "github.com/m04kA/Mucamas-BookingService/internal/api/handlers/request_otp"
	streamClientReservationsHandler "github.com/m04kA/Mucamas-BookingService/internal/api/handlers/stream_client_reservations"
	streamServicesHandler "github.com/m04kA/Mucamas-BookingService/internal/api/handlers/stream_services"
	updateReservationStatusHandler "github.com/m04kA/Mucamas-BookingService/internal/api/handlers/update_reservation_status"
	verifyOTPHandler "github.com/m04kA/Mucamas-BookingService/internal/api/handlers/verify_otp"
	"github.com/m04kA/Mucamas-BookingService/internal/api/middleware"
	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

func (c *Container) newRouter() http.Handler {
	cfg := c.cfg

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(c.booking, c.log)
	getReservation := getReservationHandler.NewHandler(c.ledger, c.log)
	getClientReservations := getClientReservationsHandler.NewHandler(c.ledger, c.log)
	streamClientReservations := streamClientReservationsHandler.NewHandler(c.ledger, c.log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(c.finish, c.log)
	getNextAvailability := getNextAvailabilityHandler.NewHandler(c.matcher, c.log)
	registerCollaborator := registerCollaboratorHandler.NewHandler(c.directory, c.log)
	requestOTP := requestOTPHandler.NewHandler(c.accounts, c.otp, c.log)
	verifyOTP := verifyOTPHandler.NewHandler(c.accounts, c.otp, c.tokens,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute, c.log)
	listServices := listServicesHandler.NewHandler(c.catalog, c.log)
	streamServices := streamServicesHandler.NewHandler(c.catalog,
		time.Duration(cfg.CatalogService.PollInterval)*time.Second, c.log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if c.metrics != nil {
		r.Use(middleware.Metrics(c.metrics))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		c.log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Вход по одноразовому коду
	api.HandleFunc("/otp", requestOTP.Handle).Methods(http.MethodPost)
	api.HandleFunc("/otp/verify", verifyOTP.Handle).Methods(http.MethodPost)

	// Каталог активных услуг
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/stream", streamServices.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(c.tokens))

	// --- Бронирования ---
	// Создание бронирования (только клиент)
	protected.Handle("/bookings",
		middleware.RequireRole(string(domain.RoleClient))(http.HandlerFunc(createBooking.Handle)),
	).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Смена статуса бронирования
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// Бронирования клиента и их поток
	protected.HandleFunc("/clients/{clientId}/reservations", getClientReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/clients/{clientId}/reservations/stream", streamClientReservations.Handle).Methods(http.MethodGet)

	// --- Исполнители ---
	// Ближайший освобождающийся исполнитель
	protected.HandleFunc("/collaborators/next-available", getNextAvailability.Handle).Methods(http.MethodGet)

	// Регистрация исполнителя
	protected.Handle("/collaborators",
		middleware.RequireRole(string(domain.RoleAdmin), string(domain.RoleCollaborator))(http.HandlerFunc(registerCollaborator.Handle)),
	).Methods(http.MethodPost)

	return r
}
