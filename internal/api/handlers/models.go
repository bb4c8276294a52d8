package handlers

import (
	"time"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

// AddressDTO адрес оказания услуги
type AddressDTO struct {
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
	Street       string `json:"street"`
	Notes        string `json:"notes,omitempty"`
}

// ToDomain конвертирует адрес в доменную модель
func (a AddressDTO) ToDomain() domain.Address {
	return domain.Address{
		City:         a.City,
		Neighborhood: a.Neighborhood,
		Street:       a.Street,
		Notes:        a.Notes,
	}
}

// ReservationResponse HTTP модель бронирования
type ReservationResponse struct {
	ID             string     `json:"id"`
	ClientID       string     `json:"clientId"`
	ServiceID      string     `json:"serviceId"`
	ServiceName    string     `json:"serviceName"`
	Price          float64    `json:"price"`
	Date           string     `json:"date"`
	StartTime      string     `json:"startTime"`
	EndTime        string     `json:"endTime"`
	Address        AddressDTO `json:"address"`
	CollaboratorID *string    `json:"collaboratorId,omitempty"`
	Status         string     `json:"status"`
	PaymentStatus  string     `json:"paymentStatus"`
	PaymentMethod  string     `json:"paymentMethod,omitempty"`
	CreatedAt      string     `json:"createdAt"`
	UpdatedAt      string     `json:"updatedAt"`
}

// FromReservation конвертирует доменное бронирование в HTTP модель
func FromReservation(res *domain.Reservation) *ReservationResponse {
	if res == nil {
		return nil
	}
	return &ReservationResponse{
		ID:          res.ID,
		ClientID:    res.ClientID,
		ServiceID:   res.ServiceID,
		ServiceName: res.ServiceName,
		Price:       res.Price,
		Date:        res.Date,
		StartTime:   res.StartTime.String(),
		EndTime:     res.EndTime.String(),
		Address: AddressDTO{
			City:         res.Address.City,
			Neighborhood: res.Address.Neighborhood,
			Street:       res.Address.Street,
			Notes:        res.Address.Notes,
		},
		CollaboratorID: res.CollaboratorID,
		Status:         string(res.Status),
		PaymentStatus:  string(res.PaymentStatus),
		PaymentMethod:  res.PaymentMethod,
		CreatedAt:      res.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      res.UpdatedAt.Format(time.RFC3339),
	}
}

// FromReservations конвертирует список бронирований. Пустой список дает [], а не null
func FromReservations(list []*domain.Reservation) []*ReservationResponse {
	out := make([]*ReservationResponse, 0, len(list))
	for _, res := range list {
		out = append(out, FromReservation(res))
	}
	return out
}

// AvailabilityResponse ожидаемое освобождение исполнителя
type AvailabilityResponse struct {
	CollaboratorID       string `json:"collaboratorId"`
	EstimatedAvailableAt string `json:"estimatedAvailableAt"`
}

// FromAvailability конвертирует доменную модель в HTTP модель
func FromAvailability(a *domain.Availability) *AvailabilityResponse {
	if a == nil {
		return nil
	}
	return &AvailabilityResponse{
		CollaboratorID:       a.CollaboratorID,
		EstimatedAvailableAt: a.EstimatedAvailableAt.Format(time.RFC3339),
	}
}

// ServiceResponse HTTP модель услуги каталога
type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// FromServices конвертирует список услуг каталога
func FromServices(services []domain.ServiceDescriptor) []*ServiceResponse {
	out := make([]*ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, &ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			Description:     s.Description,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		})
	}
	return out
}
