package catalogservice

import "github.com/m04kA/Mucamas-BookingService/internal/domain"

// Service модель услуги из CatalogService
type Service struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	Active          bool    `json:"active"`
}

// ToDomain преобразует модель в доменную
func (s *Service) ToDomain() domain.ServiceDescriptor {
	return domain.ServiceDescriptor{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		Active:          s.Active,
	}
}
