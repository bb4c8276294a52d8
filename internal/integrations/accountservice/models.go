package accountservice

import "github.com/m04kA/Mucamas-BookingService/internal/domain"

// Account модель аккаунта из AccountService
type Account struct {
	ID       string `json:"id"`
	IDNumber string `json:"id_number"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"` // CLIENT | COLLABORATOR | ADMIN
}

// SaveResponse ответ AccountService на сохранение аккаунта
type SaveResponse struct {
	ID string `json:"id"`
}

// ErrorResponse модель ошибки от AccountService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain преобразует модель в доменную
func (a *Account) ToDomain() *domain.Account {
	return &domain.Account{
		ID:       a.ID,
		IDNumber: a.IDNumber,
		Name:     a.Name,
		Email:    a.Email,
		Phone:    a.Phone,
		Role:     domain.Role(a.Role),
	}
}

// FromDomain преобразует доменную модель для отправки
func FromDomain(a *domain.Account) *Account {
	return &Account{
		ID:       a.ID,
		IDNumber: a.IDNumber,
		Name:     a.Name,
		Email:    a.Email,
		Phone:    a.Phone,
		Role:     string(a.Role),
	}
}
