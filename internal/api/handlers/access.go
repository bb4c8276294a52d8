package handlers

import (
	"github.com/m04kA/Mucamas-BookingService/internal/domain"
	"github.com/m04kA/Mucamas-BookingService/pkg/auth"
)

// CanReadClient администратор видит бронирования любого клиента, клиент только свои
func CanReadClient(claims *auth.Claims, clientID string) bool {
	switch domain.Role(claims.Role) {
	case domain.RoleAdmin:
		return true
	case domain.RoleClient:
		return claims.Subject == clientID
	}
	return false
}

// CanReadReservation дополнительно пускает исполнителя, назначенного на бронирование
func CanReadReservation(claims *auth.Claims, res *domain.Reservation) bool {
	if CanReadClient(claims, res.ClientID) {
		return true
	}
	return domain.Role(claims.Role) == domain.RoleCollaborator &&
		res.CollaboratorID != nil && *res.CollaboratorID == claims.Subject
}
