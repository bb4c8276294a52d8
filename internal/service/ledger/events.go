package ledger

// Типы событий, публикуемых в шину по ключу client_id
const (
	EventReservationCreated  = "reservation.created"
	EventCollaboratorBound   = "reservation.collaborator_bound"
	EventReservationStatus   = "reservation.status_changed"
	EventReservationExternal = "reservation.changed"
)
