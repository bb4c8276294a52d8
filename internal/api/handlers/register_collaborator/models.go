package register_collaborator

// RegisterRequest HTTP request model. Пустой collaboratorId означает "зарегистрировать себя"
type RegisterRequest struct {
	CollaboratorID string `json:"collaboratorId"`
}

// RegisterResponse HTTP response model
type RegisterResponse struct {
	CollaboratorID string `json:"collaboratorId"`
	Created        bool   `json:"created"`
}
