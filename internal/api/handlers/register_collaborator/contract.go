package register_collaborator

import "context"

type CollaboratorDirectory interface {
	Register(ctx context.Context, collaboratorID string) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
