package matcher

import "errors"

var (
	// ErrInvalidWindow возвращается при некорректном временном окне
	ErrInvalidWindow = errors.New("matcher: invalid time window")
)
