package notify

import "errors"

var (
	// ErrListen возвращается, если не удалось подписаться на канал базы
	ErrListen = errors.New("notify: failed to listen channel")
)
