package session

import "errors"

var (
	// ErrNotFound возвращается, когда в сессии нет незавершённого бронирования
	ErrNotFound = errors.New("session.store: pending booking not found")

	// ErrMarshal возвращается при ошибке сериализации бронирования
	ErrMarshal = errors.New("session.store: failed to marshal pending booking")

	// ErrUnmarshal возвращается, когда сохранённое значение повреждено
	ErrUnmarshal = errors.New("session.store: failed to unmarshal pending booking")

	// ErrRedis возвращается при ошибках Redis
	ErrRedis = errors.New("session.store: redis error")
)
