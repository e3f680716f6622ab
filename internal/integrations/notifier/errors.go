package notifier

import "errors"

var (
	// ErrMarshal возвращается при ошибке сериализации события
	ErrMarshal = errors.New("notifier: failed to marshal event")

	// ErrPublish возвращается при ошибке публикации в RabbitMQ
	ErrPublish = errors.New("notifier: failed to publish event")

	// ErrSetup возвращается при ошибке объявления exchange
	ErrSetup = errors.New("notifier: failed to set up channel")
)
