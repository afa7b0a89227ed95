package events

import "errors"

var (
	// ErrPublish возвращается при ошибке отправки события в брокер
	ErrPublish = errors.New("events: failed to publish")

	// ErrInvalidConfig возвращается при некорректной конфигурации producer
	ErrInvalidConfig = errors.New("events: invalid config")
)
