package services

import (
	"errors"

	"motoparts/pkg/rabbitmq"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
)

// EventPublisher sends domain events. *rabbitmq.Client satisfies it.
type EventPublisher interface {
	Publish(event rabbitmq.Event) error
}
