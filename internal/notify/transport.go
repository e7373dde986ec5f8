// Package notify содержит транспорты каналов доставки уведомлений.
// Транспорт - тонкий примитив: один исходящий вызов без ретраев,
// повторы живут на уровне джобы notify и ограничены сроком жизни
// уведомления.
package notify

import "context"

type Transport interface {
	// Send доставляет одно сообщение по адресу канала.
	Send(ctx context.Context, address, message string) error
}

// Transports - неизменяемый набор транспортов по имени канала,
// собираемый при старте процесса.
type Transports map[string]Transport
