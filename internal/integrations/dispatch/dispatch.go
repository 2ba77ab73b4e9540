// Package dispatch routes outbound replies to the messaging provider that
// received the inbound message.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNoSender возвращается, если для провайдера нет отправителя и нет отправителя по умолчанию
var ErrNoSender = errors.New("dispatch: no sender configured")

// Sender контракт send(to, body) внешнего провайдера
type Sender interface {
	Name() string
	Send(ctx context.Context, to, body string) error
}

// SendRecorder считает отправки по провайдеру и результату
type SendRecorder interface {
	IncOutboundSend(provider, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Dispatcher выбирает отправителя по имени провайдера
type Dispatcher struct {
	senders  map[string]Sender
	fallback string
	timeout  time.Duration
	metrics  SendRecorder
	logger   Logger
}

// New создает диспетчер. fallback - имя провайдера по умолчанию, timeout ограничивает каждую отправку.
func New(fallback string, timeout time.Duration, metrics SendRecorder, logger Logger, senders ...Sender) *Dispatcher {
	byName := make(map[string]Sender, len(senders))
	for _, s := range senders {
		if s != nil {
			byName[s.Name()] = s
		}
	}
	return &Dispatcher{
		senders:  byName,
		fallback: fallback,
		timeout:  timeout,
		metrics:  metrics,
		logger:   logger,
	}
}

// Send отправляет body через провайдера provider (или провайдера по умолчанию)
func (d *Dispatcher) Send(ctx context.Context, provider, to, body string) error {
	sender, ok := d.senders[provider]
	if !ok {
		sender, ok = d.senders[d.fallback]
	}
	if !ok {
		d.record(provider, "no_sender")
		return fmt.Errorf("%w: provider=%s", ErrNoSender, provider)
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	if err := sender.Send(ctx, to, body); err != nil {
		d.record(sender.Name(), "error")
		d.logger.Warn("Dispatch: send via %s to %s failed: %v", sender.Name(), to, err)
		return err
	}

	d.record(sender.Name(), "ok")
	return nil
}

func (d *Dispatcher) record(provider, result string) {
	if d.metrics != nil {
		d.metrics.IncOutboundSend(provider, result)
	}
}
