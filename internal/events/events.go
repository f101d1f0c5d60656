package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"
)

// Exchange receives one message per completed analysis.
const Exchange = "analysis_events"

// AnalysisEvent is the payload published after a task completes.
type AnalysisEvent struct {
	ID        string    `json:"id"`
	Task      string    `json:"task"`
	Degraded  bool      `json:"degraded"`
	Provider  string    `json:"provider,omitempty"`
	Score     *int      `json:"score,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// RoutingKey is analysis.<task> in lower case.
func (e AnalysisEvent) RoutingKey() string {
	return "analysis." + strings.ToLower(e.Task)
}

type Publisher interface {
	Publish(ctx context.Context, ev AnalysisEvent) error
	Close() error
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, AnalysisEvent) error { return nil }
func (Noop) Close() error                                 { return nil }

// AMQPPublisher publishes to a topic exchange on one shared connection.
type AMQPPublisher struct {
	conn *amqp.Connection
	mu   sync.Mutex
	ch   *amqp.Channel
}

func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dialling rabbitmq: %w", err)
	}
	p := &AMQPPublisher{conn: conn}
	if _, err := p.channel(); err != nil {
		conn.Close()
		return nil, err
	}
	return p, nil
}

// channel returns the open channel, reopening it after a broker-side close.
func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil {
		return p.ch, nil
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("opening channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		Exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("declaring exchange: %w", err)
	}
	p.ch = ch
	return ch, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev AnalysisEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}
	err = ch.Publish(
		Exchange,
		ev.RoutingKey(),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    ev.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		p.ch.Close()
		p.ch = nil
		return fmt.Errorf("publishing %s: %w", ev.RoutingKey(), err)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		p.ch.Close()
		p.ch = nil
	}
	return p.conn.Close()
}

// Emit publishes ev and only logs failures; events never fail a request.
func Emit(ctx context.Context, pub Publisher, ev AnalysisEvent) {
	if pub == nil {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	if err := pub.Publish(ctx, ev); err != nil {
		log.Warn().Err(err).Str("id", ev.ID).Str("task", ev.Task).Msg("Failed to publish analysis event")
	}
}
