// Package events publishes and consumes ledger events over AMQP. The
// broker is optional: the dashboard works without one, the mirror
// worker needs it.
package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// Circuit breaker states for the publish path.
const (
	StateClosed int32 = iota
	StateOpen
	StateHalfOpen
)

const (
	maxFailures = 5
	openTimeout = 60 * time.Second
)

var errDeliveryChannelClosed = errors.New("delivery channel closed")

type Client struct {
	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel

	url          string
	exchangeName string
	queueName    string

	// Circuit breaker state, shared by every publisher goroutine.
	failureCount int64
	lastFailure  time.Time
	state        int32
}

func NewClient(url, exchangeName, queueName string) (*Client, error) {
	client := &Client{
		url:          url,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := client.connect(); err != nil {
		return nil, err
	}

	return client, nil
}

// connect dials the broker and declares the exchange/queue topology,
// replacing any previous connection.
func (c *Client) connect() error {
	conn, err := amqp091.Dial(c.url)
	if err != nil {
		return fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	if err := setupTopology(channel, c.exchangeName, c.queueName); err != nil {
		channel.Close()
		conn.Close()
		return fmt.Errorf("setup exchange and queue: %w", err)
	}

	c.mu.Lock()
	old := c.conn
	c.conn = conn
	c.channel = channel
	c.mu.Unlock()

	if old != nil {
		old.Close()
	}

	return nil
}

func setupTopology(channel *amqp091.Channel, exchangeName, queueName string) error {
	err := channel.ExchangeDeclare(
		exchangeName, // name
		"direct",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// Routing key equals the queue name on a direct exchange.
	err = channel.QueueBind(queueName, queueName, exchangeName, false, nil)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

func (c *Client) currentChannel() *amqp091.Channel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.channel
}

// exponentialBackoff returns the wait before reconnect attempt n,
// doubling from 1s and capped at 30s.
func exponentialBackoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt > 5 {
		attempt = 5
	}
	delay := time.Second * (1 << uint(attempt))
	if delay > 30*time.Second {
		delay = 30 * time.Second
	}
	return delay
}

// isConnectionError reports whether err looks like a lost broker
// connection, which a reconnect can cure, rather than a logic error.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, amqp091.ErrClosed) || errors.Is(err, errDeliveryChannelClosed) {
		return true
	}

	msg := err.Error()
	for _, fragment := range []string{
		"connection refused",
		"connection closed",
		"EOF",
		"broken pipe",
		"use of closed network connection",
	} {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}

// isCircuitOpen reports whether publishes should be refused, moving
// the breaker to half-open once the cooldown has passed.
func (c *Client) isCircuitOpen() bool {
	if atomic.LoadInt32(&c.state) != StateOpen {
		return false
	}
	if time.Since(c.lastFailure) > openTimeout {
		atomic.StoreInt32(&c.state, StateHalfOpen)
		return false
	}
	return true
}

func (c *Client) recordSuccess() {
	atomic.StoreInt64(&c.failureCount, 0)
	atomic.StoreInt32(&c.state, StateClosed)
}

func (c *Client) recordFailure() {
	failures := atomic.AddInt64(&c.failureCount, 1)
	c.lastFailure = time.Now()
	if failures >= maxFailures {
		atomic.StoreInt32(&c.state, StateOpen)
	}
}

// PublishRecordAppended publishes a record-appended event. Repeated
// failures open the circuit breaker so a dead broker cannot stall the
// append path on every request.
func (c *Client) PublishRecordAppended(ctx context.Context, msg *RecordAppendedMessage) error {
	if c.isCircuitOpen() {
		return fmt.Errorf("circuit breaker is open, refusing to publish")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.currentChannel().PublishWithContext(
		ctx,
		c.exchangeName,
		c.queueName,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		c.recordFailure()
		return fmt.Errorf("publish message: %w", err)
	}
	c.recordSuccess()

	slog.InfoContext(ctx, "Published record appended event",
		"ref", msg.Ref,
		"category", msg.Category,
		"amount_cents", msg.AmountCents,
		"exchange", c.exchangeName,
		"queue", c.queueName)

	return nil
}

// ConsumeRecordAppended consumes record-appended events until the
// context is cancelled. A lost broker connection is redialed with
// exponential backoff instead of surfacing as a fatal error; handler
// errors nack-requeue the delivery.
func (c *Client) ConsumeRecordAppended(ctx context.Context, handler func(*RecordAppendedMessage) error) error {
	attempt := 0
	for {
		err := c.consumeOnce(ctx, handler)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if !isConnectionError(err) {
			return err
		}

		delay := exponentialBackoff(attempt)
		attempt++
		slog.WarnContext(ctx, "Broker connection lost, reconnecting",
			"error", err,
			"attempt", attempt,
			"retry_in", delay.String())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		if err := c.connect(); err != nil {
			slog.WarnContext(ctx, "Reconnect attempt failed", "error", err, "attempt", attempt)
			continue
		}

		slog.InfoContext(ctx, "Reconnected to broker", "queue", c.queueName)
		attempt = 0
	}
}

func (c *Client) consumeOnce(ctx context.Context, handler func(*RecordAppendedMessage) error) error {
	msgs, err := c.currentChannel().Consume(
		c.queueName,
		"",    // consumer
		false, // auto-ack (manual ack below)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	slog.InfoContext(ctx, "Started consuming record events", "queue", c.queueName)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping event consumption", "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return errDeliveryChannelClosed
			}

			msg, err := RecordAppendedMessageFromJSON(delivery.Body)
			if err != nil {
				slog.ErrorContext(ctx, "Failed to unmarshal event", "error", err)
				delivery.Nack(false, false) // reject, don't requeue
				continue
			}

			if err := handler(msg); err != nil {
				slog.ErrorContext(ctx, "Failed to handle event",
					"error", err,
					"ref", msg.Ref)
				delivery.Nack(false, true) // reject and requeue
				continue
			}

			delivery.Ack(false)
			slog.InfoContext(ctx, "Processed record event", "ref", msg.Ref)
		}
	}
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
