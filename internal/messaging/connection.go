package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fstore-be/internal/logger"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	OrdersExchange    = "orders_topic"
	OrderEventsQueue  = "order_events_queue"
	orderEventsRoute  = "order.#"
	defaultMaxRetries = 5
	defaultBackoff    = 2 * time.Second
)

var (
	ErrNotConnected     = errors.New("rabbitmq not connected")
	ErrConnectionClosed = errors.New("rabbitmq connection closed")
)

type dialFunc func(url string) (*amqp.Connection, *amqp.Channel, error)

// Connection wraps a RabbitMQ connection and channel. A dropped connection
// or channel is re-dialled in the background; callers never wait for it.
type Connection struct {
	url        string
	maxRetries int
	backoff    time.Duration
	dial       dialFunc

	// ctx lives until Close and bounds background reconnects.
	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	conn         *amqp.Connection
	channel      *amqp.Channel
	reconnecting bool
	closed       bool
}

func newConnection(url string) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		url:        url,
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
		dial:       dialBroker,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Dial connects to the broker, retrying with a linear backoff.
func Dial(url string) (*Connection, error) {
	return DialContext(context.Background(), url)
}

// DialContext is Dial with the retry waits bounded by ctx.
func DialContext(ctx context.Context, url string) (*Connection, error) {
	c := newConnection(url)
	conn, ch, err := c.connect(ctx)
	if err != nil {
		c.cancel()
		return nil, fmt.Errorf("failed to establish initial connection: %w", err)
	}
	c.conn, c.channel = conn, ch
	return c, nil
}

func (c *Connection) connect(ctx context.Context) (*amqp.Connection, *amqp.Channel, error) {
	log := logger.L().With(zap.String("component", "rabbitmq"))
	var err error

	for i := 0; i < c.maxRetries; i++ {
		conn, ch, dialErr := c.dial(c.url)
		if dialErr == nil {
			return conn, ch, nil
		}
		err = dialErr

		if i == c.maxRetries-1 {
			break
		}
		wait := time.Duration(i+1) * c.backoff
		log.Warn("failed to connect to rabbitmq, retrying",
			zap.Duration("wait", wait),
			zap.Int("attempt", i+1),
			zap.Error(err),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, nil, fmt.Errorf("rabbitmq connect aborted after %d attempts: %w", i+1, ctx.Err())
		case <-timer.C:
		}
	}

	return nil, nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", c.maxRetries, err)
}

// dialBroker opens a connection and channel and declares the topology.
// Nothing is left open when it fails.
func dialBroker(url string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		closeQuietly("connection", conn)
		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := setupTopology(ch); err != nil {
		closeQuietly("channel", ch)
		closeQuietly("connection", conn)
		return nil, nil, err
	}
	return conn, ch, nil
}

func setupTopology(ch *amqp.Channel) error {
	err := ch.ExchangeDeclare(
		OrdersExchange, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s exchange: %w", OrdersExchange, err)
	}

	_, err = ch.QueueDeclare(
		OrderEventsQueue, // name
		true,             // durable
		false,            // delete when unused
		false,            // exclusive
		false,            // no-wait
		nil,              // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", OrderEventsQueue, err)
	}

	if err = ch.QueueBind(OrderEventsQueue, orderEventsRoute, OrdersExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", OrderEventsQueue, err)
	}

	return nil
}

func (c *Connection) usable() bool {
	return c.conn != nil && !c.conn.IsClosed() &&
		c.channel != nil && !c.channel.IsClosed()
}

// Channel returns the live channel. When the connection or the channel is
// gone it starts a background reconnect and returns ErrNotConnected at once.
func (c *Connection) Channel(ctx context.Context) (*amqp.Channel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrConnectionClosed
	}
	if c.usable() {
		return c.channel, nil
	}
	if !c.reconnecting {
		c.reconnecting = true
		go c.reconnect()
	}
	return nil, ErrNotConnected
}

func (c *Connection) reconnect() {
	log := logger.L().With(zap.String("component", "rabbitmq"))

	c.mu.Lock()
	c.release()
	c.mu.Unlock()

	conn, ch, err := c.connect(c.ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.reconnecting = false

	if err != nil {
		log.Error("rabbitmq reconnect failed", zap.Error(err))
		return
	}
	if c.closed {
		closeQuietly("channel", ch)
		closeQuietly("connection", conn)
		return
	}
	c.conn, c.channel = conn, ch
	log.Info("rabbitmq reconnected")
}

// Close stops any reconnect in flight and closes the channel and connection.
func (c *Connection) Close() error {
	c.cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return c.release()
}

// release drops the current channel and connection. Callers hold c.mu.
func (c *Connection) release() error {
	if c.channel != nil {
		closeQuietly("channel", c.channel)
		c.channel = nil
	}
	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		if err != nil && !errors.Is(err, amqp.ErrClosed) {
			return err
		}
	}
	return nil
}

type closer interface{ Close() error }

func closeQuietly(what string, cl closer) {
	if err := cl.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		logger.L().Warn("failed to close rabbitmq "+what,
			zap.String("component", "rabbitmq"),
			zap.Error(err),
		)
	}
}
