package rabbitmq_consumer

import (
	"context"
	"fmt"
	"sync"

	"dar360-service/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageHandler processes one delivery. A nil return acks the message; an
// error nacks it without requeue.
type MessageHandler func(ctx context.Context, d amqp.Delivery) error

// ConsumerConfig configures a queue consumer.
type ConsumerConfig struct {
	rabbitmq_common.Config
	// Queue settings. An empty QueueName with DeclareQueue=true lets the
	// server generate a name.
	QueueName       string
	DeclareQueue    bool
	DurableQueue    bool
	ExclusiveQueue  bool
	AutoDeleteQueue bool
	QueueArgs       amqp.Table
	// Exchange binding. Empty ExchangeNameForBind skips binding.
	ExchangeNameForBind    string
	DeclareExchangeForBind bool
	ExchangeTypeForBind    string
	DurableExchangeForBind bool
	RoutingKeyForBind      string
	// QoS
	PrefetchCount int
	// Consumer identity
	ConsumerTag string

	Logger rabbitmq_common.Logger
}

// Consumer consumes a single queue over a channel from the shared connection.
type Consumer struct {
	config          ConsumerConfig
	connection      *amqp.Connection
	channel         *amqp.Channel
	actualQueueName string
	wg              sync.WaitGroup

	Logger rabbitmq_common.Logger
}

// NewConsumer opens a channel, declares/binds the queue per configuration and
// returns a consumer ready to Start.
func NewConsumer(cfg ConsumerConfig, connManager *rabbitmq_common.ConnectionManager) (*Consumer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("consumer: invalid base config: %w", err)
	}
	if !cfg.DeclareQueue && cfg.QueueName == "" {
		return nil, fmt.Errorf("consumer: queue name is required if DeclareQueue is false")
	}
	if cfg.ExchangeNameForBind != "" && cfg.ExchangeTypeForBind == "" && cfg.DeclareExchangeForBind {
		return nil, fmt.Errorf("consumer: exchange type is required if declaring an exchange for binding")
	}

	c := &Consumer{
		config: cfg,
		Logger: logger,
	}

	conn, ch, err := connManager.GetChannel()
	if err != nil {
		return nil, fmt.Errorf("consumer: failed to get channel from manager: %w", err)
	}
	c.connection = conn
	c.channel = ch
	c.Logger.Debug("Channel obtained from ConnectionManager")

	if err := c.setup(); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("consumer: setup failed: %w", err)
	}

	return c, nil
}

func (c *Consumer) setup() error {
	if c.config.PrefetchCount > 0 {
		c.Logger.Debug("Setting QoS", "prefetch_count", c.config.PrefetchCount)
		if err := c.channel.Qos(c.config.PrefetchCount, 0, false); err != nil {
			return fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	c.actualQueueName = c.config.QueueName
	if c.config.DeclareQueue {
		c.Logger.Debug("Declaring queue",
			"name", c.config.QueueName,
			"durable", c.config.DurableQueue,
			"exclusive", c.config.ExclusiveQueue,
		)
		q, err := c.channel.QueueDeclare(
			c.config.QueueName,
			c.config.DurableQueue,
			c.config.AutoDeleteQueue,
			c.config.ExclusiveQueue,
			false, // no-wait
			c.config.QueueArgs,
		)
		if err != nil {
			return fmt.Errorf("failed to declare queue '%s': %w", c.config.QueueName, err)
		}
		c.actualQueueName = q.Name
	}

	if c.config.DeclareExchangeForBind {
		c.Logger.Debug("Declaring exchange for binding",
			"name", c.config.ExchangeNameForBind,
			"type", c.config.ExchangeTypeForBind,
		)
		err := c.channel.ExchangeDeclare(
			c.config.ExchangeNameForBind,
			c.config.ExchangeTypeForBind,
			c.config.DurableExchangeForBind,
			false, // auto-delete
			false, // internal
			false, // no-wait
			nil,
		)
		if err != nil {
			return fmt.Errorf("failed to declare exchange '%s' for binding: %w", c.config.ExchangeNameForBind, err)
		}
	}

	if c.config.ExchangeNameForBind != "" {
		c.Logger.Debug("Binding queue to exchange",
			"queue", c.actualQueueName,
			"exchange", c.config.ExchangeNameForBind,
			"routing_key", c.config.RoutingKeyForBind,
		)
		err := c.channel.QueueBind(
			c.actualQueueName,
			c.config.RoutingKeyForBind,
			c.config.ExchangeNameForBind,
			false, // no-wait
			nil,
		)
		if err != nil {
			return fmt.Errorf("failed to bind queue '%s': %w", c.actualQueueName, err)
		}
	}

	return nil
}

// Start consumes deliveries until ctx is cancelled or the channel closes.
// It blocks; run it in a goroutine.
func (c *Consumer) Start(ctx context.Context, handler MessageHandler) error {
	deliveries, err := c.channel.Consume(
		c.actualQueueName,
		c.config.ConsumerTag,
		false, // auto-ack: we ack manually after the handler succeeds
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("consumer: failed to start consuming '%s': %w", c.actualQueueName, err)
	}

	c.Logger.Info("Consumer started", "queue", c.actualQueueName)

	for {
		select {
		case <-ctx.Done():
			c.Logger.Info("Consumer context cancelled, stopping", "queue", c.actualQueueName)
			c.wg.Wait()
			return nil
		case d, ok := <-deliveries:
			if !ok {
				c.Logger.Warn("Delivery channel closed", "queue", c.actualQueueName)
				c.wg.Wait()
				return fmt.Errorf("consumer: delivery channel closed for queue '%s'", c.actualQueueName)
			}
			c.wg.Add(1)
			func() {
				defer c.wg.Done()
				if err := handler(ctx, d); err != nil {
					c.Logger.Error(err, "Handler failed, rejecting message",
						"queue", c.actualQueueName,
						"routing_key", d.RoutingKey,
					)
					_ = d.Nack(false, false)
					return
				}
				_ = d.Ack(false)
			}()
		}
	}
}

// Close waits for in-flight handlers and closes the channel.
func (c *Consumer) Close() error {
	c.wg.Wait()
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			return fmt.Errorf("consumer: failed to close channel: %w", err)
		}
		c.channel = nil
	}
	return nil
}
