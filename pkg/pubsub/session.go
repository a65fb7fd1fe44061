// Package pubsub owns the RabbitMQ side of the bridge: connection
// lifecycle, the topic exchange, and confirmed publishes. Nothing else in
// the repository touches the broker.
package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/grobertson/kryten-cli/pkg/schemas/common"
)

var (
	ErrNotConnected = errors.New("session not connected")
	ErrNacked       = errors.New("message rejected by broker")
)

// Config carries the bus parameters. They come from the config file
// unchanged; Dialer is an injection seam for tests.
type Config struct {
	URL                string `json:"url"`
	Exchange           string `json:"exchange"`
	ConnTimeoutSeconds int    `json:"conn_timeout_seconds"`
	PublishPoolSize    int    `json:"publish_pool_size"`
	PoolRetryDelayMs   int    `json:"pool_retry_delay_ms"`

	Dialer func(ctx context.Context, url string) (*amqp.Connection, error) `json:"-"`
}

// Session is a live connection to the bus. One per process invocation.
type Session struct {
	conn     *amqp.Connection
	pool     *channelPool
	exchange string
	logger   *slog.Logger

	closed atomic.Bool
}

// Connect dials the broker once and declares the topic exchange. It does
// not retry: a dial failure is terminal and retry policy belongs to the
// caller.
func Connect(ctx context.Context, cfg Config, logger *slog.Logger) (*Session, error) {
	const op = "pubsub.Connect"

	if logger == nil {
		logger = slog.Default()
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("bus URL is required")
	}
	if cfg.Exchange == "" {
		return nil, fmt.Errorf("bus exchange is required")
	}

	if u, err := url.Parse(cfg.URL); err == nil {
		logger.With("op", op).Debug("connecting to bus", slog.String("host", u.Host))
	}

	// amqp dialing has no ctx; enforce a time boundary before attempting.
	timeoutSec := cfg.ConnTimeoutSeconds
	if timeoutSec <= 0 {
		timeoutSec = 30
	}
	dialDeadline := time.Now().Add(time.Duration(timeoutSec) * time.Second)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(dialDeadline) {
		dialDeadline = ctxDeadline
	}
	if time.Now().After(dialDeadline) {
		return nil, fmt.Errorf("context deadline exceeded before connection attempt")
	}

	dial := cfg.Dialer
	if dial == nil {
		dial = func(_ context.Context, u string) (*amqp.Connection, error) { return amqp.Dial(u) }
	}
	conn, err := dial(ctx, cfg.URL)
	if err != nil {
		logger.With("op", op).Error("dial failed", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to bus: %w", err)
	}

	s := &Session{
		conn:     conn,
		exchange: cfg.Exchange,
		logger:   logger,
	}

	// Declare the exchange once on a throwaway channel.
	ch, err := conn.Channel()
	if err != nil {
		s.Disconnect()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		s.Disconnect()
		return nil, fmt.Errorf("declare exchange %q: %w", cfg.Exchange, err)
	}
	_ = ch.Close()

	retryDelay := time.Duration(cfg.PoolRetryDelayMs) * time.Millisecond
	s.pool = newChannelPool(conn, cfg.PublishPoolSize, retryDelay)

	logger.With("op", op).Debug("session ready", slog.String("exchange", cfg.Exchange))
	return s, nil
}

// Publish marshals the envelope and publishes it persistently to the
// session's exchange under the given routing key. It returns once the
// broker has confirmed the message, or with an error if the broker nacks
// it. Safe for concurrent callers.
func (s *Session) Publish(ctx context.Context, key string, env common.Envelope) error {
	if s == nil || s.conn == nil || s.closed.Load() {
		return ErrNotConnected
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	ch, err := s.pool.borrow(ctx)
	if err != nil {
		return fmt.Errorf("borrow channel: %w", err)
	}
	defer s.pool.giveBack(ch)

	// Confirm mode is idempotent on a fresh channel.
	if err := ch.Confirm(false); err != nil {
		return fmt.Errorf("confirm mode: %w", err)
	}

	correlationID := env.Meta.ID
	if env.Meta.CorrelationID != nil {
		correlationID = *env.Meta.CorrelationID
	}
	appID := ""
	if env.Meta.Producer != nil {
		appID = *env.Meta.Producer
	}

	confirmation, err := ch.PublishWithDeferredConfirmWithContext(ctx, s.exchange, key, false, false, amqp.Publishing{
		ContentType:   "application/json",
		Body:          body,
		DeliveryMode:  amqp.Persistent,
		MessageId:     env.Meta.ID,
		CorrelationId: correlationID,
		Type:          env.Meta.Type,
		Timestamp:     env.Meta.Time,
		AppId:         appID,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("await confirm for %s: %w", key, err)
	}
	if !acked {
		return fmt.Errorf("publish %s: %w", key, ErrNacked)
	}

	s.logger.Debug("published", slog.String("key", key), slog.String("exchange", s.exchange))
	return nil
}

// Disconnect releases the connection. Idempotent, nil-safe, and safe to
// call after a failed connect.
func (s *Session) Disconnect() {
	if s == nil {
		return
	}
	if s.closed.Swap(true) {
		return
	}
	if s.pool != nil {
		s.pool.close()
	}
	if s.conn != nil {
		_ = s.conn.Close()
	}
}
