package pubsub

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	errPoolClosed = errors.New("channel pool closed")
	errConnClosed = errors.New("amqp connection closed")
)

// channelPool keeps a bounded number of publish channels alive so that
// concurrent callers multiplex the single connection instead of racing on
// one channel. Invariant: idle + borrowed channels <= capacity, tracked by
// permits.
type channelPool struct {
	conn       *amqp.Connection
	idle       chan *amqp.Channel
	permits    chan struct{}
	retryDelay time.Duration

	closed atomic.Bool
	openMu sync.Mutex
}

func newChannelPool(conn *amqp.Connection, capacity int, retryDelay time.Duration) *channelPool {
	if capacity <= 0 {
		capacity = 16
	}
	if retryDelay <= 0 {
		retryDelay = 50 * time.Millisecond
	}
	return &channelPool{
		conn:       conn,
		idle:       make(chan *amqp.Channel, capacity),
		permits:    make(chan struct{}, capacity),
		retryDelay: retryDelay,
	}
}

func (p *channelPool) borrow(ctx context.Context) (*amqp.Channel, error) {
	if p.closed.Load() {
		return nil, errPoolClosed
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case ch, ok := <-p.idle:
			if !ok {
				return nil, errPoolClosed
			}
			if p.conn.IsClosed() || ch.IsClosed() {
				p.discard(ch)
				continue
			}
			return ch, nil

		default:
			if p.conn.IsClosed() {
				return nil, errConnClosed
			}
			// No idle channel; grow by acquiring a permit.
			select {
			case p.permits <- struct{}{}:
				ch, err := p.open()
				if err != nil {
					<-p.permits
					time.Sleep(p.retryDelay)
					continue
				}
				return ch, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(p.retryDelay):
				// A channel may have been returned meanwhile.
			}
		}
	}
}

func (p *channelPool) giveBack(ch *amqp.Channel) {
	if ch == nil {
		return
	}
	if p.closed.Load() || p.conn.IsClosed() || ch.IsClosed() {
		p.discard(ch)
		return
	}
	select {
	case p.idle <- ch:
	default:
		p.discard(ch)
	}
}

func (p *channelPool) close() {
	if p.closed.Swap(true) {
		return
	}
	close(p.idle)
	for ch := range p.idle {
		p.discard(ch)
	}
}

// discard closes a channel and releases its permit.
func (p *channelPool) discard(ch *amqp.Channel) {
	safeClose(ch)
	select {
	case <-p.permits:
	default:
	}
}

func (p *channelPool) open() (*amqp.Channel, error) {
	p.openMu.Lock()
	defer p.openMu.Unlock()
	if p.conn.IsClosed() {
		return nil, errConnClosed
	}
	return p.conn.Channel()
}

// safeClose tolerates channels the broker already tore down.
func safeClose(ch *amqp.Channel) {
	if ch == nil {
		return
	}
	defer func() { _ = recover() }()
	_ = ch.Close()
}
