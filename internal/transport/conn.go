package transport

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MessageHandler is called for every inbound message, one at a time and in
// arrival order.
type MessageHandler func(ctx context.Context, msg []byte)

type Config struct {
	// SendBuffer is the number of outbound frames queued before Send drops.
	SendBuffer   int
	ReadLimit    int64
	PingInterval time.Duration
	WriteTimeout time.Duration
}

var DefaultConfig = Config{
	SendBuffer:   256,
	ReadLimit:    1 << 20,
	PingInterval: 30 * time.Second,
	WriteTimeout: 10 * time.Second,
}

// Conn is a single client websocket. Send and Close are safe for concurrent use.
type Conn struct {
	id     string
	conn   *websocket.Conn
	cfg    Config
	send   chan []byte
	logger *zap.SugaredLogger

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	done      chan struct{}

	mu          sync.Mutex
	closeReason string
}

func NewConn(parent context.Context, logger *zap.SugaredLogger, conn *websocket.Conn, cfg Config) *Conn {
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(parent)
	if cfg.ReadLimit > 0 {
		conn.SetReadLimit(cfg.ReadLimit)
	}

	return &Conn{
		id:     id,
		conn:   conn,
		cfg:    cfg,
		send:   make(chan []byte, cfg.SendBuffer),
		logger: logger.With("connId", id),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

func (c *Conn) ID() string {
	return c.id
}

// Context is cancelled once the connection starts closing.
func (c *Conn) Context() context.Context {
	return c.ctx
}

// Run pumps messages until the connection closes. It blocks.
func (c *Conn) Run(onMessage MessageHandler) {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.writePump()
	}()

	c.readPump(onMessage)
	c.Close("")
	wg.Wait()
	close(c.done)
}

func (c *Conn) readPump(onMessage MessageHandler) {
	// Reads end when the write pump completes the close handshake.
	readCtx := context.WithoutCancel(c.ctx)
	for {
		typ, r, err := c.conn.Reader(readCtx)
		if err != nil {
			if c.ctx.Err() == nil && websocket.CloseStatus(err) == -1 {
				c.logger.Debugw("read failed", "error", err)
			}
			return
		}
		if typ != websocket.MessageText && typ != websocket.MessageBinary {
			continue
		}

		msg, err := io.ReadAll(r)
		if err != nil {
			c.logger.Warnw("failed to read message", "error", err)
			return
		}
		onMessage(c.ctx, msg)
	}
}

func (c *Conn) writePump() {
	var ping <-chan time.Time
	if c.cfg.PingInterval > 0 {
		ticker := time.NewTicker(c.cfg.PingInterval)
		defer ticker.Stop()
		ping = ticker.C
	}

	for {
		select {
		case frame := <-c.send:
			if err := c.write(frame); err != nil {
				c.logger.Debugw("write failed", "error", err)
				c.Close("")
				return
			}
		case <-ping:
			ctx, cancel := c.writeContext()
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				c.logger.Debugw("ping failed", "error", err)
				c.Close("")
				return
			}
		case <-c.ctx.Done():
			c.mu.Lock()
			reason := c.closeReason
			c.mu.Unlock()
			_ = c.conn.Close(websocket.StatusNormalClosure, reason)
			return
		}
	}
}

func (c *Conn) writeContext() (context.Context, context.CancelFunc) {
	if c.cfg.WriteTimeout > 0 {
		return context.WithTimeout(c.ctx, c.cfg.WriteTimeout)
	}
	return context.WithCancel(c.ctx)
}

func (c *Conn) write(frame []byte) error {
	ctx, cancel := c.writeContext()
	defer cancel()
	return c.conn.Write(ctx, websocket.MessageText, frame)
}

// Send queues frame without blocking. A full buffer drops the frame.
func (c *Conn) Send(frame []byte) bool {
	if c.ctx.Err() != nil {
		return false
	}
	select {
	case c.send <- frame:
		return true
	default:
		c.logger.Warnw("send buffer full, dropping frame")
		return false
	}
}

// Close starts shutting the connection down. Only the first reason is kept.
func (c *Conn) Close(reason string) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closeReason = reason
		c.mu.Unlock()
		c.cancel()
	})
}

// Done is closed once both pumps have stopped.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}
