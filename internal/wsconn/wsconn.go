// Package wsconn provides a WebSocket connection with JSON helpers, keep-alive
// pings and, for dialed connections, reconnection with exponential backoff.
// Accepted (server side) connections share the same type.
package wsconn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
)

// State represents the connection state.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateReconnecting State = "reconnecting"
	StateClosed       State = "closed"
)

// ErrNotConnected is returned by Send while no connection is open.
var ErrNotConnected = errors.New("wsconn: not connected")

// Config holds WebSocket connection configuration.
type Config struct {
	URL            string
	Name           string
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	MaxReconnects  int // 0 = infinite, -1 = never reconnect
	PingInterval   time.Duration
	PongTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxMessageSize int64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(url, name string) Config {
	return Config{
		URL:            url,
		Name:           name,
		InitialBackoff: 1 * time.Second,
		MaxBackoff:     30 * time.Second,
		MaxReconnects:  0, // infinite
		PingInterval:   30 * time.Second,
		PongTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxMessageSize: 1 << 20,
	}
}

// MessageHandler receives every data message read from the connection.
type MessageHandler func(ctx context.Context, msg []byte)

// SessionHandler receives every data message read from an accepted
// connection together with the connection, so it can reply.
type SessionHandler func(ctx context.Context, session *Client, msg []byte)

// StateHandler is notified on every state transition.
type StateHandler func(state State, err error)

// Client is a WebSocket connection.
type Client struct {
	config Config

	conn   *websocket.Conn
	connMu sync.RWMutex

	state   State
	stateMu sync.RWMutex

	onMessage     MessageHandler
	onStateChange StateHandler
	handlersMu    sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc

	done      chan struct{}
	doneOnce  sync.Once
	closed    atomic.Bool
	closeOnce sync.Once

	reconnects int
}

// New creates a client that will dial config.URL on Connect.
func New(config Config) (*Client, error) {
	if config.URL == "" {
		return nil, errors.New("wsconn: URL is required")
	}
	return newClient(context.Background(), config), nil
}

func newClient(parent context.Context, config Config) *Client {
	ctx, cancel := context.WithCancel(parent)
	return &Client{
		config: config,
		state:  StateDisconnected,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Accept upgrades an HTTP request and starts reading. Accepted connections
// never reconnect; Done is closed when the peer goes away.
func Accept(w http.ResponseWriter, r *http.Request, config Config, opts *websocket.AcceptOptions, handler SessionHandler) (*Client, error) {
	conn, err := websocket.Accept(w, r, opts)
	if err != nil {
		return nil, fmt.Errorf("wsconn: accept: %w", err)
	}

	config.MaxReconnects = -1
	c := newClient(r.Context(), config)
	if handler != nil {
		c.onMessage = func(ctx context.Context, msg []byte) { handler(ctx, c, msg) }
	}
	c.attach(conn)
	return c, nil
}

// OnMessage registers the message handler.
func (c *Client) OnMessage(handler MessageHandler) {
	c.handlersMu.Lock()
	c.onMessage = handler
	c.handlersMu.Unlock()
}

// OnStateChange registers the state transition handler.
func (c *Client) OnStateChange(handler StateHandler) {
	c.handlersMu.Lock()
	c.onStateChange = handler
	c.handlersMu.Unlock()
}

// Connect dials the configured URL.
func (c *Client) Connect(ctx context.Context) error {
	c.setState(StateConnecting, nil)

	conn, err := c.dial(ctx)
	if err != nil {
		c.setState(StateDisconnected, err)
		return err
	}

	c.attach(conn)
	return nil
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, _, err := websocket.Dial(ctx, c.config.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("wsconn: dial %s: %w", c.config.URL, err)
	}
	return conn, nil
}

// attach installs conn and starts its read and ping loops.
func (c *Client) attach(conn *websocket.Conn) {
	if c.config.MaxMessageSize > 0 {
		conn.SetReadLimit(c.config.MaxMessageSize)
	}

	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()

	c.setState(StateConnected, nil)

	go c.readLoop(conn)
	if c.config.PingInterval > 0 {
		go c.pingLoop(conn)
	}
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.Read(c.ctx)
		if err != nil {
			c.handleDisconnect(conn, err)
			return
		}

		c.handlersMu.RLock()
		handler := c.onMessage
		c.handlersMu.RUnlock()

		if handler != nil {
			handler(c.ctx, data)
		}
	}
}

func (c *Client) pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(c.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(c.ctx, c.config.PongTimeout)
			err := conn.Ping(ctx)
			cancel()
			if err != nil {
				// the read loop observes the close and handles it
				_ = conn.Close(websocket.StatusGoingAway, "pong timeout")
				return
			}
		}
	}
}

func (c *Client) handleDisconnect(conn *websocket.Conn, err error) {
	c.connMu.Lock()
	if c.conn == conn {
		c.conn = nil
	}
	c.connMu.Unlock()

	if c.closed.Load() {
		return
	}

	if c.config.MaxReconnects < 0 || c.config.URL == "" {
		c.setState(StateDisconnected, err)
		c.finish()
		return
	}

	c.setState(StateReconnecting, err)
	go c.reconnect()
}

func (c *Client) reconnect() {
	backoff := c.config.InitialBackoff
	if backoff <= 0 {
		backoff = time.Second
	}

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-time.After(backoff):
		}

		conn, err := c.dial(c.ctx)
		if err == nil {
			c.reconnects = 0
			c.attach(conn)
			return
		}

		c.reconnects++
		if c.config.MaxReconnects > 0 && c.reconnects >= c.config.MaxReconnects {
			c.setState(StateDisconnected, err)
			c.finish()
			return
		}

		backoff *= 2
		if c.config.MaxBackoff > 0 && backoff > c.config.MaxBackoff {
			backoff = c.config.MaxBackoff
		}
	}
}

// Send writes a text message.
func (c *Client) Send(ctx context.Context, msg []byte) error {
	c.connMu.RLock()
	conn := c.conn
	c.connMu.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}

	if c.config.WriteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.WriteTimeout)
		defer cancel()
	}
	return conn.Write(ctx, websocket.MessageText, msg)
}

// SendJSON marshals v and writes it as a text message.
func (c *Client) SendJSON(ctx context.Context, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("wsconn: marshal: %w", err)
	}
	return c.Send(ctx, data)
}

// State returns the current connection state.
func (c *Client) State() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

// IsConnected reports whether a connection is open.
func (c *Client) IsConnected() bool {
	return c.State() == StateConnected
}

// Done is closed once the client stops for good: closed, peer gone on an
// accepted connection, or reconnects exhausted.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close gracefully closes the connection. It is safe to call more than once.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.setState(StateClosed, nil)

		c.connMu.Lock()
		conn := c.conn
		c.conn = nil
		c.connMu.Unlock()

		if conn != nil {
			_ = conn.Close(websocket.StatusNormalClosure, "")
		}
		c.cancel()
		c.finish()
	})
	return nil
}

func (c *Client) finish() {
	c.doneOnce.Do(func() { close(c.done) })
}

func (c *Client) setState(state State, err error) {
	c.stateMu.Lock()
	if c.state == StateClosed {
		c.stateMu.Unlock()
		return
	}
	c.state = state
	c.stateMu.Unlock()

	c.handlersMu.RLock()
	handler := c.onStateChange
	c.handlersMu.RUnlock()

	if handler != nil {
		handler(state, err)
	}
}
