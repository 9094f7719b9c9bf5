package websocket

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/fanout/core/dispatch"
	"github.com/dmitrymomot/fanout/core/logger"
)

var _ dispatch.Subscriber[any] = (*Hub[any])(nil)

// peer serializes writes; gorilla connections allow one concurrent writer.
type peer struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (p *peer) writeJSON(v any, timeout time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	return p.conn.WriteJSON(v)
}

// Hub is a dispatch.Subscriber that forwards every message as JSON to all
// connected WebSocket peers. Peers connect through Handler.
type Hub[T any] struct {
	upgrader     websocket.Upgrader
	writeTimeout time.Duration
	logger       *slog.Logger

	mu     sync.RWMutex
	peers  map[*peer]struct{}
	closed bool
}

// Option configures a Hub.
type Option func(*hubOptions)

type hubOptions struct {
	upgrader     websocket.Upgrader
	writeTimeout time.Duration
	logger       *slog.Logger
}

func WithReadBuffer(size int) Option {
	return func(o *hubOptions) {
		o.upgrader.ReadBufferSize = size
	}
}

func WithWriteBuffer(size int) Option {
	return func(o *hubOptions) {
		o.upgrader.WriteBufferSize = size
	}
}

func WithHandshakeTimeout(timeout time.Duration) Option {
	return func(o *hubOptions) {
		o.upgrader.HandshakeTimeout = timeout
	}
}

func WithOriginCheck(fn func(r *http.Request) bool) Option {
	return func(o *hubOptions) {
		o.upgrader.CheckOrigin = fn
	}
}

func WithAllowAnyOrigin() Option {
	return func(o *hubOptions) {
		o.upgrader.CheckOrigin = func(*http.Request) bool { return true }
	}
}

// WithWriteTimeout bounds each write to a peer. Default is 5 seconds.
func WithWriteTimeout(d time.Duration) Option {
	return func(o *hubOptions) {
		if d > 0 {
			o.writeTimeout = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *hubOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New creates a Hub with no peers.
func New[T any](opts ...Option) *Hub[T] {
	o := &hubOptions{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		writeTimeout: 5 * time.Second,
		logger:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Hub[T]{
		upgrader:     o.upgrader,
		writeTimeout: o.writeTimeout,
		logger:       o.logger,
		peers:        make(map[*peer]struct{}),
	}
}

// Receive writes msg to every peer. Peers whose write fails are disconnected.
func (h *Hub[T]) Receive(msg T) {
	h.mu.RLock()
	peers := make([]*peer, 0, len(h.peers))
	for p := range h.peers {
		peers = append(peers, p)
	}
	h.mu.RUnlock()

	for _, p := range peers {
		if err := p.writeJSON(msg, h.writeTimeout); err != nil {
			h.logger.Warn("websocket write failed, dropping peer",
				logger.Component("websocket_hub"),
				slog.String("remote_addr", p.conn.RemoteAddr().String()),
				logger.Error(err))
			h.drop(p)
		}
	}
}

// Handler upgrades requests and keeps the connection as a peer until the
// client disconnects. Messages sent by clients are discarded.
func (h *Hub[T]) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.mu.RLock()
		closed := h.closed
		h.mu.RUnlock()
		if closed {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}

		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already written the error response.
			h.logger.Debug("websocket upgrade failed",
				logger.Component("websocket_hub"),
				logger.Error(err))
			return
		}

		p := &peer{conn: conn}
		if !h.add(p) {
			_ = conn.Close()
			return
		}
		defer h.drop(p)

		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	})
}

func (h *Hub[T]) add(p *peer) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.peers[p] = struct{}{}
	return true
}

func (h *Hub[T]) drop(p *peer) {
	h.mu.Lock()
	_, ok := h.peers[p]
	delete(h.peers, p)
	h.mu.Unlock()

	if ok {
		_ = p.conn.Close()
	}
}

// Peers returns the number of connected peers.
func (h *Hub[T]) Peers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Close disconnects every peer and rejects new connections.
func (h *Hub[T]) Close() error {
	h.mu.Lock()
	h.closed = true
	peers := h.peers
	h.peers = make(map[*peer]struct{})
	h.mu.Unlock()

	for p := range peers {
		p.mu.Lock()
		_ = p.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		p.mu.Unlock()
		_ = p.conn.Close()
	}
	return nil
}
