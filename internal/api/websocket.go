package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ferment8/brauhaus-core/internal/brewhouse"
	"github.com/ferment8/brauhaus-core/internal/infrastructure/config"
	"github.com/ferment8/brauhaus-core/internal/infrastructure/logging"
)

// outboundBuffer bounds each connection's send queue. The control loop
// broadcasts once per tick, so a full queue means the client has stalled
// for minutes; we drop frames rather than hold up the fan-out.
const outboundBuffer = 64

// envelope is the frame pushed to every connected operator client.
type envelope struct {
	Event string `json:"event"`
	Time  string `json:"time"`
	Data  any    `json:"data"`
}

// Hub fans brewhouse events out to connected WebSocket clients.
//
// It satisfies brewhouse.Broadcaster: the control loop hands it
// snapshots, state changes and permission flips every tick. Broadcast
// never blocks the caller; stalled clients lose frames instead.
//
// The stream is push-only. Clients do not send commands over the
// socket (mutations go through the REST endpoints); inbound frames are
// read solely to keep the connection's deadline fresh.
type Hub struct {
	cfg    config.WebSocketConfig
	logger *logging.Logger

	mu    sync.RWMutex
	conns map[*wsConn]struct{}
}

// wsConn is one connected client. filter is nil when the client wants
// every event, otherwise the set of event names it asked for via the
// events query parameter.
type wsConn struct {
	sock   *websocket.Conn
	out    chan []byte
	filter map[string]struct{}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		// Origin checking is handled by CORS middleware
		return true
	},
}

// NewHub creates an empty hub. It is created before the brewhouse so
// the control loop can broadcast from its first tick; the API server
// adopts it and runs it.
func NewHub(cfg config.WebSocketConfig, logger *logging.Logger) *Hub {
	return &Hub{
		cfg:    cfg,
		logger: logger,
		conns:  make(map[*wsConn]struct{}),
	}
}

// Run blocks until ctx is cancelled, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		close(c.out)
		c.sock.Close()
		delete(h.conns, c)
	}
}

// Broadcast pushes an event to every client whose filter accepts it.
// Part of the brewhouse.Broadcaster contract: it must return promptly,
// so the frame is marshalled once and queued without blocking.
func (h *Hub) Broadcast(event string, payload any) {
	frame, err := json.Marshal(envelope{
		Event: event,
		Time:  time.Now().UTC().Format(time.RFC3339),
		Data:  payload,
	})
	if err != nil {
		h.logger.Error("marshalling websocket event", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.conns {
		if c.wants(event) {
			select {
			case c.out <- frame:
			default:
				// Stalled client; drop the frame.
			}
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// attach registers a connection with the hub.
func (h *Hub) attach(c *wsConn) {
	h.mu.Lock()
	h.conns[c] = struct{}{}
	n := len(h.conns)
	h.mu.Unlock()
	h.logger.Debug("websocket client connected", "clients", n)
}

// detach removes a connection. Only the goroutine that wins the map
// removal closes the out channel, so shutdown and read-pump exit cannot
// double-close.
func (h *Hub) detach(c *wsConn) {
	h.mu.Lock()
	_, present := h.conns[c]
	delete(h.conns, c)
	n := len(h.conns)
	h.mu.Unlock()

	if present {
		close(c.out)
	}
	h.logger.Debug("websocket client disconnected", "clients", n)
}

// wants reports whether the connection's filter accepts the event.
func (c *wsConn) wants(event string) bool {
	if c.filter == nil {
		return true
	}
	_, ok := c.filter[event]
	return ok
}

// handleWebSocket upgrades the connection and streams brewhouse events.
//
// Authentication is a token query parameter carrying the same JWT the
// REST endpoints take as a Bearer header; browsers cannot set headers
// on WebSocket upgrades. An optional events parameter (comma-separated
// event names) narrows the stream; absent means everything.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeUnauthorized(w, "token query parameter is required")
		return
	}
	if _, err := s.auth.Verify(token); err != nil {
		writeUnauthorized(w, "invalid or expired token")
		return
	}

	var filter map[string]struct{}
	if raw := r.URL.Query().Get("events"); raw != "" {
		filter = make(map[string]struct{})
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				filter[name] = struct{}{}
			}
		}
	}

	sock, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	c := &wsConn{
		sock:   sock,
		out:    make(chan []byte, outboundBuffer),
		filter: filter,
	}
	s.hub.attach(c)

	// Seed the client with the current state so it need not wait a tick.
	if c.wants(brewhouse.EventSnapshot) {
		if frame, err := json.Marshal(envelope{
			Event: brewhouse.EventSnapshot,
			Time:  time.Now().UTC().Format(time.RFC3339),
			Data:  s.brewer.Snapshot(),
		}); err == nil {
			c.out <- frame
		}
	}

	go c.writePump(s.wsCfg)
	go c.readPump(s.hub, s.wsCfg)
}

// readPump drains inbound frames. Payloads are discarded; reads exist
// to detect closure and to refresh the deadline alongside pongs.
func (c *wsConn) readPump(h *Hub, cfg config.WebSocketConfig) {
	defer func() {
		h.detach(c)
		c.sock.Close()
	}()

	deadline := time.Duration(cfg.PingInterval+cfg.PongTimeout) * time.Second
	c.sock.SetReadLimit(int64(cfg.MaxMessageSize))
	//nolint:errcheck // Best-effort deadline on connection setup
	c.sock.SetReadDeadline(time.Now().Add(deadline))
	c.sock.SetPongHandler(func(string) error {
		return c.sock.SetReadDeadline(time.Now().Add(deadline))
	})

	for {
		if _, _, err := c.sock.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read error", "error", err)
			}
			return
		}
		//nolint:errcheck // Best-effort deadline reset
		c.sock.SetReadDeadline(time.Now().Add(deadline))
	}
}

// writePump drains the out channel to the socket and keeps the
// connection alive with protocol pings.
func (c *wsConn) writePump(cfg config.WebSocketConfig) {
	ticker := time.NewTicker(time.Duration(cfg.PingInterval) * time.Second)
	defer func() {
		ticker.Stop()
		c.sock.Close()
	}()

	writeWait := time.Duration(cfg.PongTimeout) * time.Second

	for {
		select {
		case frame, ok := <-c.out:
			if !ok {
				// Hub detached us.
				//nolint:errcheck // Best-effort close message
				c.sock.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			//nolint:errcheck // Best-effort deadline; write error caught below
			c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.sock.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			//nolint:errcheck // Best-effort deadline; ping error caught below
			c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.sock.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
