package realtime

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 20 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	readLimit  = 16 << 10
)

var ErrHubClosed = errors.New("realtime: hub closed")

// Envelope: кадр, отправляемый клиенту.
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type conn struct {
	ws   *websocket.Conn
	mu   sync.Mutex
	done chan struct{}
	once sync.Once
}

// Hub: реестр websocket-соединений по id пользователя.
// Создаётся при старте сервера через NewHub и закрывается через Close при остановке.
type Hub struct {
	upgrader websocket.Upgrader
	log      *slog.Logger

	mu     sync.RWMutex
	conns  map[uint64]map[*conn]struct{}
	closed bool
	wg     sync.WaitGroup
}

// NewHub создаёт реестр. allowedOrigins: "*" или список Origin; пустой список разрешает любой.
func NewHub(allowedOrigins []string, log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		log:   log.With("component", "realtime"),
		conns: make(map[uint64]map[*conn]struct{}),
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[strings.TrimRight(strings.ToLower(o), "/")] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[strings.TrimRight(strings.ToLower(origin), "/")]
		return ok
	}
}

// ServeWS апгрейдит запрос и регистрирует соединение под userID.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID uint64) {
	h.mu.RLock()
	closed := h.closed
	h.mu.RUnlock()
	if closed {
		http.Error(w, ErrHubClosed.Error(), http.StatusServiceUnavailable)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("ws upgrade failed", "user_id", userID, "err", err)
		return
	}
	c := &conn{ws: ws, done: make(chan struct{})}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = ws.Close()
		return
	}
	set, ok := h.conns[userID]
	if !ok {
		set = make(map[*conn]struct{})
		h.conns[userID] = set
	}
	set[c] = struct{}{}
	h.wg.Add(2)
	h.mu.Unlock()

	h.log.Info("ws connected", "user_id", userID)

	go h.pingLoop(userID, c)
	go h.readLoop(userID, c)
}

func (h *Hub) pingLoop(userID uint64, c *conn) {
	defer h.wg.Done()
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			h.write(userID, c, func(ws *websocket.Conn) error {
				return ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			})
		}
	}
}

func (h *Hub) readLoop(userID uint64, c *conn) {
	defer h.wg.Done()
	defer h.remove(userID, c)

	c.ws.SetReadLimit(readLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		mt, message, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
		if mt == websocket.TextMessage && strings.EqualFold(strings.TrimSpace(string(message)), "ping") {
			h.write(userID, c, func(ws *websocket.Conn) error {
				return ws.WriteMessage(websocket.TextMessage, []byte("pong"))
			})
		}
	}
}

func (h *Hub) remove(userID uint64, c *conn) {
	c.once.Do(func() { close(c.done) })
	_ = c.ws.Close()
	h.mu.Lock()
	if set, ok := h.conns[userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.conns, userID)
		}
	}
	h.mu.Unlock()
}

func (h *Hub) write(userID uint64, c *conn, fn func(*websocket.Conn) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := fn(c.ws); err != nil {
		h.log.Warn("ws write failed", "user_id", userID, "err", err)
		// readLoop завершится на закрытом соединении и уберёт его из реестра.
		_ = c.ws.Close()
	}
}

func (h *Hub) snapshot(userID uint64) []*conn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	set := h.conns[userID]
	out := make([]*conn, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}

// Push отправляет событие всем соединениям пользователя. Возвращает число адресатов.
func (h *Hub) Push(userID uint64, eventType string, data interface{}) int {
	conns := h.snapshot(userID)
	if len(conns) == 0 {
		return 0
	}
	body, err := json.Marshal(Envelope{Type: eventType, Data: data})
	if err != nil {
		h.log.Error("ws marshal failed", "type", eventType, "err", err)
		return 0
	}
	for _, c := range conns {
		h.write(userID, c, func(ws *websocket.Conn) error {
			return ws.WriteMessage(websocket.TextMessage, body)
		})
	}
	return len(conns)
}

// Online reports whether the user has at least one open connection.
func (h *Hub) Online(userID uint64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID]) > 0
}

// Close закрывает все соединения и ждёт завершения их горутин. Повторный вызов безопасен.
func (h *Hub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	var all []*conn
	for _, set := range h.conns {
		for c := range set {
			all = append(all, c)
		}
	}
	h.mu.Unlock()

	for _, c := range all {
		c.mu.Lock()
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
			time.Now().Add(time.Second))
		c.mu.Unlock()
		_ = c.ws.Close()
	}
	h.wg.Wait()
	h.log.Info("hub closed", "connections", len(all))
	return nil
}
