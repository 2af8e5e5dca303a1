package websocketPkg

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

// Hub pushes server-side notification payloads to connected clients. A user
// may hold several connections (phone and browser) at once.
type IHub interface {
	Serve() fiber.Handler
	Push(userID string, payload interface{})
	CloseAll()
}

type hub struct {
	log   *logrus.Logger
	mu    sync.RWMutex
	conns map[string]map[*websocket.Conn]struct{}
}

func NewHub(log *logrus.Logger) IHub {
	return &hub{
		log:   log,
		conns: make(map[string]map[*websocket.Conn]struct{}),
	}
}

// UpgradeRequired rejects plain HTTP requests on websocket routes.
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (h *hub) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals("user_id").(string)
		if userID == "" {
			conn.Close()
			return
		}

		h.register(userID, conn)
		defer h.unregister(userID, conn)

		// Read loop exists only to detect the close frame.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}

func (h *hub) Push(userID string, payload interface{}) {
	h.mu.RLock()
	targets := make([]*websocket.Conn, 0, len(h.conns[userID]))
	for conn := range h.conns[userID] {
		targets = append(targets, conn)
	}
	h.mu.RUnlock()

	for _, conn := range targets {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(payload); err != nil {
			h.log.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Warn("Websocket push failed, dropping connection")
			h.unregister(userID, conn)
			conn.Close()
		}
	}
}

func (h *hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, conns := range h.conns {
		for conn := range conns {
			conn.Close()
		}
		delete(h.conns, userID)
	}
}

func (h *hub) register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*websocket.Conn]struct{})
	}
	h.conns[userID][conn] = struct{}{}
}

func (h *hub) unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.conns[userID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.conns, userID)
		}
	}
}
