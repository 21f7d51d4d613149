// Package notify pushes notification toasts to browser sessions over websocket.
package notify

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/adb-reso/adb-reso-go/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeTimeout = 5 * time.Second

// Hub 按会话分发提示
type Hub struct {
	logger      *logrus.Logger
	upgrader    websocket.Upgrader
	clients     map[string]map[*websocket.Conn]struct{}
	clientMutex sync.RWMutex
	broadcast   chan domain.Notification
}

// NewHub 创建提示分发器
func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients:   make(map[string]map[*websocket.Conn]struct{}),
		broadcast: make(chan domain.Notification, 100),
	}
}

// Run 分发循环，ctx 取消后关闭所有连接
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case n := <-h.broadcast:
			h.deliver(n)
		}
	}
}

// Publish 非阻塞投递，队列满时丢弃
func (h *Hub) Publish(n domain.Notification) {
	if n.SessionID == "" {
		return
	}
	select {
	case h.broadcast <- n:
	default:
		h.logger.WithField("session_id", n.SessionID).Warn("Notification queue full, dropping message")
	}
}

// Subscribers 会话当前连接数
func (h *Hub) Subscribers(sessionID string) int {
	h.clientMutex.RLock()
	defer h.clientMutex.RUnlock()
	return len(h.clients[sessionID])
}

func (h *Hub) deliver(n domain.Notification) {
	h.clientMutex.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients[n.SessionID]))
	for conn := range h.clients[n.SessionID] {
		conns = append(conns, conn)
	}
	h.clientMutex.RUnlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(n); err != nil {
			h.logger.WithError(err).WithField("session_id", n.SessionID).Warn("Failed to write to WebSocket client")
			h.remove(n.SessionID, conn)
			conn.Close()
		}
	}
}

// HandleWebSocket GET /ws/sessions/:id
func (h *Hub) HandleWebSocket(c *gin.Context) {
	sessionID := c.Param("id")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Error("Failed to upgrade to WebSocket")
		return
	}
	defer conn.Close()

	h.clientMutex.Lock()
	if h.clients[sessionID] == nil {
		h.clients[sessionID] = make(map[*websocket.Conn]struct{})
	}
	h.clients[sessionID][conn] = struct{}{}
	h.clientMutex.Unlock()

	h.logger.WithField("session_id", sessionID).Info("WebSocket client connected")

	// 只读取控制帧，客户端不发送业务消息
	for {
		if _, _, err := conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.WithError(err).Warn("WebSocket error")
			}
			break
		}
	}

	h.remove(sessionID, conn)
	h.logger.WithField("session_id", sessionID).Info("WebSocket client disconnected")
}

func (h *Hub) remove(sessionID string, conn *websocket.Conn) {
	h.clientMutex.Lock()
	defer h.clientMutex.Unlock()

	delete(h.clients[sessionID], conn)
	if len(h.clients[sessionID]) == 0 {
		delete(h.clients, sessionID)
	}
}

func (h *Hub) closeAll() {
	h.clientMutex.Lock()
	defer h.clientMutex.Unlock()

	for id, conns := range h.clients {
		for conn := range conns {
			conn.Close()
		}
		delete(h.clients, id)
	}
}
