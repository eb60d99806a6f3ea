// Package ws 实时通知广播
//
// 维护一组在线的 WebSocket 订阅连接，事件尽力送达：
// 写失败的连接直接移除，不重试也不缓存历史消息。
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/Aditya282007/Crowd-Chain/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// 事件类型
const (
	EventConnected               = "CONNECTED"
	EventUserRegistered          = "USER_REGISTERED"
	EventUserBanned              = "USER_BANNED"
	EventCreatorRequestSubmitted = "CREATOR_REQUEST_SUBMITTED"
	EventCreatorRequestApproved  = "CREATOR_REQUEST_APPROVED"
	EventCreatorRequestRejected  = "CREATOR_REQUEST_REJECTED"
	EventProjectCreated          = "PROJECT_CREATED"
	EventProjectApproved         = "PROJECT_APPROVED"
	EventProjectRejected         = "PROJECT_REJECTED"
	EventInvestmentPending       = "INVESTMENT_PENDING"
	EventInvestmentCompleted     = "INVESTMENT_COMPLETED"
	EventWalletConnected         = "WALLET_CONNECTED"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Envelope 事件信封
type Envelope struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// Hub 订阅连接注册表
type Hub struct {
	clients map[*websocket.Conn]bool
	mu      sync.Mutex
}

// NewHub 创建广播中心
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
	}
}

// Publish 向所有在线订阅者广播事件，没有订阅者时直接返回
func (h *Hub) Publish(eventType string, data interface{}) {
	payload, err := json.Marshal(Envelope{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		logger.Error("Failed to marshal event %s: %v", eventType, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			// 尽力送达：写失败即认为连接不可用
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// SubscriberCount 当前在线订阅者数量
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// HandleWebSocket 处理订阅连接请求
//
// 路由: GET /ws
func (h *Hub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("Failed to upgrade websocket: %v", err)
		return
	}

	h.register(conn)

	// 订阅成功确认
	greeting, _ := json.Marshal(Envelope{
		Type:      EventConnected,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	h.mu.Lock()
	if err := conn.WriteMessage(websocket.TextMessage, greeting); err != nil {
		conn.Close()
		delete(h.clients, conn)
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	// 读取循环只用于感知断开
	go func() {
		defer h.unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Close 关闭所有订阅连接
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		conn.Close()
		delete(h.clients, conn)
	}
}
