// Package chat доставляет системные сообщения заказа подписчикам по websocket.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mmeshcher/boostmarket/internal/model"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	orderID int64
}

// Hub хранит подписчиков по заказам и рассылает им сообщения.
type Hub struct {
	mu        sync.Mutex
	clients   map[int64]map[*client]struct{}
	broadcast chan model.ChatMessage
	logger    *zap.Logger
}

// NewHub создаёт пустой hub. Рассылка начинается после запуска Run.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:   make(map[int64]map[*client]struct{}),
		broadcast: make(chan model.ChatMessage, 256),
		logger:    logger,
	}
}

// Publish ставит сообщение в очередь рассылки и не блокирует вызывающего.
func (h *Hub) Publish(msg model.ChatMessage) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("chat broadcast queue is full, message dropped",
			zap.Int64("orderID", msg.OrderID),
			zap.Stringer("messageID", msg.ID),
		)
	}
}

// Run рассылает сообщения до отмены ctx, после чего закрывает все подписки.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case msg := <-h.broadcast:
			h.deliver(msg)
		case <-ctx.Done():
			h.closeAll()
			return nil
		}
	}
}

func (h *Hub) deliver(msg model.ChatMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal chat message", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients[msg.OrderID] {
		select {
		case c.send <- payload:
		default:
			h.removeLocked(c)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, set := range h.clients {
		for c := range set {
			h.removeLocked(c)
		}
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.orderID]
	if !ok {
		set = make(map[*client]struct{})
		h.clients[c.orderID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	set, ok := h.clients[c.orderID]
	if !ok {
		return
	}
	if _, exists := set[c]; !exists {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.orderID)
	}
}

// Subscribers возвращает число подписчиков заказа.
func (h *Hub) Subscribers(orderID int64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[orderID])
}

// Subscribe переводит запрос в websocket и держит подписку на заказ, пока клиент подключён.
// Права доступа к заказу проверяет вызывающий.
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request, orderID int64) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("upgrade websocket: %w", err)
	}

	c := &client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		orderID: orderID,
	}
	h.register(c)
	h.logger.Debug("chat subscriber connected", zap.Int64("orderID", orderID))

	go c.writePump()
	c.readPump()
	return nil
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
