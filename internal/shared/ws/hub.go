// Package ws — хаб WebSocket соединений дашборда.
//
// Соединение аутентифицируется на этапе HTTP upgrade: гейт уже положил
// сессию в контекст запроса, AuthFunc достаёт из него пользователя.
// Дальше клиент шлёт сообщения вида {"type": "...", "data": {...}},
// хаб передаёт их в MessageHandler, ответы уходят через Client.SendJSON.
//
//	Браузер ──upgrade──► ServeWS ──► AuthFunc(r) ──► register
//	                                                   │
//	                    readPump ──► MessageHandler ◄──┘
//	                    writePump ◄── client.send
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"guideadmin/internal/shared/logger"
	"guideadmin/internal/shared/utils"

	"github.com/gorilla/websocket"
)

const (
	// pingInterval — как часто сервер отправляет ping клиенту
	pingInterval = 30 * time.Second

	// pongWait — если pong не пришёл за это время, соединение мёртвое
	pongWait = 60 * time.Second

	// maxMessageSize — поисковый запрос, больше не нужно
	maxMessageSize = 4096

	writeWait = 10 * time.Second

	sendBuffer = 32
)

// ErrClientClosed — клиент уже отключён, сообщение не отправлено
var ErrClientClosed = errors.New("ws client closed")

// Principal — кто подключился
type Principal struct {
	UserID string
	Role   string
	// Ctx переживает HTTP запрос апгрейда и несёт его значения
	// (сессию, request id) в обработчики сообщений
	Ctx context.Context
}

// AuthFunc аутентифицирует запрос апгрейда
type AuthFunc func(r *http.Request) (Principal, error)

// MessageHandler — обработка входящего сообщения клиента
type MessageHandler func(client *Client, messageType string, data json.RawMessage) error

// DisconnectHandler вызывается один раз после отключения клиента
type DisconnectHandler func(client *Client)

// Client — одно WebSocket соединение
type Client struct {
	ID     string
	UserID string
	Role   string

	ctx  context.Context
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
	log  *logger.Logger

	mu     sync.Mutex
	closed bool
}

// Hub управляет активными соединениями
type Hub struct {
	clients      map[string]*Client
	mu           sync.RWMutex
	register     chan *Client
	unregister   chan *Client
	authFunc     AuthFunc
	onMessage    MessageHandler
	onDisconnect DisconnectHandler
	upgrader     websocket.Upgrader
	log          *logger.Logger

	// done закрывается, когда Run завершился
	done     chan struct{}
	stopOnce sync.Once
}

// NewHub создает хаб. allowedOrigin — допустимый Origin; пусто = тот же хост.
func NewHub(authFunc AuthFunc, allowedOrigin string, log *logger.Logger) *Hub {
	h := &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client, 10),
		unregister: make(chan *Client, 10),
		authFunc:   authFunc,
		log:        log,
		done:       make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
	}
	if allowedOrigin != "" {
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			return r.Header.Get("Origin") == allowedOrigin
		}
	}
	return h
}

func (h *Hub) SetMessageHandler(handler MessageHandler) {
	h.onMessage = handler
}

func (h *Hub) SetDisconnectHandler(handler DisconnectHandler) {
	h.onDisconnect = handler
}

// Run — главный цикл хаба, до отмены ctx
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.stop()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			h.log.Debug(logger.Entry{
				Action:  "ws_client_registered",
				Message: client.ID,
				Additional: map[string]any{
					"user_id": client.UserID,
				},
			})

		case client := <-h.unregister:
			h.mu.Lock()
			_, ok := h.clients[client.ID]
			if ok {
				delete(h.clients, client.ID)
				client.closeSend()
			}
			h.mu.Unlock()
			if ok && h.onDisconnect != nil {
				h.onDisconnect(client)
			}
			h.log.Debug(logger.Entry{
				Action:  "ws_client_unregistered",
				Message: client.ID,
			})
		}
	}
}

// stop закрывает всех клиентов; onDisconnect вызывается для каждого
func (h *Hub) stop() {
	h.stopOnce.Do(func() { close(h.done) })

	h.mu.Lock()
	closed := make([]*Client, 0, len(h.clients))
	for id, c := range h.clients {
		c.closeSend()
		delete(h.clients, id)
		closed = append(closed, c)
	}
	h.mu.Unlock()

	if h.onDisconnect != nil {
		for _, c := range closed {
			h.onDisconnect(c)
		}
	}
	h.log.Info(logger.Entry{
		Action:  "hub_stopped",
		Message: "websocket hub stopped",
		Additional: map[string]any{
			"clients_closed": len(closed),
		},
	})
}

// Done закрывается после остановки хаба
func (h *Hub) Done() <-chan struct{} { return h.done }

// Count — число подключённых клиентов
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS апгрейдит аутентифицированный запрос в WebSocket
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	select {
	case <-h.done:
		http.Error(w, "websocket hub stopped", http.StatusServiceUnavailable)
		return
	default:
	}

	principal, err := h.authFunc(r)
	if err != nil {
		h.log.WithContext(r.Context()).Warn(logger.Entry{
			Action:  "ws_auth_failed",
			Message: err.Error(),
		})
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithContext(r.Context()).Error(logger.Entry{
			Action:  "ws_upgrade_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return
	}

	ctx := principal.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	client := &Client{
		ID:     utils.NewUUID(),
		UserID: principal.UserID,
		Role:   principal.Role,
		ctx:    ctx,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		hub:    h,
		log:    h.log,
	}

	select {
	case h.register <- client:
	case <-h.done:
		client.closeSend()
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// Context — контекст, с которым клиент подключился
func (c *Client) Context() context.Context { return c.ctx }

// SendJSON ставит сообщение в очередь отправки. Переполненный буфер
// означает медленного клиента: сообщение отбрасывается.
func (c *Client) SendJSON(v any) error {
	msg, err := json.Marshal(v)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientClosed
	}
	select {
	case c.send <- msg:
	default:
		c.log.Warn(logger.Entry{
			Action:  "ws_send_dropped",
			Message: c.ID,
		})
	}
	return nil
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn(logger.Entry{
					Action:  "ws_read_error",
					Message: err.Error(),
					Additional: map[string]any{
						"client_id": c.ID,
					},
				})
			}
			return
		}

		var msg struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data,omitempty"`
		}
		if err := json.Unmarshal(message, &msg); err != nil {
			c.log.Warn(logger.Entry{
				Action:  "ws_parse_message_error",
				Message: err.Error(),
				Additional: map[string]any{
					"client_id": c.ID,
				},
			})
			continue
		}

		if c.hub.onMessage == nil {
			continue
		}
		if err := c.hub.onMessage(c, msg.Type, msg.Data); err != nil {
			c.log.Warn(logger.Entry{
				Action:  "ws_handle_message_error",
				Message: err.Error(),
				Additional: map[string]any{
					"client_id": c.ID,
					"msg_type":  msg.Type,
				},
			})
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
