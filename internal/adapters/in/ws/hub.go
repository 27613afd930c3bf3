// Package ws pushes order lifecycle notifications to connected clients over
// WebSocket. Clients subscribe to named channels; domain events are broadcast
// on the "orders" channel so waiter and kitchen screens converge without
// polling.
package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"comanda/internal/core/domain/model/order"

	"github.com/gorilla/websocket"
)

// DefaultChannel is the channel order events are broadcast on and the one
// clients are subscribed to when they ask for none explicitly.
const DefaultChannel = "orders"

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Waiter tablets connect from a separate origin on the local network.
		return true
	},
}

// Message is the wire format for both directions. Fields irrelevant to a
// given message type are omitted.
type Message struct {
	Type        string   `json:"type"`
	Channel     string   `json:"channel,omitempty"`
	Channels    []string `json:"channels,omitempty"`
	OrderID     string   `json:"orderId,omitempty"`
	ItemID      string   `json:"itemId,omitempty"`
	Status      string   `json:"status,omitempty"`
	OrderStatus string   `json:"orderStatus,omitempty"`
	Timestamp   string   `json:"timestamp,omitempty"`
}

type subscription struct {
	client   *Client
	channels []string
}

// Client is one WebSocket connection with its outbound queue and channel set.
type Client struct {
	conn   *websocket.Conn
	send   chan Message
	hub    *Hub
	logger *slog.Logger
}

// Hub tracks connected clients and fans broadcasts out to subscribers.
// All client bookkeeping happens on the Run goroutine.
type Hub struct {
	clients    map[*Client]map[string]bool
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	subscribe  chan subscription
	logger     *slog.Logger
}

// NewHub creates a hub. Call Run on its own goroutine before serving
// connections.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]map[string]bool),
		broadcast:  make(chan Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		subscribe:  make(chan subscription),
		logger:     logger,
	}
}

// Run owns the client map. New connections start subscribed to the default
// channel; a slow client loses the broadcast rather than blocking the hub.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = map[string]bool{DefaultChannel: true}
			h.logger.Info("client connected", "clients", len(h.clients))
			h.enqueue(client, Message{Type: "connected"})

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.logger.Info("client disconnected", "clients", len(h.clients))

		case sub := <-h.subscribe:
			if _, ok := h.clients[sub.client]; !ok {
				continue
			}
			// A subscribe declares the client's full channel set, replacing
			// the previous one.
			channels := make(map[string]bool, len(sub.channels))
			for _, channel := range sub.channels {
				channels[channel] = true
			}
			h.clients[sub.client] = channels
			h.enqueue(sub.client, Message{Type: "subscribed", Channels: sub.channels})

		case message := <-h.broadcast:
			for client, channels := range h.clients {
				if !channels[message.Channel] {
					continue
				}
				select {
				case client.send <- message:
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

func (h *Hub) enqueue(client *Client, message Message) {
	select {
	case client.send <- message:
	default:
	}
}

// Publish converts domain events to wire messages and broadcasts them on the
// default channel. Implements the event publisher port; never blocks.
func (h *Hub) Publish(events ...order.Event) {
	for _, event := range events {
		message, ok := messageFromEvent(event)
		if !ok {
			h.logger.Warn("unknown event type", "type", event.EventType())
			continue
		}

		select {
		case h.broadcast <- message:
		default:
			h.logger.Warn("broadcast channel full, dropping message", "type", message.Type)
		}
	}
}

func messageFromEvent(event order.Event) (Message, bool) {
	base := Message{
		Type:      event.EventType(),
		Channel:   DefaultChannel,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	switch e := event.(type) {
	case order.OrderCreated:
		base.OrderID = e.OrderID.String()
	case order.OrderStatusChanged:
		base.OrderID = e.OrderID.String()
		base.Status = e.Status.String()
	case order.ItemStatusChanged:
		base.OrderID = e.OrderID.String()
		base.ItemID = e.ItemID.String()
		base.Status = e.Status.String()
		if e.OrderAutoAdvanced {
			base.OrderStatus = e.OrderStatus.String()
		}
	case order.OrderCanceled:
		base.OrderID = e.OrderID.String()
	default:
		return Message{}, false
	}

	return base, true
}

// HandleWebSocket upgrades the request and starts the client's pumps.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		conn:   conn,
		send:   make(chan Message, 256),
		hub:    h,
		logger: h.logger,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump handles inbound control messages: channel subscriptions and
// application-level pings. Malformed messages are ignored.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("websocket read failed", "error", err)
			}
			break
		}

		var message Message
		if err = json.Unmarshal(raw, &message); err != nil {
			continue
		}

		switch message.Type {
		case "subscribe":
			channels := message.Channels
			if len(channels) == 0 {
				channels = []string{DefaultChannel}
			}
			c.hub.subscribe <- subscription{client: c, channels: channels}
		case "ping":
			select {
			case c.send <- Message{Type: "pong"}:
			default:
			}
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
