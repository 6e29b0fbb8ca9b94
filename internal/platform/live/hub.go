// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package live pushes scrapbook change notifications to open pages over
websockets.

A page that receives an event simply refetches the item list; events carry
only the kind of change and the item id, never item data.

Architecture:

  - Hub: one goroutine owns the client set; registration, removal and
    broadcast all go through channels.
  - Backpressure: a client whose send buffer is full is dropped instead of
    blocking publishers.
*/
package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	clientBuffer   = 16
	publishBuffer  = 64
)

// # Events

// EventType names the kind of change.
type EventType string

const (
	EventCreated EventType = "created"
	EventDeleted EventType = "deleted"
)

// Event is the payload sent to every connected page.
type Event struct {
	Type EventType `json:"type"`
	ID   int64     `json:"id"`
}

// # Hub

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans events out to every connected websocket client.
type Hub struct {
	upgrader   websocket.Upgrader
	register   chan *client
	unregister chan *client
	broadcast  chan Event
	count      chan chan int
	done       chan struct{}
	logger     *slog.Logger
}

// NewHub creates a hub. [Hub.Run] must be started before clients connect.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan Event, publishBuffer),
		count:      make(chan chan int),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run owns the client set until ctx is cancelled, then disconnects everyone.
func (hub *Hub) Run(ctx context.Context) {
	clients := make(map[*client]struct{})
	defer close(hub.done)

	for {
		select {
		case c := <-hub.register:
			clients[c] = struct{}{}

		case c := <-hub.unregister:
			if _, ok := clients[c]; ok {
				delete(clients, c)
				close(c.send)
			}

		case event := <-hub.broadcast:
			payload, err := json.Marshal(event)
			if err != nil {
				hub.logger.Error("live_event_encode_failed", slog.Any("error", err))
				continue
			}
			for c := range clients {
				select {
				case c.send <- payload:
				default:
					delete(clients, c)
					close(c.send)
					hub.logger.Warn("live_client_dropped", slog.String("reason", "slow_consumer"))
				}
			}

		case reply := <-hub.count:
			reply <- len(clients)

		case <-ctx.Done():
			for c := range clients {
				close(c.send)
			}
			return
		}
	}
}

// Publish queues an event for broadcast. It never blocks once the hub has
// stopped, and drops the event if the queue is full.
func (hub *Hub) Publish(event Event) {
	select {
	case hub.broadcast <- event:
	case <-hub.done:
	default:
		hub.logger.Warn("live_event_dropped", slog.String("type", string(event.Type)), slog.Int64("id", event.ID))
	}
}

// Clients returns the number of connected clients, or 0 once stopped.
func (hub *Hub) Clients() int {
	reply := make(chan int, 1)
	select {
	case hub.count <- reply:
		return <-reply
	case <-hub.done:
		return 0
	}
}

// ServeHTTP upgrades the request and streams events until either side closes.
func (hub *Hub) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	conn, err := hub.upgrader.Upgrade(writer, request, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error response.
		hub.logger.Warn("live_upgrade_failed", slog.Any("error", err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, clientBuffer)}

	select {
	case hub.register <- c:
	case <-hub.done:
		_ = conn.Close()
		return
	}

	go c.writePump()
	hub.readPump(c)
}

// readPump consumes control frames so pongs and close frames are processed.
func (hub *Hub) readPump(c *client) {
	defer func() {
		select {
		case hub.unregister <- c:
		case <-hub.done:
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
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

// writePump is the only writer on the connection.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
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
