// Package wshub pushes order notifications to browsers over WebSocket. Every
// connection joins a set of rooms when it connects; an emitted notification is
// written to each connection in the target room.
package wshub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"fooddelivery/internal/adapters/out/notification"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
)

// sendBuffer is how many undelivered messages a connection may queue before
// further messages to it are dropped.
const sendBuffer = 256

// Hub tracks live connections by room. Registration goes through channels
// handled by Run; broadcasts read the room table under a read lock.
type Hub struct {
	rooms      map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	lock       sync.RWMutex
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger.With("component", "wshub"),
	}
}

// Run processes registrations until ctx is done, then disconnects every client.
// Run must be called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.add(client)
		case client := <-h.unregister:
			h.remove(client)
		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

func (h *Hub) EmitToUser(_ context.Context, userID kernel.UUID, n ports.Notification) error {
	return h.Broadcast(notification.UserRoom(userID), n)
}

func (h *Hub) EmitToRestaurant(_ context.Context, restaurantID kernel.UUID, n ports.Notification) error {
	return h.Broadcast(notification.RestaurantRoom(restaurantID), n)
}

func (h *Hub) EmitToChannel(_ context.Context, channel string, n ports.Notification) error {
	return h.Broadcast(channel, n)
}

// Broadcast queues n on every connection in room without blocking. A room with
// no connections is not an error; a connection whose buffer is full misses the message.
func (h *Hub) Broadcast(room string, n ports.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	h.lock.RLock()
	defer h.lock.RUnlock()

	for client := range h.rooms[room] {
		select {
		case client.send <- payload:
		default:
			h.logger.Warn("dropping notification for slow client",
				"room", room,
				"event", n.Event,
			)
		}
	}
	return nil
}

// RoomSize returns the number of connections currently in room.
func (h *Hub) RoomSize(room string) int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return len(h.rooms[room])
}

func (h *Hub) add(client *Client) {
	h.lock.Lock()
	defer h.lock.Unlock()

	for _, room := range client.rooms {
		members, ok := h.rooms[room]
		if !ok {
			members = make(map[*Client]struct{})
			h.rooms[room] = members
		}
		members[client] = struct{}{}
	}
	h.logger.Debug("client registered", "rooms", client.rooms)
}

func (h *Hub) remove(client *Client) {
	h.lock.Lock()
	defer h.lock.Unlock()

	removed := false
	for _, room := range client.rooms {
		members := h.rooms[room]
		if _, ok := members[client]; !ok {
			continue
		}
		removed = true
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	if removed {
		close(client.send)
		h.logger.Debug("client unregistered", "rooms", client.rooms)
	}
}

func (h *Hub) closeAll() {
	h.lock.Lock()
	defer h.lock.Unlock()

	closed := make(map[*Client]struct{})
	for _, members := range h.rooms {
		for client := range members {
			if _, ok := closed[client]; ok {
				continue
			}
			closed[client] = struct{}{}
			close(client.send)
		}
	}
	h.rooms = make(map[string]map[*Client]struct{})
}
