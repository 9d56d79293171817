package wshub

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"time"

	"fooddelivery/internal/adapters/out/notification"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one WebSocket connection and the rooms it joined.
type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	rooms []string
}

// ServeWS upgrades the request and subscribes the connection to the rooms the
// actor is entitled to:
//   - customers and delivery partners join their own user room
//   - restaurant accounts join the restaurant room of their id
//   - delivery partners and admins may add the delivery pool with ?channel=delivery-pool
//   - admins may also watch any user or restaurant with ?userId= or ?restaurantId=
//
// Asking for a room the actor may not read is refused with 403 before the upgrade.
//
// Example:
//
//	e.GET("/ws", func(c echo.Context) error {
//	    hub.ServeWS(c.Response(), c.Request(), actorFrom(c))
//	    return nil
//	}, ActorMiddleware)
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, actor kernel.Actor) {
	rooms, err := roomsFor(actor, r.URL.Query())
	switch {
	case errors.Is(err, errs.ErrAccessDenied):
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{hub: h, conn: conn, send: make(chan []byte, sendBuffer), rooms: rooms}
	select {
	case h.register <- client:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func roomsFor(actor kernel.Actor, query url.Values) ([]string, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	var own string
	if actor.Role == kernel.RoleRestaurant {
		own = notification.RestaurantRoom(actor.UserID)
	} else {
		own = notification.UserRoom(actor.UserID)
	}
	rooms := []string{own}

	if raw := query.Get("userId"); raw != "" {
		userID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("userId", err)
		}
		if rooms, err = join(rooms, actor, notification.UserRoom(userID)); err != nil {
			return nil, err
		}
	}
	if raw := query.Get("restaurantId"); raw != "" {
		restaurantID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("restaurantId", err)
		}
		if rooms, err = join(rooms, actor, notification.RestaurantRoom(restaurantID)); err != nil {
			return nil, err
		}
	}
	for _, channel := range query["channel"] {
		if channel != ports.DeliveryPoolChannel {
			return nil, errs.NewValueIsInvalidErrorWithCause("channel", fmt.Errorf("unknown channel %q", channel))
		}
		if actor.Role != kernel.RoleDelivery && actor.Role != kernel.RoleAdmin {
			return nil, errs.NewAccessDeniedError(actor, "room", channel)
		}
		if !slices.Contains(rooms, channel) {
			rooms = append(rooms, channel)
		}
	}

	return rooms, nil
}

// join adds room when the actor already owns it or is an admin.
func join(rooms []string, actor kernel.Actor, room string) ([]string, error) {
	if slices.Contains(rooms, room) {
		return rooms, nil
	}
	if actor.Role != kernel.RoleAdmin {
		return nil, errs.NewAccessDeniedError(actor, "room", room)
	}
	return append(rooms, room), nil
}

// readPump drains incoming frames so pongs are processed, and unregisters the
// client once the connection breaks.
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
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump owns all writes to the connection.
func (c *Client) writePump() {
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
