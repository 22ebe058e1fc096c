// Package floor pushes reservation and table events to the host stand and
// staff screens over websockets.
package floor

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/resto-backoffice/models"
	"github.com/yeremiapane/resto-backoffice/utils"
)

// Event types
const (
	EventReservationCreated = "reservation_created"
	EventGuestArriving      = "guest_arriving"
	EventOpeningHoursUpdate = "opening_hours_update"
	EventTableCreate        = "table_create"
	EventTableUpdate        = "table_update"
	EventTableDelete        = "table_delete"
)

const writeWait = 5 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub keeps the connected screens and the role each one logged in with.
type Hub struct {
	clients map[*websocket.Conn]string
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

func (h *Hub) Register(conn *websocket.Conn, role string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = role
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

// Clients returns the number of connected screens.
func (h *Hub) Clients() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

func (h *Hub) BroadcastReservationCreated(r models.Reservation) {
	h.Broadcast(Message{Event: EventReservationCreated, Data: r})
}

func (h *Hub) BroadcastGuestArriving(r models.Reservation) {
	h.Broadcast(Message{Event: EventGuestArriving, Data: r})
}

func (h *Hub) BroadcastOpeningHours(hours []models.OpeningHour) {
	h.Broadcast(Message{Event: EventOpeningHoursUpdate, Data: hours})
}

func (h *Hub) BroadcastTable(event string, table models.Table) {
	h.Broadcast(Message{Event: event, Data: table})
}

// Broadcast sends msg to every screen. Screens that cannot be written to are dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling %s message: %v", msg.Event, err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, role := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Dropping %s screen after write error: %v", role, err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
	utils.InfoLogger.Debugf("Broadcast %s to %d screens", msg.Event, len(h.clients))
}
