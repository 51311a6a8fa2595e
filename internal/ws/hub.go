package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Event is the envelope broadcast to every connected register, so that open
// registers see stock and sale changes made on the others without polling.
type Event struct {
	Type    string      `json:"type"`
	Action  string      `json:"action"`
	Payload interface{} `json:"payload,omitempty"`
	Message string      `json:"message,omitempty"`
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
	}
}

// BroadcastEvent marshals and queues an event for every client. Safe to call
// from any goroutine.
func (h *Hub) BroadcastEvent(event Event) {
	msg, err := json.Marshal(event)
	if err != nil {
		log.Println("ws: failed to marshal event:", err)
		return
	}
	h.Broadcast <- msg
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			log.Println("New WS client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
