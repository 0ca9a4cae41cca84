package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
)

// ActivityEvent is pushed to every connected dashboard client when a new
// feedback submission is accepted.
type ActivityEvent struct {
	FeedbackID  string    `json:"feedback_id"`
	TeacherID   string    `json:"teacher_id"`
	TeacherName string    `json:"teacher_name"`
	StudentName string    `json:"student_name"`
	Rating      int       `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
}

var clients = make(map[*websocket.Conn]bool)
var clientsMu sync.RWMutex

var Register = make(chan *websocket.Conn)
var Unregister = make(chan *websocket.Conn)
var Broadcast = make(chan ActivityEvent, 16)

func RunHub() {
	for {
		select {
		case conn := <-Register:
			clientsMu.Lock()
			clients[conn] = true
			clientsMu.Unlock()
			log.Printf("Activity client connected (%d total)", len(clients))
		case conn := <-Unregister:
			clientsMu.Lock()
			delete(clients, conn)
			clientsMu.Unlock()
		case event := <-Broadcast:
			clientsMu.RLock()
			var dead []*websocket.Conn
			for conn := range clients {
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("Error sending activity event: %v", err)
					conn.Close()
					dead = append(dead, conn)
				}
			}
			clientsMu.RUnlock()
			if len(dead) > 0 {
				clientsMu.Lock()
				for _, conn := range dead {
					delete(clients, conn)
				}
				clientsMu.Unlock()
			}
		}
	}
}

// PublishActivity hands an event to the hub without blocking the request
// that produced it.
func PublishActivity(event ActivityEvent) {
	select {
	case Broadcast <- event:
	default:
		log.Println("Activity broadcast channel full, dropping event")
	}
}

// ActivityHandler keeps the connection registered until the client goes away.
func ActivityHandler(c *websocket.Conn) {
	Register <- c
	defer func() {
		Unregister <- c
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
