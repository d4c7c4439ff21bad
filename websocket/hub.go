package websocket

import (
	"log"
	"sync"

	"github.com/deftec/counseling_platform/database"
	"github.com/deftec/counseling_platform/models"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

type MessagePayload struct {
	AppointmentID string `json:"appointment_id"`
	Message       string `json:"message"`
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan *models.ChatMessage)

func init() {
	go RunHub()
}

// RunHub relays persisted chat messages to the appointment counterpart if
// they are connected. Chat is two-party: one student, one counselor.
func RunHub() {
	for {
		select {
		case client := <-Register:
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case message := <-Broadcast:
			var appointment models.Appointment
			if err := database.DB.First(&appointment, "id = ?", message.AppointmentID).Error; err != nil {
				log.Printf("Error fetching appointment %s for chat relay: %v", message.AppointmentID, err)
				continue
			}

			recipientID := appointment.OtherParticipant(message.SenderID)

			clientsMu.RLock()
			conn, ok := clients[recipientID]
			clientsMu.RUnlock()
			if !ok {
				continue
			}

			if err := conn.WriteJSON(message); err != nil {
				log.Printf("Error sending message to client %s: %v", recipientID, err)
				conn.Close()
				clientsMu.Lock()
				if current, stillThere := clients[recipientID]; stillThere && current == conn {
					delete(clients, recipientID)
				}
				clientsMu.Unlock()
			}
		}
	}
}
