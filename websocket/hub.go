package websocket

import (
	"log"
	"sync"

	"github.com/casafind/rental_marketplace/database"
	"github.com/casafind/rental_marketplace/models"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

type MessagePayload struct {
	BookingRequestID string `json:"booking_request_id"`
	Content          string `json:"content"`
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan *models.Message, 16)

// RunHub fans booking-conversation messages out to the other party of
// the request, when they are connected.
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
			participantIDs, err := conversationParticipants(message.BookingRequestID)
			if err != nil {
				log.Printf("Error fetching participants for booking request %s: %v", message.BookingRequestID, err)
				continue
			}

			clientsMu.RLock()
			stale := deliver(message, participantIDs)
			clientsMu.RUnlock()

			if len(stale) > 0 {
				clientsMu.Lock()
				for _, id := range stale {
					delete(clients, id)
				}
				clientsMu.Unlock()
			}
		}
	}
}

func deliver(message *models.Message, participantIDs []uuid.UUID) []uuid.UUID {
	var stale []uuid.UUID
	for _, participantID := range participantIDs {
		if participantID == message.SenderID {
			continue
		}
		if conn, ok := clients[participantID]; ok {
			if err := conn.WriteJSON(message); err != nil {
				log.Printf("Error sending message to client %s: %v", participantID, err)
				conn.Close()
				stale = append(stale, participantID)
			}
		}
	}
	return stale
}

func conversationParticipants(bookingRequestID uuid.UUID) ([]uuid.UUID, error) {
	var request models.BookingRequest
	if err := database.DB.First(&request, "id = ?", bookingRequestID).Error; err != nil {
		return nil, err
	}
	var property models.Property
	if err := database.DB.Select("id", "operator_id").First(&property, "id = ?", request.PropertyID).Error; err != nil {
		return nil, err
	}

	participants := []uuid.UUID{request.TenantID}
	if property.OperatorID != nil {
		participants = append(participants, *property.OperatorID)
	}
	return participants, nil
}
