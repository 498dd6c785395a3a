package handlers

import (
	"errors"
	"fmt"
	"log"

	config "github.com/casafind/rental_marketplace/configs"
	"github.com/casafind/rental_marketplace/database"
	"github.com/casafind/rental_marketplace/models"
	"github.com/casafind/rental_marketplace/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// bookingParticipants returns the two parties of a booking-request
// conversation: the tenant and, when the property is managed, its
// operator.
func bookingParticipants(request models.BookingRequest) ([]uuid.UUID, error) {
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

func isBookingParticipant(request models.BookingRequest, userID uuid.UUID) bool {
	participants, err := bookingParticipants(request)
	if err != nil {
		return false
	}
	for _, p := range participants {
		if p == userID {
			return true
		}
	}
	return false
}

func GetBookingMessages(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	pageSize, offset := pagination(c, 50)

	var request models.BookingRequest
	if err := database.DB.First(&request, "id = ?", c.Params("requestId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking request not found"})
	}
	if !isBookingParticipant(request, userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not part of this conversation"})
	}

	var messages []models.Message
	if err := database.DB.
		Where("booking_request_id = ?", request.ID).
		Order("created_at asc").
		Limit(pageSize).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch messages"})
	}

	return c.JSON(messages)
}

func SendBookingMessage(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	type Request struct {
		Content string `json:"content" validate:"required,min=1"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var request models.BookingRequest
	if err := database.DB.First(&request, "id = ?", c.Params("requestId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking request not found"})
	}
	if !isBookingParticipant(request, userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not part of this conversation"})
	}

	message := models.Message{
		BookingRequestID: request.ID,
		SenderID:         userID,
		Content:          req.Content,
	}
	if err := database.DB.Create(&message).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send message"})
	}

	websocket.Broadcast <- &message

	return c.Status(fiber.StatusCreated).JSON(message)
}

func ServeWs(c *websocketcontrib.Conn) {
	var userID uuid.UUID

	type AuthMessage struct {
		Type  string `json:"type"`
		Token string `json:"token"`
	}
	var authMsg AuthMessage
	if err := c.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid or missing auth message"})
		c.Close()
		return
	}

	claims, err := parseToken(authMsg.Token)
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid token"})
		c.Close()
		return
	}

	userID, err = uuid.Parse(claims["user_id"].(string))
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid user ID"})
		c.Close()
		return
	}

	client := &websocket.Client{UserID: userID, Conn: c}
	websocket.Register <- client
	defer func() {
		websocket.Unregister <- client
		c.Close()
	}()

	for {
		var msg websocket.MessagePayload
		if err := c.ReadJSON(&msg); err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseAbnormalClosure) {
				log.Printf("WebSocket closed for client %s: %v", userID, err)
			} else {
				log.Printf("WebSocket read error for client %s: %v", userID, err)
			}
			break
		}

		requestID, err := uuid.Parse(msg.BookingRequestID)
		if err != nil {
			_ = c.WriteJSON(fiber.Map{"error": "Invalid booking request ID"})
			continue
		}

		var request models.BookingRequest
		if err := database.DB.First(&request, "id = ?", requestID).Error; err != nil {
			_ = c.WriteJSON(fiber.Map{"error": "Booking request not found"})
			continue
		}
		if !isBookingParticipant(request, userID) {
			_ = c.WriteJSON(fiber.Map{"error": "You are not part of this conversation"})
			continue
		}

		dbMessage := models.Message{
			BookingRequestID: requestID,
			SenderID:         userID,
			Content:          msg.Content,
		}
		if err := database.DB.Create(&dbMessage).Error; err != nil {
			log.Printf("Failed to save message for client %s: %v", userID, err)
			_ = c.WriteJSON(fiber.Map{"error": "Failed to save message"})
			continue
		}
		websocket.Broadcast <- &dbMessage
	}
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.C.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
