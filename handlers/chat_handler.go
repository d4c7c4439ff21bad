package handlers

import (
	"errors"
	"fmt"
	"log"

	config "github.com/deftec/counseling_platform/configs"
	"github.com/deftec/counseling_platform/database"
	"github.com/deftec/counseling_platform/middleware"
	"github.com/deftec/counseling_platform/models"
	"github.com/deftec/counseling_platform/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// GetAppointmentMessages returns the chat log of one appointment, oldest
// first. Participants only.
func GetAppointmentMessages(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var appointment models.Appointment
	if err := database.DB.First(&appointment, "id = ?", c.Params("appointmentId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Appointment not found"})
	}
	if !appointment.IsParticipant(userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not part of this appointment"})
	}

	var messages []models.ChatMessage
	if err := database.DB.
		Preload("Sender").
		Where("appointment_id = ?", appointment.ID).
		Order("created_at asc").
		Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch messages"})
	}

	return c.JSON(messages)
}

// ServeWs handles the chat websocket: the client authenticates with its
// JWT in the first frame, then sends {appointment_id, message} payloads
// which are persisted and relayed to the appointment's other participant.
func ServeWs(c *websocketcontrib.Conn) {
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
	userID, err := uuid.Parse(claims["user_id"].(string))
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
			if !websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseNormalClosure) {
				log.Printf("WebSocket read error for client %s: %v", userID, err)
			}
			break
		}

		appointmentID, err := uuid.Parse(msg.AppointmentID)
		if err != nil {
			_ = c.WriteJSON(fiber.Map{"error": "Invalid appointment ID"})
			continue
		}

		var appointment models.Appointment
		if err := database.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
			_ = c.WriteJSON(fiber.Map{"error": "Appointment not found"})
			continue
		}
		if !appointment.IsParticipant(userID) {
			_ = c.WriteJSON(fiber.Map{"error": "You are not part of this appointment"})
			continue
		}

		dbMessage := models.ChatMessage{
			AppointmentID: appointmentID,
			SenderID:      userID,
			Message:       msg.Message,
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
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
