package middleware

import (
	config "github.com/deftec/counseling_platform/configs"
	"github.com/deftec/counseling_platform/database"
	"github.com/deftec/counseling_platform/models"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(config.Config("JWT_SECRET")),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}

// CurrentUserID extracts the authenticated user's id from the JWT placed in
// locals by Protected().
func CurrentUserID(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	id, _ := uuid.Parse(claims["user_id"].(string))
	return id
}

// CurrentRole extracts the authenticated user's role claim.
func CurrentRole(c *fiber.Ctx) string {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	role, _ := claims["role"].(string)
	return role
}

func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentRole(c) != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Admin access required",
			})
		}
		return c.Next()
	}
}

func CounselorRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentRole(c) != models.RoleCounselor {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Counselor access required",
			})
		}
		return c.Next()
	}
}

// ApprovedStudentRequired gates routes to students whose account an admin
// has approved. Approval can change after the token was issued, so it is
// checked against the database rather than a claim.
func ApprovedStudentRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentRole(c) != models.RoleStudent {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Student access required",
			})
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", CurrentUserID(c)).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Account not found"})
		}
		if !user.IsApproved {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Your account is awaiting admin approval",
			})
		}
		return c.Next()
	}
}
