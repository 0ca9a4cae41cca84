package middleware

import (
	config "github.com/edufeedback/edu_feedback/configs"
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
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"error": "Access token required"})
	}
	return c.Status(fiber.StatusForbidden).
		JSON(fiber.Map{"error": "Invalid or expired token"})
}

func RoleRequired(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := TokenClaims(c)["role"].(string)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Insufficient permissions",
		})
	}
}

func AdminRequired() fiber.Handler {
	return RoleRequired("admin")
}

func StudentRequired() fiber.Handler {
	return RoleRequired("student")
}

func StaffRequired() fiber.Handler {
	return RoleRequired("teacher", "admin")
}

// TokenClaims returns the verified JWT claims set by Protected().
func TokenClaims(c *fiber.Ctx) jwt.MapClaims {
	token := c.Locals("user").(*jwt.Token)
	return token.Claims.(jwt.MapClaims)
}

func TokenUserID(c *fiber.Ctx) uuid.UUID {
	id, _ := uuid.Parse(TokenClaims(c)["user_id"].(string))
	return id
}

func TokenUserName(c *fiber.Ctx) string {
	if name, ok := TokenClaims(c)["name"].(string); ok {
		return name
	}
	return ""
}

func TokenUserRole(c *fiber.Ctx) string {
	return TokenClaims(c)["role"].(string)
}
