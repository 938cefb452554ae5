package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/biztrack/biztrack-api/internal/application/dto"
	"github.com/biztrack/biztrack-api/pkg/jwt"
)

// LocalBusinessID key de c.Locals donde el middleware deja el ID del negocio
// desbloqueado.
const LocalBusinessID = "business_id"

// AuthMiddleware valida el Bearer Token de la sesión de desbloqueo y deja el
// BusinessID en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		businessID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalBusinessID, businessID)
		return c.Next()
	}
}

// GetBusinessID devuelve el BusinessID del contexto (después del middleware de auth).
func GetBusinessID(c *fiber.Ctx) string {
	v := c.Locals(LocalBusinessID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
