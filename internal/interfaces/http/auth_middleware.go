package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/pkg/jwt"
)

// LocalTenant clave en c.Locals del contexto del negocio de la petición.
const LocalTenant = "tenant"

// AuthMiddleware valida el token de sesión (cookie o Bearer) y deja el domain.Tenant en c.Locals.
// La cookie tiene prioridad; el header Authorization sirve a clientes que no usan cookies.
func AuthMiddleware(jwtSecret, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(cookieName)
		if tokenString == "" {
			authHeader := c.Get("Authorization")
			if authHeader == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NOT_AUTHENTICATED", Message: "sesión requerida"})
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
			}
			tokenString = strings.TrimSpace(parts[1])
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NOT_AUTHENTICATED", Message: "token vacío"})
		}
		s, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "sesión inválida o expirada"})
		}
		tenant := domain.Tenant{BusinessID: s.BusinessID, UserID: s.UserID, IsAdmin: s.IsAdmin, IsOwner: s.IsOwner}
		if !tenant.Valid() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "sesión sin negocio"})
		}
		c.Locals(LocalTenant, tenant)
		return c.Next()
	}
}

// GetTenant devuelve el contexto del negocio (después del middleware de auth).
func GetTenant(c *fiber.Ctx) domain.Tenant {
	t, _ := c.Locals(LocalTenant).(domain.Tenant)
	return t
}

// RequireAdmin restringe la ruta a usuarios administradores. Usar DESPUÉS de AuthMiddleware.
//   - 401 si no hay sesión en el contexto.
//   - 403 si el usuario no es admin.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenant := GetTenant(c)
		if !tenant.Valid() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NOT_AUTHENTICATED", Message: "sesión requerida"})
		}
		if !tenant.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "se requieren permisos de administrador"})
		}
		return c.Next()
	}
}
