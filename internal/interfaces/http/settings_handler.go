package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/usecase"
)

// SettingsHandler usuarios del negocio y datos del negocio.
type SettingsHandler struct {
	staff    *usecase.StaffUseCase
	business *usecase.BusinessUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(staff *usecase.StaffUseCase, business *usecase.BusinessUseCase) *SettingsHandler {
	return &SettingsHandler{staff: staff, business: business}
}

// ListUsers godoc
// @Summary      Listar usuarios del negocio
// @Tags         settings
// @Security     Session
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/settings/users [get]
func (h *SettingsHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.staff.List(c.UserContext(), GetTenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateUser godoc
// @Summary      Crear usuario
// @Tags         settings
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "credenciales y rol"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/settings/users [post]
func (h *SettingsHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.staff.Create(c.UserContext(), GetTenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateUser godoc
// @Summary      Editar usuario
// @Tags         settings
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/settings/users/{id} [put]
func (h *SettingsHandler) UpdateUser(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.staff.Update(c.UserContext(), GetTenant(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteUser godoc
// @Summary      Eliminar usuario
// @Tags         settings
// @Security     Session
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/users/{id} [delete]
func (h *SettingsHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.staff.Delete(c.UserContext(), GetTenant(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "usuario eliminado"})
}

// GetBusiness godoc
// @Summary      Datos del negocio
// @Tags         settings
// @Security     Session
// @Produce      json
// @Success      200  {object}  dto.BusinessResponse
// @Router       /api/settings/business [get]
func (h *SettingsHandler) GetBusiness(c *fiber.Ctx) error {
	out, err := h.business.Get(c.UserContext(), GetTenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateBusiness godoc
// @Summary      Editar datos del negocio
// @Tags         settings
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateBusinessRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.BusinessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/business [put]
func (h *SettingsHandler) UpdateBusiness(c *fiber.Ctx) error {
	var in dto.UpdateBusinessRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.business.Update(c.UserContext(), GetTenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
