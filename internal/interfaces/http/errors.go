package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/domain"
)

var errInvalidBody = errors.New("cuerpo inválido")

// businessRules errores de reglas de negocio: 400 con mensaje específico.
var businessRules = []struct {
	err  error
	code string
}{
	{domain.ErrDuplicateLocationAssignment, "DUPLICATE_LOCATION_ASSIGNMENT"},
	{domain.ErrInvalidReference, "INVALID_REFERENCE"},
	{domain.ErrLocationNotEmpty, "LOCATION_NOT_EMPTY"},
	{domain.ErrDuplicateName, "DUPLICATE_NAME"},
	{domain.ErrCategoryInUse, "CATEGORY_IN_USE"},
	{domain.ErrOwnerProtected, "OWNER_PROTECTED"},
}

// respondError traduce un error de caso de uso a status + dto.ErrorResponse.
// Los 5xx se registran con el detalle y el cliente recibe un mensaje genérico.
func respondError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: ve.Error(), Field: ve.Field})
	}
	for _, r := range businessRules {
		if errors.Is(err, r.err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: r.code, Message: r.err.Error()})
		}
	}
	switch {
	case errors.Is(err, errInvalidBody):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NOT_AUTHENTICATED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrUsernameTaken):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "USERNAME_TAKEN", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	}

	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("business_id", GetTenant(c).BusinessID).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: "error interno; intente de nuevo",
	})
}

// ErrorHandler manejador de errores de Fiber para errores no devueltos por los handlers (rutas inexistentes, panics).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_" + strconv.Itoa(fe.Code)
		if fe.Code == fiber.StatusNotFound {
			code = "NOT_FOUND"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return respondError(c, err)
}
