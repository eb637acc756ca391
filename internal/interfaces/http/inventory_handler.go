package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/inventory"
	"github.com/jhoicas/retail-inventory/internal/application/usecase"
)

// InventoryHandler artículos del negocio, conteos y recientes.
type InventoryHandler struct {
	items     *inventory.ItemUseCase
	stocktake *inventory.StocktakeUseCase
	search    *usecase.SearchUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(items *inventory.ItemUseCase, stocktake *inventory.StocktakeUseCase, search *usecase.SearchUseCase) *InventoryHandler {
	return &InventoryHandler{items: items, stocktake: stocktake, search: search}
}

// CreateItem godoc
// @Summary      Alta de artículo en una ubicación (nuevo o del catálogo)
// @Tags         inventory
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "producto, ubicación y cantidad"
// @Success      201   {object}  dto.CreateItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/items [post]
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.items.Create(c.UserContext(), GetTenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetItem godoc
// @Summary      Obtener artículo con sus ubicaciones
// @Tags         inventory
// @Security     Session
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [get]
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	out, err := h.items.Get(c.UserContext(), GetTenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateItem godoc
// @Summary      Editar artículo
// @Tags         inventory
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del artículo"
// @Param        body  body  dto.UpdateItemRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [put]
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.items.Update(c.UserContext(), GetTenant(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteItem godoc
// @Summary      Eliminar artículo
// @Tags         inventory
// @Security     Session
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [delete]
func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.items.Delete(c.UserContext(), GetTenant(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "artículo eliminado"})
}

// Stocktake godoc
// @Summary      Registrar conteo de una ubicación
// @Tags         inventory
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StocktakeRequest  true  "locationId e items {itemId: {count}}"
// @Success      200   {object}  dto.StocktakeResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/stocktake [post]
func (h *InventoryHandler) Stocktake(c *fiber.Ctx) error {
	var in dto.StocktakeRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.stocktake.Apply(c.UserContext(), GetTenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Recent godoc
// @Summary      Artículos modificados recientemente por conteos
// @Tags         inventory
// @Security     Session
// @Produce      json
// @Success      200  {object}  dto.RecentItemsResponse
// @Router       /api/inventory/recent [get]
func (h *InventoryHandler) Recent(c *fiber.Ctx) error {
	out, err := h.search.RecentItems(c.UserContext(), GetTenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
