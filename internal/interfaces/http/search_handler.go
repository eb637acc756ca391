package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/usecase"
)

// SearchHandler búsqueda unificada y listas de filtros.
type SearchHandler struct {
	uc *usecase.SearchUseCase
}

// NewSearchHandler construye el handler.
func NewSearchHandler(uc *usecase.SearchUseCase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

// Items godoc
// @Summary      Buscar artículos (inventario + catálogo)
// @Tags         search
// @Security     Session
// @Produce      json
// @Param        query            query  string  false  "texto (nombre, sku, código de barras)"
// @Param        category         query  string  false  "id de categoría o 'uncategorised'"
// @Param        location         query  string  false  "id de ubicación"
// @Param        stockStatus      query  string  false  "in-stock | low-stock | out-of-stock | catalog-only"
// @Param        inInventoryOnly  query  bool    false  "solo artículos del negocio"
// @Param        locationId       query  string  false  "cantidades de una sola ubicación (conteo)"
// @Param        catalogId        query  string  false  "producto del catálogo"
// @Param        sortBy           query  string  false  "name | category | quantity"
// @Param        sortDir          query  string  false  "asc | desc"
// @Param        page             query  int     false  "página"  default(1)
// @Param        limit            query  int     false  "tamaño de página"  default(20)
// @Success      200  {object}  dto.SearchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/search/items [get]
func (h *SearchHandler) Items(c *fiber.Ctx) error {
	var p dto.SearchParams
	if err := bindQuery(c, &p); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Search(c.UserContext(), GetTenant(c), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Categorías para el filtro de búsqueda
// @Tags         search
// @Security     Session
// @Produce      json
// @Success      200  {array}  dto.OptionResponse
// @Router       /api/search/categories [get]
func (h *SearchHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.CategoryOptions(c.UserContext(), GetTenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Locations godoc
// @Summary      Ubicaciones para el filtro de búsqueda
// @Tags         search
// @Security     Session
// @Produce      json
// @Success      200  {array}  dto.OptionResponse
// @Router       /api/search/locations [get]
func (h *SearchHandler) Locations(c *fiber.Ctx) error {
	out, err := h.uc.LocationOptions(c.UserContext(), GetTenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
