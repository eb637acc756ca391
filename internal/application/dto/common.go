package dto

// Pagination metadatos de página en respuestas de búsqueda.
type Pagination struct {
	TotalItems  int  `json:"totalItems"`
	TotalPages  int  `json:"totalPages"`
	CurrentPage int  `json:"currentPage"`
	HasMore     bool `json:"hasMore"`
}

// NewPagination calcula los metadatos a partir del total, la página y el tamaño de página.
func NewPagination(total, page, limit int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{
		TotalItems:  total,
		TotalPages:  pages,
		CurrentPage: page,
		HasMore:     page*limit < total,
	}
}

// OptionResponse par id/nombre para listas de filtros.
type OptionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MessageResponse confirmación simple.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
