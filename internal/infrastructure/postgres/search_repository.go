package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

var _ repository.SearchRepository = (*SearchRepo)(nil)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Columnas de la unión visibles para el llamador. location_ids solo se usa para filtrar.
var searchColumns = []string{
	"item_id", "catalog_id", "name", "sku", "barcode", "category_id", "category_name", "quantity",
	"min_stock_level", "rsu_value", "unit_price", "cost_price", "image_url", "locations", "is_from_catalog",
}

// SearchRepo búsqueda unificada (inventario + catálogo) sobre PostgreSQL.
type SearchRepo struct {
	q Querier
}

// NewSearchRepository construye el repositorio de búsqueda.
func NewSearchRepository(q Querier) *SearchRepo {
	return &SearchRepo{q: q}
}

// Search ejecuta la consulta paginada y el conteo total con los mismos filtros.
func (r *SearchRepo) Search(ctx context.Context, f repository.SearchFilter) ([]repository.SearchRow, int, error) {
	pageQ, countQ, err := buildSearchQueries(f)
	if err != nil {
		return nil, 0, err
	}

	sqlStr, args, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build search count: %w", err)
	}
	var total int
	if err := r.q.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count search rows: %w", err)
	}

	rows := make([]repository.SearchRow, 0)
	if total == 0 {
		return rows, 0, nil
	}
	sqlStr, args, err = pageQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build search query: %w", err)
	}
	if err := pgxscan.Select(ctx, r.q, &rows, sqlStr, args...); err != nil {
		return nil, 0, fmt.Errorf("search items: %w", err)
	}
	return rows, total, nil
}

// buildSearchQueries arma la unión de fuentes como CTE y aplica un único filtrado, orden y paginación
// sobre el resultado. Devuelve la consulta de página y la de conteo.
func buildSearchQueries(f repository.SearchFilter) (page, count squirrel.SelectBuilder, err error) {
	union, unionArgs, err := unionSQL(f)
	if err != nil {
		return page, count, err
	}
	with := squirrel.Expr("WITH unified AS ("+union+")", unionArgs...)

	page = applySearchFilters(psql.Select(searchColumns...).PrefixExpr(with).From("unified"), f)
	page = page.OrderBy(searchOrder(f)...).Limit(uint64(f.Limit)).Offset(uint64(f.Offset()))

	count = applySearchFilters(psql.Select("COUNT(*)").PrefixExpr(with).From("unified"), f)
	return page, count, nil
}

// unionSQL genera la unión con placeholders "?"; el builder externo los renumera.
func unionSQL(f repository.SearchFilter) (string, []interface{}, error) {
	lateral := `LATERAL (
		SELECT SUM(il.quantity)::int AS quantity,
			json_agg(json_build_object('locationId', l.id, 'name', l.name, 'code', l.code, 'quantity', il.quantity)
				ORDER BY lower(l.name), l.id) AS locations,
			array_agg(l.id::text) AS location_ids
		FROM item_locations il
		JOIN locations l ON l.id = il.location_id
		WHERE il.item_id = bi.id`
	var lateralArgs []interface{}
	if f.LocationID != "" {
		lateral += ` AND il.location_id::text = ?`
		lateralArgs = append(lateralArgs, f.LocationID)
	}
	lateral += `) pl ON TRUE`

	inventory := squirrel.Select(
		"bi.id::text AS item_id",
		"bi.catalog_id::text AS catalog_id",
		"bi.name",
		"bi.sku",
		"cp.barcode",
		"bi.category_id::text AS category_id",
		"c.name AS category_name",
		"COALESCE(pl.quantity, 0) AS quantity",
		"bi.min_stock_level",
		"bi.rsu_value",
		"bi.unit_price",
		"bi.cost_price",
		"bi.image_url",
		"COALESCE(pl.locations, '[]'::json) AS locations",
		"COALESCE(pl.location_ids, '{}'::text[]) AS location_ids",
		"TRUE AS is_from_catalog",
	).
		From("business_items bi").
		Join("catalog_products cp ON cp.id = bi.catalog_id").
		LeftJoin("categories c ON c.id = bi.category_id").
		LeftJoin(lateral, lateralArgs...).
		Where(squirrel.Eq{"bi.business_id": f.BusinessID})
	if f.LocationID != "" {
		// Con alcance de ubicación solo cuentan los artículos que tienen fila en ella.
		inventory = inventory.Where("pl.quantity IS NOT NULL")
	}

	invSQL, args, err := inventory.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build inventory source: %w", err)
	}
	if !f.IncludeCatalogRows() {
		return invSQL, args, nil
	}

	catalog := squirrel.Select(
		"NULL::text",
		"cp.id::text",
		"cp.name",
		"''::text",
		"cp.barcode",
		"NULL::text",
		"NULL::text",
		"0",
		"0",
		"0::numeric",
		"0::numeric",
		"0::numeric",
		"''::text",
		"'[]'::json",
		"'{}'::text[]",
		"FALSE",
	).
		From("catalog_products cp").
		Where("NOT EXISTS (SELECT 1 FROM business_items bi WHERE bi.catalog_id = cp.id AND bi.business_id = ?)", f.BusinessID)

	catSQL, catArgs, err := catalog.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build catalog source: %w", err)
	}
	return invSQL + " UNION ALL " + catSQL, append(args, catArgs...), nil
}

func applySearchFilters(b squirrel.SelectBuilder, f repository.SearchFilter) squirrel.SelectBuilder {
	if f.Query != "" {
		p := containsPattern(f.Query)
		b = b.Where(squirrel.Or{
			squirrel.ILike{"name": p},
			squirrel.ILike{"sku": p},
			squirrel.ILike{"barcode": p},
		})
	}
	if f.CatalogID != "" {
		b = b.Where(squirrel.Eq{"catalog_id": f.CatalogID})
	}
	if f.InInventoryOnly {
		b = b.Where("is_from_catalog")
	}
	switch {
	case f.CategoryID == repository.UncategorisedFilter:
		b = b.Where("is_from_catalog AND category_id IS NULL")
	case f.CategoryID != "":
		b = b.Where("is_from_catalog").Where(squirrel.Eq{"category_id": f.CategoryID})
	}
	if f.LocationFilter != "" {
		b = b.Where("? = ANY(location_ids)", f.LocationFilter)
	}
	switch f.StockStatus {
	case repository.StockStatusInStock:
		b = b.Where("is_from_catalog AND quantity > 0")
	case repository.StockStatusLowStock:
		b = b.Where("is_from_catalog AND quantity > 0 AND quantity <= min_stock_level")
	case repository.StockStatusOutOfStock:
		b = b.Where("is_from_catalog AND quantity = 0")
	case repository.StockStatusCatalogOnly:
		b = b.Where("NOT is_from_catalog")
	}
	return b
}

func searchOrder(f repository.SearchFilter) []string {
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	switch f.SortBy {
	case repository.SortByCategory:
		return []string{"COALESCE(category_name, 'Uncategorised') " + dir, "lower(name) ASC", "catalog_id ASC"}
	case repository.SortByQuantity:
		return []string{"quantity " + dir, "lower(name) ASC", "catalog_id ASC"}
	default:
		return []string{"lower(name) " + dir, "catalog_id ASC"}
	}
}

// CategoryOptions categorías del negocio para el filtro.
func (r *SearchRepo) CategoryOptions(ctx context.Context, businessID string) ([]repository.Option, error) {
	return r.options(ctx, "categories", businessID)
}

// LocationOptions ubicaciones del negocio para el filtro.
func (r *SearchRepo) LocationOptions(ctx context.Context, businessID string) ([]repository.Option, error) {
	return r.options(ctx, "locations", businessID)
}

func (r *SearchRepo) options(ctx context.Context, table, businessID string) ([]repository.Option, error) {
	out := make([]repository.Option, 0)
	if !validID(businessID) {
		return out, nil
	}
	sqlStr, args, err := psql.Select("id::text AS id", "name").
		From(table).
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("lower(name)", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s options: %w", table, err)
	}
	if err := pgxscan.Select(ctx, r.q, &out, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("list %s options: %w", table, err)
	}
	return out, nil
}
