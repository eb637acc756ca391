package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/retail-inventory/internal/application/analytics"
	"github.com/jhoicas/retail-inventory/internal/application/auth"
	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/inventory"
	"github.com/jhoicas/retail-inventory/internal/application/reports"
	"github.com/jhoicas/retail-inventory/internal/application/usecase"
	"github.com/jhoicas/retail-inventory/internal/domain"
	infrapdf "github.com/jhoicas/retail-inventory/internal/infrastructure/pdf"
	infraredis "github.com/jhoicas/retail-inventory/internal/infrastructure/redis"
	apphttp "github.com/jhoicas/retail-inventory/internal/interfaces/http"
	"github.com/jhoicas/retail-inventory/internal/testutil/memstore"
	pkgjwt "github.com/jhoicas/retail-inventory/pkg/jwt"
)

type apiFixture struct {
	app    *fiber.App
	store  *memstore.Store
	tenant domain.Tenant
	token  string
}

// newAPI monta el router completo sobre el store en memoria con un negocio sembrado.
func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	s := memstore.New()
	recent := infraredis.NoopRecent{}
	searchUC := usecase.NewSearchUseCase(s.Search(), recent)
	authUC := auth.NewAuthUseCase(s, s.Users(), auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})
	deps := apphttp.RouterDeps{
		AuthUC:      authUC,
		ItemUC:      inventory.NewItemUseCase(s, s.Items(), s.Catalog(), s.Categories(), s.ItemLocations()),
		StocktakeUC: inventory.NewStocktakeUseCase(s, recent),
		SearchUC:    searchUC,
		LocationUC:  usecase.NewLocationUseCase(s, s.Locations(), s.ItemLocations(), nil),
		CategoryUC:  usecase.NewCategoryUseCase(s.Categories(), s.Items()),
		StaffUC:     usecase.NewStaffUseCase(s.Users()),
		BusinessUC:  usecase.NewBusinessUseCase(s.Businesses()),
		ReportUC:    reports.NewReportUseCase(s.Reports(), s.Snapshots(), s.Businesses(), infrapdf.NewMarotoReportRenderer()),
		DashboardUC: appanalytics.NewDashboardUseCase(s.Analytics(), s.Reports()),
		JWTSecret:   testJWTSecret,
		Cookie:      apphttp.SessionCookie{Name: testCookieName, ExpMinutes: testExpMin},
	}
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, deps)

	tenant := s.SeedBusiness("Tienda Centro")
	token := tokenFor(t, pkgjwt.Session{
		UserID: tenant.UserID, BusinessID: tenant.BusinessID, IsAdmin: true, IsOwner: true,
	}, testExpMin)
	return &apiFixture{app: app, store: s, tenant: tenant, token: token}
}

func (f *apiFixture) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func errorCode(t *testing.T, raw []byte) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &e), string(raw))
	return e.Code
}

func TestRouter_RutasProtegidasSinSesion(t *testing.T) {
	f := newAPI(t)
	f.token = ""
	for _, path := range []string{"/api/search/items", "/api/locations", "/api/reports/low-stock", "/api/dashboard", "/api/auth/me"} {
		resp, _ := f.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestRouter_AltaDeArticuloYReglasDeUbicacion(t *testing.T) {
	f := newAPI(t)

	resp, raw := f.do(t, http.MethodPost, "/api/locations", map[string]any{"name": "Back Room", "capacityRsu": 100})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var loc dto.LocationResponse
	require.NoError(t, json.Unmarshal(raw, &loc))
	assert.Equal(t, "BACK-ROOM", loc.Code)

	item := map[string]any{
		"isNewCatalogItem": true, "name": "Leche 1L", "locationId": loc.ID,
		"quantity": 4, "minStockLevel": 2, "rsuValue": 2,
	}
	resp, raw = f.do(t, http.MethodPost, "/api/inventory/items", item)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var created dto.CreateItemResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "8", f.store.Usage(loc.ID).String())

	// mismo producto en la misma ubicación
	resp, raw = f.do(t, http.MethodPost, "/api/inventory/items", map[string]any{
		"catalogId": created.CatalogID, "locationId": loc.ID, "quantity": 1, "rsuValue": 2,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_LOCATION_ASSIGNMENT", errorCode(t, raw))

	resp, raw = f.do(t, http.MethodDelete, "/api/locations/"+loc.ID, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "LOCATION_NOT_EMPTY", errorCode(t, raw))

	resp, raw = f.do(t, http.MethodPost, "/api/locations", map[string]any{"name": "back room", "code": "BR-2", "capacityRsu": 10})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_NAME", errorCode(t, raw))

	resp, raw = f.do(t, http.MethodGet, "/api/inventory/items/"+created.ItemID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got dto.ItemResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, 4, got.Quantity)
	require.Len(t, got.Locations, 1)
}

func TestRouter_Stocktake(t *testing.T) {
	f := newAPI(t)
	loc := f.store.SeedLocation(f.tenant.BusinessID, "Shelf", 50)

	resp, raw := f.do(t, http.MethodPost, "/api/inventory/items", map[string]any{
		"isNewCatalogItem": true, "name": "Arroz", "locationId": loc.ID, "quantity": 3, "rsuValue": 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var created dto.CreateItemResponse
	require.NoError(t, json.Unmarshal(raw, &created))

	resp, raw = f.do(t, http.MethodPost, "/api/inventory/stocktake", map[string]any{
		"locationId": loc.ID,
		"items": map[string]any{
			created.ItemID: map[string]any{"count": "10"},
			"no-existe":    map[string]any{"count": 1},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var res dto.StocktakeResult
	require.NoError(t, json.Unmarshal(raw, &res))
	assert.Equal(t, 1, res.UpdatedCount)
	assert.Len(t, res.Skipped, 1)
	assert.Equal(t, 10, f.store.Quantity(loc.ID, created.ItemID))
	assert.Equal(t, "10", f.store.Usage(loc.ID).String())

	resp, raw = f.do(t, http.MethodPost, "/api/inventory/stocktake", map[string]any{
		"locationId": "00000000-0000-0000-0000-0000000000ff",
		"items":      map[string]any{created.ItemID: map[string]any{"count": 1}},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, raw))
}

func TestRouter_ErroresDeEntrada(t *testing.T) {
	f := newAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/locations", strings.NewReader("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.token)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw := f.do(t, http.MethodPost, "/api/locations", map[string]any{"capacityRsu": 10})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &e))
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Equal(t, "name", e.Field)

	resp, _ = f.do(t, http.MethodGet, "/api/inventory/items/no-es-uuid", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = f.do(t, http.MethodGet, "/api/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_CategoriaEnUso(t *testing.T) {
	f := newAPI(t)
	cat := f.store.SeedCategory(f.tenant.BusinessID, "Lácteos")
	loc := f.store.SeedLocation(f.tenant.BusinessID, "Fridge", 20)

	resp, raw := f.do(t, http.MethodPost, "/api/inventory/items", map[string]any{
		"isNewCatalogItem": true, "name": "Yogur", "locationId": loc.ID, "quantity": 1,
		"rsuValue": 1, "categoryId": cat.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = f.do(t, http.MethodDelete, "/api/settings/categories/"+cat.ID, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "CATEGORY_IN_USE", errorCode(t, raw))
}

func TestRouter_AjustesSoloAdmin(t *testing.T) {
	f := newAPI(t)
	f.token = tokenFor(t, pkgjwt.Session{UserID: f.tenant.UserID, BusinessID: f.tenant.BusinessID}, testExpMin)

	resp, _ := f.do(t, http.MethodGet, "/api/settings/users", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = f.do(t, http.MethodPut, "/api/settings/business", map[string]any{"name": "X"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = f.do(t, http.MethodGet, "/api/settings/business", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_RegistroLoginYCookie(t *testing.T) {
	f := newAPI(t)
	f.token = ""

	resp, raw := f.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"businessName": "Kiosco", "email": "k@example.com", "username": "kiosco", "password": "secreto123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = f.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"businessName": "Otro", "email": "o@example.com", "username": "kiosco", "password": "secreto123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "USERNAME_TAKEN", errorCode(t, raw))

	resp, _ = f.do(t, http.MethodPost, "/api/auth/login", map[string]any{"username": "kiosco", "password": "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, raw = f.do(t, http.MethodPost, "/api/auth/login", map[string]any{"username": "kiosco", "password": "secreto123"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == testCookieName {
			session = c
		}
	}
	require.NotNil(t, session, "login debe fijar la cookie de sesión")
	assert.True(t, session.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: session.Value})
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me dto.UserResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, "kiosco", me.Username)
	assert.True(t, me.IsOwner)
}

func TestRouter_ReportesYPDF(t *testing.T) {
	f := newAPI(t)
	loc := f.store.SeedLocation(f.tenant.BusinessID, "Shelf", 10)
	resp, raw := f.do(t, http.MethodPost, "/api/inventory/items", map[string]any{
		"isNewCatalogItem": true, "name": "Pan", "locationId": loc.ID, "quantity": 0, "minStockLevel": 5, "rsuValue": 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = f.do(t, http.MethodGet, "/api/reports/low-stock", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Contains(t, string(raw), "Pan")

	resp, _ = f.do(t, http.MethodGet, "/api/reports/space-utilisation?snapshotId=00000000-0000-0000-0000-0000000000aa", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw = f.do(t, http.MethodGet, "/api/reports/low-stock/pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp, _ = f.do(t, http.MethodGet, "/api/dashboard", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_SubidaSinAlmacenamiento(t *testing.T) {
	f := newAPI(t)
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", "foto.png")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/locations/upload-image", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+f.token)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	// sin ImageStore configurado la subida no está disponible
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
