package equipment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mavinci/internal/middleware"
	"mavinci/internal/pkg/jwt"
)

func setupRouter(t *testing.T) (*gin.Engine, string, *fixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	f := setup(t)
	jwtService := jwt.New("test-secret", time.Hour)

	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtService))
	NewHandler(f.svc).RegisterRoutes(v1)

	token, err := jwtService.GenerateToken(3, "employee", []string{"equipment"})
	require.NoError(t, err)
	return r, token, f
}

func do(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEquipmentEndpoints(t *testing.T) {
	r, token, _ := setupRouter(t)

	w := do(r, http.MethodPost, "/api/v1/equipment/categories", token, map[string]any{"name": "Audio"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var cat Category
	require.NoError(t, json.Unmarshal(dataOf(t, w), &cat))

	w = do(r, http.MethodPost, "/api/v1/equipment/items", token, map[string]any{"name": "Głośnik", "category_id": cat.ID, "initial_units": 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var item CatalogItem
	require.NoError(t, json.Unmarshal(dataOf(t, w), &item))
	require.Len(t, item.Units, 2)

	w = do(r, http.MethodPatch, fmt.Sprintf("/api/v1/equipment/units/%d/status", item.Units[0].ID), token, map[string]any{"status": "damaged"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodPatch, fmt.Sprintf("/api/v1/equipment/units/%d/status", item.Units[0].ID), token, map[string]any{"status": "stolen"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_UNIT_STATUS")

	w = do(r, http.MethodGet, "/api/v1/equipment", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var catalog Catalog
	require.NoError(t, json.Unmarshal(dataOf(t, w), &catalog))
	require.Len(t, catalog.Groups, 1)
	assert.Equal(t, "Audio", catalog.Groups[0].Path)
	assert.Equal(t, LevelHealthy, catalog.Groups[0].Items[0].Level)

	w = do(r, http.MethodGet, fmt.Sprintf("/api/v1/equipment/categories/%d/path", cat.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"path":"Audio"`)

	w = do(r, http.MethodGet, "/api/v1/equipment/categories/77/path", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "CATEGORY_NOT_FOUND")
}

func TestEquipmentRequiresModule(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := setup(t)
	jwtService := jwt.New("test-secret", time.Hour)
	r := gin.New()
	v1 := r.Group("/api/v1", middleware.JWTAuth(jwtService))
	NewHandler(f.svc).RegisterRoutes(v1)

	token, err := jwtService.GenerateToken(4, "employee", []string{"tasks"})
	require.NoError(t, err)
	w := do(r, http.MethodGet, "/api/v1/equipment", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin, err := jwtService.GenerateToken(1, "admin", nil)
	require.NoError(t, err)
	w = do(r, http.MethodGet, "/api/v1/equipment", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) []byte {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Data
}
