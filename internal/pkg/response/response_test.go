package response

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type body struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type sample struct {
	Name string `json:"name" validate:"required"`
}

func serve(t *testing.T, method, target, lang string, payload []byte, h gin.HandlerFunc) (*httptest.ResponseRecorder, body) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Handle(method, "/items/:id", h)

	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var b body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	return w, b
}

func TestFailIsLocalized(t *testing.T) {
	h := func(c *gin.Context) { Fail(c, http.StatusNotFound, "NOT_FOUND", "common.not_found") }

	w, b := serve(t, http.MethodGet, "/items/1", "", nil, h)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, b.Success)
	assert.Equal(t, "NOT_FOUND", b.Error.Code)
	assert.Equal(t, "Nie znaleziono rekordu", b.Error.Message)

	_, b = serve(t, http.MethodGet, "/items/1", "en-US,en;q=0.9", nil, h)
	assert.Equal(t, "Record not found", b.Error.Message)
}

func TestBindJSON(t *testing.T) {
	h := func(c *gin.Context) {
		var req sample
		if !BindJSON(c, &req) {
			return
		}
		Success(c, http.StatusOK, req)
	}

	w, b := serve(t, http.MethodPost, "/items/1", "", []byte(`{`), h)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_JSON", b.Error.Code)

	w, b = serve(t, http.MethodPost, "/items/1", "", []byte(`{}`), h)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "required", b.Error.Details["Name"])

	w, _ = serve(t, http.MethodPost, "/items/1", "", []byte(`{"name":"x"}`), h)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParamID(t *testing.T) {
	h := func(c *gin.Context) {
		id, ok := ParamID(c, "id")
		if !ok {
			return
		}
		Success(c, http.StatusOK, id)
	}

	w, b := serve(t, http.MethodGet, "/items/abc", "", nil, h)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", b.Error.Code)

	w, _ = serve(t, http.MethodGet, "/items/-3", "", nil, h)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = serve(t, http.MethodGet, "/items/3", "", nil, h)
	assert.Equal(t, http.StatusOK, w.Code)
}
