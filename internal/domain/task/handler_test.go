package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
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

type testEnv struct {
	router *gin.Engine
	fx     *fixture
	jwt    *jwt.Service
}

func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	fx := setup(t, nil)
	jwtService := jwt.New("test-secret", time.Hour)

	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtService))
	NewHandler(fx.svc).RegisterRoutes(v1)
	return &testEnv{router: r, fx: fx, jwt: jwtService}
}

func (e *testEnv) token(t *testing.T, permissions ...string) string {
	t.Helper()
	token, err := e.jwt.GenerateToken(5, "employee", permissions)
	require.NoError(t, err)
	return token
}

func (e *testEnv) send(req *http.Request, token string) *httptest.ResponseRecorder {
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return e.send(req, token)
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.True(t, env.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Error.Code
}

func TestTasksRequireModule(t *testing.T) {
	env := setupRouter(t)

	w := env.do(http.MethodGet, "/api/v1/tasks/board", env.token(t, "offers"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodGet, "/api/v1/tasks/board", env.token(t, "tasks"), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateAndMoveOverHTTP(t *testing.T) {
	env := setupRouter(t)
	token := env.token(t, "tasks")

	w := env.do(http.MethodPost, "/api/v1/tasks", token, CreateTaskRequest{Title: "Próba dźwięku", Priority: PriorityHigh})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created Task
	decodeData(t, w, &created)
	assert.Equal(t, int64(5), created.CreatedBy)

	w = env.do(http.MethodPatch, fmt.Sprintf("/api/v1/tasks/%d/column", created.ID), token, MoveRequest{Column: ColumnReview})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(http.MethodGet, "/api/v1/tasks/board", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var board Board
	decodeData(t, w, &board)
	require.Len(t, board.Columns, 4)
	assert.Equal(t, []int64{created.ID}, idsOf(board.Column(ColumnReview)))
}

func TestMoveValidation(t *testing.T) {
	env := setupRouter(t)
	token := env.token(t, "tasks")
	tk := env.fx.create(t, "Scena")

	w := env.do(http.MethodPatch, fmt.Sprintf("/api/v1/tasks/%d/column", tk.ID), token, MoveRequest{Column: "done"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "INVALID_COLUMN", errorCode(t, w))

	w = env.do(http.MethodPatch, "/api/v1/tasks/404/column", token, MoveRequest{Column: ColumnReview})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "TASK_NOT_FOUND", errorCode(t, w))

	w = env.do(http.MethodPatch, "/api/v1/tasks/abc/column", token, MoveRequest{Column: ColumnReview})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetAssigneesOverHTTP(t *testing.T) {
	env := setupRouter(t)
	token := env.token(t, "tasks")
	tk := env.fx.create(t, "Scena", 2)
	path := fmt.Sprintf("/api/v1/tasks/%d/assignees", tk.ID)

	w := env.do(http.MethodPut, path, token, AssigneesRequest{Assignees: []int64{7}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got Task
	decodeData(t, w, &got)
	assert.Equal(t, []int64{7}, got.Assignees)

	w = env.do(http.MethodPut, path, token, AssigneesRequest{Assignees: []int64{0}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))

	w = env.do(http.MethodPut, "/api/v1/tasks/404/assignees", token, AssigneesRequest{Assignees: []int64{7}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentOverHTTP(t *testing.T) {
	env := setupRouter(t)
	token := env.token(t, "tasks")
	tk := env.fx.create(t, "Catering")

	w := env.do(http.MethodPost, fmt.Sprintf("/api/v1/tasks/%d/comments", tk.ID), token, CommentRequest{Content: " "})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "EMPTY_COMMENT", errorCode(t, w))

	w = env.do(http.MethodPost, fmt.Sprintf("/api/v1/tasks/%d/comments", tk.ID), token, CommentRequest{Content: "OK"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(http.MethodGet, fmt.Sprintf("/api/v1/tasks/%d/feed", tk.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var feed []FeedItem
	decodeData(t, w, &feed)
	require.Len(t, feed, 1)
	assert.Equal(t, int64(5), feed[0].Comment.AuthorID)
}

func TestAttachmentUploadOverHTTP(t *testing.T) {
	env := setupRouter(t)
	token := env.token(t, "tasks")
	tk := env.fx.create(t, "Rider")
	path := fmt.Sprintf("/api/v1/tasks/%d/attachments", tk.ID)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "plan.txt")
	require.NoError(t, err)
	_, _ = part.Write([]byte("plan sceny"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := env.send(req, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var a Attachment
	decodeData(t, w, &a)
	assert.Equal(t, "plan.txt", a.FileName)

	w = env.do(http.MethodPost, path, token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "NO_FILE", errorCode(t, w))
}
