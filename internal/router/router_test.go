package router

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

	"github.com/pageza/menuqr/backend/internal/ingest"
	"github.com/pageza/menuqr/backend/internal/logging"
	"github.com/pageza/menuqr/backend/internal/models"
	"github.com/pageza/menuqr/backend/internal/repository"
	"github.com/pageza/menuqr/backend/internal/service"
	"github.com/pageza/menuqr/backend/internal/testhelpers"
	"github.com/pageza/menuqr/backend/internal/types"
)

const generated = `{"name":"Thai Favourites","description":"Street food","items":[
	{"name":"Pad Thai","price":"45","category":"Main","isBestseller":true},
	{"name":"Mango Sticky Rice","price":"30","category":"Dessert"},
	{"name":"Mystery","price":"ask","category":"Main"}
]}`

type testApp struct {
	router   *gin.Engine
	provider *testhelpers.FakeProvider
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := logging.Discard()
	log := logging.Component(root, "test")
	repo := repository.NewStore(testhelpers.SetupSQLite(t))
	_, rdb := testhelpers.SetupRedis(t)
	fake := testhelpers.NewFakeProvider(generated)

	svc := Services{
		Auth:        service.NewAuthService(repo, rdb, "test-secret", time.Hour, log),
		Restaurants: service.NewRestaurantService(repo, "https://menu.example.com", log),
		Menus:       service.NewMenuService(repo, log),
		Ingest:      service.NewIngestService(repo, ingest.NewPipeline(fake, log), ingest.NewDraftStore(rdb), nil, log),
		Chat:        service.NewChatService(repo, fake, log),
	}
	return &testApp{router: SetupRouter(svc, rdb, nil, root), provider: fake}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (a *testApp) register(t *testing.T, username string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/register", "", types.RegisterRequest{Username: username, Password: "password"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[types.AuthResponse](t, w).Token
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "admin")

	w := app.do(t, http.MethodPost, "/api/register", "", types.RegisterRequest{Username: "admin", Password: "x"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPost, "/api/login", "", types.LoginRequest{Username: "admin", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodGet, "/api/user", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode[models.User](t, w)
	assert.Equal(t, "admin", user.Username)
	assert.NotContains(t, w.Body.String(), "password")

	w = app.do(t, http.MethodPost, "/api/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = app.do(t, http.MethodGet, "/api/user", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodGet, "/api/restaurants", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOwnerAndPublicFlow(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "owner")

	w := app.do(t, http.MethodPost, "/api/restaurants", token, map[string]any{"name": "Test Bistro", "slug": "test-bistro", "tableCount": 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	restaurant := decode[models.Restaurant](t, w)

	w = app.do(t, http.MethodPost, "/api/restaurants", token, map[string]any{"name": "Copy", "slug": "test-bistro"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPost, "/api/menus", token, map[string]any{"restaurantId": restaurant.ID, "name": "Lunch"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	menu := decode[models.MenuWithItems](t, w)

	w = app.do(t, http.MethodPost, "/api/menu-items", token, map[string]any{
		"menuId": menu.ID, "name": "Soup", "price": "20.00", "category": "Starter",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	soup := decode[models.MenuItem](t, w)

	w = app.do(t, http.MethodPost, "/api/menu-items", token, map[string]any{
		"menuId": menu.ID, "name": "Fish", "price": "ask staff", "category": "Main",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "price", decode[types.ErrorResponse](t, w).Field)

	w = app.do(t, http.MethodPost, "/api/menu-items", token, map[string]any{
		"menuId": menu.ID, "name": "Stew", "price": "35", "category": "Main",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	stew := decode[models.MenuItem](t, w)

	w = app.do(t, http.MethodPatch, fmt.Sprintf("/api/menu-items/%d", stew.ID), token, map[string]any{"isAvailable": false})
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/public/test-bistro", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[types.PublicMenuView](t, w)
	assert.Equal(t, "test-bistro", view.Restaurant.Slug)
	require.NotNil(t, view.Menu)
	require.Len(t, view.Menu.Items, 1)
	assert.Equal(t, soup.ID, view.Menu.Items[0].ID)

	w = app.do(t, http.MethodGet, fmt.Sprintf("/api/restaurants/%d/tables", restaurant.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	links := decode[[]types.TableLink](t, w)
	require.Len(t, links, 2)
	assert.Equal(t, "https://menu.example.com/menu/test-bistro?table=2", links[1].URL)

	w = app.do(t, http.MethodDelete, fmt.Sprintf("/api/menu-items/%d", soup.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = app.do(t, http.MethodDelete, fmt.Sprintf("/api/menu-items/%d", soup.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	intruder := app.register(t, "intruder")
	w = app.do(t, http.MethodGet, fmt.Sprintf("/api/menus/%d", menu.ID), intruder, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodGet, "/api/public/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodGet, "/api/discover", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]types.PublicRestaurant](t, w), 1)
}

func TestGenerateAndCommit(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "owner")
	w := app.do(t, http.MethodPost, "/api/restaurants", token, map[string]any{"name": "Thai House"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	restaurant := decode[models.Restaurant](t, w)
	assert.Equal(t, "thai-house", restaurant.Slug)

	w = app.do(t, http.MethodPost, "/api/menus/generate", token, map[string]any{"restaurantId": restaurant.ID, "cuisine": "Thai"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "20", w.Header().Get("X-RateLimit-Limit"))
	draft := decode[types.MenuDraft](t, w)
	assert.Len(t, draft.Items, 2)
	assert.Equal(t, 1, draft.Dropped)

	w = app.do(t, http.MethodGet, "/api/drafts/"+draft.ID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/api/drafts/"+draft.ID+"/commit", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	menu := decode[models.MenuWithItems](t, w)
	assert.Equal(t, "Thai Favourites", menu.Name)
	assert.Len(t, menu.Items, 2)

	w = app.do(t, http.MethodGet, "/api/drafts/"+draft.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodGet, fmt.Sprintf("/api/restaurants/%d/menus", restaurant.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.MenuWithItems](t, w), 1)
}

func TestUpload(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "owner")
	w := app.do(t, http.MethodPost, "/api/restaurants", token, map[string]any{"name": "Thai House"})
	require.Equal(t, http.StatusCreated, w.Code)
	restaurant := decode[models.Restaurant](t, w)

	upload := func(filename string, content []byte, restaurantID uint) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		require.NoError(t, mw.WriteField("restaurantId", fmt.Sprint(restaurantID)))
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/menus/upload", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		app.router.ServeHTTP(w, req)
		return w
	}

	w = upload("menu.txt", []byte("Pad Thai 45 AED\nMango Sticky Rice 30 AED"), restaurant.ID)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	draft := decode[types.MenuDraft](t, w)
	assert.Equal(t, service.SourceUpload, draft.Source)
	assert.Contains(t, app.provider.LastRequest().Messages[0].Content, "Pad Thai 45 AED")

	w = upload("menu.txt", []byte("short"), restaurant.ID)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = upload("photo.png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), restaurant.ID)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	w = upload("menu.txt", []byte("Pad Thai 45 AED"), 0)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChat(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "owner")
	w := app.do(t, http.MethodPost, "/api/restaurants", token, map[string]any{"name": "Thai House"})
	require.Equal(t, http.StatusCreated, w.Code)
	restaurant := decode[models.Restaurant](t, w)
	app.provider.Responses = []string{"Try the Pad Thai!"}

	path := fmt.Sprintf("/api/restaurants/%d/chat", restaurant.ID)
	w = app.do(t, http.MethodPost, path, "", types.ChatRequest{Message: "Anything spicy?"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Try the Pad Thai!", decode[types.ChatResponse](t, w).Reply)
	assert.Equal(t, "30", w.Header().Get("X-RateLimit-Limit"))

	w = app.do(t, http.MethodPost, "/api/restaurants/999/chat", "", types.ChatRequest{Message: "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
