package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"library-catalog/internal/domains/author/mocks"
	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/service"
	"library-catalog/internal/shared/routes"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/pagination"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Status  int                 `json:"status"`
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	} `json:"error"`
}

func setup(t *testing.T) (*mocks.MockRepositoryInterface, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := mocks.NewMockRepositoryInterface(gomock.NewController(t))
	store, err := cache.NewMemoryStore(cache.DefaultMemoryConfig())
	require.NoError(t, err)

	svc := service.NewAuthorService(repo, cache.NewTagCache(store, time.Minute), pagination.NewPaginator(routes.Table(), 100))
	h := NewAuthorHandler(svc, 20)

	r := gin.New()
	api := r.Group("/api/authors")
	api.GET("", h.List)
	api.GET("/:id", h.GetByID)
	api.POST("", h.Create)
	api.PUT("/:id", h.Update)
	api.DELETE("/:id", h.Delete)
	return repo, r
}

func do(t *testing.T, r http.Handler, req *http.Request) (int, envelope) {
	t.Helper()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestAuthorHandler_Create_EmptyFirstNameIs422(t *testing.T) {
	t.Parallel()

	_, r := setup(t)

	req := httptest.NewRequest(http.MethodPost, "/api/authors", strings.NewReader(`{"first_name":"","last_name":"Tolstoy"}`))
	req.Header.Set("Content-Type", "application/json")

	code, env := do(t, r, req)
	require.Equal(t, http.StatusUnprocessableEntity, code)
	require.NotNil(t, env.Error)
	require.Equal(t, 422, env.Error.Status)
	require.Equal(t, "Validation error", env.Error.Message)
	require.NotEmpty(t, env.Error.Errors["first_name"])
}

func TestAuthorHandler_Create_FormBody(t *testing.T) {
	t.Parallel()

	repo, r := setup(t)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&model.Author{ID: 3, FirstName: "Leo", LastName: "Tolstoy"}, nil)

	form := url.Values{"first_name": {"Leo"}, "last_name": {"Tolstoy"}}
	req := httptest.NewRequest(http.MethodPost, "/api/authors", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	code, env := do(t, r, req)
	require.Equal(t, http.StatusCreated, code)

	var got model.AuthorResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Equal(t, int64(3), got.ID)
	require.Equal(t, "Leo Tolstoy", got.FullName)
}

func TestAuthorHandler_List(t *testing.T) {
	t.Parallel()

	repo, r := setup(t)
	repo.EXPECT().Count(gomock.Any()).Return(150, nil)
	repo.EXPECT().List(gomock.Any(), 100, 0).Return([]model.Author{{ID: 1, FirstName: "A", LastName: "B"}}, nil)

	code, env := do(t, r, httptest.NewRequest(http.MethodGet, "/api/authors?count=1000", nil))
	require.Equal(t, http.StatusOK, code)

	var got pagination.Collection[model.AuthorResponse]
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Equal(t, pagination.Meta{CurrentPage: 1, LastPage: 2, Count: 150}, got.Meta)
	require.Equal(t, "/api/authors?count=100&page=2", got.Links.Next)
	require.Empty(t, got.Links.Prev)
}

func TestAuthorHandler_List_OutOfRangeParams(t *testing.T) {
	t.Parallel()

	repo, r := setup(t)
	repo.EXPECT().Count(gomock.Any()).Return(150, nil).Times(2)
	repo.EXPECT().List(gomock.Any(), 100, 0).Return([]model.Author{{ID: 1, FirstName: "A", LastName: "B"}}, nil)

	// count vượt int64 được clamp như count=1000
	code, env := do(t, r, httptest.NewRequest(http.MethodGet, "/api/authors?count=99999999999999999999", nil))
	require.Equal(t, http.StatusOK, code)

	var got pagination.Collection[model.AuthorResponse]
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got.Items, 1)
	require.Equal(t, "/api/authors?count=100&page=2", got.Links.Next)

	// page vượt cuối: trang rỗng, không query List
	code, env = do(t, r, httptest.NewRequest(http.MethodGet, "/api/authors?page=9223372036854775807&count=100", nil))
	require.Equal(t, http.StatusOK, code)

	got = pagination.Collection[model.AuthorResponse]{}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Empty(t, got.Items)
	require.Equal(t, 2, got.Meta.LastPage)
	require.Equal(t, "/api/authors?count=100&page=2", got.Links.Prev)
}

func TestAuthorHandler_List_BadParams(t *testing.T) {
	t.Parallel()

	_, r := setup(t)

	for _, target := range []string{"/api/authors?page=abc", "/api/authors?count=-5", "/api/authors?count=0"} {
		code, env := do(t, r, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusBadRequest, code, target)
		require.Equal(t, 400, env.Error.Status)
	}
}

func TestAuthorHandler_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	repo, r := setup(t)
	repo.EXPECT().GetByID(gomock.Any(), int64(5)).Return(nil, model.ErrAuthorNotFound)

	code, env := do(t, r, httptest.NewRequest(http.MethodGet, "/api/authors/5", nil))
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "Author not found", env.Error.Message)

	code, _ = do(t, r, httptest.NewRequest(http.MethodGet, "/api/authors/abc", nil))
	require.Equal(t, http.StatusNotFound, code)
}

func TestAuthorHandler_Delete(t *testing.T) {
	t.Parallel()

	repo, r := setup(t)
	repo.EXPECT().Delete(gomock.Any(), int64(2)).Return(nil)

	code, env := do(t, r, httptest.NewRequest(http.MethodDelete, "/api/authors/2", nil))
	require.Equal(t, http.StatusOK, code)
	require.JSONEq(t, `{"success":true}`, string(env.Data))
}

func TestAuthorHandler_Update_Malformed(t *testing.T) {
	t.Parallel()

	_, r := setup(t)

	req := httptest.NewRequest(http.MethodPut, "/api/authors/2", strings.NewReader(`{"first_name":`))
	req.Header.Set("Content-Type", "application/json")

	code, _ := do(t, r, req)
	require.Equal(t, http.StatusBadRequest, code)
}
