package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	authormocks "library-catalog/internal/domains/author/mocks"
	authormodel "library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/book/mocks"
	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/service"
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

func setup(t *testing.T) (*mocks.MockRepositoryInterface, *authormocks.MockRepositoryInterface, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepositoryInterface(ctrl)
	authors := authormocks.NewMockRepositoryInterface(ctrl)

	store, err := cache.NewMemoryStore(cache.DefaultMemoryConfig())
	require.NoError(t, err)
	svc := service.NewBookService(repo, authors, cache.NewTagCache(store, time.Minute), pagination.NewPaginator(routes.Table(), 100))
	h := NewHandler(svc, 20)

	r := gin.New()
	api := r.Group("/api/books")
	api.GET("", h.List)
	api.GET("/:id", h.GetByID)
	api.POST("", h.Create)
	api.PUT("/:id", h.Update)
	api.DELETE("/:id", h.Delete)
	return repo, authors, r
}

func do(t *testing.T, r http.Handler, req *http.Request) (int, envelope) {
	t.Helper()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandler_Create(t *testing.T) {
	t.Parallel()

	repo, authors, r := setup(t)
	authors.EXPECT().Exists(gomock.Any(), int64(3)).Return(true, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&model.Book{
		ID: 11, Name: "War and Peace", Year: 1869, Pages: 1225, AuthorID: 3,
		Author: &authormodel.Author{ID: 3, FirstName: "Leo", LastName: "Tolstoy", CountBooks: 1},
	}, nil)

	code, env := do(t, r, jsonRequest(http.MethodPost, "/api/books",
		`{"name":"War and Peace","author":3,"year":1869,"pages":1225}`))
	require.Equal(t, http.StatusCreated, code)

	var got model.BookResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Equal(t, int64(11), got.ID)
	require.Equal(t, 1, got.Author.CountBooks)
}

func TestHandler_Create_Validation(t *testing.T) {
	t.Parallel()

	_, _, r := setup(t)

	code, env := do(t, r, jsonRequest(http.MethodPost, "/api/books", `{"name":"","author":3,"year":0,"pages":10}`))
	require.Equal(t, http.StatusUnprocessableEntity, code)
	require.Contains(t, env.Error.Errors, "name")
	require.Contains(t, env.Error.Errors, "year")
	require.NotContains(t, env.Error.Errors, "pages")
}

func TestHandler_Create_WrongType(t *testing.T) {
	t.Parallel()

	_, _, r := setup(t)

	code, env := do(t, r, jsonRequest(http.MethodPost, "/api/books", `{"name":"X","author":"three"}`))
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "Malformed request body", env.Error.Message)
}

func TestHandler_List_EmptyCatalog(t *testing.T) {
	t.Parallel()

	repo, _, r := setup(t)
	repo.EXPECT().Count(gomock.Any()).Return(0, nil)

	code, env := do(t, r, httptest.NewRequest(http.MethodGet, "/api/books", nil))
	require.Equal(t, http.StatusOK, code)
	require.JSONEq(t, `{
		"items": [],
		"meta": {"current_page": 1, "last_page": 1, "count": 0},
		"links": {"first": "/api/books?count=20&page=1", "last": "/api/books?count=20&page=1"}
	}`, string(env.Data))
}

func TestHandler_NotFound(t *testing.T) {
	t.Parallel()

	repo, _, r := setup(t)
	repo.EXPECT().GetByID(gomock.Any(), int64(9)).Return(nil, model.ErrBookNotFound)
	repo.EXPECT().Delete(gomock.Any(), int64(9)).Return(model.ErrBookNotFound)

	code, env := do(t, r, httptest.NewRequest(http.MethodGet, "/api/books/9", nil))
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "Book not found", env.Error.Message)

	code, _ = do(t, r, httptest.NewRequest(http.MethodDelete, "/api/books/9", nil))
	require.Equal(t, http.StatusNotFound, code)
}

func TestHandler_Delete(t *testing.T) {
	t.Parallel()

	repo, _, r := setup(t)
	repo.EXPECT().Delete(gomock.Any(), int64(4)).Return(nil)

	code, env := do(t, r, httptest.NewRequest(http.MethodDelete, "/api/books/4", nil))
	require.Equal(t, http.StatusOK, code)
	require.JSONEq(t, `{"success":true}`, string(env.Data))
}
