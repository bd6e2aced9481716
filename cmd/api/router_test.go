package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"library-catalog/internal/config"
	authorHandler "library-catalog/internal/domains/author/handler"
	authorMocks "library-catalog/internal/domains/author/mocks"
	authorService "library-catalog/internal/domains/author/service"
	bookHandler "library-catalog/internal/domains/book/handler"
	bookMocks "library-catalog/internal/domains/book/mocks"
	bookService "library-catalog/internal/domains/book/service"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/internal/shared/middleware"
	"library-catalog/internal/shared/routes"
	"library-catalog/internal/web"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/container"
	"library-catalog/pkg/pagination"
)

// testContainer dựng container với mock repos và DB chưa connect
func testContainer(t *testing.T) (*container.Container, *authorMocks.MockRepositoryInterface) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	authors := authorMocks.NewMockRepositoryInterface(ctrl)
	books := bookMocks.NewMockRepositoryInterface(ctrl)

	store, err := cache.NewMemoryStore(cache.DefaultMemoryConfig())
	require.NoError(t, err)
	tc := cache.NewTagCache(store, time.Minute)
	paginator := pagination.NewPaginator(routes.Table(), 100)

	as := authorService.NewAuthorService(authors, tc, paginator)
	bs := bookService.NewBookService(books, authors, tc, paginator)

	return &container.Container{
		Config:        &config.Config{App: config.AppConfig{Version: "test"}},
		DB:            database.NewPostgresDB(&database.DBConfig{}),
		Cache:         tc,
		Paginator:     paginator,
		AuthorRepo:    authors,
		BookRepo:      books,
		AuthorService: as,
		BookService:   bs,
		AuthorHandler: authorHandler.NewAuthorHandler(as, 20),
		BookHandler:   bookHandler.NewHandler(bs, 20),
		WebHandler:    web.NewHandler(as, bs),
	}, authors
}

func serve(t *testing.T, r http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestSetupRouter_HealthReportsDatabaseDown(t *testing.T) {
	c, _ := testContainer(t)
	r, err := SetupRouter(c)
	require.NoError(t, err)

	w := serve(t, r, http.MethodGet, "/health")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Status   string            `json:"status"`
		Version  string            `json:"version"`
		Services map[string]string `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "degraded", body.Status)
	require.Equal(t, "test", body.Version)
	require.Equal(t, "ok", body.Services["cache"])
	require.Contains(t, body.Services["database"], "error")
}

func TestSetupRouter_APIAndRequestID(t *testing.T) {
	c, authors := testContainer(t)
	authors.EXPECT().Count(gomock.Any()).Return(0, nil)

	r, err := SetupRouter(c)
	require.NoError(t, err)

	w := serve(t, r, http.MethodGet, "/api/authors")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	require.JSONEq(t, `{"data":{
		"items":[],
		"meta":{"current_page":1,"last_page":1,"count":0},
		"links":{"first":"/api/authors?count=20&page=1","last":"/api/authors?count=20&page=1"}
	}}`, w.Body.String())
}

func TestSetupRouter_UnknownAPIRouteIsEnvelope404(t *testing.T) {
	c, _ := testContainer(t)
	r, err := SetupRouter(c)
	require.NoError(t, err)

	w := serve(t, r, http.MethodGet, "/api/publishers")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"error":{"status":404,"message":"Route not found"}}`, w.Body.String())
}

func TestSetupRouter_MetricsExposeHTTPCounters(t *testing.T) {
	c, authors := testContainer(t)
	authors.EXPECT().Count(gomock.Any()).Return(0, nil)

	r, err := SetupRouter(c)
	require.NoError(t, err)

	serve(t, r, http.MethodGet, "/api/authors")

	w := serve(t, r, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `catalog_http_requests_total{method="GET",route="/api/authors",status="200"}`)
}
