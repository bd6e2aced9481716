package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	authormocks "library-catalog/internal/domains/author/mocks"
	authormodel "library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/book/mocks"
	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/validation"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/pagination"
)

const route = "api_books"

type fixture struct {
	repo    *mocks.MockRepositoryInterface
	authors *authormocks.MockRepositoryInterface
	cache   *cache.TagCache
	svc     ServiceInterface
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	store, err := cache.NewMemoryStore(cache.DefaultMemoryConfig())
	require.NoError(t, err)

	f := &fixture{
		repo:    mocks.NewMockRepositoryInterface(ctrl),
		authors: authormocks.NewMockRepositoryInterface(ctrl),
		cache:   cache.NewTagCache(store, time.Minute),
	}
	routes := pagination.NewRouteTable().Register(route, "/api/books")
	f.svc = NewBookService(f.repo, f.authors, f.cache, pagination.NewPaginator(routes, 100))
	return f
}

func intPtr(n int) *int    { return &n }
func idPtr(n int64) *int64 { return &n }
func tolstoy(count int) *authormodel.Author {
	return &authormodel.Author{ID: 3, FirstName: "Leo", LastName: "Tolstoy", CountBooks: count}
}

func validRequest() model.BookRequest {
	return model.BookRequest{Name: " War and Peace ", AuthorID: idPtr(3), Year: intPtr(1869), Pages: intPtr(1225)}
}

func TestBookService_List_PageLinks(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.repo.EXPECT().Count(gomock.Any()).Return(45, nil).Times(1)
	f.repo.EXPECT().List(gomock.Any(), 20, 20).Return([]model.Book{
		{ID: 21, Name: "A", Year: 1, Pages: 1, AuthorID: 3, Author: tolstoy(1)},
	}, nil).Times(1)

	for range 2 {
		got, err := f.svc.List(context.Background(), ListParams{Page: 2, PerPage: 20, Route: route})
		require.NoError(t, err)
		require.Equal(t, pagination.Meta{CurrentPage: 2, LastPage: 3, Count: 45}, got.Meta)
		require.Equal(t, "/api/books?count=20&page=1", got.Links.Prev)
		require.Equal(t, "/api/books?count=20&page=3", got.Links.Next)
		require.Equal(t, "Leo Tolstoy", got.Items[0].Author.FullName)
	}
}

func TestBookService_Create_InvalidatesAuthorEntries(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	// author detail cached with the author tag, like the author service does
	authorKey := cache.MakeKey("authors.show", map[string]string{"id": "3"})
	calls := 0
	readAuthor := func() int {
		a, err := cache.GetOrCompute(ctx, f.cache, authorKey, []string{authormodel.CacheTag}, func(context.Context) (int, error) {
			calls++
			return calls, nil
		})
		require.NoError(t, err)
		return a
	}
	require.Equal(t, 1, readAuthor())
	require.Equal(t, 1, readAuthor())

	f.authors.EXPECT().Exists(gomock.Any(), int64(3)).Return(true, nil)
	f.repo.EXPECT().Create(gomock.Any(), &model.Book{Name: "War and Peace", Year: 1869, Pages: 1225, AuthorID: 3}).
		Return(&model.Book{ID: 11, Name: "War and Peace", Year: 1869, Pages: 1225, AuthorID: 3, Author: tolstoy(1)}, nil)

	got, err := f.svc.Create(ctx, validRequest())
	require.NoError(t, err)
	require.Equal(t, int64(11), got.ID)
	require.Equal(t, 1, got.Author.CountBooks)

	require.Equal(t, 2, readAuthor())
}

func TestBookService_Create_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		req    model.BookRequest
		fields []string
	}{
		{name: "empty", req: model.BookRequest{}, fields: []string{"name", "author", "year", "pages"}},
		{name: "blank name", req: model.BookRequest{Name: "   ", AuthorID: idPtr(3), Year: intPtr(1), Pages: intPtr(1)}, fields: []string{"name"}},
		{name: "negative numbers", req: model.BookRequest{Name: "X", AuthorID: idPtr(3), Year: intPtr(-1), Pages: intPtr(-10)}, fields: []string{"year", "pages"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)

			_, err := f.svc.Create(context.Background(), tt.req)

			var verrs validation.Errors
			require.ErrorAs(t, err, &verrs)
			for _, field := range tt.fields {
				require.Contains(t, verrs, field)
			}
			require.Len(t, verrs, len(tt.fields))
		})
	}
}

func TestBookService_Create_UnknownAuthor(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.authors.EXPECT().Exists(gomock.Any(), int64(3)).Return(false, nil)

	_, err := f.svc.Create(context.Background(), validRequest())

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.Equal(t, []string{validation.MsgInvalidValue}, verrs["author"])
}

func TestBookService_GetByID_NotFoundNotCached(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.repo.EXPECT().GetByID(gomock.Any(), int64(9)).Return(nil, model.ErrBookNotFound).Times(2)

	for range 2 {
		_, err := f.svc.GetByID(context.Background(), 9)
		require.ErrorIs(t, err, model.ErrBookNotFound)
	}
}

func TestBookService_Update(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	f.repo.EXPECT().GetByID(gomock.Any(), int64(11)).
		Return(&model.Book{ID: 11, Name: "Old", Year: 1, Pages: 1, AuthorID: 3, Author: tolstoy(1)}, nil)
	_, err := f.svc.GetByID(ctx, 11)
	require.NoError(t, err)

	f.authors.EXPECT().Exists(gomock.Any(), int64(3)).Return(true, nil)
	f.repo.EXPECT().Update(gomock.Any(), &model.Book{ID: 11, Name: "War and Peace", Year: 1869, Pages: 1225, AuthorID: 3}).
		Return(&model.Book{ID: 11, Name: "War and Peace", Year: 1869, Pages: 1225, AuthorID: 3, Author: tolstoy(1)}, nil)

	_, err = f.svc.Update(ctx, 11, validRequest())
	require.NoError(t, err)

	// detail recomputed after invalidation
	f.repo.EXPECT().GetByID(gomock.Any(), int64(11)).
		Return(&model.Book{ID: 11, Name: "War and Peace", Year: 1869, Pages: 1225, AuthorID: 3, Author: tolstoy(1)}, nil)
	got, err := f.svc.GetByID(ctx, 11)
	require.NoError(t, err)
	require.Equal(t, "War and Peace", got.Name)
}

func TestBookService_Update_NotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.authors.EXPECT().Exists(gomock.Any(), int64(3)).Return(true, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil, model.ErrBookNotFound)

	_, err := f.svc.Update(context.Background(), 11, validRequest())
	require.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestBookService_Delete(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.repo.EXPECT().Delete(gomock.Any(), int64(11)).Return(nil)
	f.repo.EXPECT().Delete(gomock.Any(), int64(12)).Return(model.ErrBookNotFound)

	require.NoError(t, f.svc.Delete(context.Background(), 11))
	require.ErrorIs(t, f.svc.Delete(context.Background(), 12), model.ErrBookNotFound)
}
