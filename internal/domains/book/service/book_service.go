package service

import (
	"context"
	"fmt"
	"strconv"

	authorrepo "library-catalog/internal/domains/author/repository"
	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/repository"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/pagination"
)

type bookService struct {
	repo       repository.RepositoryInterface
	authorRepo authorrepo.RepositoryInterface
	cache      *cache.TagCache
	paginator  *pagination.Paginator
}

func NewBookService(
	repo repository.RepositoryInterface,
	authorRepo authorrepo.RepositoryInterface,
	tc *cache.TagCache,
	paginator *pagination.Paginator,
) ServiceInterface {
	return &bookService{
		repo:       repo,
		authorRepo: authorRepo,
		cache:      tc,
		paginator:  paginator,
	}
}

// ============================================
// READS
// ============================================

func (s *bookService) List(ctx context.Context, params ListParams) (*pagination.Collection[model.BookResponse], error) {
	page, perPage, err := s.paginator.Normalize(params.Page, params.PerPage)
	if err != nil {
		return nil, err
	}

	key := cache.MakeKey("books.index", map[string]string{
		"route": params.Route,
		"page":  strconv.Itoa(page),
		"count": strconv.Itoa(perPage),
	})

	return cache.GetOrCompute(ctx, s.cache, key, model.ReadTags, func(ctx context.Context) (*pagination.Collection[model.BookResponse], error) {
		query := pagination.QueryFuncs[model.BookResponse]{
			CountFn: s.repo.Count,
			FetchFn: func(ctx context.Context, limit, offset int) ([]model.BookResponse, error) {
				books, err := s.repo.List(ctx, limit, offset)
				if err != nil {
					return nil, err
				}
				out := make([]model.BookResponse, 0, len(books))
				for i := range books {
					out = append(out, books[i].ToResponse())
				}
				return out, nil
			},
		}
		return pagination.Paginate[model.BookResponse](ctx, s.paginator, query, page, perPage, params.Route)
	})
}

func (s *bookService) GetByID(ctx context.Context, id int64) (*model.BookResponse, error) {
	key := cache.MakeKey("books.show", map[string]string{"id": strconv.FormatInt(id, 10)})

	return cache.GetOrCompute(ctx, s.cache, key, model.ReadTags, func(ctx context.Context) (*model.BookResponse, error) {
		b, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		resp := b.ToResponse()
		return &resp, nil
	})
}

// ============================================
// WRITES
// ============================================

func (s *bookService) Create(ctx context.Context, req model.BookRequest) (*model.BookResponse, error) {
	if err := s.validate(ctx, &req); err != nil {
		return nil, err
	}

	b := &model.Book{}
	req.Apply(b)

	created, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, err
	}

	if err := s.invalidate(ctx); err != nil {
		return nil, fmt.Errorf("book %d created: %w", created.ID, err)
	}

	resp := created.ToResponse()
	return &resp, nil
}

func (s *bookService) Update(ctx context.Context, id int64, req model.BookRequest) (*model.BookResponse, error) {
	if err := s.validate(ctx, &req); err != nil {
		return nil, err
	}

	b := &model.Book{ID: id}
	req.Apply(b)

	updated, err := s.repo.Update(ctx, b)
	if err != nil {
		return nil, err
	}

	if err := s.invalidate(ctx); err != nil {
		return nil, fmt.Errorf("book %d updated: %w", id, err)
	}

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *bookService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.invalidate(ctx); err != nil {
		return fmt.Errorf("book %d deleted: %w", id, err)
	}
	return nil
}

// validate chạy field rules rồi kiểm tra author tồn tại
func (s *bookService) validate(ctx context.Context, req *model.BookRequest) error {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	exists, err := s.authorRepo.Exists(ctx, *req.AuthorID)
	if err != nil {
		return err
	}
	if !exists {
		return model.AuthorFieldError()
	}
	return nil
}

// Book write đổi count_books của author nên xóa cả hai tag
func (s *bookService) invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx, model.ReadTags...)
}
