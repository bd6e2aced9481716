package service

import (
	"context"
	"fmt"
	"strconv"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/repository"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/pagination"
)

// authorService implements ServiceInterface
type authorService struct {
	repo      repository.RepositoryInterface
	cache     *cache.TagCache
	paginator *pagination.Paginator
}

// NewAuthorService creates a new author service instance
func NewAuthorService(repo repository.RepositoryInterface, tc *cache.TagCache, paginator *pagination.Paginator) ServiceInterface {
	return &authorService{
		repo:      repo,
		cache:     tc,
		paginator: paginator,
	}
}

var readTags = []string{model.CacheTag}

func (s *authorService) List(ctx context.Context, params ListParams) (*pagination.Collection[model.AuthorResponse], error) {
	// Clamp trước khi build key để count=1000 và count=100 dùng chung entry
	page, perPage, err := s.paginator.Normalize(params.Page, params.PerPage)
	if err != nil {
		return nil, err
	}

	key := cache.MakeKey("authors.index", map[string]string{
		"route": params.Route,
		"page":  strconv.Itoa(page),
		"count": strconv.Itoa(perPage),
	})

	return cache.GetOrCompute(ctx, s.cache, key, readTags, func(ctx context.Context) (*pagination.Collection[model.AuthorResponse], error) {
		query := pagination.QueryFuncs[model.AuthorResponse]{
			CountFn: s.repo.Count,
			FetchFn: func(ctx context.Context, limit, offset int) ([]model.AuthorResponse, error) {
				authors, err := s.repo.List(ctx, limit, offset)
				if err != nil {
					return nil, err
				}
				return toResponses(authors), nil
			},
		}
		return pagination.Paginate[model.AuthorResponse](ctx, s.paginator, query, page, perPage, params.Route)
	})
}

func (s *authorService) ListAll(ctx context.Context) ([]model.AuthorResponse, error) {
	authors, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(authors), nil
}

func (s *authorService) GetByID(ctx context.Context, id int64) (*model.AuthorResponse, error) {
	key := cache.MakeKey("authors.show", map[string]string{"id": strconv.FormatInt(id, 10)})

	return cache.GetOrCompute(ctx, s.cache, key, readTags, func(ctx context.Context) (*model.AuthorResponse, error) {
		a, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		resp := a.ToResponse()
		return &resp, nil
	})
}

func (s *authorService) Create(ctx context.Context, req model.AuthorRequest) (*model.AuthorResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a := &model.Author{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.SecondName != "" {
		second := req.SecondName
		a.SecondName = &second
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, model.CacheTag); err != nil {
		return nil, fmt.Errorf("author %d created: %w", created.ID, err)
	}

	resp := created.ToResponse()
	return &resp, nil
}

func (s *authorService) Update(ctx context.Context, id int64, req model.AuthorRequest) (*model.AuthorResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.FirstName = req.FirstName
	a.LastName = req.LastName
	if req.SecondName != "" {
		second := req.SecondName
		a.SecondName = &second
	}

	updated, err := s.repo.Update(ctx, a)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, model.CacheTag); err != nil {
		return nil, fmt.Errorf("author %d updated: %w", id, err)
	}

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *authorService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Book entries đều mang tag author nên cascade delete cũng được phủ
	if err := s.cache.Invalidate(ctx, model.CacheTag); err != nil {
		return fmt.Errorf("author %d deleted: %w", id, err)
	}
	return nil
}

func toResponses(authors []model.Author) []model.AuthorResponse {
	out := make([]model.AuthorResponse, 0, len(authors))
	for i := range authors {
		out = append(out, authors[i].ToResponse())
	}
	return out
}
