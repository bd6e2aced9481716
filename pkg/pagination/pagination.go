// Package pagination turns a count query and a paged fetch into a Collection
// with metadata and navigation links.
package pagination

import (
	"context"
	"errors"
	"fmt"
)

const (
	DefaultMaxPerPage = 100
	DefaultPerPage    = 20
)

var ErrInvalidPerPage = errors.New("per page must be a positive number")

// Query is the repository side of a paginated listing. Count and Fetch must
// apply the same filters; they are not required to see the same snapshot.
type Query[T any] interface {
	Count(ctx context.Context) (int, error)
	Fetch(ctx context.Context, limit, offset int) ([]T, error)
}

// QueryFuncs adapts two closures to Query.
type QueryFuncs[T any] struct {
	CountFn func(ctx context.Context) (int, error)
	FetchFn func(ctx context.Context, limit, offset int) ([]T, error)
}

func (q QueryFuncs[T]) Count(ctx context.Context) (int, error) { return q.CountFn(ctx) }

func (q QueryFuncs[T]) Fetch(ctx context.Context, limit, offset int) ([]T, error) {
	return q.FetchFn(ctx, limit, offset)
}

type Meta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	Count       int `json:"count"`
}

type Links struct {
	First string `json:"first"`
	Last  string `json:"last"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
}

type Collection[T any] struct {
	Items []T   `json:"items"`
	Meta  Meta  `json:"meta"`
	Links Links `json:"links"`
}

// Paginator holds the route table used for links and the per-page cap.
type Paginator struct {
	Routes     *RouteTable
	MaxPerPage int
}

func NewPaginator(routes *RouteTable, maxPerPage int) *Paginator {
	if maxPerPage <= 0 {
		maxPerPage = DefaultMaxPerPage
	}
	return &Paginator{Routes: routes, MaxPerPage: maxPerPage}
}

// Normalize applies the paging rules to raw input:
// perPage <= 0 is rejected, perPage is capped at MaxPerPage, page < 1 becomes 1.
func (p *Paginator) Normalize(page, perPage int) (int, int, error) {
	if perPage <= 0 {
		return 0, 0, ErrInvalidPerPage
	}
	if perPage > p.MaxPerPage {
		perPage = p.MaxPerPage
	}
	if page < 1 {
		page = 1
	}
	return page, perPage, nil
}

// Paginate runs the count query, fetches only the requested page and builds links
// for routeName. A page past the end yields no items and no error.
func Paginate[T any](ctx context.Context, p *Paginator, q Query[T], page, perPage int, routeName string) (*Collection[T], error) {
	page, perPage, err := p.Normalize(page, perPage)
	if err != nil {
		return nil, err
	}

	total, err := q.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}

	lastPage := LastPage(total, perPage)

	items := []T{}
	// page > lastPage: không fetch, và (page-1)*perPage có thể overflow
	if total > 0 && page <= lastPage {
		offset := (page - 1) * perPage
		fetched, err := q.Fetch(ctx, perPage, offset)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}
		if fetched != nil {
			items = fetched
		}
	}

	links, err := p.links(routeName, page, perPage, lastPage)
	if err != nil {
		return nil, err
	}

	return &Collection[T]{
		Items: items,
		Meta: Meta{
			CurrentPage: page,
			LastPage:    lastPage,
			Count:       total,
		},
		Links: links,
	}, nil
}

// LastPage is ceil(total/perPage), never less than 1.
func LastPage(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

func (p *Paginator) links(routeName string, page, perPage, lastPage int) (Links, error) {
	gen := func(target int) (string, error) {
		return p.Routes.Generate(routeName, target, perPage)
	}

	var links Links
	var err error

	if links.First, err = gen(1); err != nil {
		return Links{}, err
	}
	if links.Last, err = gen(lastPage); err != nil {
		return Links{}, err
	}
	if page < lastPage {
		if links.Next, err = gen(page + 1); err != nil {
			return Links{}, err
		}
	}
	if page > 1 {
		prev := page - 1
		if prev > lastPage {
			prev = lastPage
		}
		if links.Prev, err = gen(prev); err != nil {
			return Links{}, err
		}
	}

	return links, nil
}
