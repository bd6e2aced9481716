package routes

import "library-catalog/pkg/pagination"

// Named routes used to build pagination links
const (
	APIAuthors = "api_authors"
	APIBooks   = "api_books"
	WebHome    = "web_home"
	WebAuthors = "web_authors"
	WebBooks   = "web_books"
)

// Table returns the route table for every paginated listing.
func Table() *pagination.RouteTable {
	return pagination.NewRouteTable().
		Register(APIAuthors, "/api/authors").
		Register(APIBooks, "/api/books").
		Register(WebHome, "/").
		Register(WebAuthors, "/authors").
		Register(WebBooks, "/books")
}
