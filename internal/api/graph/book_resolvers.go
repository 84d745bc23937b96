package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/openshelf/book-catalog/internal/api/metrics"
	"github.com/openshelf/book-catalog/internal/api/middleware"
	"github.com/openshelf/book-catalog/internal/core/domain"
	"github.com/openshelf/book-catalog/internal/core/ports"
)

func (r *Resolver) resolveBooks(p graphql.ResolveParams) (interface{}, error) {
	viewer := middleware.ViewerFrom(p.Context)

	var filter ports.BookFilter
	if raw, ok := p.Args["filter"].(map[string]interface{}); ok {
		if v := optString(raw, "title"); v != nil {
			filter.Title = *v
		}
		if v := optString(raw, "author"); v != nil {
			filter.Author = *v
		}
		if v := optString(raw, "genre"); v != nil {
			filter.Genre = *v
		}
		filter.PublishedYear = optInt(raw, "publishedYear")
	}

	return r.books.List(p.Context, viewer, filter, intArg(p.Args, "limit", 10), intArg(p.Args, "offset", 0))
}

func (r *Resolver) resolveBook(p graphql.ResolveParams) (interface{}, error) {
	viewer := middleware.ViewerFrom(p.Context)
	return r.books.Get(p.Context, viewer, stringArg(p.Args, "id"))
}

func (r *Resolver) resolveSearchBooks(p graphql.ResolveParams) (interface{}, error) {
	viewer := middleware.ViewerFrom(p.Context)
	return r.books.Search(p.Context, viewer, stringArg(p.Args, "query"), intArg(p.Args, "limit", 10), intArg(p.Args, "offset", 0))
}

func (r *Resolver) resolveBooksByGenre(p graphql.ResolveParams) (interface{}, error) {
	viewer := middleware.ViewerFrom(p.Context)
	filter := ports.BookFilter{Genre: stringArg(p.Args, "genre")}
	return r.books.List(p.Context, viewer, filter, intArg(p.Args, "limit", 10), intArg(p.Args, "offset", 0))
}

func (r *Resolver) resolveBooksByAuthor(p graphql.ResolveParams) (interface{}, error) {
	viewer := middleware.ViewerFrom(p.Context)
	filter := ports.BookFilter{Author: stringArg(p.Args, "author")}
	return r.books.List(p.Context, viewer, filter, intArg(p.Args, "limit", 10), intArg(p.Args, "offset", 0))
}

func (r *Resolver) resolveCreateBook(p graphql.ResolveParams) (interface{}, error) {
	viewer := middleware.ViewerFrom(p.Context)
	input := inputArg(p.Args, "input")

	book, err := r.books.Create(p.Context, viewer, ports.CreateBookInput{
		Title:         stringArg(input, "title"),
		Author:        stringArg(input, "author"),
		Genre:         stringArg(input, "genre"),
		PublishedYear: intArg(input, "publishedYear", 0),
	})
	if err != nil {
		return nil, err
	}
	metrics.BooksCreatedTotal.Inc()
	return book, nil
}

func (r *Resolver) resolveUpdateBook(p graphql.ResolveParams) (interface{}, error) {
	viewer := middleware.ViewerFrom(p.Context)
	input := inputArg(p.Args, "input")
	return r.books.Update(p.Context, viewer, stringArg(p.Args, "id"), ports.UpdateBookInput{
		Title:         optString(input, "title"),
		Author:        optString(input, "author"),
		Genre:         optString(input, "genre"),
		PublishedYear: optInt(input, "publishedYear"),
	})
}

func (r *Resolver) resolveDeleteBook(p graphql.ResolveParams) (interface{}, error) {
	viewer := middleware.ViewerFrom(p.Context)
	return r.books.Delete(p.Context, viewer, stringArg(p.Args, "id"))
}

// resolveBookCreator resolves the Book.createdBy reference to the public
// user projection.
func (r *Resolver) resolveBookCreator(p graphql.ResolveParams) (interface{}, error) {
	book := p.Source.(*domain.Book)
	return r.users.ByID(p.Context, book.CreatedBy)
}
