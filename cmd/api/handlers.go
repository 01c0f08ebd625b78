// cmd/api/handlers.go
// This file contains all HTTP request handlers for the books resource.
// Each handler is a method on *applicationDependencies so it has access
// to the logger, metrics and database models.
package main

import (
	"errors"
	"net/http"

	"github.com/aoideee/bookshelf/internal/data"
	"github.com/aoideee/bookshelf/internal/validator"
)

// listBooksHandler handles GET /books.
// It returns every stored book as a bare JSON array, [] when there are none.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	books, err := app.models.Books.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, books, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createBookHandler handles POST /books.
// The body must be a JSON object carrying both "title" and "author" keys;
// empty strings are accepted. Responds 201 with the stored book.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input data.CreateBookInput

	// Anything that is not an object of string or number values counts as
	// missing fields.
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.failedValidationResponse(w, r, map[string]string{"body": err.Error()})
		return
	}

	v := validator.New()
	data.ValidateCreateBookInput(v, input)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	book := input.Book()
	err = app.models.Books.Insert(r.Context(), book)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	app.metrics.BookCreated()

	err = app.writeJSON(w, http.StatusCreated, book, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteBookHandler handles DELETE /books/:id.
// A non-integer id does not match the route (generic 404); an unknown id,
// including one past the int64 range, yields the book-specific 404.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		switch {
		case errors.Is(err, errIDOutOfRange):
			app.bookNotFoundResponse(w, r)
		default:
			app.notFoundResponse(w, r)
		}
		return
	}

	err = app.models.Books.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.bookNotFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}
	app.metrics.BookDeleted()

	err = app.writeJSON(w, http.StatusOK, envelope{"message": msgBookDeleted}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// healthcheckHandler handles GET /healthz.
func (app *applicationDependencies) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	env := envelope{
		"status":      "available",
		"environment": app.config.Env,
		"version":     appVersion,
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
