// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// routes registers all HTTP endpoints and returns the configured router wrapped
// in the middleware chain.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → cors → requestID → logRequest → rateLimit → router
//
// Current endpoints:
//
//	GET    /books        – list all books
//	POST   /books        – create a new book
//	DELETE /books/:id    – delete a book by ID
//	GET    /healthz      – liveness and build info
//	GET    /metrics      – Prometheus metrics
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/books", app.instrument("books_list", app.listBooksHandler))
	router.HandlerFunc(http.MethodPost, "/books", app.instrument("books_create", app.createBookHandler))
	router.HandlerFunc(http.MethodDelete, "/books/:id", app.instrument("books_delete", app.deleteBookHandler))

	router.HandlerFunc(http.MethodGet, "/healthz", app.instrument("healthz", app.healthcheckHandler))
	router.Handler(http.MethodGet, "/metrics", app.metrics.Handler())

	return app.recoverPanic(cors.AllowAll().Handler(app.requestID(app.logRequest(app.rateLimit(router)))))
}
