package main

import (
	"github.com/julienschmidt/httprouter"
)

// bookRoutesPrefixes lists the mount points of the books endpoints.
// The unversioned one is kept for the existing bookshelf clients.
var bookRoutesPrefixes = []string{"/books", "/v1/books"}

// SetupBookRoutes injects book related the api endpoints.
func (api *APIHandler) SetupBookRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.GET("/", m.public(api.Index))
	router.GET("/status", m.public(api.Status))
	for _, prefix := range bookRoutesPrefixes {
		router.POST(prefix, m.public(api.CreateBook))
		router.GET(prefix, m.public(api.GetAllBooks))
		router.GET(prefix+"/:id", m.public(api.GetOneBook))
		router.PUT(prefix+"/:id", m.public(api.UpdateBook))
		router.DELETE(prefix+"/:id", m.public(api.DeleteOneBook))
	}
	return router
}
