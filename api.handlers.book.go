package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

const (
	addBookAction    = "Failed to add book."
	updateBookAction = "Failed to update book."
	deleteBookAction = "Failed to delete book."
)

// Index provides same details like `Status` handler by redirecting the request.
func (api *APIHandler) Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	http.Redirect(w, r, "/status", http.StatusSeeOther)
}

// Status provides basics details about the application to the public users.
func (api *APIHandler) Status(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	if err := WriteJSON(w, http.StatusOK,
		map[string]interface{}{
			"requestid": requestID,
			"status":    fmt.Sprintf("up & running since %.0f mins", api.clock.Now().Sub(api.stats.started).Minutes()),
			"message":   "Hello. Bookshelf api is available. Enjoy :)",
		},
	); err != nil {
		api.GetLoggerFromContext(r.Context()).Error("failed to send status response", zap.Error(err))
	}
}

// CreateBook adds a new book to the shelf and responds with its id.
func (api *APIHandler) CreateBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	logger := api.GetLoggerFromContext(r.Context())

	var fields BookFields
	if err := DecodeBookFieldsRequestBody(w, r, &fields); err != nil {
		logger.Error("failed to decode book creation request", zap.Error(err))
		api.respond(w, r, FailResponse(requestID, http.StatusBadRequest, addBookAction+" Invalid request body"))
		return
	}

	id, err := api.bookService.Add(r.Context(), fields)
	if err != nil {
		logger.Error("failed to add book", zap.Error(err))
		api.respond(w, r, bookErrorResponse(requestID, addBookAction, err))
		return
	}

	logger.Info("success to add book", zap.String("book.id", id))
	api.respond(w, r, SuccessResponse(requestID, http.StatusCreated, "Book added successfully", nil,
		map[string]string{"bookId": id}))
}

// GetAllBooks lists the books summaries matching the `name`,
// `reading` and `finished` query parameters when provided.
func (api *APIHandler) GetAllBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	filter := ParseBookFilter(r)
	books := api.bookService.ListFiltered(r.Context(), filter)
	total := len(books)
	api.GetLoggerFromContext(r.Context()).Info("success to list books", zap.Int("books.total", total))
	api.respond(w, r, SuccessResponse(requestID, http.StatusOK, "Books fetched successfully", &total,
		map[string]interface{}{"books": books}))
}

func (api *APIHandler) GetOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	logger := api.GetLoggerFromContext(r.Context())
	id := ps.ByName("id")

	// a malformed id can not belong to any book.
	if !api.idsHandler.IsValid(id, BookIDPrefix) {
		logger.Error("book id provided is not valid", zap.String("book.id", id))
		api.respond(w, r, FailResponse(requestID, http.StatusNotFound, "Book not found"))
		return
	}

	book, err := api.bookService.GetByID(r.Context(), id)
	if errors.Is(err, ErrBookNotFound) {
		logger.Error("book does not exist", zap.String("book.id", id))
		api.respond(w, r, FailResponse(requestID, http.StatusNotFound, "Book not found"))
		return
	}
	if err != nil {
		logger.Error("failed to get book", zap.String("book.id", id), zap.Error(err))
		api.respond(w, r, FailResponse(requestID, http.StatusInternalServerError, "Failed to get book"))
		return
	}

	logger.Info("success to get book", zap.String("book.id", id))
	api.respond(w, r, SuccessResponse(requestID, http.StatusOK, "Book fetched successfully", nil,
		map[string]interface{}{"book": book}))
}

func (api *APIHandler) UpdateBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	logger := api.GetLoggerFromContext(r.Context())
	id := ps.ByName("id")

	var fields BookFields
	if err := DecodeBookFieldsRequestBody(w, r, &fields); err != nil {
		logger.Error("failed to decode book update request", zap.String("book.id", id), zap.Error(err))
		api.respond(w, r, FailResponse(requestID, http.StatusBadRequest, updateBookAction+" Invalid request body"))
		return
	}

	book, err := api.bookService.UpdateByID(r.Context(), id, fields)
	if err != nil {
		logger.Error("failed to update book", zap.String("book.id", id), zap.Error(err))
		api.respond(w, r, bookErrorResponse(requestID, updateBookAction, err))
		return
	}

	logger.Info("success to update book", zap.String("book.id", id))
	api.respond(w, r, SuccessResponse(requestID, http.StatusOK, "Book updated successfully", nil,
		map[string]interface{}{"book": book}))
}

func (api *APIHandler) DeleteOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	logger := api.GetLoggerFromContext(r.Context())
	id := ps.ByName("id")

	_, err := api.bookService.DeleteByID(r.Context(), id)
	if err != nil {
		logger.Error("failed to delete book", zap.String("book.id", id), zap.Error(err))
		api.respond(w, r, bookErrorResponse(requestID, deleteBookAction, err))
		return
	}

	logger.Info("success to delete book", zap.String("book.id", id))
	api.respond(w, r, SuccessResponse(requestID, http.StatusOK, "Book deleted successfully", nil, nil))
}

// bookErrorResponse maps a book service error to the failure response of an action.
func bookErrorResponse(requestID, action string, err error) *APIResponse {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return FailResponse(requestID, http.StatusBadRequest, action+" "+verr.Reason)
	case errors.Is(err, ErrBookNotFound):
		return FailResponse(requestID, http.StatusNotFound, action+" Id not found")
	default:
		return FailResponse(requestID, http.StatusInternalServerError, action)
	}
}

func (api *APIHandler) respond(w http.ResponseWriter, r *http.Request, resp *APIResponse) {
	if err := WriteResponse(r.Context(), w, resp); err != nil {
		api.GetLoggerFromContext(r.Context()).Error("failed to send response",
			zap.Int("response.code", resp.Code()),
			zap.Error(err),
		)
	}
}
