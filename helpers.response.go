package main

import (
	"context"
	"errors"
	"net/http"
)

const (
	StatusSuccess = "success"
	StatusFail    = "fail"

	// StatusClientClosedRequest is the nginx non standard status code.
	StatusClientClosedRequest = 499
)

// CustomResponseWriter is a wrapper for http.ResponseWriter. It is
// used to record response details like status code and body size.
type CustomResponseWriter struct {
	http.ResponseWriter
	code  int
	bytes int
	wrote bool
}

// NewCustomResponseWriter provides CustomResponseWriter with 200 as status code.
func NewCustomResponseWriter(rw http.ResponseWriter) *CustomResponseWriter {
	return &CustomResponseWriter{
		ResponseWriter: rw,
		code:           http.StatusOK,
	}
}

// WriteHeader implements http.ResponseWriter interface.
func (cw *CustomResponseWriter) WriteHeader(code int) {
	if !cw.wrote {
		cw.code = code
		cw.wrote = true
		cw.ResponseWriter.WriteHeader(code)
	}
}

// Write implements http.ResponseWriter interface.
func (cw *CustomResponseWriter) Write(bytes []byte) (int, error) {
	if !cw.wrote {
		cw.WriteHeader(cw.code)
	}
	n, err := cw.ResponseWriter.Write(bytes)
	cw.bytes += n
	return n, err
}

// Status returns the written status code.
func (cw *CustomResponseWriter) Status() int {
	return cw.code
}

// Bytes returns bytes written as response body.
func (cw *CustomResponseWriter) Bytes() int {
	return cw.bytes
}

// Unwrap returns native response writer and used by
// the http.ResponseController during its operation.
func (cw *CustomResponseWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}

// APIResponse is the envelope of every books api response. The `total`
// field is only set on listing and `data` is omitted when there is
// nothing to return. The http status code is not part of the body.
type APIResponse struct {
	RequestID string      `json:"requestid"`
	Status    string      `json:"status"`
	Message   string      `json:"message,omitempty"`
	Total     *int        `json:"total,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	code      int
}

// SuccessResponse builds a response with `success` status.
func SuccessResponse(requestID string, code int, message string, total *int, data interface{}) *APIResponse {
	return &APIResponse{
		RequestID: requestID,
		Status:    StatusSuccess,
		Message:   message,
		Total:     total,
		Data:      data,
		code:      code,
	}
}

// FailResponse builds a response with `fail` status.
func FailResponse(requestID string, code int, message string) *APIResponse {
	return &APIResponse{
		RequestID: requestID,
		Status:    StatusFail,
		Message:   message,
		code:      code,
	}
}

// Code returns the http status code to send along the response.
func (resp *APIResponse) Code() int {
	return resp.code
}

// WriteResponse is used to send api response to client. In case the client closes the
// request, it only sets the Nginx non standard status code 499 (Client Closed Request)
// for stats purpose. On request processing timeout it sets the status code to 504.
func WriteResponse(ctx context.Context, w http.ResponseWriter, resp *APIResponse) error {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			w.WriteHeader(http.StatusGatewayTimeout)
		} else {
			w.WriteHeader(StatusClientClosedRequest)
		}
		return err
	}
	return WriteJSON(w, resp.code, resp)
}

// WriteJSON encodes v as the json body of a response with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	return jsonAPI.NewEncoder(w).Encode(v)
}
