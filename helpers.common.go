package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// jsonAPI is the encoding/json compatible codec used across the app.
var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

var errEmptyRequestBody = errors.New("request body is missing")

type ContextKey string

const (
	BookIDPrefix            string     = "b"
	RequestIDPrefix         string     = "r"
	RequestIDContextKey     ContextKey = "request.id"
	RequestNumberContextKey ContextKey = "request.number"

	// MaxBookRequestBodySize is the largest accepted book payload (1MB).
	MaxBookRequestBodySize int64 = 1 << 20
)

// GetValueFromContext returns the value of a given key in the context
// if this key is not available, it returns an empty string.
func GetValueFromContext(ctx context.Context, contextKey ContextKey) string {
	if val, ok := ctx.Value(contextKey).(string); ok {
		return val
	}
	return ""
}

// GetRequestNumberFromContext returns the request number set in
// the context. if not previously set then it returns 0.
func GetRequestNumberFromContext(ctx context.Context) uint64 {
	if val, ok := ctx.Value(RequestNumberContextKey).(uint64); ok {
		return val
	}
	return 0
}

// DecodeBookFieldsRequestBody reads the content of a book creation or update
// request. The body is limited to MaxBookRequestBodySize bytes.
func DecodeBookFieldsRequestBody(w http.ResponseWriter, r *http.Request, fields *BookFields) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errEmptyRequestBody
	}
	r.Body = http.MaxBytesReader(w, r.Body, MaxBookRequestBodySize)
	return jsonAPI.NewDecoder(r.Body).Decode(fields)
}

// ParseBookFilter builds the listing filter from the query parameters.
// A boolean parameter is true only for `1` and false for any other
// provided value. Missing parameters leave the predicate unset.
func ParseBookFilter(r *http.Request) BookFilter {
	q := r.URL.Query()
	filter := BookFilter{Name: q.Get("name")}
	if q.Has("reading") {
		v := parseQueryBool(q.Get("reading"))
		filter.Reading = &v
	}
	if q.Has("finished") {
		v := parseQueryBool(q.Get("finished"))
		filter.Finished = &v
	}
	return filter
}

func parseQueryBool(value string) bool {
	return value == "1"
}

// GetRequestSourceIP helps find the source IP of the caller.
func GetRequestSourceIP(r *http.Request) string {
	// Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip
	}

	// Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		ip = strings.TrimSpace(ip)
		netIP = net.ParseIP(ip)
		if netIP != nil {
			return ip
		}
	}

	// Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return ""
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip
	}
	return ""
}

// IsAppRunningInDocker checks the existence of the .dockerenv
// file at the root directory and returns a boolean result.
func IsAppRunningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}
