package http

import "net/http"

// GetJSON mounts a handler that takes no input
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, NoInputHandler(h))
}

// GetQuery mounts a handler whose input comes from the query string
func GetQuery[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Get(path, QueryHandler(h))
}
