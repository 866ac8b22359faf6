package api

import "net/http"

// Response is the envelope every endpoint returns. Data is only decoded for 2xx statuses.
type Response[T any] struct {
	OK      bool
	Status  int
	Data    T
	Message string
}

func (r Response[T]) IsSuccess() bool {
	return r.OK && r.Status >= 200 && r.Status < 300
}

func (r Response[T]) IsClientError() bool {
	return r.Status >= 400 && r.Status < 500
}

func (r Response[T]) IsServerError() bool {
	return r.Status >= 500
}

func (r Response[T]) IsUnauthorized() bool {
	return r.Status == http.StatusUnauthorized
}

func (r Response[T]) IsNotFound() bool {
	return r.Status == http.StatusNotFound
}

// Describe returns the server message, or the status text when the body carried none.
func (r Response[T]) Describe() string {
	if r.Message != "" {
		return r.Message
	}

	if text := http.StatusText(r.Status); text != "" {
		return text
	}

	return "unexpected response"
}
