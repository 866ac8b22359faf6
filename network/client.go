// Package network provides the HTTP client shared by every call to the Videoflix API.
package network

import (
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/samber/lo"
	"golang.org/x/net/publicsuffix"
)

// Client is shared so the API's session cookies and the connection pool survive between requests.
var Client = New(time.Minute)

// New builds a client with a public-suffix aware cookie jar and the tuned transport.
func New(timeout time.Duration) *http.Client {
	jar := lo.Must(cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List}))
	return &http.Client{
		Timeout:   timeout,
		Transport: newTransport(),
		Jar:       jar,
	}
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 20
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	return t
}
