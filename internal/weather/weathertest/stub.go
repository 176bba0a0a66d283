// Package weathertest provides an in-process stand-in for the weather API.
//
// The stub is a fiber app served through app.Test, so clients built from
// Server.Client never open a socket and can keep using the production URL.
package weathertest

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gofiber/fiber/v2"
)

// ErrUnreachable is returned by clients from Unreachable.
var ErrUnreachable = errors.New("weathertest: connection refused")

// Server answers every request with a fixed status and JSON body and records
// the URLs it was asked for.
type Server struct {
	app *fiber.App

	mu       sync.Mutex
	status   int
	body     string
	requests []string
	appids   []string
}

// New creates a stub answering with status and body.
func New(status int, body string) *Server {
	s := &Server{
		app:    fiber.New(fiber.Config{DisableStartupMessage: true}),
		status: status,
		body:   body,
	}

	s.app.Get("/*", func(c *fiber.Ctx) error {
		s.mu.Lock()
		s.appids = append(s.appids, c.Query("appid"))
		status, body := s.status, s.body
		s.mu.Unlock()

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(status).SendString(body)
	})

	return s
}

// Respond changes the status and body returned from now on.
func (s *Server) Respond(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.body = body
}

// Client returns an HTTP client whose requests are all served by the stub.
func (s *Server) Client() *http.Client {
	return &http.Client{Transport: roundTripper{s}}
}

// Requests returns the full URLs of the requests received so far, as the
// client sent them.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// AppIDs returns the appid query value the stub saw for each request.
func (s *Server) AppIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.appids...)
}

type roundTripper struct {
	s *Server
}

func (rt roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.s.mu.Lock()
	rt.s.requests = append(rt.s.requests, req.URL.String())
	rt.s.mu.Unlock()

	return rt.s.app.Test(req, -1)
}

// Unreachable returns a client whose every request fails at the transport.
func Unreachable() *http.Client {
	return &http.Client{Transport: failingTransport{}}
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, ErrUnreachable
}
