package router

import (
	"github.com/niels/tinyhttp/pkg/config"
	"github.com/niels/tinyhttp/pkg/handler"
	"github.com/niels/tinyhttp/pkg/request"
	"github.com/niels/tinyhttp/pkg/response"
	"github.com/niels/tinyhttp/pkg/store"
)

// APIPrefix is the first path segment that selects the web service
const APIPrefix = "api"

// Router selects a handler variant for each request
type Router struct {
	static   handler.Handler
	service  handler.Handler
	notFound handler.Handler
	files    handler.FileLoader
}

// New creates a router over the given lookups
func New(files handler.FileLoader, orders handler.OrderLoader, static config.StaticConfig) *Router {
	return &Router{
		static:   handler.NewStaticPage(files, static),
		service:  handler.NewWebService(files, orders),
		notFound: handler.NewNotFound(files),
		files:    files,
	}
}

// FromConfig creates a router backed by the configured public and data directories
func FromConfig(cfg *config.Config) *Router {
	return New(store.NewFiles(cfg.Paths.Public), store.NewOrders(cfg.Paths.Data), cfg.Static)
}

// Route picks the handler: GET /api/... goes to the web service, any other
// GET to static pages, and every other method to not-found.
func (r *Router) Route(req *request.Request) handler.Handler {
	if req.Method != request.MethodGet {
		return r.notFound
	}
	if segment, ok := req.Resource.Segment(1); ok && segment == APIPrefix {
		return r.service
	}
	return r.static
}

// Dispatch routes the request and runs the selected handler
func (r *Router) Dispatch(req *request.Request) *response.Response {
	return r.Route(req).Handle(req)
}

// BadRequest is the response for requests that could not be parsed
func (r *Router) BadRequest() *response.Response {
	return handler.ErrorPage(r.files, response.StatusBadRequest)
}
