package handler

import (
	"github.com/niels/tinyhttp/pkg/request"
	"github.com/niels/tinyhttp/pkg/response"
	"github.com/niels/tinyhttp/pkg/store"
)

// Error page file names looked up in the public directory
const (
	PageIndex    = "index.html"
	PageHealth   = "health.html"
	PageBadReq   = "400.html"
	PageNotFound = "404.html"
	PageInternal = "500.html"
)

// Handler turns a parsed request into a response
type Handler interface {
	Handle(req *request.Request) *response.Response
}

// FileLoader supplies file contents by name
type FileLoader interface {
	LoadFile(name string) (string, error)
}

// OrderLoader supplies the full sequence of order records
type OrderLoader interface {
	LoadOrders() ([]store.OrderRecord, error)
}

// LoadFile asks files for name and reports whether it was found.
// Any lookup error counts as absent.
func LoadFile(files FileLoader, name string) (string, bool) {
	if files == nil {
		return "", false
	}
	contents, err := files.LoadFile(name)
	if err != nil {
		return "", false
	}
	return contents, true
}

// ErrorPage builds a response with the given code whose body is the
// matching page from files, or empty when that page does not exist
func ErrorPage(files FileLoader, code string) *response.Response {
	var page string
	switch code {
	case response.StatusBadRequest:
		page = PageBadReq
	case response.StatusInternalServerError:
		page = PageInternal
	default:
		page = PageNotFound
	}

	body, _ := LoadFile(files, page)
	return response.New(code, nil, body)
}

// NotFound answers every request with 404 and the not-found page
type NotFound struct {
	files FileLoader
}

// NewNotFound creates a NotFound handler
func NewNotFound(files FileLoader) *NotFound {
	return &NotFound{files: files}
}

// Handle ignores the request entirely
func (h *NotFound) Handle(_ *request.Request) *response.Response {
	return ErrorPage(h.files, response.StatusNotFound)
}
