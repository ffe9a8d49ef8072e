package handler

import (
	"strings"

	"github.com/niels/tinyhttp/pkg/config"
	"github.com/niels/tinyhttp/pkg/request"
	"github.com/niels/tinyhttp/pkg/response"
)

// StaticPage serves files from the public directory by the first path segment
type StaticPage struct {
	files       FileLoader
	mimeTypes   map[string]string
	defaultType string
}

// NewStaticPage creates a StaticPage handler using the suffix table of static
func NewStaticPage(files FileLoader, static config.StaticConfig) *StaticPage {
	defaultType := static.DefaultType
	if defaultType == "" {
		defaultType = response.DefaultContentType
	}
	return &StaticPage{
		files:       files,
		mimeTypes:   static.MimeTypes,
		defaultType: defaultType,
	}
}

// Handle maps "/" to index.html, "/health" to health.html and "/<name>" to
// the file <name>. Deeper paths only look at their first segment.
func (h *StaticPage) Handle(req *request.Request) *response.Response {
	segment, ok := req.Resource.Segment(1)
	if !ok {
		return ErrorPage(h.files, response.StatusNotFound)
	}

	switch segment {
	case "":
		body, _ := LoadFile(h.files, PageIndex)
		return response.New(response.StatusOK, nil, body)
	case "health":
		body, _ := LoadFile(h.files, PageHealth)
		return response.New(response.StatusOK, nil, body)
	}

	contents, found := LoadFile(h.files, segment)
	if !found {
		return ErrorPage(h.files, response.StatusNotFound)
	}

	header := map[string]string{"Content-Type": h.ContentType(segment)}
	return response.New(response.StatusOK, header, contents)
}

// ContentType picks the content type for a file name by its suffix
func (h *StaticPage) ContentType(name string) string {
	best := ""
	for suffix := range h.mimeTypes {
		if strings.HasSuffix(name, suffix) && len(suffix) > len(best) {
			best = suffix
		}
	}
	if best == "" {
		return h.defaultType
	}
	return h.mimeTypes[best]
}
