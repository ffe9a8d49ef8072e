package request

import (
	"fmt"
	"strings"

	"github.com/niels/tinyhttp/pkg/httperr"
)

// Method is the request verb
type Method int

const (
	// MethodOther is any verb other than GET and POST
	MethodOther Method = iota
	// MethodGet is GET
	MethodGet
	// MethodPost is POST
	MethodPost
)

// ParseMethod maps a method token to a Method; unknown tokens map to MethodOther
func ParseMethod(s string) Method {
	switch s {
	case "GET":
		return MethodGet
	case "POST":
		return MethodPost
	default:
		return MethodOther
	}
}

func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	default:
		return "OTHER"
	}
}

// Version is the protocol version token of the request line
type Version int

const (
	// VersionOther is any version other than HTTP/1.1 and HTTP/2.0
	VersionOther Version = iota
	// Version11 is HTTP/1.1
	Version11
	// Version20 is HTTP/2.0
	Version20
)

// ParseVersion maps a version token to a Version; unknown tokens map to VersionOther
func ParseVersion(s string) Version {
	switch s {
	case "HTTP/1.1":
		return Version11
	case "HTTP/2.0":
		return Version20
	default:
		return VersionOther
	}
}

func (v Version) String() string {
	switch v {
	case Version11:
		return "HTTP/1.1"
	case Version20:
		return "HTTP/2.0"
	default:
		return "OTHER"
	}
}

// Resource is the request target. Only plain paths exist; no query or fragment split.
type Resource struct {
	Path string
}

// Segments splits the path on "/" the way the handlers index it.
// "/api/air/orders" yields ["", "api", "air", "orders"].
func (r Resource) Segments() []string {
	return strings.Split(r.Path, "/")
}

// Segment returns the i-th path segment and whether it exists
func (r Resource) Segment(i int) (string, bool) {
	segments := r.Segments()
	if i < 0 || i >= len(segments) {
		return "", false
	}
	return segments[i], true
}

// Request is one parsed request. It is not modified after Parse returns.
type Request struct {
	Method   Method
	Version  Version
	Resource Resource
	Header   map[string]string
	Body     string
}

// Parse turns raw request text into a Request.
//
// Every line is classified in order: a line containing "HTTP" is the request
// line (last one wins), a line containing ':' is a header split at its first
// colon with neither side trimmed, an empty line is skipped, and anything else
// replaces the body. Parse always returns a usable Request; the error is
// non-nil only when the surviving request line has fewer than three tokens.
func Parse(text string) (*Request, error) {
	req := &Request{
		Method:  MethodOther,
		Version: VersionOther,
		Header:  make(map[string]string),
	}

	var lineErr error
	for _, line := range splitLines(text) {
		switch {
		case strings.Contains(line, "HTTP"):
			lineErr = req.parseRequestLine(line)
		case strings.Contains(line, ":"):
			key, value, _ := strings.Cut(line, ":")
			req.Header[key] = value
		case line == "":
		default:
			req.Body = line
		}
	}

	return req, lineErr
}

func (r *Request) parseRequestLine(line string) error {
	words := strings.Fields(line)
	if len(words) < 3 {
		r.Method = MethodOther
		r.Version = VersionOther
		r.Resource = Resource{}
		return httperr.New(httperr.MalformedRequestLine, fmt.Errorf("%q has %d tokens", line, len(words)))
	}

	r.Method = ParseMethod(words[0])
	r.Resource = Resource{Path: words[1]}
	r.Version = ParseVersion(words[2])
	return nil
}

// splitLines splits on '\n' and drops one trailing '\r' from each line
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// HeaderValue returns the value of a header as received, leading space included
func (r *Request) HeaderValue(key string) (string, bool) {
	v, ok := r.Header[key]
	return v, ok
}
