package response

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

const (
	// DefaultVersion is the protocol version every response carries
	DefaultVersion = "HTTP/1.1"
	// DefaultStatusCode is used when no other code is given
	DefaultStatusCode = "200"
	// DefaultContentType is installed when the caller supplies no header map
	DefaultContentType = "text/html"
)

// Status codes emitted by the handlers and the server
const (
	StatusOK                  = "200"
	StatusBadRequest          = "400"
	StatusNotFound            = "404"
	StatusInternalServerError = "500"
)

var statusText = map[string]string{
	StatusOK:                  "OK",
	StatusBadRequest:          "Bad Request",
	StatusNotFound:            "Not Found",
	StatusInternalServerError: "Internal Server Error",
}

// StatusText returns the reason phrase for a code. Codes outside the table
// resolve to "Not Found", which existing clients depend on.
func StatusText(code string) string {
	if text, ok := statusText[code]; ok {
		return text
	}
	return "Not Found"
}

// Response is one response to emit
type Response struct {
	Version    string
	StatusCode string
	StatusText string
	Header     map[string]string
	Body       string
}

// New builds a Response. A nil header gets {"Content-Type": "text/html"};
// a non-nil header is used as is, without merging the default in.
func New(code string, header map[string]string, body string) *Response {
	resp := &Response{
		Version:    DefaultVersion,
		StatusCode: DefaultStatusCode,
		Body:       body,
	}
	if code != "" && code != DefaultStatusCode {
		resp.StatusCode = code
	}

	if header == nil {
		header = map[string]string{"Content-Type": DefaultContentType}
	}
	resp.Header = header
	resp.StatusText = StatusText(resp.StatusCode)

	return resp
}

// ContentLength is the byte length of the body
func (r *Response) ContentLength() int {
	return len(r.Body)
}

// String serializes the response to wire text. Headers are written as
// "key:value" in sorted key order; HTTP itself does not fix an order.
func (r *Response) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s %s %s\r\n", r.Version, r.StatusCode, r.StatusText))

	keys := make([]string, 0, len(r.Header))
	for k := range r.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteString(":")
		sb.WriteString(r.Header[k])
		sb.WriteString("\r\n")
	}

	sb.WriteString(fmt.Sprintf("Content-Length: %d\r\n\r\n", r.ContentLength()))
	sb.WriteString(r.Body)

	return sb.String()
}

// WriteTo writes the serialized response to w
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}
