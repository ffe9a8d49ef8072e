package response

import (
	"fmt"
	"strings"

	"github.com/niels/tinyhttp/pkg/httperr"
)

// Parse reads wire text produced by a server back into a Response.
// Header names and values are trimmed; the Content-Length line is kept
// as a header. Everything after the first blank line is the body.
func Parse(raw string) (*Response, error) {
	head, body, found := strings.Cut(raw, "\r\n\r\n")
	if !found {
		head, body, _ = strings.Cut(raw, "\n\n")
	}

	lines := strings.Split(strings.ReplaceAll(head, "\r\n", "\n"), "\n")
	fields := strings.SplitN(lines[0], " ", 3)
	if len(fields) < 2 || !strings.HasPrefix(fields[0], "HTTP/") {
		return nil, httperr.New(httperr.MalformedStatusLine, fmt.Errorf("%q", lines[0]))
	}

	resp := &Response{
		Version:    fields[0],
		StatusCode: fields[1],
		Header:     make(map[string]string),
		Body:       body,
	}
	if len(fields) == 3 {
		resp.StatusText = fields[2]
	}

	for _, line := range lines[1:] {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		resp.Header[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return resp, nil
}

// ContentType returns the Content-Type header, or "" when absent
func (r *Response) ContentType() string {
	for k, v := range r.Header {
		if strings.EqualFold(k, "Content-Type") {
			return v
		}
	}
	return ""
}
