package response

import (
	"errors"
	"testing"

	"github.com/niels/tinyhttp/pkg/httperr"
)

func TestParseRoundTrip(t *testing.T) {
	orig := New("404", map[string]string{"Content-Type": "text/css"}, "body {}")

	got, err := Parse(orig.String())
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got.Version != "HTTP/1.1" || got.StatusCode != "404" || got.StatusText != "Not Found" {
		t.Errorf("Unexpected status line: %s %s %s", got.Version, got.StatusCode, got.StatusText)
	}
	if got.ContentType() != "text/css" {
		t.Errorf("Expected Content-Type text/css, got %q", got.ContentType())
	}
	if got.Header["Content-Length"] != "7" {
		t.Errorf("Expected Content-Length 7, got %q", got.Header["Content-Length"])
	}
	if got.Body != "body {}" {
		t.Errorf("Expected body %q, got %q", "body {}", got.Body)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		code    string
		text    string
		body    string
		wantErr bool
	}{
		{"bare newlines", "HTTP/1.0 200 OK\nX: 1\n\nhi", "200", "OK", "hi", false},
		{"no reason phrase", "HTTP/1.1 204\r\n\r\n", "204", "", "", false},
		{"multi word reason", "HTTP/1.1 500 Internal Server Error\r\n\r\noops", "500", "Internal Server Error", "oops", false},
		{"headers only", "HTTP/1.1 200 OK\r\nA:b", "200", "OK", "", false},
		{"empty", "", "", "", "", true},
		{"not http", "hello world\r\n\r\n", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, httperr.MalformedStatusLine) {
					t.Errorf("Expected MalformedStatusLine, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			if got.StatusCode != tt.code || got.StatusText != tt.text || got.Body != tt.body {
				t.Errorf("Got %q %q %q, want %q %q %q", got.StatusCode, got.StatusText, got.Body, tt.code, tt.text, tt.body)
			}
		})
	}
}
