package request

import (
	"errors"
	"reflect"
	"testing"

	"github.com/niels/tinyhttp/pkg/httperr"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		token    string
		expected Method
	}{
		{"GET", MethodGet},
		{"POST", MethodPost},
		{"PUT", MethodOther},
		{"get", MethodOther},
		{"", MethodOther},
	}

	for _, tt := range tests {
		if got := ParseMethod(tt.token); got != tt.expected {
			t.Errorf("ParseMethod(%q) = %v, expected %v", tt.token, got, tt.expected)
		}
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		token    string
		expected Version
	}{
		{"HTTP/1.1", Version11},
		{"HTTP/2.0", Version20},
		{"HTTP/1.0", VersionOther},
		{"HTTP/3", VersionOther},
		{"", VersionOther},
	}

	for _, tt := range tests {
		if got := ParseVersion(tt.token); got != tt.expected {
			t.Errorf("ParseVersion(%q) = %v, expected %v", tt.token, got, tt.expected)
		}
	}
}

func TestParseRequest(t *testing.T) {
	raw := "GET /index HTTP/1.1\r\nHost: localhost\r\nUser-Agent: Curl/7.64.1\r\nAccept: */*\r\n\r\n"

	req, err := Parse(raw)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if req.Method != MethodGet {
		t.Errorf("Expected method GET, got %v", req.Method)
	}
	if req.Resource != (Resource{Path: "/index"}) {
		t.Errorf("Expected path /index, got %q", req.Resource.Path)
	}
	if req.Version != Version11 {
		t.Errorf("Expected version HTTP/1.1, got %v", req.Version)
	}

	expectedHeader := map[string]string{
		"Host":       " localhost",
		"User-Agent": " Curl/7.64.1",
		"Accept":     " */*",
	}
	if !reflect.DeepEqual(req.Header, expectedHeader) {
		t.Errorf("Expected headers %v, got %v", expectedHeader, req.Header)
	}
	if req.Body != "" {
		t.Errorf("Expected empty body, got %q", req.Body)
	}
}

func TestParseHeaderEdgeCases(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nHost: localhost:8080\r\nX-Dup: first\r\nX-Dup: second\r\nKey :value\r\n\r\n"

	req, err := Parse(raw)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := req.Header["Host"]; got != " localhost:8080" {
		t.Errorf("Expected value after the first colon only, got %q", got)
	}
	if got := req.Header["X-Dup"]; got != " second" {
		t.Errorf("Expected duplicate header to overwrite, got %q", got)
	}
	if got, ok := req.HeaderValue("Key "); !ok || got != "value" {
		t.Errorf("Expected untrimmed key %q with value %q, got %q (found=%v)", "Key ", "value", got, ok)
	}
}

func TestParseBodyKeepsLastLine(t *testing.T) {
	raw := "POST /submit HTTP/1.1\r\nContent-Type: text/plain\r\n\r\nfirst line\r\nsecond line\r\n"

	req, err := Parse(raw)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if req.Method != MethodPost {
		t.Errorf("Expected POST, got %v", req.Method)
	}
	if req.Body != "second line" {
		t.Errorf("Expected only the last body line, got %q", req.Body)
	}
}

func TestParseLastRequestLineWins(t *testing.T) {
	raw := "GET /first HTTP/1.1\nPOST /second HTTP/2.0\n"

	req, err := Parse(raw)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if req.Method != MethodPost || req.Version != Version20 || req.Resource.Path != "/second" {
		t.Errorf("Expected the second request line to win, got %v %q %v", req.Method, req.Resource.Path, req.Version)
	}
}

func TestParseWithoutRequestLine(t *testing.T) {
	for _, raw := range []string{"", "\r\n\r\n", "Host: localhost\r\n"} {
		req, err := Parse(raw)
		if err != nil {
			t.Errorf("Parse(%q) returned unexpected error: %v", raw, err)
		}
		if req.Method != MethodOther || req.Version != VersionOther || req.Resource.Path != "" {
			t.Errorf("Parse(%q) expected defaults, got %v %q %v", raw, req.Method, req.Resource.Path, req.Version)
		}
		if req.Header == nil {
			t.Errorf("Parse(%q) returned a nil header map", raw)
		}
	}
}

func TestParseMalformedRequestLine(t *testing.T) {
	req, err := Parse("GET HTTP/1.1\r\nHost: localhost\r\n\r\n")
	if err == nil {
		t.Fatal("Expected an error for a two-token request line")
	}
	if !errors.Is(err, httperr.MalformedRequestLine) {
		t.Errorf("Expected MalformedRequestLine, got %v", err)
	}
	if req == nil {
		t.Fatal("Expected a request alongside the error")
	}
	if req.Header["Host"] != " localhost" {
		t.Errorf("Expected the remaining lines to be parsed, got %v", req.Header)
	}
}

func TestResourceSegment(t *testing.T) {
	r := Resource{Path: "/api/air/orders"}

	expected := []string{"", "api", "air", "orders"}
	if !reflect.DeepEqual(r.Segments(), expected) {
		t.Errorf("Expected segments %v, got %v", expected, r.Segments())
	}

	if s, ok := r.Segment(2); !ok || s != "air" {
		t.Errorf("Expected segment 2 to be air, got %q (found=%v)", s, ok)
	}
	if _, ok := r.Segment(4); ok {
		t.Error("Expected segment 4 to be missing")
	}
	if _, ok := (Resource{}).Segment(1); ok {
		t.Error("Expected segment 1 of an empty path to be missing")
	}
}
