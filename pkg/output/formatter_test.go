package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatter_Print(t *testing.T) {
	tests := []struct {
		name              string
		reply             string
		useColor          bool
		raw               bool
		expectContains    []string
		expectNotContains []string
	}{
		{
			name:     "Plain html",
			reply:    "HTTP/1.1 200 OK\r\nContent-Type:text/html\r\nContent-Length: 5\r\n\r\n<b/>!",
			useColor: false,
			expectContains: []string{
				"HTTP/1.1 200 OK\n",
				"Content-Length: 5\n",
				"Content-Type: text/html\n",
				"<b/>!",
			},
			expectNotContains: []string{"\033["},
		},
		{
			name:     "Json is indented",
			reply:    "HTTP/1.1 200 OK\r\nContent-Type:application/json\r\nContent-Length: 16\r\n\r\n[{\"order_id\":1}]",
			useColor: false,
			expectContains: []string{
				"[\n  {\n    \"order_id\": 1\n  }\n]",
			},
		},
		{
			name:     "Colored status",
			reply:    "HTTP/1.1 404 Not Found\r\nContent-Length: 0\r\n\r\n",
			useColor: true,
			expectContains: []string{
				"\033[",
				"404 Not Found",
			},
		},
		{
			name:     "Raw",
			reply:    "HTTP/1.1 200 OK\r\nContent-Type:text/css\r\n\r\nbody {}",
			useColor: true,
			raw:      true,
			expectContains: []string{
				"HTTP/1.1 200 OK\r\nContent-Type:text/css\r\n\r\nbody {}",
			},
			expectNotContains: []string{"\033["},
		},
		{
			name:           "Unparsable reply",
			reply:          "garbage",
			useColor:       true,
			expectContains: []string{"garbage"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			f := NewFormatter(tt.useColor).WithWriter(&buf).WithRaw(tt.raw)
			if err := f.Print(tt.reply); err != nil {
				t.Fatalf("Print returned error: %v", err)
			}
			output := buf.String()

			for _, expected := range tt.expectContains {
				if !strings.Contains(output, expected) {
					t.Errorf("Expected output to contain %q, but it didn't.\nOutput: %s", expected, output)
				}
			}
			for _, notExpected := range tt.expectNotContains {
				if strings.Contains(output, notExpected) {
					t.Errorf("Expected output to NOT contain %q, but it did.\nOutput: %s", notExpected, output)
				}
			}
		})
	}
}

func TestLexerFor(t *testing.T) {
	tests := map[string]string{
		"application/json":         "json",
		"application/problem+json": "json",
		"text/html; charset=utf-8": "html",
		"TEXT/CSS":                 "css",
		"application/javascript":   "javascript",
		"text/plain":               "",
		"":                         "",
	}

	for contentType, want := range tests {
		if got := LexerFor(contentType); got != want {
			t.Errorf("LexerFor(%q) = %q, want %q", contentType, got, want)
		}
	}
}

func TestHighlightBodyWithColor(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(true).WithWriter(&buf)

	if err := f.HighlightBody("body { color: red; }", "text/css"); err != nil {
		t.Fatalf("HighlightBody returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "\033[") {
		t.Errorf("Expected highlighted output, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "color") {
		t.Errorf("Expected body text in output, got %q", buf.String())
	}
}
