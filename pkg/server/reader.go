package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/niels/tinyhttp/pkg/httperr"
)

const readChunkSize = 1024

var (
	crlfTerminator = []byte("\r\n\r\n")
	lfTerminator   = []byte("\n\n")
)

// ReadRequest reads one request from r. It stops once the blank line ending
// the header block has arrived plus as many body bytes as Content-Length
// announces, or when the peer closes the connection. More than maxSize bytes
// yield an httperr.RequestTooLarge error.
func ReadRequest(r io.Reader, maxSize int) (string, error) {
	buf := make([]byte, 0, readChunkSize)
	chunk := make([]byte, readChunkSize)
	expected := -1

	for {
		n, err := r.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			if len(buf) > maxSize {
				return "", httperr.New(httperr.RequestTooLarge, fmt.Errorf("more than %d bytes", maxSize))
			}

			if expected < 0 {
				if end := headerEnd(buf); end >= 0 {
					contentLength := parseContentLength(buf[:end])
					if contentLength > maxSize-end {
						return "", httperr.New(httperr.RequestTooLarge,
							fmt.Errorf("content length %d exceeds %d bytes", contentLength, maxSize))
					}
					expected = end + contentLength
				}
			}
			if expected >= 0 && len(buf) >= expected {
				return string(buf), nil
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) && len(buf) > 0 {
				return string(buf), nil
			}
			return string(buf), httperr.New(httperr.ReadFailed, err)
		}
	}
}

// headerEnd returns the offset just past the blank line ending the header block, or -1
func headerEnd(buf []byte) int {
	end := -1
	if i := bytes.Index(buf, crlfTerminator); i >= 0 {
		end = i + len(crlfTerminator)
	}
	if i := bytes.Index(buf, lfTerminator); i >= 0 && (end < 0 || i+len(lfTerminator) < end) {
		end = i + len(lfTerminator)
	}
	return end
}

// parseContentLength finds a Content-Length header in the header block; 0 if absent or invalid
func parseContentLength(header []byte) int {
	for _, line := range strings.Split(string(header), "\n") {
		key, value, found := strings.Cut(strings.TrimSuffix(line, "\r"), ":")
		if !found || !strings.EqualFold(strings.TrimSpace(key), "Content-Length") {
			continue
		}
		if length, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && length > 0 {
			return length
		}
	}
	return 0
}
