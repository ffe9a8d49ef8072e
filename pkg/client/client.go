package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/niels/tinyhttp/pkg/config"
	"github.com/niels/tinyhttp/pkg/httperr"
	"github.com/niels/tinyhttp/pkg/logging"
	"github.com/niels/tinyhttp/pkg/retry"
)

// DialFunc opens a connection, matching net.Dialer.DialContext
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Client sends raw request text to a server and returns the raw reply
type Client struct {
	addr    string
	timeout time.Duration
	retry   retry.Options
	dial    DialFunc
}

// New creates a client for addr using the client and retry settings of cfg
func New(cfg *config.Config, addr string) *Client {
	timeout := time.Duration(cfg.Client.Timeout) * time.Second
	return &Client{
		addr:    addr,
		timeout: timeout,
		retry:   retry.FromConfig(cfg),
		dial:    (&net.Dialer{Timeout: timeout}).DialContext,
	}
}

// WithDialer replaces the function used to open connections
func (c *Client) WithDialer(dial DialFunc) *Client {
	c.dial = dial
	return c
}

// Do sends raw and reads the reply until the server closes the connection.
// Failed dials are retried when their message matches a retryable fragment.
func (c *Client) Do(ctx context.Context, raw string) (string, error) {
	var conn net.Conn

	opts := c.retry
	fragments := opts.RetryableErrors
	opts.IsRetryableFunc = func(err error) bool {
		return errors.Is(err, httperr.ConnectFailed) && retry.IsRetryable(err, fragments)
	}

	err := retry.Do(ctx, func(ctx context.Context) error {
		var dialErr error
		conn, dialErr = c.dial(ctx, "tcp", c.addr)
		if dialErr != nil {
			return httperr.New(httperr.ConnectFailed, dialErr)
		}
		return nil
	}, opts)
	if err != nil {
		return "", fmt.Errorf("failed to connect to %s: %w", c.addr, err)
	}
	defer conn.Close()

	if c.timeout > 0 {
		conn.SetDeadline(time.Now().Add(c.timeout))
	}

	logging.DebugWith("Sending request", map[string]interface{}{
		"addr":  c.addr,
		"bytes": len(raw),
	})

	if _, err := io.WriteString(conn, raw); err != nil {
		return "", httperr.New(httperr.WriteFailed, err)
	}
	if tcp, ok := conn.(*net.TCPConn); ok {
		tcp.CloseWrite()
	}

	reply, err := io.ReadAll(conn)
	if err != nil {
		return string(reply), httperr.New(httperr.ReadFailed, err)
	}

	logging.DebugWith("Received response", map[string]interface{}{
		"addr":  c.addr,
		"bytes": len(reply),
	})
	return string(reply), nil
}

// BuildRequest renders request text: the request line, a Host header,
// the given headers in sorted order, Content-Length when a body is
// present, a blank line and the body.
func BuildRequest(method, path, host string, header map[string]string, body string) string {
	if method == "" {
		method = "GET"
	}
	if path == "" {
		path = "/"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %s HTTP/1.1\r\n", method, path))
	if host != "" {
		sb.WriteString(fmt.Sprintf("Host: %s\r\n", host))
	}

	keys := make([]string, 0, len(header))
	for k := range header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("%s: %s\r\n", k, header[k]))
	}

	if body != "" {
		sb.WriteString(fmt.Sprintf("Content-Length: %d\r\n", len(body)))
	}
	sb.WriteString("\r\n")
	sb.WriteString(body)

	return sb.String()
}
