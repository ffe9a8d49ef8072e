package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/niels/tinyhttp/pkg/config"
	"github.com/niels/tinyhttp/pkg/httperr"
	"github.com/niels/tinyhttp/pkg/logging"
	"github.com/niels/tinyhttp/pkg/request"
	"github.com/niels/tinyhttp/pkg/response"
	"github.com/niels/tinyhttp/pkg/router"
	"github.com/rs/zerolog"
)

// Dispatcher produces responses for parsed requests
type Dispatcher interface {
	Dispatch(req *request.Request) *response.Response
	BadRequest() *response.Response
}

// Server accepts TCP connections and answers one request per connection
type Server struct {
	config     config.ServerConfig
	dispatcher Dispatcher
	logger     zerolog.Logger
	wg         sync.WaitGroup
}

// New creates a server with the given configuration and dispatcher
func New(cfg *config.Config, dispatcher Dispatcher) *Server {
	return &Server{
		config:     cfg.Server,
		dispatcher: dispatcher,
		logger:     logging.WithComponent("server"),
	}
}

// FromConfig creates a server whose dispatcher is a router over the configured directories
func FromConfig(cfg *config.Config) *Server {
	return New(cfg, router.FromConfig(cfg))
}

// ListenAndServe binds the configured address and serves until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Address, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections from listener until ctx is cancelled, then
// closes the listener and waits for in-flight connections to finish.
// At most MaxConnections connections are handled at once.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			listener.Close()
		case <-done:
		}
	}()
	defer s.wg.Wait()

	s.logger.Info().Str("address", listener.Addr().String()).Msg("Listening")

	maxConnections := s.config.MaxConnections
	if maxConnections <= 0 {
		maxConnections = 1
	}
	semaphore := make(chan struct{}, maxConnections)

	for {
		select {
		case semaphore <- struct{}{}:
		case <-ctx.Done():
			s.logger.Info().Msg("Shutting down")
			return nil
		}

		conn, err := listener.Accept()
		if err != nil {
			<-semaphore
			if ctx.Err() != nil {
				s.logger.Info().Msg("Shutting down")
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return fmt.Errorf("listener closed: %w", err)
			}
			s.logger.Warn().Err(err).Msg("Failed to accept connection")
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer func() { <-semaphore }()
			s.handleConnection(conn)
		}()
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	start := time.Now()
	logger := s.logger.With().
		Str("request_id", uuid.NewString()).
		Str("remote", conn.RemoteAddr().String()).
		Logger()

	if s.config.ReadTimeout > 0 {
		conn.SetReadDeadline(start.Add(time.Duration(s.config.ReadTimeout) * time.Second))
	}

	raw, err := ReadRequest(conn, s.config.MaxRequestSize)
	var resp *response.Response
	var req *request.Request

	switch {
	case errors.Is(err, httperr.RequestTooLarge):
		logger.Warn().Err(err).Msg("Rejecting oversized request")
		resp = s.dispatcher.BadRequest()
	case err != nil:
		if errors.Is(err, io.EOF) {
			logger.Debug().Msg("Connection closed before a request arrived")
			return
		}
		event := logger.Warn().Err(err)
		if kind, ok := httperr.KindOf(err); ok {
			event = event.Str("kind", kind.Error())
		}
		event.Msg("Failed to read request")
		return
	default:
		var parseErr error
		req, parseErr = request.Parse(raw)
		if parseErr != nil {
			logger.Warn().Err(parseErr).Msg("Rejecting malformed request")
			resp = s.dispatcher.BadRequest()
		} else {
			resp = s.dispatcher.Dispatch(req)
		}
	}

	if s.config.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(time.Duration(s.config.WriteTimeout) * time.Second))
	}
	if _, err := resp.WriteTo(conn); err != nil {
		logger.Warn().Err(httperr.New(httperr.WriteFailed, err)).Msg("Failed to write response")
		return
	}

	event := logger.Info().
		Str("status", resp.StatusCode).
		Int("bytes", resp.ContentLength()).
		Dur("duration", time.Since(start))
	if req != nil {
		event = event.Str("method", req.Method.String()).Str("path", req.Resource.Path)
	}
	event.Msg("Request served")
}
