package httperr

import "fmt"

// Kind classifies failures of the codec, the lookups and the transport
type Kind int

const (
	// MalformedRequestLine means the request line lacks a method, path or version token
	MalformedRequestLine Kind = iota
	// FileNotFound means the file lookup found nothing under the requested name
	FileNotFound
	// DataStoreUnavailable means the record document is missing or unparsable
	DataStoreUnavailable
	// RequestTooLarge means the client sent more bytes than the server accepts
	RequestTooLarge
	// ConnectFailed means a TCP connection could not be established
	ConnectFailed
	// ReadFailed means reading from a connection failed
	ReadFailed
	// WriteFailed means writing to a connection failed
	WriteFailed
	// MalformedStatusLine means a reply did not start with a version and a status code
	MalformedStatusLine
)

func (k Kind) Error() string {
	switch k {
	case MalformedRequestLine:
		return "malformed request line"
	case FileNotFound:
		return "file not found"
	case DataStoreUnavailable:
		return "data store unavailable"
	case RequestTooLarge:
		return "request too large"
	case ConnectFailed:
		return "connect failed"
	case ReadFailed:
		return "read failed"
	case WriteFailed:
		return "write failed"
	case MalformedStatusLine:
		return "malformed status line"
	default:
		return fmt.Sprintf("unknown error kind: %d", int(k))
	}
}

// Error couples a Kind with the error that caused it
type Error struct {
	Kind Kind
	Err  error
}

// New creates an Error of the given kind wrapping err, which may be nil
func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind.Error(), e.Err)
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the same Kind, so errors.Is(err, httperr.FileNotFound) works
func (e *Error) Is(target error) bool {
	if k, ok := target.(Kind); ok {
		return e.Kind == k
	}
	return false
}

// KindOf returns the Kind carried by err and whether one was found
func KindOf(err error) (Kind, bool) {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Kind, true
		case Kind:
			return e, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return 0, false
		}
		err = u.Unwrap()
	}
	return 0, false
}
