package httperr

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestKindError(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{MalformedRequestLine, "malformed request line"},
		{FileNotFound, "file not found"},
		{DataStoreUnavailable, "data store unavailable"},
		{RequestTooLarge, "request too large"},
		{ConnectFailed, "connect failed"},
		{ReadFailed, "read failed"},
		{WriteFailed, "write failed"},
		{MalformedStatusLine, "malformed status line"},
		{Kind(99), "unknown error kind: 99"},
	}

	for _, tt := range tests {
		if got := tt.kind.Error(); got != tt.expected {
			t.Errorf("Kind(%d).Error() = %q, expected %q", int(tt.kind), got, tt.expected)
		}
	}
}

func TestErrorWrapping(t *testing.T) {
	err := New(ReadFailed, io.ErrUnexpectedEOF)

	if err.Error() != "read failed: unexpected EOF" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("Expected errors.Is to find the underlying error")
	}
	if !errors.Is(err, ReadFailed) {
		t.Error("Expected errors.Is to match the kind")
	}
	if errors.Is(err, WriteFailed) {
		t.Error("Did not expect errors.Is to match a different kind")
	}

	bare := New(MalformedRequestLine, nil)
	if bare.Error() != "malformed request line" {
		t.Errorf("Unexpected message: %s", bare.Error())
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("loading orders: %w", New(DataStoreUnavailable, errors.New("boom")))
	if kind, ok := KindOf(wrapped); !ok || kind != DataStoreUnavailable {
		t.Errorf("Expected DataStoreUnavailable, got %v (found=%v)", kind, ok)
	}

	if kind, ok := KindOf(fmt.Errorf("plain: %w", ConnectFailed)); !ok || kind != ConnectFailed {
		t.Errorf("Expected ConnectFailed, got %v (found=%v)", kind, ok)
	}

	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("Did not expect a kind on a plain error")
	}
	if _, ok := KindOf(nil); ok {
		t.Error("Did not expect a kind on nil")
	}
}
