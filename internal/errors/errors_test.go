package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeOfWalksWrappedChain(t *testing.T) {
	base := New(CodeMissingIdentity, "no user id configured", nil)
	wrapped := fmt.Errorf("list quotations: %w", base)

	if got := CodeOf(wrapped); got != CodeMissingIdentity {
		t.Fatalf("expected %s, got %s", CodeMissingIdentity, got)
	}
	if !IsCode(wrapped, CodeMissingIdentity) {
		t.Fatal("expected IsCode to match through wrapping")
	}
	if CodeOf(errors.New("plain")) != CodeUnknown {
		t.Fatal("plain errors should report CodeUnknown")
	}
}

func TestErrorMessageFallbacks(t *testing.T) {
	cause := errors.New("connection refused")
	cases := []struct {
		name string
		err  Error
		want string
	}{
		{"message wins", New(CodeHTTPFailed, "GET /api/projects failed", cause), "GET /api/projects failed"},
		{"falls back to cause", New(CodeHTTPFailed, "", cause), "connection refused"},
		{"falls back to code", New(CodeQueryFailed, "", nil), "query_failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
	if !errors.Is(New(CodeHTTPFailed, "x", cause), cause) {
		t.Fatal("expected Unwrap to expose the cause")
	}
}
