package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Gunvolt24/rapid_express/internal/domain"
)

func TestError_KindAndCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := fmt.Errorf("create: %w", domain.Internal("Failed to create order", cause))

	if !errors.Is(err, domain.ErrInternal) {
		t.Fatalf("kind lost through wrapping")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost through wrapping")
	}
	if got := domain.MessageOf(err, "x"); got != "Failed to create order" {
		t.Fatalf("MessageOf: got %q", got)
	}
	if domain.IsClientError(err) {
		t.Fatalf("internal error must not be a client error")
	}
}

func TestMessageOf_Fallback(t *testing.T) {
	t.Parallel()

	if got := domain.MessageOf(errors.New("boom"), "Internal server error"); got != "Internal server error" {
		t.Fatalf("fallback not used: %q", got)
	}
	if !domain.IsClientError(domain.NotFound(domain.MsgOrderNotFound)) {
		t.Fatalf("not found is a client error")
	}
}
