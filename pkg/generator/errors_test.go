package generator

import (
	"errors"
	"fmt"
	"testing"
)

func TestMessageOf(t *testing.T) {
	if got := MessageOf(nil); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
	if got := MessageOf(&GenerationError{Kind: KindNoImageData, Message: "no image data found in the response"}); got != "no image data found in the response" {
		t.Errorf("unexpected message: %q", got)
	}
	if got := MessageOf(errEmpty{}); got != GenericFailureMessage {
		t.Errorf("expected generic message, got %q", got)
	}
}

type errEmpty struct{}

func (errEmpty) Error() string { return "" }

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", &GenerationError{Kind: KindNoImageData, Err: ErrNoImageData})
	if got := kindOf(wrapped); got != KindNoImageData || got.String() != "no_image_data" {
		t.Errorf("expected no_image_data, got %v", got)
	}
	if got := kindOf(errors.New("plain")); got != 0 || got.String() != "unknown" {
		t.Errorf("expected unknown, got %v", got)
	}
}
