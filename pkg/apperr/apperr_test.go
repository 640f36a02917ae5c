package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"actor not found", ActorNotFound(), KindActorNotFound},
		{"permission denied", PermissionDenied("nope"), KindPermissionDenied},
		{"not found", NotFound("missing"), KindNotFound},
		{"invalid request", InvalidRequest("bad"), KindInvalidRequest},
		{"conflict", Conflict("taken"), KindConflict},
		{"wrapped", fmt.Errorf("loading: %w", NotFound("missing")), KindNotFound},
		{"plain error", errors.New("boom"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActorNotFoundDoesNotLeak(t *testing.T) {
	// a missing actor must read like any other denial
	if ActorNotFound().Error() != "access denied" {
		t.Errorf("message = %q", ActorNotFound().Error())
	}
}
