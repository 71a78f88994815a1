package i18n

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"customize-svc/internal/workflow"
)

func TestError(t *testing.T) {
	Init("en")
	ctx := context.Background()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"enum wins over validation", workflow.NewValidationError(workflow.FieldError{Field: "event_type", Rule: "oneof"}), "One of the selected options is not available."},
		{"missing field", workflow.NewValidationError(workflow.FieldError{Field: "email", Rule: "required"}), "Some required fields are missing or invalid."},
		{"wrapped", fmt.Errorf("%w: status approved", workflow.ErrNotOpenForProposals), "This request is not accepting proposals."},
		{"already accepted", workflow.ErrAlreadyAccepted, "A proposal has already been accepted for this request."},
		{"unknown", errors.New("mongo: connection reset"), "Something went wrong. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Error(ctx, tt.err); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorLocalized(t *testing.T) {
	Init("en")
	vi := WithLocale(context.Background(), "vi")

	en := Error(context.Background(), workflow.ErrConflict)
	got := Error(vi, workflow.ErrConflict)
	if got == "" || got == en || got == "request.err.conflict" {
		t.Errorf("vi conflict message = %q", got)
	}

	// Unsupported locales fall back to the default.
	fr := WithLocale(context.Background(), "fr")
	if got := Error(fr, workflow.ErrConflict); got != en {
		t.Errorf("fr conflict message = %q, want %q", got, en)
	}
}

func TestStatusLabels(t *testing.T) {
	Init("en")
	for _, loc := range []string{"en", "vi"} {
		ctx := WithLocale(context.Background(), loc)
		for _, kind := range []*workflow.Kind{workflow.Event, workflow.TourPackage} {
			for _, s := range kind.Statuses() {
				if got := StatusLabel(ctx, s); got == "request.status."+string(s) {
					t.Errorf("%s: no label for %s", loc, s)
				}
			}
		}
	}
}
