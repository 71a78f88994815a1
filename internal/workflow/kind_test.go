package workflow

import (
	"errors"
	"strings"
	"testing"
	"time"

	"customize-svc/internal/model"
)

func TestCheckTransition(t *testing.T) {
	tests := []struct {
		name    string
		kind    *Kind
		from    model.Status
		to      model.Status
		wantErr bool
	}{
		{"event pending to under-review", Event, model.StatusPending, model.StatusUnderReview, false},
		{"event pending to approved", Event, model.StatusPending, model.StatusApproved, false},
		{"event under-review to rejected", Event, model.StatusUnderReview, model.StatusRejected, false},
		{"event pending to show partners", Event, model.StatusPending, model.StatusShowPartnersMembers, false},
		{"event under-review to show partners", Event, model.StatusUnderReview, model.StatusShowPartnersMembers, false},
		{"event show partners to open acceptance", Event, model.StatusShowPartnersMembers, model.StatusOpenAcceptance, false},

		{"event approved is terminal", Event, model.StatusApproved, model.StatusUnderReview, true},
		{"event rejected is terminal", Event, model.StatusRejected, model.StatusPending, true},
		{"event no way back to pending", Event, model.StatusUnderReview, model.StatusPending, true},
		{"event open acceptance cannot go back", Event, model.StatusOpenAcceptance, model.StatusShowPartnersMembers, true},
		{"event proposal-accepted not settable", Event, model.StatusOpenAcceptance, model.StatusProposalAccepted, true},
		{"event unknown target", Event, model.StatusPending, model.Status("archived"), true},
		{"event rejects tour status", Event, model.StatusPending, model.StatusShowPartners, true},
		{"event same status", Event, model.StatusPending, model.StatusPending, true},

		{"tour pending to show partners", TourPackage, model.StatusPending, model.StatusShowPartners, false},
		{"tour under-review to approved", TourPackage, model.StatusUnderReview, model.StatusApproved, false},
		{"tour show partners to partner approved", TourPackage, model.StatusShowPartners, model.StatusPartnerApproved, false},
		{"tour rejects event status", TourPackage, model.StatusPending, model.StatusShowPartnersMembers, true},
		{"tour proposal-accepted not settable", TourPackage, model.StatusPartnerApproved, model.StatusProposalAccepted, true},
		{"tour partner approved cannot be rejected", TourPackage, model.StatusPartnerApproved, model.StatusRejected, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.kind.CheckTransition(tt.from, tt.to)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Errorf("CheckTransition(%s, %s) = %v, want ErrInvalidTransition", tt.from, tt.to, err)
				}
				return
			}
			if err != nil {
				t.Errorf("CheckTransition(%s, %s) = %v, want nil", tt.from, tt.to, err)
			}
		})
	}
}

func TestTransitionStampsAdminFields(t *testing.T) {
	req := &model.Request{Status: model.StatusPending}
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	err := Event.Transition(req, model.StatusUnderReview, AdminAction{AdminID: "admin-1", Note: "checking budget"}, now)
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if req.Status != model.StatusUnderReview {
		t.Errorf("status = %s, want under-review", req.Status)
	}
	if req.ProcessedBy != "admin-1" || req.AdminNote != "checking budget" {
		t.Errorf("admin fields = %q/%q", req.ProcessedBy, req.AdminNote)
	}
	if req.ProcessedAt == nil || !req.ProcessedAt.Equal(now) {
		t.Errorf("processed_at = %v, want %v", req.ProcessedAt, now)
	}
}

func TestTransitionFailureLeavesRequestUnchanged(t *testing.T) {
	req := &model.Request{Status: model.StatusApproved, AdminNote: "done"}

	err := Event.Transition(req, model.StatusShowPartnersMembers, AdminAction{AdminID: "admin-2", Note: "reopen"}, time.Now())
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
	if req.Status != model.StatusApproved || req.AdminNote != "done" || req.ProcessedBy != "" || req.ProcessedAt != nil {
		t.Errorf("request mutated on failure: %+v", req)
	}
}

func TestOpenForProposals(t *testing.T) {
	tests := []struct {
		kind   *Kind
		status model.Status
		want   bool
	}{
		{Event, model.StatusPending, false},
		{Event, model.StatusUnderReview, false},
		{Event, model.StatusShowPartnersMembers, true},
		{Event, model.StatusOpenAcceptance, true},
		{Event, model.StatusProposalAccepted, false},
		{Event, model.StatusShowPartners, false},
		{TourPackage, model.StatusShowPartners, true},
		{TourPackage, model.StatusPartnerApproved, true},
		{TourPackage, model.StatusApproved, false},
	}
	for _, tt := range tests {
		if got := tt.kind.OpenForProposals(tt.status); got != tt.want {
			t.Errorf("%s.OpenForProposals(%s) = %v, want %v", tt.kind.Name, tt.status, got, tt.want)
		}
	}
}

func TestStatusSets(t *testing.T) {
	if got := len(Event.Statuses()); got != 7 {
		t.Errorf("event statuses = %d, want 7", got)
	}
	if got := len(TourPackage.Statuses()); got != 7 {
		t.Errorf("tour statuses = %d, want 7", got)
	}
	for _, k := range []*Kind{Event, TourPackage} {
		for _, s := range k.Statuses() {
			if k.Terminal(s) && len(k.transitions[s]) > 0 {
				t.Errorf("%s: terminal status %s has outgoing edges", k.Name, s)
			}
		}
	}
}

func TestCheckTransitionFromFinalStatus(t *testing.T) {
	for _, s := range []model.Status{model.StatusApproved, model.StatusRejected, model.StatusProposalAccepted} {
		err := TourPackage.CheckTransition(s, model.StatusUnderReview)
		if !errors.Is(err, ErrInvalidTransition) || !strings.Contains(err.Error(), "is final") {
			t.Errorf("from %s: err = %v, want a final-status error", s, err)
		}
	}
}
