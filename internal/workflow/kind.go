package workflow

import (
	"fmt"
	"sort"
	"time"

	"customize-svc/internal/model"
)

// Kind describes one request variant: its closed status set, the edges an
// admin may drive, and the states in which partners may submit proposals.
// Both variants share the same state machine and resolver code.
type Kind struct {
	Name string

	// PartnerContactRequired is true when proposals must carry a contact number.
	PartnerContactRequired bool

	transitions map[model.Status][]model.Status
	open        map[model.Status]bool
}

// Event is the custom event request workflow.
var Event = &Kind{
	Name:                   "event",
	PartnerContactRequired: true,
	transitions: map[model.Status][]model.Status{
		model.StatusPending: {
			model.StatusUnderReview,
			model.StatusApproved,
			model.StatusRejected,
			model.StatusShowPartnersMembers,
		},
		model.StatusUnderReview: {
			model.StatusApproved,
			model.StatusRejected,
			model.StatusShowPartnersMembers,
		},
		model.StatusShowPartnersMembers: {model.StatusOpenAcceptance},
		model.StatusOpenAcceptance:      nil,
		model.StatusApproved:            nil,
		model.StatusRejected:            nil,
		model.StatusProposalAccepted:    nil,
	},
	open: map[model.Status]bool{
		model.StatusShowPartnersMembers: true,
		model.StatusOpenAcceptance:      true,
	},
}

// TourPackage is the custom tour package request workflow.
var TourPackage = &Kind{
	Name: "tour-package",
	transitions: map[model.Status][]model.Status{
		model.StatusPending: {
			model.StatusUnderReview,
			model.StatusApproved,
			model.StatusRejected,
			model.StatusShowPartners,
		},
		model.StatusUnderReview: {
			model.StatusApproved,
			model.StatusRejected,
			model.StatusShowPartners,
		},
		model.StatusShowPartners:     {model.StatusPartnerApproved},
		model.StatusPartnerApproved:  nil,
		model.StatusApproved:         nil,
		model.StatusRejected:         nil,
		model.StatusProposalAccepted: nil,
	},
	open: map[model.Status]bool{
		model.StatusShowPartners:    true,
		model.StatusPartnerApproved: true,
	},
}

// AdminAction carries the audit fields stamped by an admin transition.
type AdminAction struct {
	AdminID string
	Note    string
}

// Valid reports whether s belongs to the variant's status set.
func (k *Kind) Valid(s model.Status) bool {
	_, ok := k.transitions[s]
	return ok
}

// Statuses returns the variant's closed status set, sorted.
func (k *Kind) Statuses() []model.Status {
	out := make([]model.Status, 0, len(k.transitions))
	for s := range k.transitions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// OpenForProposals reports whether partners may submit proposals in state s.
func (k *Kind) OpenForProposals(s model.Status) bool {
	return k.open[s]
}

// OpenStatuses returns the partner-visible states, sorted.
func (k *Kind) OpenStatuses() []model.Status {
	out := make([]model.Status, 0, len(k.open))
	for s := range k.open {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Terminal reports whether no further change is possible from s.
func (k *Kind) Terminal(s model.Status) bool {
	return s == model.StatusApproved || s == model.StatusRejected || s == model.StatusProposalAccepted
}

// CheckTransition validates an admin-driven move from one state to another.
// proposal-accepted is never reachable this way.
func (k *Kind) CheckTransition(from, to model.Status) error {
	if !k.Valid(to) {
		return fmt.Errorf("%w: unknown %s status %q", ErrInvalidTransition, k.Name, to)
	}
	if to == model.StatusProposalAccepted {
		return fmt.Errorf("%w: %s is set only by accepting a proposal", ErrInvalidTransition, to)
	}
	if k.Terminal(from) {
		return fmt.Errorf("%w: %s is final", ErrInvalidTransition, from)
	}
	for _, next := range k.transitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// Transition moves req to status to and stamps the admin fields.
// On error req is left untouched.
func (k *Kind) Transition(req *model.Request, to model.Status, action AdminAction, now time.Time) error {
	if err := k.CheckTransition(req.Status, to); err != nil {
		return err
	}
	req.Status = to
	req.ProcessedBy = action.AdminID
	req.ProcessedAt = &now
	if action.Note != "" {
		req.AdminNote = action.Note
	}
	return nil
}

// Check verifies the structural invariants of a stored request.
func (k *Kind) Check(req *model.Request) error {
	if !k.Valid(req.Status) {
		return fmt.Errorf("%w: unknown %s status %q", ErrInvalidTransition, k.Name, req.Status)
	}
	accepted := 0
	for _, p := range req.Proposals {
		if p.Status == model.ProposalStatusAccepted {
			accepted++
		}
	}
	if accepted > 1 {
		return fmt.Errorf("%w: %d accepted proposals", ErrAlreadyAccepted, accepted)
	}
	if req.AcceptedProposalID != nil && req.FindProposal(*req.AcceptedProposalID) < 0 {
		return fmt.Errorf("%w: accepted proposal %s", ErrProposalNotFound, req.AcceptedProposalID.Hex())
	}
	return nil
}
