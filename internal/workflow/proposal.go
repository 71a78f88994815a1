package workflow

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"customize-svc/internal/model"
)

// SubmitProposal appends p to the request's proposals as a pending offer.
// The same partner may submit more than once; nothing de-duplicates here.
func (k *Kind) SubmitProposal(req *model.Request, p model.Proposal, now time.Time) (model.Proposal, error) {
	if !k.OpenForProposals(req.Status) {
		return model.Proposal{}, fmt.Errorf("%w: status %s", ErrNotOpenForProposals, req.Status)
	}
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	if !k.PartnerContactRequired {
		p.PartnerContactNumber = ""
	}
	p.Status = model.ProposalStatusPending
	p.SubmittedAt = now
	req.Proposals = append(req.Proposals, p)
	return p, nil
}

// CheckAcceptance reports why proposalID could not be accepted on req, if at all.
func (k *Kind) CheckAcceptance(req *model.Request, proposalID bson.ObjectID) error {
	if req.AcceptedProposalID != nil || req.Status == model.StatusProposalAccepted || req.AcceptedProposal() != nil {
		return ErrAlreadyAccepted
	}
	if req.FindProposal(proposalID) < 0 {
		return fmt.Errorf("%w: %s", ErrProposalNotFound, proposalID.Hex())
	}
	if !k.OpenForProposals(req.Status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, req.Status, model.StatusProposalAccepted)
	}
	return nil
}

// AcceptProposal marks proposalID accepted, every sibling rejected and closes
// the request. Either all of it is applied or req is left as it was.
func (k *Kind) AcceptProposal(req *model.Request, proposalID bson.ObjectID, now time.Time) error {
	if err := k.CheckAcceptance(req, proposalID); err != nil {
		return err
	}

	proposals := make([]model.Proposal, len(req.Proposals))
	copy(proposals, req.Proposals)
	for i := range proposals {
		if proposals[i].ID == proposalID {
			proposals[i].Status = model.ProposalStatusAccepted
		} else {
			proposals[i].Status = model.ProposalStatusRejected
		}
	}

	id := proposalID
	req.Proposals = proposals
	req.AcceptedProposalID = &id
	req.AcceptedAt = &now
	req.Status = model.StatusProposalAccepted
	return nil
}

// RecordDirectApproval writes the legacy single-partner approval. It touches
// neither status nor proposals; callers drive status to approved separately.
func RecordDirectApproval(req *model.EventRequest, approverID bson.ObjectID, approverEmail string, now time.Time) error {
	if approverID.IsZero() {
		return NewValidationError(FieldError{Field: "approver_id", Rule: "required"})
	}
	req.DirectApproval = &model.DirectApproval{
		ApproverID:    approverID,
		ApproverEmail: strings.ToLower(strings.TrimSpace(approverEmail)),
		ApprovedAt:    now,
	}
	return nil
}
