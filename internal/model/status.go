package model

// Status is the lifecycle state of a customization request.
type Status string

// Shared states of both request variants.
const (
	StatusPending          Status = "pending"
	StatusUnderReview      Status = "under-review"
	StatusApproved         Status = "approved"
	StatusRejected         Status = "rejected"
	StatusProposalAccepted Status = "proposal-accepted"
)

// Event multi-party branch.
const (
	StatusShowPartnersMembers Status = "show-partners-members"
	StatusOpenAcceptance      Status = "open-acceptance"
)

// Tour package multi-party branch.
const (
	StatusShowPartners    Status = "show-partners"
	StatusPartnerApproved Status = "partner-approved"
)

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Valid reports whether p is one of the known payment states.
func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"
)
