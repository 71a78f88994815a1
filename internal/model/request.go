package model

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Request holds the fields shared by every customization request variant.
// Variants embed it inline so the workflow and the store can address the
// same document keys for both collections.
type Request struct {
	ID     bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID bson.ObjectID `bson:"user_id" json:"user_id"`

	// Personal Information
	FullName      string `bson:"full_name" json:"full_name"`
	Email         string `bson:"email" json:"email"`
	ContactNumber string `bson:"contact_number" json:"contact_number"`

	Activities      []string `bson:"activities" json:"activities"`
	SpecialRequests string   `bson:"special_requests,omitempty" json:"special_requests,omitempty"`

	Status Status `bson:"status" json:"status"`

	// Charge & payment, owned by the pricing and payment collaborators
	HSCCharge         bson.Decimal128 `bson:"hsc_charge" json:"hsc_charge"`
	PaymentStatus     PaymentStatus   `bson:"payment_status" json:"payment_status"`
	PaymentActivityID *bson.ObjectID  `bson:"payment_activity_id,omitempty" json:"payment_activity_id,omitempty"`

	// Admin response
	AdminNote   string     `bson:"admin_note,omitempty" json:"admin_note,omitempty"`
	ProcessedBy string     `bson:"processed_by,omitempty" json:"processed_by,omitempty"`
	ProcessedAt *time.Time `bson:"processed_at,omitempty" json:"processed_at,omitempty"`

	Proposals          []Proposal     `bson:"proposals" json:"proposals"`
	AcceptedProposalID *bson.ObjectID `bson:"accepted_proposal_id,omitempty" json:"accepted_proposal_id,omitempty"`
	AcceptedAt         *time.Time     `bson:"accepted_at,omitempty" json:"accepted_at,omitempty"`

	SubmittedAt time.Time `bson:"submitted_at" json:"submitted_at"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// Base gives generic code access to the shared fields of any variant.
func (r *Request) Base() *Request {
	return r
}

// Charge returns the HSC charge as a decimal. A malformed stored value reads as zero.
func (r *Request) Charge() decimal.Decimal {
	d, err := decimal.NewFromString(r.HSCCharge.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FindProposal returns the index of the proposal with the given id, or -1.
func (r *Request) FindProposal(id bson.ObjectID) int {
	for i := range r.Proposals {
		if r.Proposals[i].ID == id {
			return i
		}
	}
	return -1
}

// AcceptedProposal returns the accepted proposal, or nil if none was chosen.
func (r *Request) AcceptedProposal() *Proposal {
	for i := range r.Proposals {
		if r.Proposals[i].Status == ProposalStatusAccepted {
			return &r.Proposals[i]
		}
	}
	return nil
}

// DocumentPublicIDs lists storage identifiers of every attached proposal document.
func (r *Request) DocumentPublicIDs() []string {
	ids := make([]string, 0, len(r.Proposals))
	for _, p := range r.Proposals {
		if p.Document.PublicID != "" {
			ids = append(ids, p.Document.PublicID)
		}
	}
	return ids
}
