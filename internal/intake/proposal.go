package intake

import (
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"customize-svc/internal/model"
	"customize-svc/internal/workflow"
)

// ProposalInput is a partner's proposal submission. The document fields come
// from the storage collaborator after upload.
type ProposalInput struct {
	PartnerID            bson.ObjectID `json:"partner_id"`
	PartnerName          string        `json:"partner_name" validate:"required"`
	PartnerEmail         string        `json:"partner_email" validate:"required"`
	PartnerContactNumber string        `json:"partner_contact_number"`
	DocumentURL          string        `json:"document_url" validate:"required,url"`
	DocumentPublicID     string        `json:"document_public_id" validate:"required"`
}

// NewProposal validates in against the rules of kind. Event proposals need a
// partner contact number; tour package proposals do not carry one.
func NewProposal(kind *workflow.Kind, in ProposalInput) (model.Proposal, error) {
	in.PartnerName = strings.TrimSpace(in.PartnerName)
	in.PartnerEmail = normalizeEmail(in.PartnerEmail)
	in.PartnerContactNumber = strings.TrimSpace(in.PartnerContactNumber)
	in.DocumentURL = strings.TrimSpace(in.DocumentURL)
	in.DocumentPublicID = strings.TrimSpace(in.DocumentPublicID)

	var fields []workflow.FieldError
	if in.PartnerID.IsZero() {
		fields = append(fields, workflow.FieldError{Field: "partner_id", Rule: "required"})
	}
	fields = append(fields, structErrors(in)...)
	if kind.PartnerContactRequired && in.PartnerContactNumber == "" {
		fields = append(fields, workflow.FieldError{Field: "partner_contact_number", Rule: "required"})
	}
	if len(fields) > 0 {
		return model.Proposal{}, workflow.NewValidationError(fields...)
	}

	p := model.Proposal{
		PartnerID:    in.PartnerID,
		PartnerName:  in.PartnerName,
		PartnerEmail: in.PartnerEmail,
		Document: model.Document{
			URL:      in.DocumentURL,
			PublicID: in.DocumentPublicID,
		},
		Status: model.ProposalStatusPending,
	}
	if kind.PartnerContactRequired {
		p.PartnerContactNumber = in.PartnerContactNumber
	}
	return p, nil
}
