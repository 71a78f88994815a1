package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Document points at a file held by the storage collaborator.
// PublicID is what the storage side needs to delete the file later.
type Document struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"public_id" json:"public_id"`
}

// Proposal is a partner offer embedded in a request. It has no identity
// outside its parent document.
type Proposal struct {
	ID                   bson.ObjectID  `bson:"_id" json:"id"`
	PartnerID            bson.ObjectID  `bson:"partner_id" json:"partner_id"`
	PartnerName          string         `bson:"partner_name" json:"partner_name"`
	PartnerEmail         string         `bson:"partner_email" json:"partner_email"`
	PartnerContactNumber string         `bson:"partner_contact_number,omitempty" json:"partner_contact_number,omitempty"` // event proposals only
	Document             Document       `bson:"document" json:"document"`
	Status               ProposalStatus `bson:"status" json:"status"`
	SubmittedAt          time.Time      `bson:"submitted_at" json:"submitted_at"`
}
