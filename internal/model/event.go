package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DirectApproval is the single-partner approval that predates proposals.
//
// Deprecated: new records go through the proposal collection. The record is
// still read and written for requests created before proposals existed.
type DirectApproval struct {
	ApproverID    bson.ObjectID `bson:"approver_id" json:"approver_id"`
	ApproverEmail string        `bson:"approver_email,omitempty" json:"approver_email,omitempty"`
	ApprovedAt    time.Time     `bson:"approved_at" json:"approved_at"`
}

type EventRequest struct {
	Request `bson:",inline"`

	EventType       Choice `bson:"event_type" json:"event_type"`
	NumberOfGuests  int    `bson:"number_of_guests" json:"number_of_guests"`
	EstimatedBudget string `bson:"estimated_budget" json:"estimated_budget"`

	DirectApproval *DirectApproval `bson:"direct_approval,omitempty" json:"direct_approval,omitempty"`
}
