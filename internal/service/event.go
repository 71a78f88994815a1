package service

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"

	"customize-svc/internal/intake"
	"customize-svc/internal/model"
	"customize-svc/internal/workflow"
)

type EventService struct {
	*RequestService[model.EventRequest, *model.EventRequest]
}

func NewEventService(st Store[*model.EventRequest], listLimit int64) *EventService {
	return &EventService{newRequestService[model.EventRequest](st, workflow.Event, listLimit)}
}

// Create validates a customer submission and stores it as a pending request.
// charge comes from the pricing collaborator.
func (s *EventService) Create(ctx context.Context, in intake.EventIntake, charge decimal.Decimal) (*model.EventRequest, error) {
	req, err := intake.NewEventRequest(in, charge)
	if err != nil {
		return nil, err
	}
	if err := s.create(ctx, req); err != nil {
		return nil, err
	}
	if missing := intake.MissingDetails(req); len(missing) > 0 {
		log.Printf("event request %s is missing %v", req.ID.Hex(), missing)
	}
	return req, nil
}

// RecordDirectApproval writes the legacy single-partner approval without
// touching status or proposals. Kept for records that predate proposals.
func (s *EventService) RecordDirectApproval(ctx context.Context, requestID string, approverID bson.ObjectID, approverEmail string) (*model.EventRequest, error) {
	id, req, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := workflow.RecordDirectApproval(req, approverID, approverEmail, now()); err != nil {
		return nil, err
	}

	ok, err := s.store.SetDirectApproval(ctx, id, *req.DirectApproval)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, workflow.ErrRequestNotFound
	}

	log.Printf("event request %s: direct approval by %s", requestID, approverID.Hex())
	return req, nil
}
