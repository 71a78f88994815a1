package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"customize-svc/internal/intake"
	"customize-svc/internal/model"
	"customize-svc/internal/store"
	"customize-svc/internal/workflow"
)

// Store is the persistence the request services need. The workflow writes
// return false when their guard no longer matches the stored document.
type Store[PT any] interface {
	Create(ctx context.Context, doc PT) error
	GetByID(ctx context.Context, id bson.ObjectID) (PT, error)
	ListByUser(ctx context.Context, userID bson.ObjectID, limit int64) ([]PT, error)
	ListByStatus(ctx context.Context, status model.Status, limit int64) ([]PT, error)
	FindByEmail(ctx context.Context, email string) ([]PT, error)
	UpdateStatus(ctx context.Context, req *model.Request, from model.Status) (bool, error)
	PushProposal(ctx context.Context, id bson.ObjectID, p model.Proposal, open []model.Status) (bool, error)
	AcceptProposal(ctx context.Context, id, proposalID bson.ObjectID, from model.Status, at time.Time) (bool, error)
	SetPayment(ctx context.Context, id, activityID bson.ObjectID, status model.PaymentStatus) (bool, error)
	SetDirectApproval(ctx context.Context, id bson.ObjectID, approval model.DirectApproval) (bool, error)
}

// RequestService runs the request workflow for one variant.
type RequestService[T any, PT store.Document[T]] struct {
	store     Store[PT]
	kind      *workflow.Kind
	listLimit int64
}

func newRequestService[T any, PT store.Document[T]](st Store[PT], kind *workflow.Kind, listLimit int64) *RequestService[T, PT] {
	return &RequestService[T, PT]{store: st, kind: kind, listLimit: listLimit}
}

// Kind returns the workflow the service enforces.
func (s *RequestService[T, PT]) Kind() *workflow.Kind {
	return s.kind
}

func (s *RequestService[T, PT]) create(ctx context.Context, doc PT) error {
	req := doc.Base()
	if err := s.kind.Check(req); err != nil {
		return err
	}
	if err := s.store.Create(ctx, doc); err != nil {
		return fmt.Errorf("create %s request: %w", s.kind.Name, err)
	}
	log.Printf("%s request %s created for user %s", s.kind.Name, req.ID.Hex(), req.UserID.Hex())
	return nil
}

// Get returns a request by its hex ID.
func (s *RequestService[T, PT]) Get(ctx context.Context, requestID string) (PT, error) {
	_, doc, err := s.load(ctx, requestID)
	return doc, err
}

// ListByUser returns a user's requests, newest first.
func (s *RequestService[T, PT]) ListByUser(ctx context.Context, userID bson.ObjectID) ([]PT, error) {
	return s.store.ListByUser(ctx, userID, s.listLimit)
}

// ListByStatus returns requests currently in status, newest first.
func (s *RequestService[T, PT]) ListByStatus(ctx context.Context, status model.Status) ([]PT, error) {
	if !s.kind.Valid(status) {
		return nil, workflow.NewValidationError(workflow.FieldError{Field: "status", Rule: "oneof"})
	}
	return s.store.ListByStatus(ctx, status, s.listLimit)
}

// FindByEmail returns the requests submitted with email.
func (s *RequestService[T, PT]) FindByEmail(ctx context.Context, email string) ([]PT, error) {
	return s.store.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// Transition moves a request to another status on an admin's behalf.
func (s *RequestService[T, PT]) Transition(ctx context.Context, requestID string, to model.Status, action workflow.AdminAction) (PT, error) {
	id, doc, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}

	req := doc.Base()
	from := req.Status
	if err := s.kind.Transition(req, to, action, now()); err != nil {
		return nil, err
	}

	ok, err := s.store.UpdateStatus(ctx, req, from)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.conflict(ctx, id)
	}

	log.Printf("%s request %s: %s -> %s by %s", s.kind.Name, requestID, from, to, action.AdminID)
	return doc, nil
}

// SubmitProposal appends a partner proposal to an open request.
func (s *RequestService[T, PT]) SubmitProposal(ctx context.Context, requestID string, in intake.ProposalInput) (model.Proposal, error) {
	p, err := intake.NewProposal(s.kind, in)
	if err != nil {
		return model.Proposal{}, err
	}

	id, doc, err := s.load(ctx, requestID)
	if err != nil {
		return model.Proposal{}, err
	}

	p, err = s.kind.SubmitProposal(doc.Base(), p, now())
	if err != nil {
		return model.Proposal{}, err
	}

	ok, err := s.store.PushProposal(ctx, id, p, s.kind.OpenStatuses())
	if err != nil {
		return model.Proposal{}, err
	}
	if !ok {
		// Closed between our read and the push, most likely by an acceptance.
		fresh, err := s.store.GetByID(ctx, id)
		if err != nil {
			return model.Proposal{}, err
		}
		if fresh == nil {
			return model.Proposal{}, workflow.ErrRequestNotFound
		}
		return model.Proposal{}, fmt.Errorf("%w: status %s", workflow.ErrNotOpenForProposals, fresh.Base().Status)
	}

	log.Printf("%s request %s: proposal %s submitted by partner %s", s.kind.Name, requestID, p.ID.Hex(), p.PartnerID.Hex())
	return p, nil
}

// AcceptProposal picks the winning proposal, rejects the rest and closes the
// request. Two concurrent acceptances on one request cannot both succeed.
// The returned request is read back after the write.
func (s *RequestService[T, PT]) AcceptProposal(ctx context.Context, requestID, proposalID string) (PT, error) {
	pid, err := parseID("proposal_id", proposalID)
	if err != nil {
		return nil, err
	}
	id, doc, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}

	req := doc.Base()
	from := req.Status
	at := now()
	if err := s.kind.AcceptProposal(req, pid, at); err != nil {
		return nil, err
	}

	ok, err := s.store.AcceptProposal(ctx, id, pid, from, at)
	if err != nil {
		return nil, err
	}
	if !ok {
		fresh, err := s.store.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if fresh == nil {
			return nil, workflow.ErrRequestNotFound
		}
		if err := s.kind.CheckAcceptance(fresh.Base(), pid); err != nil {
			return nil, err
		}
		return nil, workflow.ErrConflict
	}

	log.Printf("%s request %s: proposal %s accepted", s.kind.Name, requestID, proposalID)

	// Proposals pushed after our read were rejected by the same update.
	fresh, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		return nil, workflow.ErrRequestNotFound
	}
	return fresh, nil
}

// RecordPayment stores the payment reference and outcome handed over by the
// payment collaborator.
func (s *RequestService[T, PT]) RecordPayment(ctx context.Context, requestID string, activityID bson.ObjectID, status model.PaymentStatus) error {
	id, err := parseID("id", requestID)
	if err != nil {
		return err
	}
	var fields []workflow.FieldError
	if activityID.IsZero() {
		fields = append(fields, workflow.FieldError{Field: "payment_activity_id", Rule: "required"})
	}
	if !status.Valid() {
		fields = append(fields, workflow.FieldError{Field: "payment_status", Rule: "oneof", Param: "completed failed refunded"})
	}
	if len(fields) > 0 {
		return workflow.NewValidationError(fields...)
	}

	ok, err := s.store.SetPayment(ctx, id, activityID, status)
	if err != nil {
		return err
	}
	if !ok {
		return workflow.ErrRequestNotFound
	}
	return nil
}

func (s *RequestService[T, PT]) load(ctx context.Context, requestID string) (bson.ObjectID, PT, error) {
	id, err := parseID("id", requestID)
	if err != nil {
		return id, nil, err
	}
	doc, err := s.store.GetByID(ctx, id)
	if err != nil {
		return id, nil, err
	}
	if doc == nil {
		return id, nil, workflow.ErrRequestNotFound
	}
	return id, doc, nil
}

// conflict explains a guarded write that matched nothing.
func (s *RequestService[T, PT]) conflict(ctx context.Context, id bson.ObjectID) error {
	fresh, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if fresh == nil {
		return workflow.ErrRequestNotFound
	}
	return fmt.Errorf("%w: status is now %s", workflow.ErrConflict, fresh.Base().Status)
}

func parseID(field, hex string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return id, workflow.NewValidationError(workflow.FieldError{Field: field, Rule: "objectid"})
	}
	return id, nil
}

// now is truncated to what MongoDB stores, so in-memory results match reads.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
