package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"customize-svc/internal/model"
)

const (
	EventCollection       = "customize_event_requests"
	TourPackageCollection = "customize_tour_packages"
)

// Document is a request variant stored by RequestStore.
type Document[T any] interface {
	*T
	Base() *model.Request
}

// RequestStore persists one request variant. Every write that changes the
// workflow is a single UpdateOne guarded on the state it was decided from, so
// a false result means another writer got there first and nothing changed.
type RequestStore[T any, PT Document[T]] struct {
	coll *mongo.Collection
}

type (
	EventStore       = RequestStore[model.EventRequest, *model.EventRequest]
	TourPackageStore = RequestStore[model.TourPackageRequest, *model.TourPackageRequest]
)

func NewEventStore(ctx context.Context, db *MongoDB) (*EventStore, error) {
	return NewRequestStore[model.EventRequest](ctx, db, EventCollection)
}

func NewTourPackageStore(ctx context.Context, db *MongoDB) (*TourPackageStore, error) {
	return NewRequestStore[model.TourPackageRequest](ctx, db, TourPackageCollection)
}

func NewRequestStore[T any, PT Document[T]](ctx context.Context, db *MongoDB, name string) (*RequestStore[T, PT], error) {
	coll := db.Collection(name)

	if _, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}); err != nil {
		return nil, fmt.Errorf("create %s indexes: %w", name, err)
	}

	return &RequestStore[T, PT]{coll: coll}, nil
}

// Create inserts a new request and sets the ID on the struct.
func (s *RequestStore[T, PT]) Create(ctx context.Context, doc PT) error {
	req := doc.Base()
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now
	if req.SubmittedAt.IsZero() {
		req.SubmittedAt = now
	}
	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	req.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

// GetByID returns the request, or nil if not found.
func (s *RequestStore[T, PT]) GetByID(ctx context.Context, id bson.ObjectID) (PT, error) {
	doc := PT(new(T))
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find request: %w", err)
	}
	return doc, nil
}

// ListByUser returns a user's requests, newest first.
func (s *RequestStore[T, PT]) ListByUser(ctx context.Context, userID bson.ObjectID, limit int64) ([]PT, error) {
	return s.find(ctx, bson.M{"user_id": userID}, limit)
}

// ListByStatus returns requests in the given status, newest first.
func (s *RequestStore[T, PT]) ListByStatus(ctx context.Context, status model.Status, limit int64) ([]PT, error) {
	return s.find(ctx, bson.M{"status": status}, limit)
}

// FindByEmail returns every request submitted with the given (lower-cased) email.
func (s *RequestStore[T, PT]) FindByEmail(ctx context.Context, email string) ([]PT, error) {
	return s.find(ctx, bson.M{"email": email}, 0)
}

func (s *RequestStore[T, PT]) find(ctx context.Context, filter bson.M, limit int64) ([]PT, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find requests: %w", err)
	}
	var results []PT
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode requests: %w", err)
	}
	return results, nil
}

// UpdateStatus persists the status and admin fields of req, provided the
// stored status is still from.
func (s *RequestStore[T, PT]) UpdateStatus(ctx context.Context, req *model.Request, from model.Status) (bool, error) {
	return s.updateOne(ctx, bson.M{"_id": req.ID, "status": from}, statusUpdate(req))
}

// PushProposal appends p while the request is in one of the open states.
func (s *RequestStore[T, PT]) PushProposal(ctx context.Context, id bson.ObjectID, p model.Proposal, open []model.Status) (bool, error) {
	filter := bson.M{"_id": id, "status": bson.M{"$in": open}}
	update := bson.M{
		"$push": bson.M{"proposals": p},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	return s.updateOne(ctx, filter, update)
}

// AcceptProposal applies the whole acceptance in one update: winner and
// losers, the accepted id and time, and the closing status. It only matches
// while the request is still in status from with no accepted proposal.
func (s *RequestStore[T, PT]) AcceptProposal(ctx context.Context, id, proposalID bson.ObjectID, from model.Status, at time.Time) (bool, error) {
	opts := options.UpdateOne().SetArrayFilters(acceptArrayFilters(proposalID))
	return s.updateOne(ctx, acceptFilter(id, proposalID, from), acceptUpdate(proposalID, at), opts)
}

// SetPayment stores the payment collaborator's reference and outcome.
func (s *RequestStore[T, PT]) SetPayment(ctx context.Context, id, activityID bson.ObjectID, status model.PaymentStatus) (bool, error) {
	return s.updateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"payment_activity_id": activityID,
		"payment_status":      status,
		"updated_at":          time.Now().UTC(),
	}})
}

// SetDirectApproval writes the legacy approval record. Event requests only.
func (s *RequestStore[T, PT]) SetDirectApproval(ctx context.Context, id bson.ObjectID, approval model.DirectApproval) (bool, error) {
	return s.updateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"direct_approval": approval,
		"updated_at":      time.Now().UTC(),
	}})
}

func (s *RequestStore[T, PT]) updateOne(ctx context.Context, filter, update bson.M, opts ...options.Lister[options.UpdateOneOptions]) (bool, error) {
	res, err := s.coll.UpdateOne(ctx, filter, update, opts...)
	if err != nil {
		return false, fmt.Errorf("update request: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func statusUpdate(req *model.Request) bson.M {
	set := bson.M{
		"status":       req.Status,
		"processed_by": req.ProcessedBy,
		"updated_at":   time.Now().UTC(),
	}
	if req.ProcessedAt != nil {
		set["processed_at"] = *req.ProcessedAt
	}
	if req.AdminNote != "" {
		set["admin_note"] = req.AdminNote
	}
	return bson.M{"$set": set}
}

func acceptFilter(id, proposalID bson.ObjectID, from model.Status) bson.M {
	return bson.M{
		"_id":                  id,
		"status":               from,
		"accepted_proposal_id": nil,
		"proposals._id":        proposalID,
	}
}

func acceptUpdate(proposalID bson.ObjectID, at time.Time) bson.M {
	return bson.M{"$set": bson.M{
		"proposals.$[won].status":  model.ProposalStatusAccepted,
		"proposals.$[lost].status": model.ProposalStatusRejected,
		"accepted_proposal_id":     proposalID,
		"accepted_at":              at,
		"status":                   model.StatusProposalAccepted,
		"updated_at":               at,
	}}
}

func acceptArrayFilters(proposalID bson.ObjectID) []any {
	return []any{
		bson.M{"won._id": proposalID},
		bson.M{"lost._id": bson.M{"$ne": proposalID}},
	}
}
