// Package servicetest provides an in-memory request store for tests of code
// built on the request services.
package servicetest

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"customize-svc/internal/model"
	"customize-svc/internal/store"
)

// Store keeps documents as BSON so callers never share memory with it, and
// applies each guarded write under one lock like a single-document update.
type Store[T any, PT store.Document[T]] struct {
	mu   sync.Mutex
	docs map[bson.ObjectID][]byte

	// BeforeWrite runs ahead of every guarded write, outside the lock. Tests
	// use it to land a competing write between a read and its update.
	BeforeWrite func()
}

func NewStore[T any, PT store.Document[T]]() *Store[T, PT] {
	return &Store[T, PT]{docs: make(map[bson.ObjectID][]byte)}
}

// Raw returns a copy of the stored bytes of id, or nil.
func (m *Store[T, PT]) Raw(id bson.ObjectID) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.docs[id]...)
}

func (m *Store[T, PT]) encode(doc PT) []byte {
	data, err := bson.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return data
}

func (m *Store[T, PT]) decode(data []byte) PT {
	doc := PT(new(T))
	if err := bson.Unmarshal(data, doc); err != nil {
		panic(err)
	}
	return doc
}

func (m *Store[T, PT]) hook() {
	if m.BeforeWrite != nil {
		m.BeforeWrite()
	}
}

// update decodes id, lets fn mutate it and stores the result when fn returns true.
func (m *Store[T, PT]) update(id bson.ObjectID, fn func(PT) bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[id]
	if !ok {
		return false
	}
	doc := m.decode(data)
	if !fn(doc) {
		return false
	}
	doc.Base().UpdatedAt = time.Now().UTC()
	m.docs[id] = m.encode(doc)
	return true
}

func (m *Store[T, PT]) Create(ctx context.Context, doc PT) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	req := doc.Base()
	req.ID = bson.NewObjectID()
	req.CreatedAt = time.Now().UTC()
	req.UpdatedAt = req.CreatedAt
	m.docs[req.ID] = m.encode(doc)
	return nil
}

func (m *Store[T, PT]) GetByID(ctx context.Context, id bson.ObjectID) (PT, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[id]
	if !ok {
		return nil, nil
	}
	return m.decode(data), nil
}

func (m *Store[T, PT]) filter(keep func(*model.Request) bool, limit int64) []PT {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []PT
	for _, data := range m.docs {
		doc := m.decode(data)
		if keep(doc.Base()) {
			out = append(out, doc)
		}
	}
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out
}

func (m *Store[T, PT]) ListByUser(ctx context.Context, userID bson.ObjectID, limit int64) ([]PT, error) {
	return m.filter(func(r *model.Request) bool { return r.UserID == userID }, limit), nil
}

func (m *Store[T, PT]) ListByStatus(ctx context.Context, status model.Status, limit int64) ([]PT, error) {
	return m.filter(func(r *model.Request) bool { return r.Status == status }, limit), nil
}

func (m *Store[T, PT]) FindByEmail(ctx context.Context, email string) ([]PT, error) {
	return m.filter(func(r *model.Request) bool { return r.Email == email }, 0), nil
}

func (m *Store[T, PT]) UpdateStatus(ctx context.Context, req *model.Request, from model.Status) (bool, error) {
	m.hook()
	return m.update(req.ID, func(doc PT) bool {
		cur := doc.Base()
		if cur.Status != from {
			return false
		}
		cur.Status = req.Status
		cur.ProcessedBy = req.ProcessedBy
		cur.ProcessedAt = req.ProcessedAt
		if req.AdminNote != "" {
			cur.AdminNote = req.AdminNote
		}
		return true
	}), nil
}

func (m *Store[T, PT]) PushProposal(ctx context.Context, id bson.ObjectID, p model.Proposal, open []model.Status) (bool, error) {
	m.hook()
	return m.update(id, func(doc PT) bool {
		cur := doc.Base()
		for _, s := range open {
			if cur.Status == s {
				cur.Proposals = append(cur.Proposals, p)
				return true
			}
		}
		return false
	}), nil
}

func (m *Store[T, PT]) AcceptProposal(ctx context.Context, id, proposalID bson.ObjectID, from model.Status, at time.Time) (bool, error) {
	m.hook()
	return m.update(id, func(doc PT) bool {
		cur := doc.Base()
		if cur.Status != from || cur.AcceptedProposalID != nil || cur.FindProposal(proposalID) < 0 {
			return false
		}
		for i := range cur.Proposals {
			if cur.Proposals[i].ID == proposalID {
				cur.Proposals[i].Status = model.ProposalStatusAccepted
			} else {
				cur.Proposals[i].Status = model.ProposalStatusRejected
			}
		}
		pid := proposalID
		cur.AcceptedProposalID = &pid
		cur.AcceptedAt = &at
		cur.Status = model.StatusProposalAccepted
		return true
	}), nil
}

func (m *Store[T, PT]) SetPayment(ctx context.Context, id, activityID bson.ObjectID, status model.PaymentStatus) (bool, error) {
	return m.update(id, func(doc PT) bool {
		cur := doc.Base()
		cur.PaymentActivityID = &activityID
		cur.PaymentStatus = status
		return true
	}), nil
}

func (m *Store[T, PT]) SetDirectApproval(ctx context.Context, id bson.ObjectID, approval model.DirectApproval) (bool, error) {
	return m.update(id, func(doc PT) bool {
		ev, ok := any(doc).(*model.EventRequest)
		if !ok {
			return false
		}
		ev.DirectApproval = &approval
		return true
	}), nil
}
