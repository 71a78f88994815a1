package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"customize-svc/internal/i18n"
	"customize-svc/internal/model"
	"customize-svc/internal/service"
	"customize-svc/internal/workflow"
)

const usage = `usage: requestctl [-lang en|vi] <event|tour> <command> [flags]

commands:
  statuses                                   list the workflow statuses
  get            -id ID                      show one request
  list           -status S | -user ID | -email E
  transition     -id ID -to STATUS -admin ADMIN [-note TEXT]
  accept         -id ID -proposal PROPOSAL_ID
  payment        -id ID -activity ACTIVITY_ID -status completed|failed|refunded
  direct-approve -id ID -approver PARTNER_ID -email EMAIL   (event only)
`

var errUsage = errors.New("usage")

// requests is what the commands need from a request service.
type requests[PT interface{ Base() *model.Request }] interface {
	Kind() *workflow.Kind
	Get(ctx context.Context, requestID string) (PT, error)
	ListByUser(ctx context.Context, userID bson.ObjectID) ([]PT, error)
	ListByStatus(ctx context.Context, status model.Status) ([]PT, error)
	FindByEmail(ctx context.Context, email string) ([]PT, error)
	Transition(ctx context.Context, requestID string, to model.Status, action workflow.AdminAction) (PT, error)
	AcceptProposal(ctx context.Context, requestID, proposalID string) (PT, error)
	RecordPayment(ctx context.Context, requestID string, activityID bson.ObjectID, status model.PaymentStatus) error
}

type commander[PT interface{ Base() *model.Request }] struct {
	svc requests[PT]
	out io.Writer

	// directApproval is only set for event requests.
	directApproval func(ctx context.Context, requestID string, approverID bson.ObjectID, approverEmail string) (PT, error)
}

func dispatch(ctx context.Context, events *service.EventService, tours *service.TourPackageService, out io.Writer, kind, cmd string, args []string) error {
	switch kind {
	case "event":
		c := &commander[*model.EventRequest]{svc: events, out: out, directApproval: events.RecordDirectApproval}
		return c.run(ctx, cmd, args)
	case "tour":
		c := &commander[*model.TourPackageRequest]{svc: tours, out: out}
		return c.run(ctx, cmd, args)
	}
	return fmt.Errorf("%w: unknown request kind %q", errUsage, kind)
}

func (c *commander[PT]) run(ctx context.Context, cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		id       = fs.String("id", "", "request id")
		to       = fs.String("to", "", "target status")
		admin    = fs.String("admin", "", "admin id")
		note     = fs.String("note", "", "admin note")
		proposal = fs.String("proposal", "", "proposal id")
		status   = fs.String("status", "", "status filter or payment status")
		user     = fs.String("user", "", "user id")
		email    = fs.String("email", "", "email")
		activity = fs.String("activity", "", "payment activity id")
		approver = fs.String("approver", "", "approving partner id")
	)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	switch cmd {
	case "statuses":
		c.statuses(ctx)
		return nil

	case "get":
		doc, err := c.svc.Get(ctx, *id)
		if err != nil {
			return err
		}
		return c.show(ctx, doc)

	case "list":
		docs, err := c.list(ctx, *status, *user, *email)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			c.summary(ctx, doc)
		}
		fmt.Fprintf(c.out, "%d %s request(s)\n", len(docs), c.svc.Kind().Name)
		return nil

	case "transition":
		if *admin == "" {
			return fmt.Errorf("%w: transition needs -admin", errUsage)
		}
		doc, err := c.svc.Transition(ctx, *id, model.Status(*to), workflow.AdminAction{AdminID: *admin, Note: *note})
		if err != nil {
			return err
		}
		return c.show(ctx, doc)

	case "accept":
		doc, err := c.svc.AcceptProposal(ctx, *id, *proposal)
		if err != nil {
			return err
		}
		return c.show(ctx, doc)

	case "payment":
		activityID, err := objectID("payment_activity_id", *activity)
		if err != nil {
			return err
		}
		if err := c.svc.RecordPayment(ctx, *id, activityID, model.PaymentStatus(*status)); err != nil {
			return err
		}
		doc, err := c.svc.Get(ctx, *id)
		if err != nil {
			return err
		}
		return c.show(ctx, doc)

	case "direct-approve":
		if c.directApproval == nil {
			return fmt.Errorf("%w: direct-approve is only available for event requests", errUsage)
		}
		approverID, err := objectID("approver_id", *approver)
		if err != nil {
			return err
		}
		doc, err := c.directApproval(ctx, *id, approverID, *email)
		if err != nil {
			return err
		}
		return c.show(ctx, doc)
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

func (c *commander[PT]) list(ctx context.Context, status, user, email string) ([]PT, error) {
	set := 0
	for _, f := range []string{status, user, email} {
		if f != "" {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: list needs exactly one of -status, -user, -email", errUsage)
	}

	switch {
	case status != "":
		return c.svc.ListByStatus(ctx, model.Status(status))
	case user != "":
		userID, err := objectID("user_id", user)
		if err != nil {
			return nil, err
		}
		return c.svc.ListByUser(ctx, userID)
	default:
		return c.svc.FindByEmail(ctx, email)
	}
}

func (c *commander[PT]) statuses(ctx context.Context) {
	k := c.svc.Kind()
	for _, s := range k.Statuses() {
		var marks string
		if k.OpenForProposals(s) {
			marks += " [proposals]"
		}
		if k.Terminal(s) {
			marks += " [final]"
		}
		fmt.Fprintf(c.out, "%-22s %s%s\n", s, i18n.StatusLabel(ctx, s), marks)
	}
}

func (c *commander[PT]) summary(ctx context.Context, doc PT) {
	req := doc.Base()
	fmt.Fprintf(c.out, "%s %s  %s  %s  charge %s  %d proposal(s)\n",
		c.svc.Kind().Name, req.ID.Hex(), i18n.StatusLabel(ctx, req.Status), req.Email, req.Charge().StringFixed(2), len(req.Proposals))
}

func (c *commander[PT]) show(ctx context.Context, doc PT) error {
	c.summary(ctx, doc)
	if ids := doc.Base().DocumentPublicIDs(); len(ids) > 0 {
		fmt.Fprintf(c.out, "documents: %s\n", strings.Join(ids, ", "))
	}
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func objectID(field, hex string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return id, workflow.NewValidationError(workflow.FieldError{Field: field, Rule: "objectid"})
	}
	return id, nil
}

// report writes err for the operator: usage problems verbatim, everything
// else as the localized message.
func report(ctx context.Context, w io.Writer, err error) {
	if errors.Is(err, errUsage) {
		fmt.Fprintln(w, err)
		fmt.Fprint(w, usage)
		return
	}
	fmt.Fprintln(w, i18n.Error(ctx, err))
}
