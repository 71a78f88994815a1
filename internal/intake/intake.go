// Package intake turns raw customer and partner submissions into well-formed
// model values. It never persists anything.
package intake

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"

	"customize-svc/internal/model"
	"customize-svc/internal/workflow"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// EventIntake is the customer submission for a custom event.
type EventIntake struct {
	UserID          bson.ObjectID `json:"user_id"`
	FullName        string        `json:"full_name" validate:"required"`
	Email           string        `json:"email" validate:"required"`
	ContactNumber   string        `json:"contact_number" validate:"required"`
	EventType       string        `json:"event_type" validate:"required,oneof=wedding corporate-party birthday conference concert other"`
	EventTypeOther  string        `json:"event_type_other"`
	NumberOfGuests  int           `json:"number_of_guests" validate:"min=1"`
	EstimatedBudget string        `json:"estimated_budget" validate:"required"`
	Activities      []string      `json:"activities"`
	SpecialRequests string        `json:"special_requests"`
}

// TourPackageIntake is the customer submission for a custom tour package.
type TourPackageIntake struct {
	UserID             bson.ObjectID `json:"user_id"`
	FullName           string        `json:"full_name" validate:"required"`
	Email              string        `json:"email" validate:"required"`
	ContactNumber      string        `json:"contact_number" validate:"required"`
	StartDate          time.Time     `json:"start_date" validate:"required"`
	NumberOfTravelers  int           `json:"number_of_travelers" validate:"min=1"`
	Duration           int           `json:"duration" validate:"min=1"`
	Accommodation      string        `json:"accommodation" validate:"required,oneof=budget comfort luxury villas-boutique other"`
	AccommodationOther string        `json:"accommodation_other"`
	Activities         []string      `json:"activities"`
	SpecialRequests    string        `json:"special_requests"`
}

// NewEventRequest validates in and builds a pending event request carrying
// the charge quoted by the pricing collaborator.
func NewEventRequest(in EventIntake, charge decimal.Decimal) (*model.EventRequest, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = normalizeEmail(in.Email)
	in.ContactNumber = strings.TrimSpace(in.ContactNumber)
	in.EventType = strings.TrimSpace(in.EventType)
	in.EstimatedBudget = strings.TrimSpace(in.EstimatedBudget)

	hsc, err := check(in, in.UserID, charge)
	if err != nil {
		return nil, err
	}

	return &model.EventRequest{
		Request:         newRequest(in.UserID, in.FullName, in.Email, in.ContactNumber, in.Activities, in.SpecialRequests, hsc),
		EventType:       model.NewChoice(in.EventType, in.EventTypeOther),
		NumberOfGuests:  in.NumberOfGuests,
		EstimatedBudget: in.EstimatedBudget,
	}, nil
}

// NewTourPackageRequest validates in and builds a pending tour package request.
func NewTourPackageRequest(in TourPackageIntake, charge decimal.Decimal) (*model.TourPackageRequest, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = normalizeEmail(in.Email)
	in.ContactNumber = strings.TrimSpace(in.ContactNumber)
	in.Accommodation = strings.TrimSpace(in.Accommodation)

	hsc, err := check(in, in.UserID, charge)
	if err != nil {
		return nil, err
	}

	return &model.TourPackageRequest{
		Request:           newRequest(in.UserID, in.FullName, in.Email, in.ContactNumber, in.Activities, in.SpecialRequests, hsc),
		StartDate:         in.StartDate,
		NumberOfTravelers: in.NumberOfTravelers,
		Duration:          in.Duration,
		Accommodation:     model.NewChoice(in.Accommodation, in.AccommodationOther),
	}, nil
}

// MissingDetails lists soft-invariant gaps that do not block a write, such as
// an "other" category without its free-text description.
func MissingDetails(req any) []string {
	var missing []string
	switch r := req.(type) {
	case *model.EventRequest:
		if !r.EventType.Complete() {
			missing = append(missing, "event_type_other")
		}
	case *model.TourPackageRequest:
		if !r.Accommodation.Complete() {
			missing = append(missing, "accommodation_other")
		}
	}
	return missing
}

func newRequest(userID bson.ObjectID, fullName, email, contact string, activities []string, special string, hsc bson.Decimal128) model.Request {
	now := time.Now().UTC()
	return model.Request{
		UserID:          userID,
		FullName:        fullName,
		Email:           email,
		ContactNumber:   contact,
		Activities:      normalizeActivities(activities),
		SpecialRequests: strings.TrimSpace(special),
		Status:          model.StatusPending,
		HSCCharge:       hsc,
		PaymentStatus:   model.PaymentStatusCompleted,
		Proposals:       []model.Proposal{},
		SubmittedAt:     now,
	}
}

// check runs the struct rules plus the checks tags cannot express and
// converts the charge to its stored form.
func check(in any, userID bson.ObjectID, charge decimal.Decimal) (bson.Decimal128, error) {
	var fields []workflow.FieldError
	if userID.IsZero() {
		fields = append(fields, workflow.FieldError{Field: "user_id", Rule: "required"})
	}
	fields = append(fields, structErrors(in)...)

	var hsc bson.Decimal128
	if charge.IsNegative() {
		fields = append(fields, workflow.FieldError{Field: "hsc_charge", Rule: "min", Param: "0"})
	} else {
		d, err := bson.ParseDecimal128(charge.String())
		if err != nil {
			fields = append(fields, workflow.FieldError{Field: "hsc_charge", Rule: "decimal"})
		}
		hsc = d
	}

	if len(fields) > 0 {
		return bson.Decimal128{}, workflow.NewValidationError(fields...)
	}
	return hsc, nil
}

func structErrors(in any) []workflow.FieldError {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []workflow.FieldError{{Field: "_", Rule: err.Error()}}
	}
	out := make([]workflow.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, workflow.FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
	}
	return out
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeActivities trims tags and drops blanks and repeats, keeping the
// first occurrence order.
func normalizeActivities(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, a := range in {
		a = strings.TrimSpace(a)
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}
