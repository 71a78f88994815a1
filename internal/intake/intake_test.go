package intake

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"

	"customize-svc/internal/model"
	"customize-svc/internal/workflow"
)

func validEvent() EventIntake {
	return EventIntake{
		UserID:          bson.NewObjectID(),
		FullName:        "  Lan Nguyen ",
		Email:           " Lan.Nguyen@Example.com",
		ContactNumber:   "0901234567",
		EventType:       "wedding",
		NumberOfGuests:  50,
		EstimatedBudget: "10000-20000 USD",
		Activities:      []string{"dinner", " dancing ", "dinner", ""},
		SpecialRequests: "Beach venue",
	}
}

func validTour() TourPackageIntake {
	return TourPackageIntake{
		UserID:            bson.NewObjectID(),
		FullName:          "Minh Tran",
		Email:             "minh@example.com",
		ContactNumber:     "0907654321",
		StartDate:         time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC),
		NumberOfTravelers: 4,
		Duration:          7,
		Accommodation:     "luxury",
		Activities:        []string{"diving"},
	}
}

func fieldNames(err error) []string {
	var verr *workflow.ValidationError
	if !errors.As(err, &verr) {
		return nil
	}
	names := make([]string, len(verr.Fields))
	for i, f := range verr.Fields {
		names[i] = f.Field
	}
	return names
}

func TestNewEventRequest(t *testing.T) {
	req, err := NewEventRequest(validEvent(), decimal.NewFromInt(500))
	if err != nil {
		t.Fatalf("NewEventRequest: %v", err)
	}

	if req.Status != model.StatusPending {
		t.Errorf("status = %s, want pending", req.Status)
	}
	if req.PaymentStatus != model.PaymentStatusCompleted {
		t.Errorf("payment status = %s, want completed", req.PaymentStatus)
	}
	if req.Proposals == nil || len(req.Proposals) != 0 {
		t.Errorf("proposals = %v, want empty", req.Proposals)
	}
	if !req.Charge().Equal(decimal.NewFromInt(500)) {
		t.Errorf("charge = %s, want 500", req.Charge())
	}
	if req.Email != "lan.nguyen@example.com" || req.FullName != "Lan Nguyen" {
		t.Errorf("normalized = %q / %q", req.Email, req.FullName)
	}
	if want := []string{"dinner", "dancing"}; !reflect.DeepEqual(req.Activities, want) {
		t.Errorf("activities = %v, want %v", req.Activities, want)
	}
	if req.EventType.Value != model.EventTypeWedding || req.NumberOfGuests != 50 {
		t.Errorf("event fields = %+v / %d", req.EventType, req.NumberOfGuests)
	}
	if req.SubmittedAt.IsZero() {
		t.Error("submitted_at not set")
	}
	if req.AcceptedProposalID != nil || req.DirectApproval != nil {
		t.Error("acceptance fields set on a new request")
	}
}

func TestNewEventRequestRejects(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*EventIntake)
		charge    decimal.Decimal
		wantField string
		wantEnum  bool
	}{
		{"missing user", func(in *EventIntake) { in.UserID = bson.ObjectID{} }, decimal.NewFromInt(1), "user_id", false},
		{"blank name", func(in *EventIntake) { in.FullName = "   " }, decimal.NewFromInt(1), "full_name", false},
		{"blank email", func(in *EventIntake) { in.Email = "  " }, decimal.NewFromInt(1), "email", false},
		{"missing contact", func(in *EventIntake) { in.ContactNumber = "" }, decimal.NewFromInt(1), "contact_number", false},
		{"unknown event type", func(in *EventIntake) { in.EventType = "funeral" }, decimal.NewFromInt(1), "event_type", true},
		{"zero guests", func(in *EventIntake) { in.NumberOfGuests = 0 }, decimal.NewFromInt(1), "number_of_guests", false},
		{"missing budget", func(in *EventIntake) { in.EstimatedBudget = "" }, decimal.NewFromInt(1), "estimated_budget", false},
		{"negative charge", func(in *EventIntake) {}, decimal.NewFromInt(-5), "hsc_charge", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validEvent()
			tt.mutate(&in)
			req, err := NewEventRequest(in, tt.charge)
			if req != nil {
				t.Fatalf("got request %+v, want nil", req)
			}
			if !errors.Is(err, workflow.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			if got := errors.Is(err, workflow.ErrInvalidEnumValue); got != tt.wantEnum {
				t.Errorf("ErrInvalidEnumValue match = %v, want %v", got, tt.wantEnum)
			}
			names := fieldNames(err)
			if len(names) != 1 || names[0] != tt.wantField {
				t.Errorf("fields = %v, want [%s]", names, tt.wantField)
			}
		})
	}
}

func TestEmailOnlyNeedsToBePresent(t *testing.T) {
	in := validEvent()
	in.Email = " Guest-At-Hotel-Desk "
	req, err := NewEventRequest(in, decimal.NewFromInt(1))
	if err != nil {
		t.Fatalf("NewEventRequest: %v", err)
	}
	if req.Email != "guest-at-hotel-desk" {
		t.Errorf("email = %q", req.Email)
	}

	tour := validTour()
	tour.Email = "front desk"
	if _, err := NewTourPackageRequest(tour, decimal.NewFromInt(1)); err != nil {
		t.Errorf("NewTourPackageRequest: %v", err)
	}
}

func TestEventTypeOtherWithoutDescription(t *testing.T) {
	in := validEvent()
	in.EventType = "other"
	in.EventTypeOther = ""

	req, err := NewEventRequest(in, decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("NewEventRequest: %v", err)
	}
	if got := MissingDetails(req); !reflect.DeepEqual(got, []string{"event_type_other"}) {
		t.Errorf("MissingDetails = %v", got)
	}

	in.EventTypeOther = " Graduation party "
	req, err = NewEventRequest(in, decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("NewEventRequest: %v", err)
	}
	if got := MissingDetails(req); len(got) != 0 {
		t.Errorf("MissingDetails = %v, want none", got)
	}
	if req.EventType.Label() != "Graduation party" {
		t.Errorf("label = %q", req.EventType.Label())
	}
}

func TestEventTypeOtherTextDroppedForClosedValues(t *testing.T) {
	in := validEvent()
	in.EventTypeOther = "ignored"
	req, err := NewEventRequest(in, decimal.Zero)
	if err != nil {
		t.Fatalf("NewEventRequest: %v", err)
	}
	if req.EventType.Other != "" {
		t.Errorf("other = %q, want empty", req.EventType.Other)
	}
}

func TestNewTourPackageRequest(t *testing.T) {
	req, err := NewTourPackageRequest(validTour(), decimal.RequireFromString("249.99"))
	if err != nil {
		t.Fatalf("NewTourPackageRequest: %v", err)
	}
	if req.Status != model.StatusPending || len(req.Proposals) != 0 {
		t.Errorf("status = %s, proposals = %d", req.Status, len(req.Proposals))
	}
	if !req.Charge().Equal(decimal.RequireFromString("249.99")) {
		t.Errorf("charge = %s", req.Charge())
	}
	if req.Duration != 7 || req.NumberOfTravelers != 4 || req.Accommodation.Value != model.AccommodationLuxury {
		t.Errorf("tour fields = %+v", req)
	}
}

func TestNewTourPackageRequestRejects(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*TourPackageIntake)
		wantField string
		wantEnum  bool
	}{
		{"missing start date", func(in *TourPackageIntake) { in.StartDate = time.Time{} }, "start_date", false},
		{"zero travelers", func(in *TourPackageIntake) { in.NumberOfTravelers = 0 }, "number_of_travelers", false},
		{"zero duration", func(in *TourPackageIntake) { in.Duration = 0 }, "duration", false},
		{"unknown accommodation", func(in *TourPackageIntake) { in.Accommodation = "hostel" }, "accommodation", true},
		{"missing accommodation", func(in *TourPackageIntake) { in.Accommodation = "" }, "accommodation", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validTour()
			tt.mutate(&in)
			_, err := NewTourPackageRequest(in, decimal.NewFromInt(10))
			if !errors.Is(err, workflow.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			if got := errors.Is(err, workflow.ErrInvalidEnumValue); got != tt.wantEnum {
				t.Errorf("ErrInvalidEnumValue match = %v, want %v", got, tt.wantEnum)
			}
			if names := fieldNames(err); len(names) != 1 || names[0] != tt.wantField {
				t.Errorf("fields = %v, want [%s]", names, tt.wantField)
			}
		})
	}
}

func TestAccommodationOtherFlagged(t *testing.T) {
	in := validTour()
	in.Accommodation = "other"
	req, err := NewTourPackageRequest(in, decimal.NewFromInt(10))
	if err != nil {
		t.Fatalf("NewTourPackageRequest: %v", err)
	}
	if got := MissingDetails(req); !reflect.DeepEqual(got, []string{"accommodation_other"}) {
		t.Errorf("MissingDetails = %v", got)
	}
}
