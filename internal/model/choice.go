package model

import "strings"

// ChoiceOther is the escape value of every closed category enumeration.
const ChoiceOther = "other"

// Choice is a closed enumeration value with an optional free-text payload.
// Other only carries meaning when Value is ChoiceOther.
type Choice struct {
	Value string `bson:"value" json:"value"`
	Other string `bson:"other,omitempty" json:"other,omitempty"`
}

// NewChoice builds a Choice, dropping the free text unless value is the escape.
func NewChoice(value, other string) Choice {
	c := Choice{Value: strings.TrimSpace(value)}
	if c.Value == ChoiceOther {
		c.Other = strings.TrimSpace(other)
	}
	return c
}

func (c Choice) IsOther() bool {
	return c.Value == ChoiceOther
}

// Complete reports whether an "other" choice came with its companion text.
func (c Choice) Complete() bool {
	return !c.IsOther() || c.Other != ""
}

// Label returns the free text for "other" choices and the value otherwise.
func (c Choice) Label() string {
	if c.IsOther() && c.Other != "" {
		return c.Other
	}
	return c.Value
}

const (
	EventTypeWedding        = "wedding"
	EventTypeCorporateParty = "corporate-party"
	EventTypeBirthday       = "birthday"
	EventTypeConference     = "conference"
	EventTypeConcert        = "concert"
)

const (
	AccommodationBudget         = "budget"
	AccommodationComfort        = "comfort"
	AccommodationLuxury         = "luxury"
	AccommodationVillasBoutique = "villas-boutique"
)
