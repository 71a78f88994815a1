package model

import "time"

type TourPackageRequest struct {
	Request `bson:",inline"`

	StartDate         time.Time `bson:"start_date" json:"start_date"`
	NumberOfTravelers int       `bson:"number_of_travelers" json:"number_of_travelers"`
	Duration          int       `bson:"duration" json:"duration"` // days
	Accommodation     Choice    `bson:"accommodation" json:"accommodation"`
}
