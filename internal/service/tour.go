package service

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	"customize-svc/internal/intake"
	"customize-svc/internal/model"
	"customize-svc/internal/workflow"
)

type TourPackageService struct {
	*RequestService[model.TourPackageRequest, *model.TourPackageRequest]
}

func NewTourPackageService(st Store[*model.TourPackageRequest], listLimit int64) *TourPackageService {
	return &TourPackageService{newRequestService[model.TourPackageRequest](st, workflow.TourPackage, listLimit)}
}

// Create validates a customer submission and stores it as a pending request.
func (s *TourPackageService) Create(ctx context.Context, in intake.TourPackageIntake, charge decimal.Decimal) (*model.TourPackageRequest, error) {
	req, err := intake.NewTourPackageRequest(in, charge)
	if err != nil {
		return nil, err
	}
	if err := s.create(ctx, req); err != nil {
		return nil, err
	}
	if missing := intake.MissingDetails(req); len(missing) > 0 {
		log.Printf("tour package request %s is missing %v", req.ID.Hex(), missing)
	}
	return req, nil
}
