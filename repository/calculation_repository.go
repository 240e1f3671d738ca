package repository

import (
	"context"
	"errors"

	"student-loan-calc/domain"
)

var ErrCalculationNotFound = errors.New("calculation not found")

type CalculationRepository interface {
	Save(ctx context.Context, record domain.CalculationRecord) (string, error)
	Get(ctx context.Context, id string) (domain.CalculationRecord, error)
}
