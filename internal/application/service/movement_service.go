package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/application/pricing"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"github.com/vialtrack/vialtrack-api/internal/domain/repository"
	infraRepo "github.com/vialtrack/vialtrack-api/internal/infrastructure/repository"
	"github.com/vialtrack/vialtrack-api/pkg/apperror"
	"github.com/vialtrack/vialtrack-api/pkg/pagination"
)

// MovementService handles manual inventory movements: giveaways, internal
// use, losses and returns. Sales movements are written by order fulfillment.
type MovementService struct {
	movementRepo repository.MovementRepository
	bottleRepo   repository.BottleRepository
	contactRepo  repository.ContactRepository
}

// NewMovementService creates a new movement service
func NewMovementService(
	movementRepo repository.MovementRepository,
	bottleRepo repository.BottleRepository,
	contactRepo repository.ContactRepository,
) *MovementService {
	return &MovementService{
		movementRepo: movementRepo,
		bottleRepo:   bottleRepo,
		contactRepo:  contactRepo,
	}
}

// CreateMovementInput represents the create movement input
type CreateMovementInput struct {
	Type          enum.MovementType
	ContactID     *uuid.UUID
	MovementDate  *time.Time
	PaymentStatus enum.PaymentStatus
	PaymentMethod *string
	AmountPaid    float64
	Notes         *string
	BottleIDs     []uuid.UUID
	CreatedBy     uuid.UUID
}

// CreateMovement records a movement and flips its bottles' status in one
// transaction
func (s *MovementService) CreateMovement(ctx context.Context, input *CreateMovementInput) (*entity.Movement, error) {
	orgID, ok := infraRepo.GetOrgID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Org context required")
	}
	if !input.Type.Valid() {
		return nil, apperror.NewBadRequestError("Unknown movement type")
	}
	if input.Type == enum.MovementTypeSale {
		return nil, apperror.NewBadRequestError("Sale movements are created by order fulfillment")
	}
	if len(input.BottleIDs) == 0 {
		return nil, apperror.NewBadRequestError("Movement requires at least one bottle")
	}

	if input.ContactID != nil {
		contact, err := s.contactRepo.GetByID(ctx, *input.ContactID)
		if err != nil {
			return nil, err
		}
		if contact == nil {
			return nil, apperror.NewNotFoundError("Contact")
		}
	}

	// verify the bottles exist and are movable before opening the transaction
	for _, id := range input.BottleIDs {
		bottle, err := s.bottleRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if bottle == nil {
			return nil, apperror.NewNotFoundError("Bottle " + id.String())
		}
		if input.Type.TakesStock() && bottle.Status != enum.BottleStatusInStock {
			return nil, apperror.NewBadRequestError("Bottle " + id.String() + " is not in stock")
		}
	}

	movementDate := time.Now()
	if input.MovementDate != nil {
		movementDate = *input.MovementDate
	}
	paymentStatus := input.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = enum.PaymentStatusUnpaid
	}

	movement := &entity.Movement{
		OrgID:         orgID,
		Type:          input.Type,
		ContactID:     input.ContactID,
		MovementDate:  movementDate,
		PaymentStatus: paymentStatus,
		PaymentMethod: input.PaymentMethod,
		AmountPaid:    pricing.DollarsToCents(input.AmountPaid),
		Notes:         input.Notes,
		CreatedBy:     input.CreatedBy,
	}
	if err := s.movementRepo.CreateWithItems(ctx, movement, input.BottleIDs); err != nil {
		return nil, err
	}

	return s.movementRepo.GetWithItems(ctx, movement.ID)
}

// GetMovement retrieves a movement with its items
func (s *MovementService) GetMovement(ctx context.Context, id uuid.UUID) (*entity.Movement, error) {
	movement, err := s.movementRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, apperror.NewNotFoundError("Movement")
	}
	return movement, nil
}

// ListMovements lists movements with filtering
func (s *MovementService) ListMovements(ctx context.Context, params *repository.MovementFilterParams) (*pagination.PaginatedResult[entity.Movement], error) {
	movements, total, err := s.movementRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(movements, pag), nil
}
