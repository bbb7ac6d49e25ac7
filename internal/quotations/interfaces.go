package quotations

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luispallares/forgequote-backend/internal/pricing"
	"github.com/luispallares/forgequote-backend/pkg/db/models"
	"github.com/luispallares/forgequote-backend/pkg/enums"
)

// Repository is the persistence boundary for quotation chains.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, quote *models.Quotation) (*models.Quotation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Quotation, error)
	FindChain(ctx context.Context, rootID uuid.UUID) ([]models.Quotation, error)
	FindByPartNumber(ctx context.Context, partNumberID uuid.UUID) ([]models.Quotation, error)
	Save(ctx context.Context, quote *models.Quotation) (*models.Quotation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.QuotationStatus, stamps map[string]any) error
	FindAgingCandidates(ctx context.Context) ([]models.Quotation, error)
}

// Service exposes quotation lifecycle operations.
type Service interface {
	Preview(ctx context.Context, inputs RawInputs) (pricing.Derived, error)
	CreateRoot(ctx context.Context, input CreateRootInput) (*models.Quotation, error)
	Update(ctx context.Context, input UpdateInput) (*models.Quotation, error)
	Fork(ctx context.Context, input ForkInput) (*models.Quotation, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, target enums.QuotationStatus) (*models.Quotation, error)
	ListByPartNumber(ctx context.Context, partNumberID uuid.UUID) ([]Group, error)
	GetVersions(ctx context.Context, id uuid.UUID) ([]models.Quotation, error)
	ExpireLapsed(ctx context.Context, now time.Time) (int, error)
}
