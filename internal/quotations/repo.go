package quotations

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luispallares/forgequote-backend/pkg/db/models"
	"github.com/luispallares/forgequote-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a quotation repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, quote *models.Quotation) (*models.Quotation, error) {
	if err := r.db.WithContext(ctx).Create(quote).Error; err != nil {
		return nil, err
	}
	return quote, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Quotation, error) {
	var quote models.Quotation
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *repository) FindChain(ctx context.Context, rootID uuid.UUID) ([]models.Quotation, error) {
	var quotes []models.Quotation
	err := r.db.WithContext(ctx).
		Where("root_id = ?", rootID).
		Order("version_number ASC").
		Find(&quotes).Error
	if err != nil {
		return nil, err
	}
	return quotes, nil
}

func (r *repository) FindByPartNumber(ctx context.Context, partNumberID uuid.UUID) ([]models.Quotation, error) {
	var quotes []models.Quotation
	err := r.db.WithContext(ctx).
		Where("part_number_id = ?", partNumberID).
		Order("supplier_id ASC, root_id ASC, version_number ASC").
		Find(&quotes).Error
	if err != nil {
		return nil, err
	}
	return quotes, nil
}

func (r *repository) Save(ctx context.Context, quote *models.Quotation) (*models.Quotation, error) {
	if err := r.db.WithContext(ctx).Save(quote).Error; err != nil {
		return nil, err
	}
	return quote, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.QuotationStatus, stamps map[string]any) error {
	updates := map[string]any{"status": status}
	for column, value := range stamps {
		updates[column] = value
	}
	return r.db.WithContext(ctx).
		Model(&models.Quotation{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) FindAgingCandidates(ctx context.Context) ([]models.Quotation, error) {
	var quotes []models.Quotation
	err := r.db.WithContext(ctx).
		Where("status IN ?", []enums.QuotationStatus{enums.QuotationStatusSent, enums.QuotationStatusResponded}).
		Where("validity_days IS NOT NULL").
		Order("created_at ASC").
		Find(&quotes).Error
	if err != nil {
		return nil, err
	}
	return quotes, nil
}
