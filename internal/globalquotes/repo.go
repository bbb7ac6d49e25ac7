// Package globalquotes manages named cross-part quotation selections. A
// global quotation pins, per part number, the one supplier quote the
// buyer intends to award.
package globalquotes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/luispallares/forgequote-backend/pkg/db/models"
)

// Repository is the persistence boundary for global quotations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, global *models.GlobalQuotation) (*models.GlobalQuotation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.GlobalQuotation, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (int64, error)
	UpsertItem(ctx context.Context, item *models.GlobalQuotationItem) error
	DeleteItem(ctx context.Context, globalID, partNumberID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a global quotation repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, global *models.GlobalQuotation) (*models.GlobalQuotation, error) {
	if err := r.db.WithContext(ctx).Create(global).Error; err != nil {
		return nil, err
	}
	return global, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.GlobalQuotation, error) {
	var global models.GlobalQuotation
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&global).Error
	if err != nil {
		return nil, err
	}
	return &global, nil
}

func (r *repository) Rename(ctx context.Context, id uuid.UUID, name string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.GlobalQuotation{}).
		Where("id = ?", id).
		Update("name", name)
	return res.RowsAffected, res.Error
}

// UpsertItem inserts the selection or, when the part number already has
// one, swaps the pinned quotation in place.
func (r *repository) UpsertItem(ctx context.Context, item *models.GlobalQuotationItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "global_quotation_id"}, {Name: "part_number_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quotation_id"}),
		}).
		Create(item).Error
}

func (r *repository) DeleteItem(ctx context.Context, globalID, partNumberID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("global_quotation_id = ? AND part_number_id = ?", globalID, partNumberID).
		Delete(&models.GlobalQuotationItem{})
	return res.RowsAffected, res.Error
}
