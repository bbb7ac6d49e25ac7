// Package reference serves the lookup data quotation forms depend on:
// suppliers, material alloys and CNC machines. Lists are cached in Redis
// with a short TTL because the data changes rarely and is read on every
// form load.
package reference

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luispallares/forgequote-backend/pkg/db/models"
)

// Repository is the persistence boundary for reference data.
type Repository interface {
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
	FindSupplier(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	ListMaterialAlloys(ctx context.Context) ([]models.MaterialAlloy, error)
	ListCNCMachines(ctx context.Context) ([]models.CNCMachine, error)
	SupplierExists(ctx context.Context, id uuid.UUID) (bool, error)
	PartNumberExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a reference repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&suppliers).Error
	if err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *repository) FindSupplier(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	var supplier models.Supplier
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&supplier).Error
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *repository) ListMaterialAlloys(ctx context.Context) ([]models.MaterialAlloy, error) {
	var alloys []models.MaterialAlloy
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&alloys).Error
	if err != nil {
		return nil, err
	}
	return alloys, nil
}

func (r *repository) ListCNCMachines(ctx context.Context) ([]models.CNCMachine, error) {
	var machines []models.CNCMachine
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&machines).Error
	if err != nil {
		return nil, err
	}
	return machines, nil
}

func (r *repository) SupplierExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Supplier{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) PartNumberExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PartNumber{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
