package quotations

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgdb "github.com/luispallares/forgequote-backend/pkg/db"
	"github.com/luispallares/forgequote-backend/pkg/db/models"
	"github.com/luispallares/forgequote-backend/pkg/enums"
)

func setupQuotationsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS quotations (
  id TEXT PRIMARY KEY,
  parent_id TEXT,
  root_id TEXT NOT NULL,
  part_number_id TEXT NOT NULL,
  supplier_id TEXT NOT NULL,
  version_number INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'draft',
  cost_of_plate NUMERIC,
  rm_cnc_margin NUMERIC,
  rm_cnc_scrap NUMERIC,
  machine_cost_per_hour NUMERIC,
  cycle_time_sec INTEGER,
  cavities INTEGER,
  material_alloy_id TEXT,
  cnc_machine_id TEXT,
  rm_cnc_piece_price NUMERIC,
  piece_weight_rm_cnc_percentage NUMERIC,
  piece_price_cnc_no_scrap NUMERIC,
  piece_price_cnc_scrap NUMERIC,
  piece_weight_cnc_percentage NUMERIC,
  total_price NUMERIC,
  unit_price NUMERIC,
  quantity INTEGER,
  moq1 INTEGER,
  moq_margin_1 NUMERIC,
  lead_time_days INTEGER,
  validity_days INTEGER,
  notes TEXT,
  internal_notes TEXT,
  sent_at DATETIME,
  responded_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (root_id, version_number)
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func insertQuotation(t *testing.T, repo Repository, quote *models.Quotation) *models.Quotation {
	t.Helper()
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	if quote.RootID == uuid.Nil {
		quote.RootID = quote.ID
	}
	if quote.VersionNumber == 0 {
		quote.VersionNumber = 1
	}
	if quote.Status == "" {
		quote.Status = enums.QuotationStatusDraft
	}
	created, err := repo.Create(context.Background(), quote)
	require.NoError(t, err)
	return created
}

func TestRepositoryCreateAndFindByID(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)

	total := decimal.RequireFromString("61.50")
	created := insertQuotation(t, repo, &models.Quotation{
		PartNumberID: uuid.New(),
		SupplierID:   uuid.New(),
		TotalPrice:   &total,
	})

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	require.NotNil(t, found.TotalPrice)
	assert.True(t, found.TotalPrice.Equal(total))
	assert.Equal(t, enums.QuotationStatusDraft, found.Status)
}

func TestRepositoryFindByIDNotFound(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryVersionUniquenessSurfacesConflict(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)

	root := insertQuotation(t, repo, &models.Quotation{
		PartNumberID: uuid.New(),
		SupplierID:   uuid.New(),
	})

	duplicate := &models.Quotation{
		ID:            uuid.New(),
		ParentID:      &root.ID,
		RootID:        root.RootID,
		PartNumberID:  root.PartNumberID,
		SupplierID:    root.SupplierID,
		VersionNumber: 1,
		Status:        enums.QuotationStatusDraft,
	}
	_, err := repo.Create(context.Background(), duplicate)
	require.Error(t, err)
	assert.True(t, pkgdb.IsUniqueViolation(err, ""))
}

func TestRepositoryFindChainIsVersionOrdered(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)

	root := insertQuotation(t, repo, &models.Quotation{
		PartNumberID: uuid.New(),
		SupplierID:   uuid.New(),
	})
	for _, version := range []int{3, 2} {
		insertQuotation(t, repo, &models.Quotation{
			ID:            uuid.New(),
			ParentID:      &root.ID,
			RootID:        root.RootID,
			PartNumberID:  root.PartNumberID,
			SupplierID:    root.SupplierID,
			VersionNumber: version,
		})
	}

	chain, err := repo.FindChain(context.Background(), root.RootID)
	require.NoError(t, err)
	require.Len(t, chain, 3)
	for i, quote := range chain {
		assert.Equal(t, i+1, quote.VersionNumber)
	}
}

func TestRepositoryFindByPartNumberFiltersOtherParts(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)

	partID := uuid.New()
	insertQuotation(t, repo, &models.Quotation{PartNumberID: partID, SupplierID: uuid.New()})
	insertQuotation(t, repo, &models.Quotation{PartNumberID: partID, SupplierID: uuid.New()})
	insertQuotation(t, repo, &models.Quotation{PartNumberID: uuid.New(), SupplierID: uuid.New()})

	quotes, err := repo.FindByPartNumber(context.Background(), partID)
	require.NoError(t, err)
	assert.Len(t, quotes, 2)
}

func TestRepositoryUpdateStatusAppliesStamps(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)

	root := insertQuotation(t, repo, &models.Quotation{
		PartNumberID: uuid.New(),
		SupplierID:   uuid.New(),
	})

	sentAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	err := repo.UpdateStatus(context.Background(), root.ID, enums.QuotationStatusSent, map[string]any{"sent_at": sentAt})
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), root.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.QuotationStatusSent, found.Status)
	require.NotNil(t, found.SentAt)
	assert.True(t, found.SentAt.Equal(sentAt))
}

func TestRepositoryFindAgingCandidates(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)

	validity := 10
	sent := insertQuotation(t, repo, &models.Quotation{
		PartNumberID: uuid.New(),
		SupplierID:   uuid.New(),
		Status:       enums.QuotationStatusSent,
		ValidityDays: &validity,
	})
	insertQuotation(t, repo, &models.Quotation{
		PartNumberID: uuid.New(),
		SupplierID:   uuid.New(),
		Status:       enums.QuotationStatusSent,
	})
	insertQuotation(t, repo, &models.Quotation{
		PartNumberID: uuid.New(),
		SupplierID:   uuid.New(),
		Status:       enums.QuotationStatusDraft,
		ValidityDays: &validity,
	})

	candidates, err := repo.FindAgingCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, sent.ID, candidates[0].ID)
}
