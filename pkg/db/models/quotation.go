package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/luispallares/forgequote-backend/pkg/enums"
)

// Quotation is one version of a supplier's offer for a part number.
// RootID always equals the chain root's id (its own id for roots) so the
// (root_id, version_number) uniqueness constraint is enforceable in SQL.
type Quotation struct {
	ID           uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ParentID     *uuid.UUID            `gorm:"column:parent_id;type:uuid"`
	RootID       uuid.UUID             `gorm:"column:root_id;type:uuid;not null;uniqueIndex:idx_quotations_root_version,priority:1"`
	PartNumberID uuid.UUID             `gorm:"column:part_number_id;type:uuid;not null"`
	SupplierID   uuid.UUID             `gorm:"column:supplier_id;type:uuid;not null"`
	VersionNumber int                  `gorm:"column:version_number;not null;uniqueIndex:idx_quotations_root_version,priority:2"`
	Status       enums.QuotationStatus `gorm:"column:status;type:text;not null;default:'draft'"`

	// Raw cost inputs, nullable until the form is filled in.
	CostOfPlate        *decimal.Decimal `gorm:"column:cost_of_plate;type:numeric(14,4)"`
	RMCNCMargin        *decimal.Decimal `gorm:"column:rm_cnc_margin;type:numeric(8,4)"`
	RMCNCScrap         *decimal.Decimal `gorm:"column:rm_cnc_scrap;type:numeric(8,4)"`
	MachineCostPerHour *decimal.Decimal `gorm:"column:machine_cost_per_hour;type:numeric(14,4)"`
	CycleTimeSec       *int             `gorm:"column:cycle_time_sec"`
	Cavities           *int             `gorm:"column:cavities"`
	MaterialAlloyID    *uuid.UUID       `gorm:"column:material_alloy_id;type:uuid"`
	CNCMachineID       *uuid.UUID       `gorm:"column:cnc_machine_id;type:uuid"`

	// Derived fields, recomputed server-side before every persist and
	// never taken from client payloads.
	RMCNCPiecePrice      *decimal.Decimal `gorm:"column:rm_cnc_piece_price;type:numeric(14,4)"`
	PieceWeightRMCNCPct  *decimal.Decimal `gorm:"column:piece_weight_rm_cnc_percentage;type:numeric(8,4)"`
	PiecePriceCNCNoScrap *decimal.Decimal `gorm:"column:piece_price_cnc_no_scrap;type:numeric(14,4)"`
	PiecePriceCNCScrap   *decimal.Decimal `gorm:"column:piece_price_cnc_scrap;type:numeric(14,4)"`
	PieceWeightCNCPct    *decimal.Decimal `gorm:"column:piece_weight_cnc_percentage;type:numeric(8,4)"`
	TotalPrice           *decimal.Decimal `gorm:"column:total_price;type:numeric(14,4)"`

	// Commercial terms.
	UnitPrice    *decimal.Decimal `gorm:"column:unit_price;type:numeric(14,4)"`
	Quantity     *int             `gorm:"column:quantity"`
	MOQ1         *int             `gorm:"column:moq1"`
	MOQMargin1   *decimal.Decimal `gorm:"column:moq_margin_1;type:numeric(8,4)"`
	LeadTimeDays *int             `gorm:"column:lead_time_days"`
	ValidityDays *int             `gorm:"column:validity_days"`
	Notes        *string          `gorm:"column:notes"`
	InternalNotes *string         `gorm:"column:internal_notes"`

	SentAt      *time.Time `gorm:"column:sent_at"`
	RespondedAt *time.Time `gorm:"column:responded_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// IsRoot reports whether this quotation starts its version chain.
func (q *Quotation) IsRoot() bool {
	return q.ParentID == nil
}
