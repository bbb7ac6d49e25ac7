package models

import (
	"time"

	"github.com/google/uuid"
)

// GlobalQuotation is a named selection of quotations across the part
// numbers of one company/RFQ.
type GlobalQuotation struct {
	ID        uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyID uuid.UUID             `gorm:"column:company_id;type:uuid;not null"`
	Name      string                `gorm:"column:name;not null"`
	Items     []GlobalQuotationItem `gorm:"foreignKey:GlobalQuotationID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// GlobalQuotationItem pins one quotation as the selection for a part
// number inside a global quotation. One selection per part number.
type GlobalQuotationItem struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	GlobalQuotationID uuid.UUID `gorm:"column:global_quotation_id;type:uuid;not null;uniqueIndex:idx_global_quotation_part,priority:1"`
	PartNumberID      uuid.UUID `gorm:"column:part_number_id;type:uuid;not null;uniqueIndex:idx_global_quotation_part,priority:2"`
	QuotationID       uuid.UUID `gorm:"column:quotation_id;type:uuid;not null"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
}
