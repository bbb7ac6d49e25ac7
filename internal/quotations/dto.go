package quotations

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/luispallares/forgequote-backend/internal/pricing"
	pkgerrors "github.com/luispallares/forgequote-backend/pkg/errors"
	"github.com/luispallares/forgequote-backend/pkg/db/models"
)

// RawInputs carries the user-entered cost fields of a quotation form.
// Derived fields never appear here; they are recomputed before every write.
type RawInputs struct {
	CostOfPlate        *decimal.Decimal
	RMCNCMargin        *decimal.Decimal
	RMCNCScrap         *decimal.Decimal
	MachineCostPerHour *decimal.Decimal
	CycleTimeSec       *int
	Cavities           *int
	MaterialAlloyID    *uuid.UUID
	CNCMachineID       *uuid.UUID
}

// CommercialTerms carries the negotiated terms of a quotation.
type CommercialTerms struct {
	UnitPrice     *decimal.Decimal
	Quantity      *int
	MOQ1          *int
	MOQMargin1    *decimal.Decimal
	LeadTimeDays  *int
	ValidityDays  *int
	Notes         *string
	InternalNotes *string
}

// CreateRootInput starts a new version chain for a part number and supplier.
type CreateRootInput struct {
	PartNumberID uuid.UUID
	SupplierID   uuid.UUID
	Inputs       RawInputs
	Terms        CommercialTerms
}

// UpdateInput replaces the form state of an editable quotation. The payload
// is the full form, not a diff; a nil field clears the stored value.
type UpdateInput struct {
	ID     uuid.UUID
	Inputs RawInputs
	Terms  CommercialTerms
}

// ForkInput creates the next version in a chain. When Inputs or Terms are
// nil the new version copies the source's values.
type ForkInput struct {
	SourceID uuid.UUID
	Inputs   *RawInputs
	Terms    *CommercialTerms
}

// Group is one supplier chain for a part number: the root plus its forked
// versions ordered by version number.
type Group struct {
	SupplierID uuid.UUID
	Root       models.Quotation
	Versions   []models.Quotation
}

func (in RawInputs) pricingInputs() pricing.Inputs {
	return pricing.Inputs{
		CostOfPlate:        in.CostOfPlate,
		RMCNCMargin:        in.RMCNCMargin,
		RMCNCScrap:         in.RMCNCScrap,
		MachineCostPerHour: in.MachineCostPerHour,
		CycleTimeSec:       in.CycleTimeSec,
	}
}

// validate rejects values the calculator assumes impossible. Nil stays
// legal everywhere; completeness is enforced at submission, not here.
func (in RawInputs) validate() error {
	violations := map[string]string{}

	if in.CostOfPlate != nil && !in.CostOfPlate.IsPositive() {
		violations["cost_of_plate"] = "must be greater than zero"
	}
	if in.MachineCostPerHour != nil && !in.MachineCostPerHour.IsPositive() {
		violations["machine_cost_per_hour"] = "must be greater than zero"
	}
	if in.CycleTimeSec != nil && *in.CycleTimeSec <= 0 {
		violations["cycle_time_sec"] = "must be greater than zero"
	}
	if in.RMCNCMargin != nil && in.RMCNCMargin.IsNegative() {
		violations["rm_cnc_margin"] = "must not be negative"
	}
	if in.RMCNCScrap != nil && in.RMCNCScrap.IsNegative() {
		violations["rm_cnc_scrap"] = "must not be negative"
	}
	if in.Cavities != nil && *in.Cavities <= 0 {
		violations["cavities"] = "must be greater than zero"
	}

	if len(violations) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid cost inputs").WithDetails(violations)
	}
	return nil
}

func (t CommercialTerms) validate() error {
	violations := map[string]string{}

	if t.UnitPrice != nil && t.UnitPrice.IsNegative() {
		violations["unit_price"] = "must not be negative"
	}
	if t.Quantity != nil && *t.Quantity <= 0 {
		violations["quantity"] = "must be greater than zero"
	}
	if t.MOQ1 != nil && *t.MOQ1 <= 0 {
		violations["moq1"] = "must be greater than zero"
	}
	if t.MOQMargin1 != nil && t.MOQMargin1.IsNegative() {
		violations["moq_margin_1"] = "must not be negative"
	}
	if t.LeadTimeDays != nil && *t.LeadTimeDays < 0 {
		violations["lead_time_days"] = "must not be negative"
	}
	if t.ValidityDays != nil && *t.ValidityDays <= 0 {
		violations["validity_days"] = "must be greater than zero"
	}

	if len(violations) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid commercial terms").WithDetails(violations)
	}
	return nil
}

func (in RawInputs) applyTo(q *models.Quotation) {
	q.CostOfPlate = in.CostOfPlate
	q.RMCNCMargin = in.RMCNCMargin
	q.RMCNCScrap = in.RMCNCScrap
	q.MachineCostPerHour = in.MachineCostPerHour
	q.CycleTimeSec = in.CycleTimeSec
	q.Cavities = in.Cavities
	q.MaterialAlloyID = in.MaterialAlloyID
	q.CNCMachineID = in.CNCMachineID
}

func (t CommercialTerms) applyTo(q *models.Quotation) {
	q.UnitPrice = t.UnitPrice
	q.Quantity = t.Quantity
	q.MOQ1 = t.MOQ1
	q.MOQMargin1 = t.MOQMargin1
	q.LeadTimeDays = t.LeadTimeDays
	q.ValidityDays = t.ValidityDays
	q.Notes = t.Notes
	q.InternalNotes = t.InternalNotes
}

func rawInputsFrom(q *models.Quotation) RawInputs {
	return RawInputs{
		CostOfPlate:        q.CostOfPlate,
		RMCNCMargin:        q.RMCNCMargin,
		RMCNCScrap:         q.RMCNCScrap,
		MachineCostPerHour: q.MachineCostPerHour,
		CycleTimeSec:       q.CycleTimeSec,
		Cavities:           q.Cavities,
		MaterialAlloyID:    q.MaterialAlloyID,
		CNCMachineID:       q.CNCMachineID,
	}
}

func termsFrom(q *models.Quotation) CommercialTerms {
	return CommercialTerms{
		UnitPrice:     q.UnitPrice,
		Quantity:      q.Quantity,
		MOQ1:          q.MOQ1,
		MOQMargin1:    q.MOQMargin1,
		LeadTimeDays:  q.LeadTimeDays,
		ValidityDays:  q.ValidityDays,
		Notes:         q.Notes,
		InternalNotes: q.InternalNotes,
	}
}

func applyDerived(q *models.Quotation, d pricing.Derived) {
	q.RMCNCPiecePrice = d.RMCNCPiecePrice
	q.PieceWeightRMCNCPct = d.PieceWeightRMCNCPct
	q.PiecePriceCNCNoScrap = d.PiecePriceCNCNoScrap
	q.PiecePriceCNCScrap = d.PiecePriceCNCScrap
	q.PieceWeightCNCPct = d.PieceWeightCNCPct
	q.TotalPrice = d.TotalPrice
}
