package quotations

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	quotessvc "github.com/luispallares/forgequote-backend/internal/quotations"
	"github.com/luispallares/forgequote-backend/pkg/db/models"
	pkgerrors "github.com/luispallares/forgequote-backend/pkg/errors"
)

// quotationPayload is the full quotation form as posted by the client.
// Derived fields are deliberately absent; the server recomputes them.
type quotationPayload struct {
	CostOfPlate        *decimal.Decimal `json:"cost_of_plate"`
	RMCNCMargin        *decimal.Decimal `json:"rm_cnc_margin"`
	RMCNCScrap         *decimal.Decimal `json:"rm_cnc_scrap"`
	MachineCostPerHour *decimal.Decimal `json:"machine_cost_per_hour"`
	CycleTimeSec       *int             `json:"cycle_time_sec"`
	Cavities           *int             `json:"cavities"`
	MaterialAlloyID    *string          `json:"material_alloy_id" validate:"omitempty,uuid"`
	CNCMachineID       *string          `json:"cnc_machine_id" validate:"omitempty,uuid"`

	UnitPrice     *decimal.Decimal `json:"unit_price"`
	Quantity      *int             `json:"quantity"`
	MOQ1          *int             `json:"moq1"`
	MOQMargin1    *decimal.Decimal `json:"moq_margin_1"`
	LeadTimeDays  *int             `json:"lead_time_days"`
	ValidityDays  *int             `json:"validity_days"`
	Notes         *string          `json:"notes"`
	InternalNotes *string          `json:"internal_notes"`
}

type createQuotationRequest struct {
	SupplierID string `json:"supplier_id" validate:"required,uuid"`
	quotationPayload
}

type updateQuotationRequest struct {
	quotationPayload
}

type forkQuotationRequest struct {
	Payload *quotationPayload `json:"payload"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type calculateRequest struct {
	CostOfPlate        *decimal.Decimal `json:"cost_of_plate"`
	RMCNCMargin        *decimal.Decimal `json:"rm_cnc_margin"`
	RMCNCScrap         *decimal.Decimal `json:"rm_cnc_scrap"`
	MachineCostPerHour *decimal.Decimal `json:"machine_cost_per_hour"`
	CycleTimeSec       *int             `json:"cycle_time_sec"`
	Cavities           *int             `json:"cavities"`
}

func (p quotationPayload) toInputs() (quotessvc.RawInputs, error) {
	inputs := quotessvc.RawInputs{
		CostOfPlate:        p.CostOfPlate,
		RMCNCMargin:        p.RMCNCMargin,
		RMCNCScrap:         p.RMCNCScrap,
		MachineCostPerHour: p.MachineCostPerHour,
		CycleTimeSec:       p.CycleTimeSec,
		Cavities:           p.Cavities,
	}

	alloyID, err := parseOptionalUUID(p.MaterialAlloyID, "material_alloy_id")
	if err != nil {
		return inputs, err
	}
	inputs.MaterialAlloyID = alloyID

	machineID, err := parseOptionalUUID(p.CNCMachineID, "cnc_machine_id")
	if err != nil {
		return inputs, err
	}
	inputs.CNCMachineID = machineID

	return inputs, nil
}

func (p quotationPayload) toTerms() quotessvc.CommercialTerms {
	return quotessvc.CommercialTerms{
		UnitPrice:     p.UnitPrice,
		Quantity:      p.Quantity,
		MOQ1:          p.MOQ1,
		MOQMargin1:    p.MOQMargin1,
		LeadTimeDays:  p.LeadTimeDays,
		ValidityDays:  p.ValidityDays,
		Notes:         p.Notes,
		InternalNotes: p.InternalNotes,
	}
}

func parseOptionalUUID(value *string, field string) (*uuid.UUID, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*value)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid id").
			WithDetails(map[string]string{field: "must be a valid uuid"})
	}
	return &id, nil
}

type quotationResponse struct {
	ID            string  `json:"id"`
	ParentID      *string `json:"parent_id,omitempty"`
	RootID        string  `json:"root_id"`
	PartNumberID  string  `json:"part_number_id"`
	SupplierID    string  `json:"supplier_id"`
	VersionNumber int     `json:"version_number"`
	Status        string  `json:"status"`

	CostOfPlate        *decimal.Decimal `json:"cost_of_plate,omitempty"`
	RMCNCMargin        *decimal.Decimal `json:"rm_cnc_margin,omitempty"`
	RMCNCScrap         *decimal.Decimal `json:"rm_cnc_scrap,omitempty"`
	MachineCostPerHour *decimal.Decimal `json:"machine_cost_per_hour,omitempty"`
	CycleTimeSec       *int             `json:"cycle_time_sec,omitempty"`
	Cavities           *int             `json:"cavities,omitempty"`
	MaterialAlloyID    *string          `json:"material_alloy_id,omitempty"`
	CNCMachineID       *string          `json:"cnc_machine_id,omitempty"`

	RMCNCPiecePrice      *decimal.Decimal `json:"rm_cnc_piece_price"`
	PieceWeightRMCNCPct  *decimal.Decimal `json:"piece_weight_rm_cnc_percentage"`
	PiecePriceCNCNoScrap *decimal.Decimal `json:"piece_price_cnc_no_scrap"`
	PiecePriceCNCScrap   *decimal.Decimal `json:"piece_price_cnc_scrap"`
	PieceWeightCNCPct    *decimal.Decimal `json:"piece_weight_cnc_percentage"`
	TotalPrice           *decimal.Decimal `json:"total_price"`

	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	Quantity      *int             `json:"quantity,omitempty"`
	MOQ1          *int             `json:"moq1,omitempty"`
	MOQMargin1    *decimal.Decimal `json:"moq_margin_1,omitempty"`
	LeadTimeDays  *int             `json:"lead_time_days,omitempty"`
	ValidityDays  *int             `json:"validity_days,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	InternalNotes *string          `json:"internal_notes,omitempty"`

	SentAt      *time.Time `json:"sent_at,omitempty"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type derivedResponse struct {
	RMCNCPiecePrice      *decimal.Decimal `json:"rm_cnc_piece_price"`
	PieceWeightRMCNCPct  *decimal.Decimal `json:"piece_weight_rm_cnc_percentage"`
	PiecePriceCNCNoScrap *decimal.Decimal `json:"piece_price_cnc_no_scrap"`
	PiecePriceCNCScrap   *decimal.Decimal `json:"piece_price_cnc_scrap"`
	PieceWeightCNCPct    *decimal.Decimal `json:"piece_weight_cnc_percentage"`
	TotalPrice           *decimal.Decimal `json:"total_price"`
}

type groupResponse struct {
	SupplierID string              `json:"supplier_id"`
	Root       quotationResponse   `json:"root"`
	Versions   []quotationResponse `json:"versions"`
}

type versionListResponse struct {
	Versions []quotationResponse `json:"versions"`
}

func toQuotationResponse(q *models.Quotation) quotationResponse {
	resp := quotationResponse{
		ID:            q.ID.String(),
		RootID:        q.RootID.String(),
		PartNumberID:  q.PartNumberID.String(),
		SupplierID:    q.SupplierID.String(),
		VersionNumber: q.VersionNumber,
		Status:        q.Status.String(),

		CostOfPlate:        q.CostOfPlate,
		RMCNCMargin:        q.RMCNCMargin,
		RMCNCScrap:         q.RMCNCScrap,
		MachineCostPerHour: q.MachineCostPerHour,
		CycleTimeSec:       q.CycleTimeSec,
		Cavities:           q.Cavities,

		RMCNCPiecePrice:      q.RMCNCPiecePrice,
		PieceWeightRMCNCPct:  q.PieceWeightRMCNCPct,
		PiecePriceCNCNoScrap: q.PiecePriceCNCNoScrap,
		PiecePriceCNCScrap:   q.PiecePriceCNCScrap,
		PieceWeightCNCPct:    q.PieceWeightCNCPct,
		TotalPrice:           q.TotalPrice,

		UnitPrice:     q.UnitPrice,
		Quantity:      q.Quantity,
		MOQ1:          q.MOQ1,
		MOQMargin1:    q.MOQMargin1,
		LeadTimeDays:  q.LeadTimeDays,
		ValidityDays:  q.ValidityDays,
		Notes:         q.Notes,
		InternalNotes: q.InternalNotes,

		SentAt:      q.SentAt,
		RespondedAt: q.RespondedAt,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
	if q.ParentID != nil {
		parent := q.ParentID.String()
		resp.ParentID = &parent
	}
	if q.MaterialAlloyID != nil {
		alloy := q.MaterialAlloyID.String()
		resp.MaterialAlloyID = &alloy
	}
	if q.CNCMachineID != nil {
		machine := q.CNCMachineID.String()
		resp.CNCMachineID = &machine
	}
	return resp
}

func toGroupResponse(group quotessvc.Group) groupResponse {
	resp := groupResponse{
		SupplierID: group.SupplierID.String(),
		Root:       toQuotationResponse(&group.Root),
		Versions:   make([]quotationResponse, 0, len(group.Versions)),
	}
	for i := range group.Versions {
		resp.Versions = append(resp.Versions, toQuotationResponse(&group.Versions[i]))
	}
	return resp
}
