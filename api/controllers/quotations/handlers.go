package quotations

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/luispallares/forgequote-backend/api/responses"
	"github.com/luispallares/forgequote-backend/api/validators"
	"github.com/luispallares/forgequote-backend/internal/pricing"
	quotessvc "github.com/luispallares/forgequote-backend/internal/quotations"
	"github.com/luispallares/forgequote-backend/pkg/db/models"
	"github.com/luispallares/forgequote-backend/pkg/enums"
	pkgerrors "github.com/luispallares/forgequote-backend/pkg/errors"
	"github.com/luispallares/forgequote-backend/pkg/logger"
)

// Service describes the quotation operations used by the HTTP controllers.
type Service interface {
	Preview(ctx context.Context, inputs quotessvc.RawInputs) (pricing.Derived, error)
	CreateRoot(ctx context.Context, input quotessvc.CreateRootInput) (*models.Quotation, error)
	Update(ctx context.Context, input quotessvc.UpdateInput) (*models.Quotation, error)
	Fork(ctx context.Context, input quotessvc.ForkInput) (*models.Quotation, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, target enums.QuotationStatus) (*models.Quotation, error)
	ListByPartNumber(ctx context.Context, partNumberID uuid.UUID) ([]quotessvc.Group, error)
	GetVersions(ctx context.Context, id uuid.UUID) ([]models.Quotation, error)
}

// Create handles POST /part-numbers/{partNumberId}/quotations.
func Create(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		partNumberID, err := parsePathUUID(r, "partNumberId", "part number id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req createQuotationRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		supplierID, err := uuid.Parse(req.SupplierID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid supplier id"))
			return
		}
		inputs, err := req.toInputs()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		created, err := svc.CreateRoot(ctx, quotessvc.CreateRootInput{
			PartNumberID: partNumberID,
			SupplierID:   supplierID,
			Inputs:       inputs,
			Terms:        req.toTerms(),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toQuotationResponse(created))
	}
}

// Update handles PATCH /quotations/{quotationId}.
func Update(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parsePathUUID(r, "quotationId", "quotation id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req updateQuotationRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		inputs, err := req.toInputs()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		updated, err := svc.Update(ctx, quotessvc.UpdateInput{
			ID:     id,
			Inputs: inputs,
			Terms:  req.toTerms(),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, toQuotationResponse(updated))
	}
}

// Fork handles POST /quotations/{quotationId}/versions.
func Fork(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sourceID, err := parsePathUUID(r, "quotationId", "quotation id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req forkQuotationRequest
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &req); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}

		input := quotessvc.ForkInput{SourceID: sourceID}
		if req.Payload != nil {
			inputs, err := req.Payload.toInputs()
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			terms := req.Payload.toTerms()
			input.Inputs = &inputs
			input.Terms = &terms
		}

		forked, err := svc.Fork(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toQuotationResponse(forked))
	}
}

// TransitionStatus handles POST /quotations/{quotationId}/status.
func TransitionStatus(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parsePathUUID(r, "quotationId", "quotation id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req statusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		status, err := enums.ParseQuotationStatus(req.Status)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown quotation status").
				WithDetails(map[string]string{"status": req.Status}))
			return
		}

		updated, err := svc.TransitionStatus(ctx, id, status)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, toQuotationResponse(updated))
	}
}

// ListByPartNumber handles GET /part-numbers/{partNumberId}/quotations.
func ListByPartNumber(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		partNumberID, err := parsePathUUID(r, "partNumberId", "part number id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		groups, err := svc.ListByPartNumber(ctx, partNumberID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		payload := make([]groupResponse, 0, len(groups))
		for _, group := range groups {
			payload = append(payload, toGroupResponse(group))
		}
		responses.WriteSuccess(w, map[string]any{"groups": payload})
	}
}

// GetVersions handles GET /quotations/{quotationId}/versions.
func GetVersions(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parsePathUUID(r, "quotationId", "quotation id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		chain, err := svc.GetVersions(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		payload := versionListResponse{Versions: make([]quotationResponse, 0, len(chain))}
		for i := range chain {
			payload.Versions = append(payload.Versions, toQuotationResponse(&chain[i]))
		}
		responses.WriteSuccess(w, payload)
	}
}

// Calculate handles POST /calculate, the pure pricing preview used by the
// editing form on every input change.
func Calculate(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req calculateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		derived, err := svc.Preview(ctx, quotessvc.RawInputs{
			CostOfPlate:        req.CostOfPlate,
			RMCNCMargin:        req.RMCNCMargin,
			RMCNCScrap:         req.RMCNCScrap,
			MachineCostPerHour: req.MachineCostPerHour,
			CycleTimeSec:       req.CycleTimeSec,
			Cavities:           req.Cavities,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, derivedResponse{
			RMCNCPiecePrice:      derived.RMCNCPiecePrice,
			PieceWeightRMCNCPct:  derived.PieceWeightRMCNCPct,
			PiecePriceCNCNoScrap: derived.PiecePriceCNCNoScrap,
			PiecePriceCNCScrap:   derived.PiecePriceCNCScrap,
			PieceWeightCNCPct:    derived.PieceWeightCNCPct,
			TotalPrice:           derived.TotalPrice,
		})
	}
}

func parsePathUUID(r *http.Request, param, label string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+label)
	}
	return id, nil
}
