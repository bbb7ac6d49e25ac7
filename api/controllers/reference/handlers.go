package reference

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/luispallares/forgequote-backend/api/responses"
	"github.com/luispallares/forgequote-backend/pkg/db/models"
	pkgerrors "github.com/luispallares/forgequote-backend/pkg/errors"
	"github.com/luispallares/forgequote-backend/pkg/logger"
)

// Service describes the reference-data reads used by the HTTP controllers.
type Service interface {
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
	GetSupplier(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	ListMaterialAlloys(ctx context.Context) ([]models.MaterialAlloy, error)
	ListCNCMachines(ctx context.Context) ([]models.CNCMachine, error)
}

type supplierResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ContactEmail *string   `json:"contact_email,omitempty"`
	Currency     string    `json:"currency"`
	CreatedAt    time.Time `json:"created_at"`
}

type materialAlloyResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	DensityKgM3 *decimal.Decimal `json:"density_kg_m3,omitempty"`
	PricePerKg  *decimal.Decimal `json:"price_per_kg,omitempty"`
}

type cncMachineResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`
	AxisCount  *int             `json:"axis_count,omitempty"`
}

// ListSuppliers handles GET /reference/suppliers.
func ListSuppliers(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		suppliers, err := svc.ListSuppliers(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		payload := make([]supplierResponse, 0, len(suppliers))
		for i := range suppliers {
			payload = append(payload, toSupplierResponse(&suppliers[i]))
		}
		responses.WriteSuccess(w, map[string]any{"suppliers": payload})
	}
}

// GetSupplier handles GET /reference/suppliers/{supplierId}.
func GetSupplier(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := uuid.Parse(chi.URLParam(r, "supplierId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid supplier id"))
			return
		}

		supplier, err := svc.GetSupplier(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, toSupplierResponse(supplier))
	}
}

// ListMaterialAlloys handles GET /reference/material-alloys.
func ListMaterialAlloys(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		alloys, err := svc.ListMaterialAlloys(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		payload := make([]materialAlloyResponse, 0, len(alloys))
		for _, alloy := range alloys {
			payload = append(payload, materialAlloyResponse{
				ID:          alloy.ID.String(),
				Name:        alloy.Name,
				DensityKgM3: alloy.DensityKgM3,
				PricePerKg:  alloy.PricePerKg,
			})
		}
		responses.WriteSuccess(w, map[string]any{"material_alloys": payload})
	}
}

// ListCNCMachines handles GET /reference/cnc-machines.
func ListCNCMachines(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		machines, err := svc.ListCNCMachines(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		payload := make([]cncMachineResponse, 0, len(machines))
		for _, machine := range machines {
			payload = append(payload, cncMachineResponse{
				ID:         machine.ID.String(),
				Name:       machine.Name,
				HourlyRate: machine.HourlyRate,
				AxisCount:  machine.AxisCount,
			})
		}
		responses.WriteSuccess(w, map[string]any{"cnc_machines": payload})
	}
}

func toSupplierResponse(s *models.Supplier) supplierResponse {
	return supplierResponse{
		ID:           s.ID.String(),
		Name:         s.Name,
		ContactEmail: s.ContactEmail,
		Currency:     s.Currency,
		CreatedAt:    s.CreatedAt,
	}
}
