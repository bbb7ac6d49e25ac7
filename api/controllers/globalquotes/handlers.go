package globalquotes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/luispallares/forgequote-backend/api/responses"
	"github.com/luispallares/forgequote-backend/api/validators"
	"github.com/luispallares/forgequote-backend/pkg/db/models"
	pkgerrors "github.com/luispallares/forgequote-backend/pkg/errors"
	"github.com/luispallares/forgequote-backend/pkg/logger"
)

// Service describes the global quotation operations used by the HTTP controllers.
type Service interface {
	Create(ctx context.Context, companyID uuid.UUID, name string) (*models.GlobalQuotation, error)
	Rename(ctx context.Context, id uuid.UUID, name string) error
	AddItem(ctx context.Context, globalID, quotationID uuid.UUID) (*models.GlobalQuotation, error)
	RemoveItem(ctx context.Context, globalID, partNumberID uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*models.GlobalQuotation, error)
}

type createRequest struct {
	CompanyID string `json:"company_id" validate:"required,uuid"`
	Name      string `json:"name" validate:"required"`
}

type renameRequest struct {
	Name string `json:"name" validate:"required"`
}

type addItemRequest struct {
	QuotationID string `json:"quotation_id" validate:"required,uuid"`
}

type itemResponse struct {
	PartNumberID string `json:"part_number_id"`
	QuotationID  string `json:"quotation_id"`
}

type globalQuotationResponse struct {
	ID        string         `json:"id"`
	CompanyID string         `json:"company_id"`
	Name      string         `json:"name"`
	Items     []itemResponse `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Create handles POST /global-quotations.
func Create(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req createRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		companyID, err := uuid.Parse(req.CompanyID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid company id"))
			return
		}

		created, err := svc.Create(ctx, companyID, req.Name)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toResponse(created))
	}
}

// Rename handles PATCH /global-quotations/{globalQuotationId}.
func Rename(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseID(r, "globalQuotationId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req renameRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Rename(ctx, id, req.Name); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "renamed"})
	}
}

// AddItem handles POST /global-quotations/{globalQuotationId}/items.
func AddItem(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseID(r, "globalQuotationId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req addItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		quotationID, err := uuid.Parse(req.QuotationID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid quotation id"))
			return
		}

		updated, err := svc.AddItem(ctx, id, quotationID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, toResponse(updated))
	}
}

// RemoveItem handles DELETE /global-quotations/{globalQuotationId}/items/{partNumberId}.
func RemoveItem(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseID(r, "globalQuotationId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		partNumberID, err := parseID(r, "partNumberId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.RemoveItem(ctx, id, partNumberID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

// Get handles GET /global-quotations/{globalQuotationId}.
func Get(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseID(r, "globalQuotationId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		global, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, toResponse(global))
	}
}

func parseID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+param)
	}
	return id, nil
}

func toResponse(g *models.GlobalQuotation) globalQuotationResponse {
	resp := globalQuotationResponse{
		ID:        g.ID.String(),
		CompanyID: g.CompanyID.String(),
		Name:      g.Name,
		Items:     make([]itemResponse, 0, len(g.Items)),
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
	for _, item := range g.Items {
		resp.Items = append(resp.Items, itemResponse{
			PartNumberID: item.PartNumberID.String(),
			QuotationID:  item.QuotationID.String(),
		})
	}
	return resp
}
