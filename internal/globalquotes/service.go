package globalquotes

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luispallares/forgequote-backend/pkg/db/models"
	pkgerrors "github.com/luispallares/forgequote-backend/pkg/errors"
	"github.com/luispallares/forgequote-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// QuotationFinder resolves the quotation a selection points at.
type QuotationFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Quotation, error)
}

// Service exposes global quotation operations.
type Service interface {
	Create(ctx context.Context, companyID uuid.UUID, name string) (*models.GlobalQuotation, error)
	Rename(ctx context.Context, id uuid.UUID, name string) error
	AddItem(ctx context.Context, globalID, quotationID uuid.UUID) (*models.GlobalQuotation, error)
	RemoveItem(ctx context.Context, globalID, partNumberID uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*models.GlobalQuotation, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	quotes QuotationFinder
	logg   *logger.Logger
}

// NewService builds a global quotation service with the required dependencies.
func NewService(repo Repository, tx txRunner, quotes QuotationFinder, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("globalquotes repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if quotes == nil {
		return nil, fmt.Errorf("quotation finder required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, quotes: quotes, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, companyID uuid.UUID, name string) (*models.GlobalQuotation, error) {
	if companyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company id required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}

	global := &models.GlobalQuotation{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      name,
	}
	created, err := s.repo.Create(ctx, global)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create global quotation")
	}

	s.logg.Info(s.logg.WithField(ctx, "global_quotation_id", created.ID.String()), "global quotation created")
	return created, nil
}

func (s *service) Rename(ctx context.Context, id uuid.UUID, name string) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "global quotation id required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}

	affected, err := s.repo.Rename(ctx, id, name)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rename global quotation")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "global quotation not found")
	}
	return nil
}

// AddItem pins a quotation as the selection for its part number,
// replacing any previous selection for that part.
func (s *service) AddItem(ctx context.Context, globalID, quotationID uuid.UUID) (*models.GlobalQuotation, error) {
	if globalID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "global quotation id required")
	}
	if quotationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quotation id required")
	}

	var result *models.GlobalQuotation
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindByID(ctx, globalID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "global quotation not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load global quotation")
		}

		quote, err := s.quotes.FindByID(ctx, quotationID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "quotation not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quotation")
		}

		item := &models.GlobalQuotationItem{
			ID:                uuid.New(),
			GlobalQuotationID: globalID,
			PartNumberID:      quote.PartNumberID,
			QuotationID:       quote.ID,
		}
		if err := repo.UpsertItem(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store selection")
		}

		result, err = repo.FindByID(ctx, globalID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload global quotation")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) RemoveItem(ctx context.Context, globalID, partNumberID uuid.UUID) error {
	if globalID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "global quotation id required")
	}
	if partNumberID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "part number id required")
	}

	affected, err := s.repo.DeleteItem(ctx, globalID, partNumberID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove selection")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "no selection for part number")
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.GlobalQuotation, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "global quotation id required")
	}
	global, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "global quotation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load global quotation")
	}
	return global, nil
}
