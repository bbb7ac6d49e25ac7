package quotations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/luispallares/forgequote-backend/internal/pricing"
	"github.com/luispallares/forgequote-backend/pkg/db"
	"github.com/luispallares/forgequote-backend/pkg/db/models"
	"github.com/luispallares/forgequote-backend/pkg/enums"
	pkgerrors "github.com/luispallares/forgequote-backend/pkg/errors"
	"github.com/luispallares/forgequote-backend/pkg/logger"
	"github.com/luispallares/forgequote-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ReferenceChecker resolves the foreign ids a quotation points at.
type ReferenceChecker interface {
	PartNumberExists(ctx context.Context, id uuid.UUID) (bool, error)
	SupplierExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	refs    ReferenceChecker
	logg    *logger.Logger
	pricing *metrics.PricingMetrics
	now     func() time.Time
}

// NewService builds a quotation service with the required dependencies.
// The pricing metrics may be nil when the caller does not export metrics.
func NewService(repo Repository, tx txRunner, refs ReferenceChecker, logg *logger.Logger, pricingMetrics *metrics.PricingMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quotations repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if refs == nil {
		return nil, fmt.Errorf("reference checker required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		refs:    refs,
		logg:    logg,
		pricing: pricingMetrics,
		now:     time.Now,
	}, nil
}

func (s *service) Preview(ctx context.Context, inputs RawInputs) (pricing.Derived, error) {
	if err := inputs.validate(); err != nil {
		return pricing.Derived{}, err
	}
	s.pricing.IncRecompute("preview")
	return pricing.Calculate(inputs.pricingInputs()), nil
}

func (s *service) CreateRoot(ctx context.Context, input CreateRootInput) (*models.Quotation, error) {
	if input.PartNumberID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "part number id required")
	}
	if input.SupplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id required")
	}
	if err := input.Inputs.validate(); err != nil {
		return nil, err
	}
	if err := input.Terms.validate(); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, input.PartNumberID, input.SupplierID); err != nil {
		return nil, err
	}

	id := uuid.New()
	quote := &models.Quotation{
		ID:            id,
		RootID:        id,
		PartNumberID:  input.PartNumberID,
		SupplierID:    input.SupplierID,
		VersionNumber: 1,
		Status:        enums.QuotationStatusDraft,
	}
	input.Inputs.applyTo(quote)
	input.Terms.applyTo(quote)
	s.pricing.IncRecompute("create")
	applyDerived(quote, pricing.Calculate(input.Inputs.pricingInputs()))

	var created *models.Quotation
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var txErr error
		created, txErr = s.repo.WithTx(tx).Create(ctx, quote)
		if txErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, txErr, "create quotation")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithQuotationID(ctx, created.ID.String())
	s.logg.Info(s.logg.WithPartNumberID(ctx, created.PartNumberID.String()), "root quotation created")
	return created, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*models.Quotation, error) {
	if input.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quotation id required")
	}
	if err := input.Inputs.validate(); err != nil {
		return nil, err
	}
	if err := input.Terms.validate(); err != nil {
		return nil, err
	}

	var updated *models.Quotation
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		quote, err := repo.FindByID(ctx, input.ID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "quotation not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quotation")
		}
		if !quote.Status.IsEditable() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "quotation is frozen, fork it to make changes").
				WithDetails(map[string]string{"status": quote.Status.String()})
		}

		input.Inputs.applyTo(quote)
		input.Terms.applyTo(quote)
		s.pricing.IncRecompute("update")
		applyDerived(quote, pricing.Calculate(input.Inputs.pricingInputs()))

		updated, err = repo.Save(ctx, quote)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save quotation")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) Fork(ctx context.Context, input ForkInput) (*models.Quotation, error) {
	if input.SourceID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "source quotation id required")
	}
	if input.Inputs != nil {
		if err := input.Inputs.validate(); err != nil {
			return nil, err
		}
	}
	if input.Terms != nil {
		if err := input.Terms.validate(); err != nil {
			return nil, err
		}
	}

	source, err := s.repo.FindByID(ctx, input.SourceID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "source quotation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load source quotation")
	}

	// Every fork parents to the chain root, so a concurrent fork can only
	// collide on the version number. One retry after a constraint hit.
	var created *models.Quotation
	for attempt := 0; attempt < 2; attempt++ {
		created, err = s.createFork(ctx, source, input)
		if err == nil {
			return created, nil
		}
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		if !db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create fork")
		}
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "concurrent fork on the same chain").
		WithDetails(map[string]string{"root_id": source.RootID.String()})
}

func (s *service) createFork(ctx context.Context, source *models.Quotation, input ForkInput) (*models.Quotation, error) {
	var created *models.Quotation
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		chain, err := repo.FindChain(ctx, source.RootID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load version chain")
		}

		inputs := rawInputsFrom(source)
		if input.Inputs != nil {
			inputs = *input.Inputs
		}
		terms := termsFrom(source)
		if input.Terms != nil {
			terms = *input.Terms
		}

		rootID := source.RootID
		quote := &models.Quotation{
			ID:            uuid.New(),
			ParentID:      &rootID,
			RootID:        rootID,
			PartNumberID:  source.PartNumberID,
			SupplierID:    source.SupplierID,
			VersionNumber: nextVersionNumber(chain),
			Status:        enums.QuotationStatusDraft,
		}
		inputs.applyTo(quote)
		terms.applyTo(quote)
		s.pricing.IncRecompute("fork")
		applyDerived(quote, pricing.Calculate(inputs.pricingInputs()))

		created, err = repo.Create(ctx, quote)
		return err
	})
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithQuotationID(ctx, created.ID.String())
	s.logg.Info(ctx, fmt.Sprintf("forked version %d", created.VersionNumber))
	return created, nil
}

func (s *service) TransitionStatus(ctx context.Context, id uuid.UUID, target enums.QuotationStatus) (*models.Quotation, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quotation id required")
	}
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown quotation status").
			WithDetails(map[string]string{"status": target.String()})
	}
	if target == enums.QuotationStatusExpired {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expired is derived from validity_days and cannot be requested")
	}

	var result *models.Quotation
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		quote, err := repo.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "quotation not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quotation")
		}

		if !quote.Status.CanTransitionTo(target) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "status transition not allowed").
				WithDetails(map[string]string{
					"from": quote.Status.String(),
					"to":   target.String(),
				})
		}
		if target == enums.QuotationStatusCompleted {
			if err := completionPreconditions(quote); err != nil {
				return err
			}
		}

		stamps := map[string]any{}
		now := s.now().UTC()
		switch target {
		case enums.QuotationStatusSent:
			quote.SentAt = &now
			stamps["sent_at"] = now
		case enums.QuotationStatusResponded:
			quote.RespondedAt = &now
			stamps["responded_at"] = now
		}

		if err := repo.UpdateStatus(ctx, quote.ID, target, stamps); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update quotation status")
		}
		quote.Status = target
		result = quote
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithQuotationID(ctx, result.ID.String())
	s.logg.Info(s.logg.WithField(ctx, "status", result.Status.String()), "quotation status changed")
	return result, nil
}

func (s *service) ListByPartNumber(ctx context.Context, partNumberID uuid.UUID) ([]Group, error) {
	if partNumberID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "part number id required")
	}

	quotes, err := s.repo.FindByPartNumber(ctx, partNumberID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotations")
	}

	now := s.now()
	for i := range quotes {
		presentStatus(&quotes[i], now)
	}
	return groupByChain(quotes), nil
}

func (s *service) GetVersions(ctx context.Context, id uuid.UUID) ([]models.Quotation, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quotation id required")
	}

	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quotation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quotation")
	}

	chain, err := s.repo.FindChain(ctx, quote.RootID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load version chain")
	}

	now := s.now()
	for i := range chain {
		presentStatus(&chain[i], now)
	}
	return chain, nil
}

// ExpireLapsed persists the expired status for sent and responded
// quotations whose validity window has elapsed. Read paths already derive
// expiry on the fly; the sweep keeps stored rows eventually consistent.
func (s *service) ExpireLapsed(ctx context.Context, now time.Time) (int, error) {
	candidates, err := s.repo.FindAgingCandidates(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load aging quotations")
	}

	expired := 0
	var errs []error
	for i := range candidates {
		quote := &candidates[i]
		if !isLapsed(quote, now) {
			continue
		}
		if err := s.repo.UpdateStatus(ctx, quote.ID, enums.QuotationStatusExpired, nil); err != nil {
			s.logg.Error(s.logg.WithQuotationID(ctx, quote.ID.String()), "failed to expire quotation", err)
			errs = append(errs, fmt.Errorf("expire quotation %s: %w", quote.ID, err))
			continue
		}
		expired++
	}
	return expired, multierr.Combine(errs...)
}

func (s *service) checkReferences(ctx context.Context, partNumberID, supplierID uuid.UUID) error {
	ok, err := s.refs.PartNumberExists(ctx, partNumberID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve part number")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "part number not found")
	}

	ok, err = s.refs.SupplierExists(ctx, supplierID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve supplier")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
	}
	return nil
}

// completionPreconditions gates draft to completed: the quote must carry a
// positive computed total and a positive quantity.
func completionPreconditions(quote *models.Quotation) error {
	violations := map[string]string{}

	if quote.TotalPrice == nil {
		violations["total_price"] = "cost inputs incomplete, total price not computable"
	} else if !quote.TotalPrice.IsPositive() {
		violations["total_price"] = "must be greater than zero"
	}
	if quote.Quantity == nil || *quote.Quantity <= 0 {
		violations["quantity"] = "must be greater than zero"
	}
	if quote.SupplierID == uuid.Nil {
		violations["supplier_id"] = "required"
	}

	if len(violations) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quotation is not ready to complete").WithDetails(violations)
	}
	return nil
}
