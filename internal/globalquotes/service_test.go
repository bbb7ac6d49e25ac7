package globalquotes

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luispallares/forgequote-backend/pkg/db/models"
	pkgerrors "github.com/luispallares/forgequote-backend/pkg/errors"
	"github.com/luispallares/forgequote-backend/pkg/logger"
)

type stubGlobalsRepo struct {
	globals map[uuid.UUID]*models.GlobalQuotation
}

func newStubGlobalsRepo() *stubGlobalsRepo {
	return &stubGlobalsRepo{globals: map[uuid.UUID]*models.GlobalQuotation{}}
}

func (s *stubGlobalsRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubGlobalsRepo) Create(ctx context.Context, global *models.GlobalQuotation) (*models.GlobalQuotation, error) {
	if global.ID == uuid.Nil {
		global.ID = uuid.New()
	}
	stored := *global
	s.globals[global.ID] = &stored
	return global, nil
}

func (s *stubGlobalsRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.GlobalQuotation, error) {
	global, ok := s.globals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *global
	copied.Items = append([]models.GlobalQuotationItem(nil), global.Items...)
	return &copied, nil
}

func (s *stubGlobalsRepo) Rename(ctx context.Context, id uuid.UUID, name string) (int64, error) {
	global, ok := s.globals[id]
	if !ok {
		return 0, nil
	}
	global.Name = name
	return 1, nil
}

func (s *stubGlobalsRepo) UpsertItem(ctx context.Context, item *models.GlobalQuotationItem) error {
	global, ok := s.globals[item.GlobalQuotationID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range global.Items {
		if global.Items[i].PartNumberID == item.PartNumberID {
			global.Items[i].QuotationID = item.QuotationID
			return nil
		}
	}
	global.Items = append(global.Items, *item)
	return nil
}

func (s *stubGlobalsRepo) DeleteItem(ctx context.Context, globalID, partNumberID uuid.UUID) (int64, error) {
	global, ok := s.globals[globalID]
	if !ok {
		return 0, nil
	}
	for i := range global.Items {
		if global.Items[i].PartNumberID == partNumberID {
			global.Items = append(global.Items[:i], global.Items[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type stubQuoteFinder struct {
	quotes map[uuid.UUID]*models.Quotation
}

func (s *stubQuoteFinder) FindByID(ctx context.Context, id uuid.UUID) (*models.Quotation, error) {
	quote, ok := s.quotes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return quote, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo *stubGlobalsRepo, finder *stubQuoteFinder) Service {
	t.Helper()
	if finder == nil {
		finder = &stubQuoteFinder{quotes: map[uuid.UUID]*models.Quotation{}}
	}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(repo, stubTxRunner{}, finder, logg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func expectCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != code {
		t.Fatalf("expected code %s, got %v", code, err)
	}
}

func seedGlobal(repo *stubGlobalsRepo) *models.GlobalQuotation {
	global := &models.GlobalQuotation{ID: uuid.New(), CompanyID: uuid.New(), Name: "Q3 award"}
	repo.globals[global.ID] = global
	return global
}

func seedQuote(finder *stubQuoteFinder, partNumberID uuid.UUID) *models.Quotation {
	id := uuid.New()
	quote := &models.Quotation{ID: id, RootID: id, PartNumberID: partNumberID, SupplierID: uuid.New(), VersionNumber: 1}
	finder.quotes[id] = quote
	return quote
}

func TestCreateRequiresName(t *testing.T) {
	svc := newTestService(t, newStubGlobalsRepo(), nil)

	_, err := svc.Create(context.Background(), uuid.New(), "   ")
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateAndRename(t *testing.T) {
	repo := newStubGlobalsRepo()
	svc := newTestService(t, repo, nil)

	created, err := svc.Create(context.Background(), uuid.New(), "Q3 award")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Rename(context.Background(), created.ID, "Q4 award"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if repo.globals[created.ID].Name != "Q4 award" {
		t.Fatalf("rename not persisted")
	}

	err = svc.Rename(context.Background(), uuid.New(), "nope")
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestAddItemReplacesSelectionForSamePart(t *testing.T) {
	repo := newStubGlobalsRepo()
	finder := &stubQuoteFinder{quotes: map[uuid.UUID]*models.Quotation{}}
	svc := newTestService(t, repo, finder)
	global := seedGlobal(repo)

	partID := uuid.New()
	first := seedQuote(finder, partID)
	second := seedQuote(finder, partID)

	result, err := svc.AddItem(context.Background(), global.ID, first.ID)
	if err != nil {
		t.Fatalf("AddItem first: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].QuotationID != first.ID {
		t.Fatalf("expected first quote selected, got %+v", result.Items)
	}

	result, err = svc.AddItem(context.Background(), global.ID, second.ID)
	if err != nil {
		t.Fatalf("AddItem second: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("same-part selection must replace, got %d items", len(result.Items))
	}
	if result.Items[0].QuotationID != second.ID {
		t.Fatalf("expected second quote selected")
	}
}

func TestAddItemUnknownQuotation(t *testing.T) {
	repo := newStubGlobalsRepo()
	svc := newTestService(t, repo, nil)
	global := seedGlobal(repo)

	_, err := svc.AddItem(context.Background(), global.ID, uuid.New())
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestRemoveItem(t *testing.T) {
	repo := newStubGlobalsRepo()
	finder := &stubQuoteFinder{quotes: map[uuid.UUID]*models.Quotation{}}
	svc := newTestService(t, repo, finder)
	global := seedGlobal(repo)

	partID := uuid.New()
	quote := seedQuote(finder, partID)
	if _, err := svc.AddItem(context.Background(), global.ID, quote.ID); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if err := svc.RemoveItem(context.Background(), global.ID, partID); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}

	err := svc.RemoveItem(context.Background(), global.ID, partID)
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestGetNotFound(t *testing.T) {
	svc := newTestService(t, newStubGlobalsRepo(), nil)

	_, err := svc.Get(context.Background(), uuid.New())
	expectCode(t, err, pkgerrors.CodeNotFound)
}
