package reference

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luispallares/forgequote-backend/pkg/db/models"
	pkgerrors "github.com/luispallares/forgequote-backend/pkg/errors"
	"github.com/luispallares/forgequote-backend/pkg/logger"
	"github.com/luispallares/forgequote-backend/pkg/redis"
)

const (
	collectionSuppliers   = "suppliers"
	collectionAlloys      = "material_alloys"
	collectionCNCMachines = "cnc_machines"
)

// Cache is the subset of the Redis client the service needs. A nil cache
// disables caching and every read goes straight to the database.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	ReferenceKey(collection string) string
}

// Service exposes reference-data reads and the id checks other services
// use to validate foreign references.
type Service interface {
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
	GetSupplier(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	ListMaterialAlloys(ctx context.Context) ([]models.MaterialAlloy, error)
	ListCNCMachines(ctx context.Context) ([]models.CNCMachine, error)
	SupplierExists(ctx context.Context, id uuid.UUID) (bool, error)
	PartNumberExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	logg  *logger.Logger
}

// NewService builds a reference service. The cache may be nil.
func NewService(repo Repository, cache Cache, ttl time.Duration, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reference repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &service{repo: repo, cache: cache, ttl: ttl, logg: logg}, nil
}

func (s *service) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if s.cachedList(ctx, collectionSuppliers, &suppliers) {
		return suppliers, nil
	}

	suppliers, err := s.repo.ListSuppliers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list suppliers")
	}
	s.storeList(ctx, collectionSuppliers, suppliers)
	return suppliers, nil
}

func (s *service) GetSupplier(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id required")
	}
	supplier, err := s.repo.FindSupplier(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load supplier")
	}
	return supplier, nil
}

func (s *service) ListMaterialAlloys(ctx context.Context) ([]models.MaterialAlloy, error) {
	var alloys []models.MaterialAlloy
	if s.cachedList(ctx, collectionAlloys, &alloys) {
		return alloys, nil
	}

	alloys, err := s.repo.ListMaterialAlloys(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list material alloys")
	}
	s.storeList(ctx, collectionAlloys, alloys)
	return alloys, nil
}

func (s *service) ListCNCMachines(ctx context.Context) ([]models.CNCMachine, error) {
	var machines []models.CNCMachine
	if s.cachedList(ctx, collectionCNCMachines, &machines) {
		return machines, nil
	}

	machines, err := s.repo.ListCNCMachines(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cnc machines")
	}
	s.storeList(ctx, collectionCNCMachines, machines)
	return machines, nil
}

func (s *service) SupplierExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.SupplierExists(ctx, id)
}

func (s *service) PartNumberExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.PartNumberExists(ctx, id)
}

// cachedList fills dest from the cache and reports whether it hit. Cache
// failures degrade to a database read, never to an error.
func (s *service) cachedList(ctx context.Context, collection string, dest any) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, s.cache.ReferenceKey(collection))
	if err != nil {
		if err != redis.Nil {
			s.logg.Warn(s.logg.WithField(ctx, "collection", collection), "reference cache read failed")
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "collection", collection), "reference cache payload corrupt")
		return false
	}
	return true
}

func (s *service) storeList(ctx context.Context, collection string, value any) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.ReferenceKey(collection), string(payload), s.ttl); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "collection", collection), "reference cache write failed")
	}
}
