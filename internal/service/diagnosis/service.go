package diagnosis

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/medrec/patient-api/internal/model"
	"github.com/medrec/patient-api/internal/repository"
)

const listCacheKey = "diagnoses:all"

// Service serves the diagnosis reference set. The full list is cached:
// it is immutable for the process lifetime and requested by every form
// render.
type Service struct {
	repo  repository.DiagnosisRepository
	cache *cache.Cache
}

func NewService(repo repository.DiagnosisRepository, ttl time.Duration) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (s *Service) ListDiagnoses(ctx context.Context) ([]model.Diagnosis, error) {
	if cached, ok := s.cache.Get(listCacheKey); ok {
		return cached.([]model.Diagnosis), nil
	}

	diagnoses, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list diagnoses: %w", err)
	}

	s.cache.Set(listCacheKey, diagnoses, cache.DefaultExpiration)
	return diagnoses, nil
}

func (s *Service) GetDiagnosis(ctx context.Context, code string) (*model.Diagnosis, error) {
	return s.repo.GetByCode(ctx, code)
}
