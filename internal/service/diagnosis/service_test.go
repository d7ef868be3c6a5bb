package diagnosis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medrec/patient-api/internal/model"
	"github.com/medrec/patient-api/internal/repository"
	"github.com/medrec/patient-api/internal/repository/memory"
	apperrors "github.com/medrec/patient-api/pkg/errors"
)

func newMemoryRepo(t *testing.T) repository.DiagnosisRepository {
	t.Helper()
	return memory.NewDiagnosisRepository(seedDiagnoses())
}

// countingRepo wraps the repository to count how often the backing
// store is actually hit.
type countingRepo struct {
	repository.DiagnosisRepository
	listCalls int
}

func (r *countingRepo) List(ctx context.Context) ([]model.Diagnosis, error) {
	r.listCalls++
	return r.DiagnosisRepository.List(ctx)
}

func seedDiagnoses() []model.Diagnosis {
	latin := "Morbositas ligamenti"
	return []model.Diagnosis{
		{Code: "M24.2", Name: "Disorder of ligament", Latin: &latin},
		{Code: "Z57.1", Name: "Occupational exposure to radiation"},
	}
}

func TestListDiagnoses(t *testing.T) {
	repo := &countingRepo{DiagnosisRepository: newMemoryRepo(t)}
	svc := NewService(repo, time.Minute)
	ctx := context.Background()

	diagnoses, err := svc.ListDiagnoses(ctx)
	require.NoError(t, err)
	require.Len(t, diagnoses, 2)
	assert.Equal(t, "M24.2", diagnoses[0].Code)

	// Second read is served from cache.
	_, err = svc.ListDiagnoses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
}

func TestGetDiagnosis(t *testing.T) {
	svc := NewService(newMemoryRepo(t), time.Minute)
	ctx := context.Background()

	d, err := svc.GetDiagnosis(ctx, "Z57.1")
	require.NoError(t, err)
	assert.Equal(t, "Occupational exposure to radiation", d.Name)
	assert.Nil(t, d.Latin)

	_, err = svc.GetDiagnosis(ctx, "X00.0")
	assert.True(t, apperrors.IsNotFound(err))
}
