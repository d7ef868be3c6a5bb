package memory

import (
	"context"

	"github.com/medrec/patient-api/internal/model"
	apperrors "github.com/medrec/patient-api/pkg/errors"
)

// DiagnosisRepository serves the diagnosis reference set. The set is
// fixed at construction and never mutated, so reads need no locking.
type DiagnosisRepository struct {
	diagnoses []model.Diagnosis
	byCode    map[string]model.Diagnosis
}

func NewDiagnosisRepository(seed []model.Diagnosis) *DiagnosisRepository {
	byCode := make(map[string]model.Diagnosis, len(seed))
	for _, d := range seed {
		byCode[d.Code] = d
	}
	return &DiagnosisRepository{diagnoses: seed, byCode: byCode}
}

func (r *DiagnosisRepository) List(_ context.Context) ([]model.Diagnosis, error) {
	out := make([]model.Diagnosis, len(r.diagnoses))
	copy(out, r.diagnoses)
	return out, nil
}

func (r *DiagnosisRepository) GetByCode(_ context.Context, code string) (*model.Diagnosis, error) {
	d, ok := r.byCode[code]
	if !ok {
		return nil, apperrors.NewNotFound("diagnosis", nil)
	}
	return &d, nil
}
