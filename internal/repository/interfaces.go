package repository

import (
	"context"

	"github.com/medrec/patient-api/internal/model"
)

// PatientRepository owns the patient collection. List preserves
// insertion order; Get and AppendEntry report a missing patient through
// a not-found error, never by inventing a record.
type PatientRepository interface {
	List(ctx context.Context) ([]*model.Patient, error)
	Get(ctx context.Context, id string) (*model.Patient, error)
	Create(ctx context.Context, patient *model.Patient) error
	AppendEntry(ctx context.Context, patientID string, entry model.Entry) (*model.Patient, error)
}

// DiagnosisRepository serves the immutable diagnosis reference set.
type DiagnosisRepository interface {
	List(ctx context.Context) ([]model.Diagnosis, error)
	GetByCode(ctx context.Context, code string) (*model.Diagnosis, error)
}
