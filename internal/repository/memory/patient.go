// Package memory holds the process-local implementations of the
// repository interfaces. Data lives for the lifetime of the process and
// is discarded on exit; a repository is constructed per instance so
// tests get isolated stores.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/medrec/patient-api/internal/model"
	apperrors "github.com/medrec/patient-api/pkg/errors"
)

// PatientRepository is an insertion-ordered in-memory patient store.
// A single RWMutex serializes the read-modify-write sequences of Create
// and AppendEntry; reads share the lock in read mode.
type PatientRepository struct {
	mu       sync.RWMutex
	order    []string
	patients map[string]*model.Patient
}

// NewPatientRepository builds a store pre-loaded with the given
// patients, preserving their order.
func NewPatientRepository(seed []model.Patient) *PatientRepository {
	r := &PatientRepository{
		patients: make(map[string]*model.Patient, len(seed)),
	}
	for i := range seed {
		// Clone so the store never shares an Entries backing array
		// with the caller's slice.
		r.order = append(r.order, seed[i].ID)
		r.patients[seed[i].ID] = seed[i].Clone()
	}
	return r
}

func (r *PatientRepository) List(_ context.Context) ([]*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patients := make([]*model.Patient, 0, len(r.order))
	for _, id := range r.order {
		patients = append(patients, r.patients[id].Clone())
	}
	return patients, nil
}

func (r *PatientRepository) Get(_ context.Context, id string) (*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patient, ok := r.patients[id]
	if !ok {
		return nil, apperrors.NewNotFound("patient", nil)
	}
	return patient.Clone(), nil
}

func (r *PatientRepository) Create(_ context.Context, patient *model.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.patients[patient.ID]; exists {
		return apperrors.NewInternal(fmt.Errorf("duplicate patient id %s", patient.ID))
	}
	r.order = append(r.order, patient.ID)
	r.patients[patient.ID] = patient.Clone()
	return nil
}

// AppendEntry appends the entry to the patient's record and returns the
// updated patient. The store is untouched when the patient is missing.
func (r *PatientRepository) AppendEntry(_ context.Context, patientID string, entry model.Entry) (*model.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	patient, ok := r.patients[patientID]
	if !ok {
		return nil, apperrors.NewNotFound("patient", nil)
	}
	patient.Entries = append(patient.Entries, entry)
	return patient.Clone(), nil
}

// Count reports the number of stored patients.
func (r *PatientRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
