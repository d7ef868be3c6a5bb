package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/medrec/patient-api/internal/model"
	"github.com/medrec/patient-api/internal/repository"
	"github.com/medrec/patient-api/pkg/messaging"
)

const (
	EventPatientCreated    = "patient.created"
	EventPatientEntryAdded = "patient.entry_added"
)

// PatientService mutates and reads the patient collection. Inputs are
// expected to be already validated; the service does not re-validate.
type PatientService interface {
	ListPatients(ctx context.Context) ([]model.NonSensitivePatient, error)
	GetPatient(ctx context.Context, id string) (*model.Patient, error)
	CreatePatient(ctx context.Context, input *model.NewPatient) (*model.Patient, error)
	AddEntry(ctx context.Context, patientID string, input *model.NewEntry) (*model.Patient, error)
}

type Service struct {
	repo   repository.PatientRepository
	events messaging.Publisher
}

func NewService(repo repository.PatientRepository, events messaging.Publisher) *Service {
	if events == nil {
		events = messaging.NoopPublisher{}
	}
	return &Service{repo: repo, events: events}
}

// ListPatients returns every patient in insertion order, SSN stripped.
func (s *Service) ListPatients(ctx context.Context) ([]model.NonSensitivePatient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	listed := make([]model.NonSensitivePatient, 0, len(patients))
	for _, p := range patients {
		listed = append(listed, p.NonSensitive())
	}
	return listed, nil
}

// GetPatient returns the full record, SSN included. The caller is
// trusted to require sensitive-data access.
func (s *Service) GetPatient(ctx context.Context, id string) (*model.Patient, error) {
	return s.repo.Get(ctx, id)
}

// CreatePatient attaches a fresh identifier and an empty entry list to
// the validated input and stores it.
func (s *Service) CreatePatient(ctx context.Context, input *model.NewPatient) (*model.Patient, error) {
	patient := &model.Patient{
		ID:          uuid.New().String(),
		Name:        input.Name,
		DateOfBirth: input.DateOfBirth,
		SSN:         input.SSN,
		Occupation:  input.Occupation,
		Gender:      input.Gender,
		Entries:     []model.Entry{},
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	_ = s.events.Publish(ctx, EventPatientCreated, patient.NonSensitive())
	return patient, nil
}

// AddEntry appends a validated entry, under a fresh identifier, to the
// end of the patient's record. A missing patient is reported as not
// found; nothing is created as a side effect.
func (s *Service) AddEntry(ctx context.Context, patientID string, input *model.NewEntry) (*model.Patient, error) {
	entry := input.WithID(uuid.New().String())

	patient, err := s.repo.AppendEntry(ctx, patientID, entry)
	if err != nil {
		return nil, err
	}

	_ = s.events.Publish(ctx, EventPatientEntryAdded, map[string]interface{}{
		"patientId": patientID,
		"entryId":   entry.ID,
		"entryType": entry.Type,
	})
	return patient, nil
}
