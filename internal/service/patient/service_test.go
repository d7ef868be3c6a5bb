package patient

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medrec/patient-api/internal/model"
	"github.com/medrec/patient-api/internal/repository/memory"
	apperrors "github.com/medrec/patient-api/pkg/errors"
)

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, _ interface{}) error {
	p.events = append(p.events, eventType)
	return nil
}

func newTestService() (*Service, *memory.PatientRepository, *recordingPublisher) {
	repo := memory.NewPatientRepository(nil)
	events := &recordingPublisher{}
	return NewService(repo, events), repo, events
}

func validInput() *model.NewPatient {
	return &model.NewPatient{
		Name:        "John McClane",
		DateOfBirth: "1986-07-09",
		SSN:         "090786-122X",
		Occupation:  "New york city cop",
		Gender:      model.GenderMale,
	}
}

func TestCreatePatientRoundTrip(t *testing.T) {
	svc, _, events := newTestService()
	ctx := context.Background()

	created, err := svc.CreatePatient(ctx, validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "John McClane", created.Name)
	assert.Equal(t, "090786-122X", created.SSN)
	require.NotNil(t, created.Entries)
	assert.Empty(t, created.Entries)

	fetched, err := svc.GetPatient(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Name, fetched.Name)
	assert.Equal(t, created.SSN, fetched.SSN)
	assert.Empty(t, fetched.Entries)

	assert.Equal(t, []string{EventPatientCreated}, events.events)
}

func TestCreatePatientGeneratesUniqueIDs(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		created, err := svc.CreatePatient(ctx, validInput())
		require.NoError(t, err)
		assert.False(t, seen[created.ID], "duplicate patient id %s", created.ID)
		seen[created.ID] = true
	}
}

func TestListPatientsStripsSSN(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreatePatient(ctx, validInput())
	require.NoError(t, err)

	listed, err := svc.ListPatients(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	// The projection has no SSN field at all; prove it stays out of the
	// serialized form too.
	raw, err := json.Marshal(listed[0])
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "ssn")

	// The full read on the same id does include it.
	full, err := svc.GetPatient(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "090786-122X", full.SSN)
}

func TestListPatientsIsIdempotent(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.CreatePatient(ctx, validInput())
		require.NoError(t, err)
	}

	first, err := svc.ListPatients(ctx)
	require.NoError(t, err)
	second, err := svc.ListPatients(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAddEntry(t *testing.T) {
	svc, _, events := newTestService()
	ctx := context.Background()

	created, err := svc.CreatePatient(ctx, validInput())
	require.NoError(t, err)

	input := &model.NewEntry{
		Type:        model.EntryTypeHospital,
		Description: "Flu",
		Date:        "2024-01-01",
		Specialist:  "Dr. A",
		Discharge:   &model.Discharge{Date: "2024-01-05", Criteria: "stable"},
	}

	updated, err := svc.AddEntry(ctx, created.ID, input)
	require.NoError(t, err)
	require.Len(t, updated.Entries, 1)

	entry := updated.Entries[0]
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, model.EntryTypeHospital, entry.Type)
	assert.Equal(t, "Flu", entry.Description)
	require.NotNil(t, entry.Discharge)
	assert.Equal(t, "stable", entry.Discharge.Criteria)

	assert.Equal(t, []string{EventPatientCreated, EventPatientEntryAdded}, events.events)
}

func TestAddEntryAppendsInOrderWithUniqueIDs(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreatePatient(ctx, validInput())
	require.NoError(t, err)

	rating := model.RatingHealthy
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		updated, err := svc.AddEntry(ctx, created.ID, &model.NewEntry{
			Type:              model.EntryTypeHealthCheck,
			Description:       "Control visit",
			Date:              "2024-01-01",
			Specialist:        "MD House",
			HealthCheckRating: &rating,
		})
		require.NoError(t, err)
		require.Len(t, updated.Entries, i+1)

		id := updated.Entries[i].ID
		assert.False(t, seen[id], "duplicate entry id %s", id)
		seen[id] = true
	}
}

func TestAddEntryUnknownPatient(t *testing.T) {
	svc, repo, events := newTestService()
	ctx := context.Background()

	_, err := svc.CreatePatient(ctx, validInput())
	require.NoError(t, err)

	rating := model.RatingHealthy
	_, err = svc.AddEntry(ctx, "no-such-id", &model.NewEntry{
		Type:              model.EntryTypeHealthCheck,
		Description:       "Control visit",
		Date:              "2024-01-01",
		Specialist:        "MD House",
		HealthCheckRating: &rating,
	})
	assert.True(t, apperrors.IsNotFound(err))

	// Nothing was created or mutated as a side effect.
	assert.Equal(t, 1, repo.Count())
	listed, err := svc.ListPatients(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Empty(t, listed[0].Entries)
	assert.Equal(t, []string{EventPatientCreated}, events.events)
}

func TestGetPatientNotFoundIsDistinctFromEmpty(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreatePatient(ctx, validInput())
	require.NoError(t, err)

	// A patient with no entries is a successful read.
	fetched, err := svc.GetPatient(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.Entries)

	// A missing patient is a not-found outcome, never an empty record.
	missing, err := svc.GetPatient(ctx, "no-such-id")
	assert.Nil(t, missing)
	assert.True(t, apperrors.IsNotFound(err))
}
