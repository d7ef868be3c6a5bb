package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryJSONOmitsForeignVariantFields(t *testing.T) {
	rating := RatingHealthy
	entry := Entry{
		ID:                "e1",
		Type:              EntryTypeHealthCheck,
		Description:       "Yearly control visit",
		Date:              "2019-10-20",
		Specialist:        "MD House",
		HealthCheckRating: &rating,
	}

	raw, err := json.Marshal(entry)
	require.NoError(t, err)

	body := string(raw)
	assert.Contains(t, body, `"healthCheckRating":0`)
	assert.NotContains(t, body, "discharge")
	assert.NotContains(t, body, "employerName")
	assert.NotContains(t, body, "sickLeave")
	assert.NotContains(t, body, "diagnosisCodes")
}

func TestEntryJSONRoundTrip(t *testing.T) {
	raw := []byte(`{
		"id": "b4f4eca1-2aa7-4b13-9a18-4a5535c3c8da",
		"type": "Hospital",
		"date": "2015-01-02",
		"specialist": "MD House",
		"diagnosisCodes": ["S62.5"],
		"description": "Healing time appr. 2 weeks.",
		"discharge": {"date": "2015-01-16", "criteria": "Thumb has healed."}
	}`)

	var entry Entry
	require.NoError(t, json.Unmarshal(raw, &entry))
	assert.Equal(t, EntryTypeHospital, entry.Type)
	require.NotNil(t, entry.Discharge)
	assert.Equal(t, "Thumb has healed.", entry.Discharge.Criteria)
	assert.Equal(t, []string{"S62.5"}, entry.DiagnosisCodes)

	out, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "healthCheckRating")
}

func TestNonSensitiveProjection(t *testing.T) {
	patient := Patient{
		ID:          "p1",
		Name:        "John McClane",
		DateOfBirth: "1986-07-09",
		SSN:         "090786-122X",
		Occupation:  "Cop",
		Gender:      GenderMale,
		Entries:     []Entry{},
	}

	projected := patient.NonSensitive()
	raw, err := json.Marshal(projected)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "ssn")
	assert.Contains(t, string(raw), `"name":"John McClane"`)
}

func TestCloneIsolatesEntries(t *testing.T) {
	rating := RatingLowRisk
	patient := Patient{
		ID:      "p1",
		Entries: []Entry{{ID: "e1", Type: EntryTypeHealthCheck, HealthCheckRating: &rating}},
	}

	clone := patient.Clone()
	clone.Entries[0].ID = "changed"
	clone.Entries = append(clone.Entries, Entry{ID: "e2"})

	assert.Equal(t, "e1", patient.Entries[0].ID)
	assert.Len(t, patient.Entries, 1)
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, GenderFemale.Valid())
	assert.False(t, Gender("martian").Valid())

	assert.True(t, RatingCriticalRisk.Valid())
	assert.False(t, HealthCheckRating(4).Valid())
	assert.False(t, HealthCheckRating(-1).Valid())

	for _, et := range EntryTypes {
		assert.True(t, et.Valid())
	}
	assert.False(t, EntryType("Dental").Valid())
}
