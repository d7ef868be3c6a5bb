// Package seed ships the static reference data the registry starts
// with: the diagnosis code set and a handful of demo patients.
package seed

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/medrec/patient-api/internal/model"
)

//go:embed data/diagnoses.json data/patients.json
var files embed.FS

// Patients returns the built-in patient records.
func Patients() ([]model.Patient, error) {
	raw, err := files.ReadFile("data/patients.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read patient seed data: %w", err)
	}
	var patients []model.Patient
	if err := json.Unmarshal(raw, &patients); err != nil {
		return nil, fmt.Errorf("failed to parse patient seed data: %w", err)
	}
	return patients, nil
}

// Diagnoses returns the built-in diagnosis reference set.
func Diagnoses() ([]model.Diagnosis, error) {
	raw, err := files.ReadFile("data/diagnoses.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read diagnosis seed data: %w", err)
	}
	var diagnoses []model.Diagnosis
	if err := json.Unmarshal(raw, &diagnoses); err != nil {
		return nil, fmt.Errorf("failed to parse diagnosis seed data: %w", err)
	}
	return diagnoses, nil
}
