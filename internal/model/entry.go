package model

// EntryType discriminates the medical entry union. The tag alone decides
// which variant payload an entry carries.
type EntryType string

const (
	EntryTypeHealthCheck            EntryType = "HealthCheck"
	EntryTypeHospital               EntryType = "Hospital"
	EntryTypeOccupationalHealthcare EntryType = "OccupationalHealthcare"
)

// EntryTypes lists every known discriminator value.
var EntryTypes = []EntryType{
	EntryTypeHealthCheck,
	EntryTypeHospital,
	EntryTypeOccupationalHealthcare,
}

func (t EntryType) Valid() bool {
	switch t {
	case EntryTypeHealthCheck, EntryTypeHospital, EntryTypeOccupationalHealthcare:
		return true
	}
	return false
}

// HealthCheckRating grades a health check from healthy to critical.
// Higher is more severe; the ordering is meaningful but nothing in the
// service computes on it.
type HealthCheckRating int

const (
	RatingHealthy      HealthCheckRating = 0
	RatingLowRisk      HealthCheckRating = 1
	RatingHighRisk     HealthCheckRating = 2
	RatingCriticalRisk HealthCheckRating = 3
)

func (r HealthCheckRating) Valid() bool {
	return r >= RatingHealthy && r <= RatingCriticalRisk
}

// Discharge is the mandatory payload of a Hospital entry.
type Discharge struct {
	Date     string `json:"date"`
	Criteria string `json:"criteria"`
}

// SickLeave is the optional payload of an OccupationalHealthcare entry.
// When present it is always a complete pair, never a lone start or end.
type SickLeave struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Entry is one medical record item of a patient. Type selects the
// variant: exactly one variant payload group is set, the rest stay at
// their zero values and are omitted from JSON. The validator is the only
// producer of entries, so an Entry in the store never mixes variants.
type Entry struct {
	ID             string    `json:"id"`
	Type           EntryType `json:"type"`
	Description    string    `json:"description"`
	Date           string    `json:"date"`
	Specialist     string    `json:"specialist"`
	DiagnosisCodes []string  `json:"diagnosisCodes,omitempty"`

	// HealthCheck
	HealthCheckRating *HealthCheckRating `json:"healthCheckRating,omitempty"`

	// Hospital
	Discharge *Discharge `json:"discharge,omitempty"`

	// OccupationalHealthcare
	EmployerName string     `json:"employerName,omitempty"`
	SickLeave    *SickLeave `json:"sickLeave,omitempty"`
}

// NewEntry is the append input: an Entry without the server-generated ID.
type NewEntry struct {
	Type           EntryType `json:"type"`
	Description    string    `json:"description"`
	Date           string    `json:"date"`
	Specialist     string    `json:"specialist"`
	DiagnosisCodes []string  `json:"diagnosisCodes,omitempty"`

	HealthCheckRating *HealthCheckRating `json:"healthCheckRating,omitempty"`
	Discharge         *Discharge         `json:"discharge,omitempty"`
	EmployerName      string             `json:"employerName,omitempty"`
	SickLeave         *SickLeave         `json:"sickLeave,omitempty"`
}

// WithID promotes the input into a stored Entry under the given id.
func (n *NewEntry) WithID(id string) Entry {
	return Entry{
		ID:                id,
		Type:              n.Type,
		Description:       n.Description,
		Date:              n.Date,
		Specialist:        n.Specialist,
		DiagnosisCodes:    n.DiagnosisCodes,
		HealthCheckRating: n.HealthCheckRating,
		Discharge:         n.Discharge,
		EmployerName:      n.EmployerName,
		SickLeave:         n.SickLeave,
	}
}
