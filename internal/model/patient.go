package model

// Gender is the set of accepted patient genders.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Genders lists every accepted Gender value, in declaration order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Patient is the full patient record, including the sensitive SSN.
// Dates travel as YYYY-MM-DD strings; the validator guarantees they are
// well-formed calendar dates before a Patient is ever constructed.
type Patient struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DateOfBirth string  `json:"dateOfBirth"`
	SSN         string  `json:"ssn"`
	Occupation  string  `json:"occupation"`
	Gender      Gender  `json:"gender"`
	Entries     []Entry `json:"entries"`
}

// NewPatient is the creation input: a Patient without a server-generated
// ID and without entries (a new patient always starts with none).
type NewPatient struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
	SSN         string `json:"ssn"`
	Occupation  string `json:"occupation"`
	Gender      Gender `json:"gender"`
}

// NonSensitivePatient is the listing projection of a Patient with the
// SSN stripped.
type NonSensitivePatient struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DateOfBirth string  `json:"dateOfBirth"`
	Occupation  string  `json:"occupation"`
	Gender      Gender  `json:"gender"`
	Entries     []Entry `json:"entries"`
}

// NonSensitive projects the patient into its SSN-free form.
func (p *Patient) NonSensitive() NonSensitivePatient {
	return NonSensitivePatient{
		ID:          p.ID,
		Name:        p.Name,
		DateOfBirth: p.DateOfBirth,
		Occupation:  p.Occupation,
		Gender:      p.Gender,
		Entries:     p.Entries,
	}
}

// Clone returns a copy of the patient whose entries slice is independent
// of the receiver's, so callers cannot mutate stored state through it.
func (p *Patient) Clone() *Patient {
	cp := *p
	if p.Entries != nil {
		cp.Entries = make([]Entry, len(p.Entries))
		copy(cp.Entries, p.Entries)
	}
	return &cp
}
