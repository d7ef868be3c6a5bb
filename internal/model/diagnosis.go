package model

// Diagnosis is immutable reference data keyed by code. Entry diagnosis
// codes refer to it by value and are allowed to dangle.
type Diagnosis struct {
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Latin *string `json:"latin,omitempty"`
}
