// Package validation proves or disproves that untyped request payloads
// conform to the domain model. Every check is pure: callers get back
// either a typed value or the complete ordered list of violations, never
// just the first one, so a form can be annotated in a single round trip.
package validation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/medrec/patient-api/internal/model"
)

// Violation pinpoints a single schema violation. Field is a dotted path
// into the payload (e.g. "discharge.date") so callers can highlight the
// exact offending form field.
type Violation struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Validator checks raw JSON payloads against the patient and entry
// schemas. It is stateless and safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

var dateRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// New constructs a Validator with the schema rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report violations under the payload's JSON field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// caldate: a well-formed YYYY-MM-DD calendar date. The regexp alone
	// would accept 2024-02-31; time.Parse catches that.
	_ = v.RegisterValidation("caldate", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if !dateRE.MatchString(s) {
			return false
		}
		_, err := time.Parse("2006-01-02", s)
		return err == nil
	})

	return &Validator{v: v}
}

// Schema shapes use pointer fields so a missing key is distinguishable
// from a zero value and reported as "required".

type newPatientSchema struct {
	Name        *string `json:"name" validate:"required,min=3"`
	DateOfBirth *string `json:"dateOfBirth" validate:"required,caldate"`
	SSN         *string `json:"ssn" validate:"required,min=6"`
	Occupation  *string `json:"occupation" validate:"required,min=3"`
	Gender      *string `json:"gender" validate:"required,oneof=male female other"`
}

type dischargeSchema struct {
	Date     *string `json:"date" validate:"required,caldate"`
	Criteria *string `json:"criteria" validate:"required,min=1"`
}

type sickLeaveSchema struct {
	StartDate *string `json:"startDate" validate:"required,caldate"`
	EndDate   *string `json:"endDate" validate:"required,caldate"`
}

type healthCheckEntrySchema struct {
	Description    *string  `json:"description" validate:"required,min=1"`
	Date           *string  `json:"date" validate:"required,caldate"`
	Specialist     *string  `json:"specialist" validate:"required,min=1"`
	DiagnosisCodes []string `json:"diagnosisCodes"`

	// Checked by hand below: 0 (Healthy) is a meaningful rating, the
	// required tag would reject it as a zero value.
	HealthCheckRating *int `json:"healthCheckRating"`
}

type hospitalEntrySchema struct {
	Description    *string  `json:"description" validate:"required,min=1"`
	Date           *string  `json:"date" validate:"required,caldate"`
	Specialist     *string  `json:"specialist" validate:"required,min=1"`
	DiagnosisCodes []string `json:"diagnosisCodes"`

	Discharge *dischargeSchema `json:"discharge" validate:"required"`
}

type occupationalEntrySchema struct {
	Description    *string  `json:"description" validate:"required,min=1"`
	Date           *string  `json:"date" validate:"required,caldate"`
	Specialist     *string  `json:"specialist" validate:"required,min=1"`
	DiagnosisCodes []string `json:"diagnosisCodes"`

	EmployerName *string          `json:"employerName" validate:"required,min=1"`
	SickLeave    *sickLeaveSchema `json:"sickLeave"`
}

// ValidateNewPatient checks a raw payload against the new-patient schema
// and returns the typed value, or the ordered list of every violation
// found.
func (val *Validator) ValidateNewPatient(raw []byte) (*model.NewPatient, []Violation) {
	var schema newPatientSchema
	typeViolations, fatal := decode(raw, &schema)
	if fatal {
		return nil, typeViolations
	}

	if vs := merge(typeViolations, val.check(&schema)); len(vs) > 0 {
		return nil, vs
	}

	return &model.NewPatient{
		Name:        *schema.Name,
		DateOfBirth: *schema.DateOfBirth,
		SSN:         *schema.SSN,
		Occupation:  *schema.Occupation,
		Gender:      model.Gender(*schema.Gender),
	}, nil
}

// ValidateEntry checks a raw payload against the entry union. The
// discriminator is resolved first: validating fields against a guessed
// variant would produce misleading errors, so a missing or unknown type
// is the only violation reported in that case.
func (val *Validator) ValidateEntry(raw []byte) (*model.NewEntry, []Violation) {
	var head struct {
		Type *string `json:"type"`
	}
	if vs, _ := decode(raw, &head); len(vs) > 0 {
		return nil, vs
	}

	if head.Type == nil {
		return nil, []Violation{{
			Field:   "type",
			Code:    "required",
			Message: "type is required",
		}}
	}
	entryType := model.EntryType(*head.Type)
	if !entryType.Valid() {
		return nil, []Violation{{
			Field:   "type",
			Code:    "invalid_discriminator",
			Message: fmt.Sprintf("type must be one of %q, %q or %q", model.EntryTypeHealthCheck, model.EntryTypeHospital, model.EntryTypeOccupationalHealthcare),
		}}
	}

	switch entryType {
	case model.EntryTypeHealthCheck:
		return val.validateHealthCheck(raw)
	case model.EntryTypeHospital:
		return val.validateHospital(raw)
	case model.EntryTypeOccupationalHealthcare:
		return val.validateOccupational(raw)
	}
	// Unreachable: entryType was checked against the full union above.
	return nil, []Violation{{Field: "type", Code: "invalid_discriminator", Message: "unknown entry type"}}
}

func (val *Validator) validateHealthCheck(raw []byte) (*model.NewEntry, []Violation) {
	var schema healthCheckEntrySchema
	typeViolations, fatal := decode(raw, &schema)
	if fatal {
		return nil, typeViolations
	}

	tagViolations := val.check(&schema)
	if schema.HealthCheckRating == nil {
		tagViolations = append(tagViolations, Violation{
			Field:   "healthCheckRating",
			Code:    "required",
			Message: "healthCheckRating is required",
		})
	} else if !model.HealthCheckRating(*schema.HealthCheckRating).Valid() {
		tagViolations = append(tagViolations, Violation{
			Field:   "healthCheckRating",
			Code:    "enum",
			Message: "healthCheckRating must be between 0 and 3",
		})
	}
	if vs := merge(typeViolations, tagViolations); len(vs) > 0 {
		return nil, vs
	}

	rating := model.HealthCheckRating(*schema.HealthCheckRating)
	return &model.NewEntry{
		Type:              model.EntryTypeHealthCheck,
		Description:       *schema.Description,
		Date:              *schema.Date,
		Specialist:        *schema.Specialist,
		DiagnosisCodes:    schema.DiagnosisCodes,
		HealthCheckRating: &rating,
	}, nil
}

func (val *Validator) validateHospital(raw []byte) (*model.NewEntry, []Violation) {
	var schema hospitalEntrySchema
	typeViolations, fatal := decode(raw, &schema)
	if fatal {
		return nil, typeViolations
	}

	if vs := merge(typeViolations, val.check(&schema)); len(vs) > 0 {
		return nil, vs
	}

	return &model.NewEntry{
		Type:           model.EntryTypeHospital,
		Description:    *schema.Description,
		Date:           *schema.Date,
		Specialist:     *schema.Specialist,
		DiagnosisCodes: schema.DiagnosisCodes,
		Discharge: &model.Discharge{
			Date:     *schema.Discharge.Date,
			Criteria: *schema.Discharge.Criteria,
		},
	}, nil
}

func (val *Validator) validateOccupational(raw []byte) (*model.NewEntry, []Violation) {
	var schema occupationalEntrySchema
	typeViolations, fatal := decode(raw, &schema)
	if fatal {
		return nil, typeViolations
	}

	if vs := merge(typeViolations, val.check(&schema)); len(vs) > 0 {
		return nil, vs
	}

	entry := &model.NewEntry{
		Type:           model.EntryTypeOccupationalHealthcare,
		Description:    *schema.Description,
		Date:           *schema.Date,
		Specialist:     *schema.Specialist,
		DiagnosisCodes: schema.DiagnosisCodes,
		EmployerName:   *schema.EmployerName,
	}
	if schema.SickLeave != nil {
		entry.SickLeave = &model.SickLeave{
			StartDate: *schema.SickLeave.StartDate,
			EndDate:   *schema.SickLeave.EndDate,
		}
	}
	return entry, nil
}

// check runs the tag rules of a schema struct and converts the outcome
// into violations, preserving field declaration order.
func (val *Validator) check(schema interface{}) []Violation {
	err := val.v.Struct(schema)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []Violation{{Field: "", Code: "invalid_input", Message: err.Error()}}
	}

	violations := make([]Violation, 0, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		code := fe.Tag()
		if code == "caldate" {
			code = "date"
		}
		violations = append(violations, Violation{
			Field:   field,
			Code:    code,
			Message: violationMessage(field, code, fe.Param()),
		})
	}
	return violations
}

// decode unmarshals raw JSON into the schema shape. A wrong-typed field
// is recorded as a violation and removed from the payload so the
// remaining fields still decode and the tag rules still run on them;
// only malformed JSON or a non-object payload aborts outright (fatal).
func decode(raw []byte, schema interface{}) (violations []Violation, fatal bool) {
	for i := 0; i < maxDecodePasses; i++ {
		err := json.Unmarshal(raw, schema)
		if err == nil {
			return violations, false
		}

		typeErr, ok := err.(*json.UnmarshalTypeError)
		if !ok {
			return []Violation{{Field: "", Code: "invalid_json", Message: "payload is not valid JSON"}}, true
		}
		if typeErr.Field == "" {
			return []Violation{{Field: "", Code: "invalid_type", Message: "payload must be a JSON object"}}, true
		}

		violations = append(violations, Violation{
			Field:   typeErr.Field,
			Code:    "invalid_type",
			Message: fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type),
		})

		pruned, ok := removeField(raw, typeErr.Field)
		if !ok {
			return violations, false
		}
		raw = pruned
	}
	return violations, false
}

// maxDecodePasses bounds the decode loop; one pass per wrong-typed
// field is enough for any payload the schemas describe.
const maxDecodePasses = 32

// removeField deletes the dotted path from the JSON object so the next
// decode pass can get past it.
func removeField(raw []byte, path string) ([]byte, bool) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, false
	}

	parts := strings.Split(path, ".")
	objects := []map[string]json.RawMessage{root}
	for _, key := range parts[:len(parts)-1] {
		current := objects[len(objects)-1]
		child, ok := current[key]
		if !ok {
			return nil, false
		}
		var next map[string]json.RawMessage
		if err := json.Unmarshal(child, &next); err != nil {
			return nil, false
		}
		objects = append(objects, next)
	}

	leaf := objects[len(objects)-1]
	if _, ok := leaf[parts[len(parts)-1]]; !ok {
		return nil, false
	}
	delete(leaf, parts[len(parts)-1])

	for i := len(objects) - 1; i > 0; i-- {
		remarshaled, err := json.Marshal(objects[i])
		if err != nil {
			return nil, false
		}
		objects[i-1][parts[i-1]] = remarshaled
	}

	out, err := json.Marshal(objects[0])
	if err != nil {
		return nil, false
	}
	return out, true
}

// merge appends the tag violations onto the type violations, dropping
// tag findings on fields already reported as wrong-typed: a field that
// failed to decode is left unset and would otherwise be double-reported
// as missing.
func merge(typeViolations, tagViolations []Violation) []Violation {
	if len(typeViolations) == 0 {
		return tagViolations
	}

	reported := make(map[string]bool, len(typeViolations))
	for _, v := range typeViolations {
		reported[v.Field] = true
	}

	merged := typeViolations
	for _, v := range tagViolations {
		if !reported[v.Field] {
			merged = append(merged, v)
		}
	}
	return merged
}

// fieldPath strips the schema struct name off a validator namespace,
// leaving the dotted payload path ("discharge.date").
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func violationMessage(field, code, param string) string {
	switch code {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, param)
	case "date":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
