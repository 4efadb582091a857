package quote

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-quoteform/pkg/schema"
)

// Customer is the validated customer identity section.
type Customer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// GlulamSpecs is the validated glulam specification section.
type GlulamSpecs struct {
	ApplicationType ApplicationType `json:"applicationType"`
	SpanLength      SpanLength      `json:"spanLength"`
	BeamDimensions  BeamDimensions  `json:"beamDimensions"`
}

// ProjectDetails is the validated project details section.
type ProjectDetails struct {
	LoadType               LoadType               `json:"loadType"`
	CamberRequirement      CamberRequirement      `json:"camberRequirement"`
	AppearanceGrade        AppearanceGrade        `json:"appearanceGrade"`
	EnvironmentalTreatment EnvironmentalTreatment `json:"environmentalTreatment"`
	Quantity               Quantity               `json:"quantity"`
}

// Request is a complete, validated quote request. It marshals to the same
// flat shape as the form record.
type Request struct {
	Customer
	GlulamSpecs
	ProjectDetails
}

// DecodeCustomer maps a record into a Customer. It does not validate; use
// ValidateCustomer for untrusted input.
func DecodeCustomer(rec schema.Record) Customer {
	return Customer{
		FirstName: rec[FieldFirstName],
		LastName:  rec[FieldLastName],
		Company:   rec[FieldCompany],
		Email:     rec[FieldEmail],
		Phone:     rec[FieldPhone],
	}
}

// DecodeGlulamSpecs maps a record into GlulamSpecs, rejecting values outside
// the closed option sets.
func DecodeGlulamSpecs(rec schema.Record) (GlulamSpecs, error) {
	var (
		out  GlulamSpecs
		errs []error
	)
	out.ApplicationType = decodeInto(&errs, FieldApplicationType, rec, ParseApplicationType)
	out.SpanLength = decodeInto(&errs, FieldSpanLength, rec, ParseSpanLength)
	out.BeamDimensions = decodeInto(&errs, FieldBeamDimensions, rec, ParseBeamDimensions)
	return out, errors.Join(errs...)
}

// DecodeProjectDetails maps a record into ProjectDetails, rejecting values
// outside the closed option sets.
func DecodeProjectDetails(rec schema.Record) (ProjectDetails, error) {
	var (
		out  ProjectDetails
		errs []error
	)
	out.LoadType = decodeInto(&errs, FieldLoadType, rec, ParseLoadType)
	out.CamberRequirement = decodeInto(&errs, FieldCamberRequirement, rec, ParseCamberRequirement)
	out.AppearanceGrade = decodeInto(&errs, FieldAppearanceGrade, rec, ParseAppearanceGrade)
	out.EnvironmentalTreatment = decodeInto(&errs, FieldEnvironmentalTreatment, rec, ParseEnvironmentalTreatment)
	out.Quantity = decodeInto(&errs, FieldQuantity, rec, ParseQuantity)
	return out, errors.Join(errs...)
}

// DecodeRequest maps a record into a Request.
func DecodeRequest(rec schema.Record) (Request, error) {
	specs, specErr := DecodeGlulamSpecs(rec)
	details, detailErr := DecodeProjectDetails(rec)
	return Request{
		Customer:       DecodeCustomer(rec),
		GlulamSpecs:    specs,
		ProjectDetails: details,
	}, errors.Join(specErr, detailErr)
}

// ValidateCustomer validates raw against CustomerSchema. On failure the error
// is a schema.FieldErrors.
func ValidateCustomer(raw schema.Record) (Customer, error) {
	result := CustomerSchema().Validate(raw)
	if !result.Valid() {
		return Customer{}, result.Errors
	}
	return DecodeCustomer(result.Record), nil
}

// ValidateGlulamSpecs validates raw against GlulamSchema.
func ValidateGlulamSpecs(raw schema.Record) (GlulamSpecs, error) {
	result := GlulamSchema().Validate(raw)
	if !result.Valid() {
		return GlulamSpecs{}, result.Errors
	}
	return DecodeGlulamSpecs(result.Record)
}

// ValidateRequest validates raw against RequestSchema.
func ValidateRequest(raw schema.Record) (Request, error) {
	result := RequestSchema().Validate(raw)
	if !result.Valid() {
		return Request{}, result.Errors
	}
	return DecodeRequest(result.Record)
}

// Record flattens the request back into a form record, e.g. to prefill a
// renderer.
func (r Request) Record() schema.Record {
	return schema.Record{
		FieldFirstName:              r.FirstName,
		FieldLastName:               r.LastName,
		FieldCompany:                r.Company,
		FieldEmail:                  r.Email,
		FieldPhone:                  r.Phone,
		FieldApplicationType:        string(r.ApplicationType),
		FieldSpanLength:             string(r.SpanLength),
		FieldBeamDimensions:         string(r.BeamDimensions),
		FieldLoadType:               string(r.LoadType),
		FieldCamberRequirement:      string(r.CamberRequirement),
		FieldAppearanceGrade:        string(r.AppearanceGrade),
		FieldEnvironmentalTreatment: string(r.EnvironmentalTreatment),
		FieldQuantity:               string(r.Quantity),
	}
}

func decodeInto[T ~string](errs *[]error, field string, rec schema.Record, parse func(string) (T, error)) T {
	value, err := parse(rec[field])
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", field, err))
	}
	return value
}
