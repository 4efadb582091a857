package quote

import (
	"sync"

	"github.com/goliatone/go-quoteform/pkg/constraint"
	"github.com/goliatone/go-quoteform/pkg/schema"
)

// Section and form names.
const (
	SectionCustomer = "customer"
	SectionGlulam   = "glulam"
	SectionProject  = "project"
	FormRequest     = "request"

	// RequestTitle is the display title of the request form.
	RequestTitle = "Glulam RFQ Form"
)

// Field names, shared by the schemas and the typed records' JSON tags.
const (
	FieldFirstName              = "firstName"
	FieldLastName               = "lastName"
	FieldCompany                = "company"
	FieldEmail                  = "email"
	FieldPhone                  = "phone"
	FieldApplicationType        = "applicationType"
	FieldSpanLength             = "spanLength"
	FieldBeamDimensions         = "beamDimensions"
	FieldLoadType               = "loadType"
	FieldCamberRequirement      = "camberRequirement"
	FieldAppearanceGrade        = "appearanceGrade"
	FieldEnvironmentalTreatment = "environmentalTreatment"
	FieldQuantity               = "quantity"
)

var spanLabels = map[SpanLength]string{
	SpanUnder10:   "Less than 10 ft",
	Span10To20:    "10 to 20 ft",
	Span20To30:    "20 to 30 ft",
	Span30To40:    "30 to 40 ft",
	Span40AndOver: "40 ft or more",
}

var (
	// CustomerSchema returns the customer identity section.
	CustomerSchema = sync.OnceValue(func() *schema.Schema {
		return schema.MustNew(SectionCustomer,
			textField(FieldFirstName, "First Name", "Enter first name", constraint.InputText,
				constraint.MinLength(2, "First name must be at least 2 characters"),
				constraint.MaxLength(50, "First name must be less than 50 characters"),
			),
			textField(FieldLastName, "Last Name", "Enter last name", constraint.InputText,
				constraint.MinLength(2, "Last name must be at least 2 characters"),
				constraint.MaxLength(50, "Last name must be less than 50 characters"),
			),
			textField(FieldCompany, "Company", "Enter company name", constraint.InputText,
				constraint.MinLength(2, "Company name must be at least 2 characters"),
				constraint.MaxLength(100, "Company name must be less than 100 characters"),
			),
			textField(FieldEmail, "Email", "Enter email address", constraint.InputEmail,
				constraint.Email("Please enter a valid email address"),
			),
			textField(FieldPhone, "Phone", "(123) 456-7890", constraint.InputTel,
				constraint.Pattern(constraint.PhonePattern, "Please enter a valid phone number"),
			),
		)
	})

	// GlulamSchema returns the glulam specification section.
	GlulamSchema = sync.OnceValue(func() *schema.Schema {
		return schema.MustNew(SectionGlulam,
			selectField(FieldApplicationType, "Application Type", "Select application type",
				"Please select an application type", applicationTypes, nil),
			selectField(FieldSpanLength, "Span Length", "Select span length",
				"Please select a span length", spanLengths, spanLabels),
			selectField(FieldBeamDimensions, "Beam Dimensions", "Select beam dimensions",
				"Please select beam dimensions", beamDimensions, nil),
		)
	})

	// ProjectSchema returns the project details section. Its fields carry the
	// default messages.
	ProjectSchema = sync.OnceValue(func() *schema.Schema {
		return schema.MustNew(SectionProject,
			selectField(FieldLoadType, "Load Type", "Select load type", "", loadTypes, nil),
			selectField(FieldCamberRequirement, "Camber Requirement", "Select camber requirement", "", camberOptions, nil),
			selectField(FieldAppearanceGrade, "Appearance Grade", "Select appearance grade", "", appearanceGrades, nil),
			selectField(FieldEnvironmentalTreatment, "Environmental Treatment", "Select environmental treatment", "", treatments, nil),
			selectField(FieldQuantity, "Quantity", "Select quantity", "", quantities, nil),
		)
	})

	// RequestSchema returns the full quote request: customer, glulam and
	// project sections composed in that order.
	RequestSchema = sync.OnceValue(func() *schema.Schema {
		return schema.MustCompose(FormRequest, CustomerSchema(), GlulamSchema(), ProjectSchema())
	})
)

// Form returns a declared form schema by name: customer, glulam, project or
// request.
func Form(name string) (*schema.Schema, bool) {
	switch name {
	case SectionCustomer:
		return CustomerSchema(), true
	case SectionGlulam:
		return GlulamSchema(), true
	case SectionProject:
		return ProjectSchema(), true
	case FormRequest:
		return RequestSchema(), true
	default:
		return nil, false
	}
}

// FormNames lists the names accepted by Form.
func FormNames() []string {
	return []string{SectionCustomer, SectionGlulam, SectionProject, FormRequest}
}

func textField(name, label, placeholder string, input constraint.InputType, rules ...constraint.Constraint) constraint.Field {
	return constraint.Field{
		Name:        name,
		Input:       input,
		Label:       label,
		Placeholder: placeholder,
		Constraints: rules,
	}
}

// selectField declares a closed-choice field. The enum constraint is derived
// from the same literal slice the typed record parses against.
func selectField[T ~string](name, label, placeholder, requiredMsg string, values []T, labels map[T]string) constraint.Field {
	options := make([]constraint.Option, 0, len(values))
	for _, v := range values {
		options = append(options, constraint.Option{Value: string(v), Label: labels[v]})
	}
	return constraint.Field{
		Name:        name,
		Input:       constraint.InputSelect,
		Label:       label,
		Placeholder: placeholder,
		Options:     options,
		Constraints: []constraint.Constraint{
			constraint.Required(requiredMsg),
			constraint.OneOf(literals(values), ""),
		},
	}
}
