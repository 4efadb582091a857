package quote

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownValue reports a string that is not one of a closed type's literals.
var ErrUnknownValue = errors.New("quote: unknown value")

// ApplicationType is where the beam will be used.
type ApplicationType string

const (
	ApplicationRoofSnowLoad    ApplicationType = "Roof (Snow Load)"
	ApplicationRoofNonSnowLoad ApplicationType = "Roof (Non-Snow Load)"
	ApplicationFloor           ApplicationType = "Floor"
	ApplicationCantileverBeam  ApplicationType = "Cantilever Beam"
	ApplicationCustom          ApplicationType = "Custom Application"
)

// SpanLength is the clear span bucket.
type SpanLength string

const (
	SpanUnder10   SpanLength = "< 10 ft"
	Span10To20    SpanLength = "10–20 ft"
	Span20To30    SpanLength = "20–30 ft"
	Span30To40    SpanLength = "30–40 ft"
	Span40AndOver SpanLength = "40 ft"
)

// BeamDimensions is the nominal width x depth of the beam.
type BeamDimensions string

const (
	Beam3x12   BeamDimensions = `3-1/8" x 12"`
	Beam3x18   BeamDimensions = `3-1/8" x 18"`
	Beam5x12   BeamDimensions = `5-1/8" x 12"`
	Beam5x18   BeamDimensions = `5-1/8" x 18"`
	Beam6x24   BeamDimensions = `6-3/4" x 24"`
	BeamCustom BeamDimensions = "Custom"
)

// LoadType is the design load category.
type LoadType string

const (
	LoadRoofSnow    LoadType = "Roof: Snow Load"
	LoadRoofNonSnow LoadType = "Roof: Non-Snow Load"
	LoadFloorLight  LoadType = "Floor: Light Load"
	LoadFloorHeavy  LoadType = "Floor: Heavy Load"
	LoadUnknown     LoadType = "Unknown"
)

// CamberRequirement is the requested upward curvature.
type CamberRequirement string

const (
	CamberNone         CamberRequirement = "No Camber"
	CamberEighthPerFt  CamberRequirement = `Yes, 1/8" per foot`
	CamberQuarterPerFt CamberRequirement = `Yes, 1/4" per foot`
	CamberOther        CamberRequirement = "Other"
)

// AppearanceGrade is the visual finish grade.
type AppearanceGrade string

const (
	GradeIndustrial    AppearanceGrade = "Industrial"
	GradeArchitectural AppearanceGrade = "Architectural"
	GradePremium       AppearanceGrade = "Premium"
)

// EnvironmentalTreatment is the exposure/treatment class.
type EnvironmentalTreatment string

const (
	TreatmentIndoor        EnvironmentalTreatment = "Indoor Use"
	TreatmentOutdoor       EnvironmentalTreatment = "Outdoor Use"
	TreatmentFireRetardant EnvironmentalTreatment = "Fire Retardant"
)

// Quantity is the ordered beam count bucket.
type Quantity string

const (
	Quantity1To5    Quantity = "1–5 beams"
	Quantity6To10   Quantity = "6–10 beams"
	Quantity11To20  Quantity = "11–20 beams"
	Quantity21AndUp Quantity = "21+ beams"
)

var (
	applicationTypes = []ApplicationType{ApplicationRoofSnowLoad, ApplicationRoofNonSnowLoad, ApplicationFloor, ApplicationCantileverBeam, ApplicationCustom}
	spanLengths      = []SpanLength{SpanUnder10, Span10To20, Span20To30, Span30To40, Span40AndOver}
	beamDimensions   = []BeamDimensions{Beam3x12, Beam3x18, Beam5x12, Beam5x18, Beam6x24, BeamCustom}
	loadTypes        = []LoadType{LoadRoofSnow, LoadRoofNonSnow, LoadFloorLight, LoadFloorHeavy, LoadUnknown}
	camberOptions    = []CamberRequirement{CamberNone, CamberEighthPerFt, CamberQuarterPerFt, CamberOther}
	appearanceGrades = []AppearanceGrade{GradeIndustrial, GradeArchitectural, GradePremium}
	treatments       = []EnvironmentalTreatment{TreatmentIndoor, TreatmentOutdoor, TreatmentFireRetardant}
	quantities       = []Quantity{Quantity1To5, Quantity6To10, Quantity11To20, Quantity21AndUp}
)

// ApplicationTypes returns every ApplicationType in display order.
func ApplicationTypes() []ApplicationType { return slices.Clone(applicationTypes) }

// SpanLengths returns every SpanLength in display order.
func SpanLengths() []SpanLength { return slices.Clone(spanLengths) }

// BeamDimensionOptions returns every BeamDimensions in display order.
func BeamDimensionOptions() []BeamDimensions { return slices.Clone(beamDimensions) }

// LoadTypes returns every LoadType in display order.
func LoadTypes() []LoadType { return slices.Clone(loadTypes) }

// CamberRequirements returns every CamberRequirement in display order.
func CamberRequirements() []CamberRequirement { return slices.Clone(camberOptions) }

// AppearanceGrades returns every AppearanceGrade in display order.
func AppearanceGrades() []AppearanceGrade { return slices.Clone(appearanceGrades) }

// EnvironmentalTreatments returns every EnvironmentalTreatment in display order.
func EnvironmentalTreatments() []EnvironmentalTreatment { return slices.Clone(treatments) }

// Quantities returns every Quantity in display order.
func Quantities() []Quantity { return slices.Clone(quantities) }

// ParseApplicationType returns the ApplicationType spelled exactly as raw.
func ParseApplicationType(raw string) (ApplicationType, error) {
	return parseLiteral(applicationTypes, raw)
}

// ParseSpanLength returns the SpanLength spelled exactly as raw.
func ParseSpanLength(raw string) (SpanLength, error) { return parseLiteral(spanLengths, raw) }

// ParseBeamDimensions returns the BeamDimensions spelled exactly as raw.
func ParseBeamDimensions(raw string) (BeamDimensions, error) {
	return parseLiteral(beamDimensions, raw)
}

// ParseLoadType returns the LoadType spelled exactly as raw.
func ParseLoadType(raw string) (LoadType, error) { return parseLiteral(loadTypes, raw) }

// ParseCamberRequirement returns the CamberRequirement spelled exactly as raw.
func ParseCamberRequirement(raw string) (CamberRequirement, error) {
	return parseLiteral(camberOptions, raw)
}

// ParseAppearanceGrade returns the AppearanceGrade spelled exactly as raw.
func ParseAppearanceGrade(raw string) (AppearanceGrade, error) {
	return parseLiteral(appearanceGrades, raw)
}

// ParseEnvironmentalTreatment returns the EnvironmentalTreatment spelled exactly as raw.
func ParseEnvironmentalTreatment(raw string) (EnvironmentalTreatment, error) {
	return parseLiteral(treatments, raw)
}

// ParseQuantity returns the Quantity spelled exactly as raw.
func ParseQuantity(raw string) (Quantity, error) { return parseLiteral(quantities, raw) }

func parseLiteral[T ~string](all []T, raw string) (T, error) {
	for _, candidate := range all {
		if string(candidate) == raw {
			return candidate, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w %q for %T", ErrUnknownValue, raw, zero)
}

func literals[T ~string](all []T) []string {
	out := make([]string, len(all))
	for i, v := range all {
		out[i] = string(v)
	}
	return out
}
